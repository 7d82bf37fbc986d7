package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

const defaultFTPPort = "21"

// Credentials is the FTP credentials file: {"HOST": ..., "ID": ..., "PW": ...}.
type Credentials struct {
	Host     string `json:"HOST"`
	User     string `json:"ID"`
	Password string `json:"PW"`
}

// LoadCredentials reads and checks a credentials file.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided credentials path is expected
	if err != nil {
		return Credentials{}, fmt.Errorf("reading ftp credentials: %w", err)
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("parsing ftp credentials %s: %w", path, err)
	}
	if c.Host == "" {
		return Credentials{}, fmt.Errorf("ftp credentials %s: HOST is required", path)
	}
	if c.User == "" {
		return Credentials{}, fmt.Errorf("ftp credentials %s: ID is required", path)
	}
	return c, nil
}

// address returns host:port, defaulting the port to 21.
func (c Credentials) address() string {
	if _, _, err := net.SplitHostPort(c.Host); err == nil {
		return c.Host
	}
	return net.JoinHostPort(c.Host, defaultFTPPort)
}

// FTPSource downloads the log from an FTP server.
type FTPSource struct {
	creds   Credentials
	dir     string
	file    string
	timeout time.Duration
}

// NewFTPSource creates a source that retrieves dir/file.
func NewFTPSource(creds Credentials, dir, file string, timeout time.Duration) *FTPSource {
	return &FTPSource{creds: creds, dir: dir, file: file, timeout: timeout}
}

// Name returns an ftp:// description of the remote file.
func (s *FTPSource) Name() string {
	return "ftp://" + s.creds.Host + "/" + path.Join(s.dir, s.file)
}

// Fetch connects, logs in and retrieves the file. Dial and login failures
// wrap ErrConnect.
func (s *FTPSource) Fetch(ctx context.Context) ([]byte, error) {
	opts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if s.timeout > 0 {
		opts = append(opts, ftp.DialWithTimeout(s.timeout))
	}

	conn, err := ftp.Dial(s.creds.address(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConnect, s.creds.Host, err)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login(s.creds.User, s.creds.Password); err != nil {
		return nil, fmt.Errorf("%w %s: login: %v", ErrConnect, s.creds.Host, err)
	}

	if s.dir != "" {
		if err := conn.ChangeDir(s.dir); err != nil {
			return nil, fmt.Errorf("ftp cd %s: %w", s.dir, err)
		}
	}

	resp, err := conn.Retr(s.file)
	if err != nil {
		return nil, fmt.Errorf("ftp retrieve %s: %w", s.file, err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("ftp read %s: %w", s.file, err)
	}
	return data, nil
}

// IsConnectError reports whether err is a transport connection failure.
func IsConnectError(err error) bool {
	return errors.Is(err, ErrConnect)
}
