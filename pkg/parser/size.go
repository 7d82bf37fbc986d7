package parser

import (
	"math"
	"strconv"
	"strings"
)

const (
	megabyte = 1024 * 1024

	// byteThreshold is the integer size above which a token is taken to be bytes.
	byteThreshold = 200

	// fewPages is the page count below which a small integer size is taken to be bytes.
	fewPages = 3
)

// InterpretSize converts a Size= token into bytes.
//
// The log has recorded sizes both as bytes and as megabytes over its history,
// so the unit is guessed: a fractional value is megabytes, a large integer is
// bytes, and a small integer is bytes only when the file is known to have
// fewer than three pages. pages < 0 means the page count is unknown.
func InterpretSize(token string, pages int) int64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}

	if strings.Contains(token, ".") {
		mb, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0
		}
		return int64(math.RoundToEven(mb * megabyte))
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0
	}
	if n > byteThreshold {
		return n
	}
	if pages >= 0 && pages < fewPages {
		return n
	}
	return n * megabyte
}
