package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &CommonOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Validate a conlog configuration file without fetching the log.

Checks:
  - YAML syntax
  - Log source type and required fields
  - Report file names (present, plain names, distinct)
  - Epoch date, link base and webhook URLs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (defaults are used when omitted)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *CommonOptions) error {
	name := opts.ConfigPath
	if name == "" {
		name = "built-in defaults"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating %s...\n", name)

	cfg, err := loadConfig(commandContext(cmd), opts)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Log source:  %s %s\n", cfg.LogSource.Type, cfg.LogSource.Path)
	fmt.Fprintf(out, "  Watermark:   %s (epoch %s)\n", cfg.WatermarkFile, cfg.Epoch)
	fmt.Fprintf(out, "  Output dir:  %s\n", cfg.OutputDir)
	fmt.Fprintf(out, "  Sandboxes:   %s\n", strings.Join(cfg.SandboxPrefixes, ", "))
	fmt.Fprintf(out, "  Webhooks:    %d\n", len(cfg.Webhooks))

	fmt.Fprintf(out, "\nReports:\n")
	for _, r := range []struct{ name, file string }{
		{"series", cfg.Reports.Series},
		{"instance", cfg.Reports.Instance},
		{"detail", cfg.Reports.Detail},
		{"edie-old", cfg.Reports.EdieOld},
		{"edie", cfg.Reports.Edie},
	} {
		fmt.Fprintf(out, "  %-9s %s\n", r.name, r.file)
	}

	return nil
}
