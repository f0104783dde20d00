// Command hexmerge regroups the data records of an Intel HEX image by
// extended linear address, moves the 0x8000xxxx window to 0xA000xxxx and
// writes a single sorted image.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcinbor85/hexmerge"
	"github.com/marcinbor85/hexmerge/internal/config"
	"github.com/marcinbor85/hexmerge/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type options struct {
	envFile   string
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "hexmerge <inputfile.hex> <outputfile.hex>",
		Short: "Merge and re-sort the segments of an Intel HEX file",
		Long: `Merge and re-sort the segments of an Intel HEX file.

Data records are grouped by their extended linear address, segments at
0x8000-0x8FFF are moved to 0xA000-0xAFFF, and every segment is written in
ascending address order. Lines that cannot be parsed are copied unchanged.

Environment variables:
  HEXMERGE_LOG_LEVEL    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  HEXMERGE_LOG_FORMAT   Log format: pretty, json (default: pretty)`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runMerge(cmd.ErrOrStderr(), opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level, overrides HEXMERGE_LOG_LEVEL")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format, overrides HEXMERGE_LOG_FORMAT")

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies command line overrides.
func loadConfig(opts options) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(opts.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err = cfg.WithLogLevel(opts.logLevel).WithLogFormat(opts.logFormat)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("--log-format: %w", err)
	}
	return cfg, nil
}

func runMerge(stderr io.Writer, opts options, input, output string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := log.NewLogger(stderr, cfg)

	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	m := hexmerge.NewMerger(hexmerge.WithLogger(logger))
	sum, err := m.Merge(in, out)
	if err != nil {
		out.Close()
		return fmt.Errorf("merge %s: %w", input, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	logger.Info("merge complete",
		"input", input,
		"output", output,
		"lines", sum.Lines,
		"passthrough", sum.Passthrough,
		"segments", sum.MergedSegments,
		"records", sum.DataRecords,
	)
	return nil
}
