package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/armmock/pkg/config"
	"github.com/getmockd/armmock/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configFile string
	logLevel   string
	logFormat  string
	logFile    string

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "armmock",
	Short: "armmock mocks the Azure Resource Manager control plane",
	Long: `armmock answers ARM requests from the Swagger specs of a spec tree.

Responses come from the operation's x-ms-examples when one applies and are
synthesized from the response schema otherwise. Long-running operations get a
polling URL, and an optional stateful profile tracks created resources.

Configuration can be provided via flags, environment variables, or a configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.ConfigPathFromEnv(), "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append JSON logs to this file")
}

// loadConfig layers the persistent flags over the file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
		cfg.SetSource("logging.level", config.SourceFlag)
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
		cfg.SetSource("logging.format", config.SourceFlag)
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = logFile
		cfg.SetSource("logging.file", config.SourceFlag)
	}
	return cfg, nil
}

// newLogger builds the process logger. With a log file configured, records
// go to out and, as JSON, to the file; the returned func closes the file.
func newLogger(cfg *config.Config, out io.Writer) (*slog.Logger, func(), error) {
	lc := cfg.LoggingConfig(out)
	if cfg.Logging.File == "" {
		return logging.New(lc), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	fileCfg := lc
	fileCfg.Format = logging.FormatJSON
	fileCfg.Output = f
	handler := logging.NewTeeHandler(logging.NewHandler(lc), logging.NewHandler(fileCfg))
	return slog.New(handler), func() { _ = f.Close() }, nil
}
