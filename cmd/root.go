package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/config"
	clog "github.com/xrsl/wfx/pkg/log"
	"github.com/xrsl/wfx/pkg/style"
)

// skipConfigCheck marks commands that must run even when the config is
// invalid, so the user can inspect and repair it.
const skipConfigCheck = "wfx/skip-config-check"

// requestScopedLogs marks commands whose records carry their own request
// IDs instead of a process-wide run ID.
const requestScopedLogs = "wfx/request-scoped-logs"

var (
	quiet    bool
	verbose  bool
	logLevel string

	// cfg is loaded before every command; nil only for skipConfigCheck
	// commands run against an invalid config.
	cfg     *config.Config
	logSink io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "wfx",
	Short: "Recommend a workflow template for a project brief",
	Long: `wfx reads a free-text project description and recommends which
workflow template fits it best.

Requirements are detected by keyword, scored against a catalog of
workflow capabilities, and ranked with a short explanation for each.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Setup Typer-style help formatting
	style.SetupHelp(rootCmd)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARNING, ERROR, CRITICAL)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		if cmd.Annotations[skipConfigCheck] == "" {
			return fmt.Errorf("config error: %w", err)
		}
		clog.Warn("config_invalid", "error", err)
	}
	cfg = c

	level := logLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	if level != "" {
		if err := clog.Configure(level); err != nil {
			return err
		}
	}
	if verbose {
		clog.SetVerbose(true)
	}
	clog.SetQuiet(quiet)

	if cfg != nil && cfg.LogFile != "" {
		logSink = clog.SetFile(cfg.LogFile)
	}

	bindRun(cmd)
	clog.Debug("command_started", "args", len(args))
	return nil
}

func bindRun(cmd *cobra.Command) {
	if cmd.Annotations[requestScopedLogs] != "" {
		return
	}
	clog.BindContext(clog.NewRunID(), "command", cmd.CommandPath())
}

func teardown(cmd *cobra.Command, args []string) error {
	clog.ClearContext()
	if logSink != nil {
		err := logSink.Close()
		logSink = nil
		return err
	}
	return nil
}

// settings returns the loaded config, or defaults when none could be loaded.
func settings() config.Config {
	if cfg != nil {
		return *cfg
	}
	return config.Config{
		LogLevel:             "INFO",
		ServiceDiscoveryMode: config.DiscoveryLocal,
		Profile:              "weighted",
		OutputPath:           "workflow_analysis.json",
		ServeAddr:            "127.0.0.1:8484",
	}
}
