package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xrsl/wfx/pkg/config"
	"github.com/xrsl/wfx/pkg/style"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wfx configuration",
	Long: `Show or change settings stored in .wfx-config.yaml.

Every setting can also be given as a WFX_<KEY> environment variable
(or in .env), which takes precedence over the file.

Examples:
  wfx config list
  wfx config get profile
  wfx config set log_level debug
  wfx config set catalog_path catalogs/team.toml`,
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runConfigList,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a configuration value. The resulting configuration is validated
before it is written.

Keys:
  log_level               DEBUG, INFO, WARNING, ERROR, CRITICAL
  log_file                Rotated log file (empty logs to stderr)
  logfire_enabled         true or false
  logfire_token           Required when logfire_enabled is true
  service_discovery_mode  local or docker_compose
  profile                 weighted or coarse
  catalog_path            Workflow catalog file (.yaml or .toml)
  output_path             Default JSON output for analyze --json
  serve_addr              Listen address for wfx serve`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:         "get <key>",
	Short:       "Get a config value",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "(not set)")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), value)
		}
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List all config values",
	Annotations: map[string]string{skipConfigCheck: "true"},
	RunE:        runConfigList,
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	all, err := config.All()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "\n%s\n", style.B(style.C(style.Cyan, "wfx config")))
	fmt.Fprintf(w, "%s\n\n", style.C(style.Gray, config.Path()))
	for _, k := range config.Keys {
		printConfigRow(w, k, all[k])
	}
	fmt.Fprintln(w)

	if _, err := config.Load(); err != nil {
		writeConfigErrors(w, err)
	}
	return nil
}

func printConfigRow(w io.Writer, key, value string) {
	if key == "logfire_token" && value != "" {
		value = "********"
	}
	if value == "" {
		fmt.Fprintf(w, "  %-23s %s\n", key, style.C(style.Gray, "(not set)"))
		return
	}
	fmt.Fprintf(w, "  %-23s %s\n", key, style.C(style.Green, value))
}

// writeConfigErrors prints one line per validation failure.
func writeConfigErrors(w io.Writer, err error) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		var ve *config.ValidationError
		if errors.As(e, &ve) {
			fmt.Fprintf(w, "%s %s\n", style.Cross(), ve.Error())
			continue
		}
		fmt.Fprintf(w, "%s %v\n", style.Cross(), e)
	}
}
