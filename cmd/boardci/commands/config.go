package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/boardci/internal/config"
	"github.com/thoreinstein/boardci/internal/editor"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration boardci would run with, after merging defaults,
the config file, BOARDCI_* environment variables and flags.`,
	Example: `  # Show everything
  boardci config

  # One value
  boardci config get cli

  # Which file was loaded
  boardci config path

  # Open it in $EDITOR
  boardci config edit

See Also: boardci init`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := fileutil.MarshalYAML(cfg)
		if err != nil {
			return errors.Wrap(err, "marshaling config")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Long:  `Print a single configuration value. List values are printed one per line.`,
	Example: `  boardci config get additional_urls

See Also: boardci config`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		w := cmd.OutOrStdout()
		if !viper.IsSet(key) {
			fmt.Fprintln(w, "not set")
			return nil
		}
		switch v := viper.Get(key).(type) {
		case []any:
			for _, item := range v {
				fmt.Fprintln(w, item)
			}
		case []string:
			for _, item := range v {
				fmt.Fprintln(w, item)
			}
		default:
			fmt.Fprintln(w, viper.GetString(key))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		used := viper.ConfigFileUsed()
		if used == "" {
			used = "(none, using defaults)"
		}
		fmt.Fprintln(cmd.OutOrStdout(), used)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Long: `Open the config file in use in $EDITOR (then $VISUAL, nano, vi). Without a
config file, ./boardci.yaml is opened if it exists; run 'boardci init' to
create one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			path = config.AppName + ".yaml"
		}
		if _, err := os.Stat(path); err != nil {
			return errors.NewUserError(errors.Newf("config file not found at %s", path), "Run: boardci init")
		}
		return editor.Open(cmd.Context(), path, editor.Streams{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})
	},
}
