package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/boardci/internal/config"
	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/pkg/fileutil"
)

var (
	initForce     bool
	initPlatforms []string
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	initCmd.Flags().StringSliceVarP(&initPlatforms, "platforms", "p", nil, "default platform aliases to record")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter boardci.yaml",
	Long: `Write a boardci.yaml holding the built-in defaults into dir (default: the
current directory). Edit it to add boards, groups or the default platform
list for the library.`,
	Example: `  boardci init -p main_platforms

See Also: boardci config`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path := filepath.Join(dir, config.AppName+".yaml")

		if _, err := os.Stat(path); err == nil && !initForce {
			return errors.NewUserError(errors.Newf("%s already exists", path), "Pass --force to overwrite")
		}

		if _, err := platform.DefaultRegistry().Expand(initPlatforms); err != nil {
			return errors.NewUserError(err, "Run: boardci platforms")
		}

		starter := config.Default()
		starter.Platforms = initPlatforms
		if errs := config.Validate(starter); len(errs) > 0 {
			return errors.NewConfigError(errs[0])
		}

		if err := fileutil.AtomicWriteYAML(path, starter); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "writing config"), "")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}
