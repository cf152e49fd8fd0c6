package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/boardci/internal/errors"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <alias>...",
	Short: "Print the boards an alias expands to",
	Long: `Expand board and group aliases to fully qualified board names, one per
line, in the order a run would compile them. Boards reached through more
than one alias are printed once.`,
	Example: `  boardci resolve rak_platforms
  boardci resolve uno esp32

See Also: boardci platforms`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := cfg.Registry()
		if err != nil {
			return errors.NewConfigError(err)
		}
		aliases, err := reg.Expand(args)
		if err != nil {
			return errors.NewUserError(err, "Run: boardci platforms")
		}
		for _, a := range aliases {
			e, _ := reg.Lookup(a)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", a, e.FQBN)
		}
		return nil
	},
}
