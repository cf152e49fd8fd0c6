package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/platform"
)

var platformsJSON bool

func init() {
	platformsCmd.Flags().BoolVar(&platformsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:     "platforms",
	Aliases: []string{"list"},
	Short:   "List board and group aliases",
	Long: `List every board alias with its fully qualified board name, and every
group alias with its members. Boards and groups from the config file are
included.`,
	Example: `  # Table output
  boardci platforms

  # Machine readable
  boardci platforms --json

See Also: boardci resolve`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := cfg.Registry()
		if err != nil {
			return errors.NewConfigError(err)
		}
		if platformsJSON {
			return writePlatformsJSON(cmd.OutOrStdout(), reg)
		}
		return writePlatformsTable(cmd.OutOrStdout(), reg)
	},
}

// platformView is the JSON shape of a registry entry.
type platformView struct {
	Alias   string   `json:"alias"`
	Kind    string   `json:"kind"`
	FQBN    string   `json:"fqbn,omitempty"`
	Members []string `json:"members,omitempty"`
}

func writePlatformsJSON(w io.Writer, reg *platform.Registry) error {
	entries := reg.Entries()
	views := make([]platformView, len(entries))
	for i, e := range entries {
		views[i] = platformView{
			Alias:   e.Alias,
			Kind:    e.Kind.String(),
			FQBN:    e.FQBN.String(),
			Members: e.Members,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(views), "encoding platforms")
}

func writePlatformsTable(w io.Writer, reg *platform.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tKIND\tTARGET")
	for _, e := range reg.Entries() {
		target := e.FQBN.String()
		if e.Kind == platform.KindGroup {
			target = strings.Join(e.Members, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Alias, e.Kind, target)
	}
	return errors.Wrap(tw.Flush(), "writing platforms")
}
