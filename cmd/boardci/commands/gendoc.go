package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/boardci/internal/errors"
	"github.com/thoreinstein/boardci/internal/paths"
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		outputDir, _ := cmd.Flags().GetString("dir")
		if outputDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass -d <dir>")
		}

		if err := paths.EnsureDir(outputDir, paths.DefaultDirPerm); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		if err := doc.GenMarkdownTreeCustom(rootCmd, outputDir, docFrontMatter, docLink); err != nil {
			return errors.Wrap(err, "generating markdown")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Documentation generated in %s\n", outputDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringP("dir", "d", "", "output directory for documentation")
	rootCmd.AddCommand(genDocCmd)
}

// docFrontMatter titles each page after its command path:
// boardci_platforms.md -> "boardci platforms".
func docFrontMatter(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func docLink(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "/"
}
