// ABOUTME: CLI command to browse the law catalog
// ABOUTME: Lists all laws or resolves titles the way the pipeline does
package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewLawsCmd creates the laws command
func NewLawsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laws [title...]",
		Short: "List the law catalog or look up laws by title",
		Long: `List the law catalog or look up laws by title.

Without arguments every law is listed. With titles each one is resolved
like the pipeline's knowledge lookup does; unknown titles show
"Content not found".

Examples:
  legalcrew laws
  legalcrew laws Woningwet "burgerlijk_wetboek_boek_7"
  legalcrew laws --format json`,
		RunE: runLaws,
	}

	return cmd
}

func runLaws(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		records := a.Catalog.Laws()
		if wantJSON() {
			return printJSON(out, records)
		}
		tw := newTable(out, table.Row{"Key", "Title", "Sections"})
		for _, law := range records {
			tw.AppendRow(table.Row{law.Key, law.Title, len(law.Sections)})
		}
		tw.Render()
		return nil
	}

	bundle := a.Lookup.Resolve(args)
	if wantJSON() {
		return printJSON(out, bundle)
	}
	fmt.Fprint(out, bundle.Render())
	return nil
}
