package command

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-reactions/internal/domain/entities"
	"github.com/johnquangdev/meeting-reactions/internal/usecase/export"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <export.json>",
		Short: "Print the per-meeting pivot tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd, args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}

			tables, err := ctx.Tables()
			if err != nil {
				return writeCommandError(cmd, err)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				if tables == nil {
					tables = []entities.PivotTable{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tables)
			}

			if len(tables) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reactions recorded.")
				return nil
			}

			categories := ctx.Builder.Categories()
			names := export.SheetNames(tables)
			for i, table := range tables {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", names[i])
				printTable(cmd, table, categories)
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "output in JSON format")
	return cmd
}

func printTable(cmd *cobra.Command, table entities.PivotTable, categories []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(export.HeaderRow(categories), "\t"))
	for _, row := range table.Rows {
		values := []string{row.MeetingLabel, row.ContactID, orDash(row.ParticipantDisplayName)}
		for _, category := range categories {
			values = append(values, orDash(row.Cells[category]))
		}
		fmt.Fprintln(w, strings.Join(values, "\t"))
	}
	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
