package command

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-reactions/internal/usecase/export"
)

// NewPivotCmd creates the pivot command.
func NewPivotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pivot <export.json>",
		Short: "Write the per-meeting pivot tables to an xlsx workbook",
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

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = export.SpreadsheetFileName(time.Now().In(ctx.Location))
			}

			f, err := os.Create(out)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			if err := export.WriteWorkbook(f, tables, ctx.Builder.Categories()); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return writeCommandError(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeCommandError(cmd, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sheet(s) to %s\n", len(tables), out)
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "output file (default meeting-records-<date>.xlsx)")
	return cmd
}
