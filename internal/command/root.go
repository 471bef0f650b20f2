package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "reactlog"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "reactlog - turn meeting reaction exports into pivot tables",
		Long:          "reactlog reads a raw JSON export of the reaction log and renders one pivot table per meeting.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("categories", "", "reaction categories as emoji:Name pairs (default from REACTION_CATEGORIES)")
	cmd.PersistentFlags().String("timezone", "", "zone for records without a wall-clock time (default from TIMEZONE)")

	cmd.AddCommand(
		NewPivotCmd(),
		NewShowCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
