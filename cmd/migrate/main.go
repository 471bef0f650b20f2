package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-reactions/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-reactions/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the postgres state store schema",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(db *gorm.DB) error {
					_, err := database.Migrate(db)
					return err
				})
			},
		},
		newDownCmd(),
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDB(func(db *gorm.DB) error {
					states, err := database.MigrationStatus(db)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
					for _, s := range states {
						applied := "pending"
						if s.AppliedAt != nil {
							applied = s.AppliedAt.Format(time.RFC3339)
						}
						fmt.Fprintf(w, "%s\t%s\n", s.ID, applied)
					}
					return w.Flush()
				})
			},
		},
	)

	return cmd
}

func newDownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			return withDB(func(db *gorm.DB) error {
				n, err := database.Rollback(db, steps)
				if err != nil {
					return err
				}
				log.Printf("✅ Rolled back %d migration(s)", n)
				return nil
			})
		},
	}
	cmd.Flags().Int("steps", 1, "number of migrations to roll back (0 = all)")
	return cmd
}

// withDB connects using the DB_* settings and closes the connection afterwards
func withDB(fn func(db *gorm.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	return fn(db)
}
