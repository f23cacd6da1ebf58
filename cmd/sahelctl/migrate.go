package main

import (
	"fmt"

	"github.com/amirphl/Sahel-Estates/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sqlDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := migrations.Up(cmd.Context(), sqlDB); err != nil {
				return err
			}
			version, err := migrations.Version(cmd.Context(), sqlDB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is at version %d\n", version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sqlDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			return migrations.Down(cmd.Context(), sqlDB)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the state of every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sqlDB, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			return migrations.Status(cmd.Context(), sqlDB)
		},
	})

	return cmd
}
