package cmd

import (
	"github.com/spf13/cobra"

	"momo-store/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := db.Init(ctx, cfg.DB); err != nil {
			return err
		}
		defer db.Close()
		return db.ApplyMigrations(ctx, true)
	},
}
