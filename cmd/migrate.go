package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/studygroup-backend/internal/app"
	"github.com/yungbote/studygroup-backend/internal/data/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig(log)
		theDB, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		if err := db.AutoMigrateAll(theDB); err != nil {
			return err
		}
		log.Info("migrations applied", "driver", cfg.DBDriver)
		return nil
	},
}
