package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/studygroup-backend/internal/app"
	"github.com/yungbote/studygroup-backend/internal/data/db"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	"github.com/yungbote/studygroup-backend/internal/data/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users and catalog activities from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()
		doc, err := seed.Parse(f)
		if err != nil {
			return err
		}

		cfg := app.LoadConfig(log)
		theDB, err := app.OpenDatabase(log, cfg)
		if err != nil {
			return err
		}
		if err := db.AutoMigrateAll(theDB); err != nil {
			return err
		}
		seeder := seed.NewSeeder(theDB, repos.NewUserRepo(theDB, log), repos.NewCatalogRepo(theDB, log), log)
		res, err := seeder.Apply(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d skipped; activities: %d created, %d skipped\n",
			res.UsersCreated, res.UsersSkipped, res.ActivitiesCreated, res.ActivitiesSkipped)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "seed YAML file")
	_ = seedCmd.MarkFlagRequired("file")
}
