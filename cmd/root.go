package main

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/studygroup-backend/internal/app"
	"github.com/yungbote/studygroup-backend/internal/pkg/logger"
)

var log *logger.Logger

var rootCmd = &cobra.Command{
	Use:           "studygroup",
	Short:         "Study group activity tracking and recommendation backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := app.NewLogger()
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(recommendCmd)
}
