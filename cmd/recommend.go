package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/studygroup-backend/internal/app"
	"github.com/yungbote/studygroup-backend/internal/services"
)

var recommendUser string

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Regenerate and print a user's recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(recommendUser)
		if err != nil {
			return fmt.Errorf("--user: %w", err)
		}
		a, err := app.New(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer a.Close()

		recs, err := a.Services.Recommendation.Generate(cmd.Context(), userID, services.TriggerManual)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendUser, "user", "", "user id")
	_ = recommendCmd.MarkFlagRequired("user")
}
