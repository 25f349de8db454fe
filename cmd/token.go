package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/studygroup-backend/internal/app"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a user (local development)",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("--user: %w", err)
		}
		a, err := app.New(cmd.Context(), log)
		if err != nil {
			return err
		}
		defer a.Close()

		token, err := a.Services.Auth.IssueToken(cmd.Context(), userID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id")
	_ = tokenCmd.MarkFlagRequired("user")
}
