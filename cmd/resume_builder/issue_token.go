package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenEmail  string
	tokenName   string
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue a development identity token",
	Long: `Sign an HS256 identity token with JWT_SECRET for local testing of the
per-user storage scoping. Send it as "Authorization: Bearer <token>".`,
	Args: cobra.NoArgs,
	RunE: runIssueToken,
}

func init() {
	issueTokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User id (required)")
	issueTokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	issueTokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name claim")
	_ = issueTokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if errors.Is(err, config.ErrJWTDisabled) {
		return fmt.Errorf("JWT_SECRET must be set to issue tokens")
	}
	if err != nil {
		return err
	}

	token, err := identity.NewJWTVerifier(jwtConfig).Issue(identity.Identity{
		UserID:      tokenUserID,
		Email:       tokenEmail,
		DisplayName: tokenName,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
