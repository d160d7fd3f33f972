package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <cv.json>",
	Short: "Check a stored CV document against the CV record schema",
	Long: `Validate a CV document against the embedded JSON schema. Stored documents
are always normalized on load, so a failing report is informational: it lists
what normalization would discard.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := schemas.ValidateCvFile(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid CV record\n", args[0])
	return nil
}
