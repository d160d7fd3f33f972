package summary

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/types"
)

// SystemPrompt returns the system instruction for summary generation
func SystemPrompt() (string, error) {
	prompt, err := prompts.Summary()
	if err != nil {
		return "", err
	}
	return prompt.System, nil
}

// BuildPrompt renders the user prompt with the compact CV payload
func BuildPrompt(cv types.CvRecord) (string, error) {
	prompt, err := prompts.Summary()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(Compact(cv))
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary payload: %w", err)
	}
	return prompt.User(prompts.SummaryData{CvJSON: string(payload)})
}
