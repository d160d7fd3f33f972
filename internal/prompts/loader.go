// Package prompts holds the LLM prompt texts, embedded at compile time.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed summary.json
var summaryFile []byte

// SummaryData is the input of the professional summary prompt
type SummaryData struct {
	// CvJSON is the compact CV payload, inserted verbatim
	CvJSON string
}

// SummaryPrompt is the parsed professional summary prompt
type SummaryPrompt struct {
	System string
	user   *template.Template
}

var loadSummary = sync.OnceValues(func() (*SummaryPrompt, error) {
	return ParseSummary(summaryFile)
})

// Summary returns the embedded summary prompt, parsed once
func Summary() (*SummaryPrompt, error) {
	return loadSummary()
}

// ParseSummary parses a summary prompt file with "system" and
// "professional-summary" entries.
func ParseSummary(data []byte) (*SummaryPrompt, error) {
	var file struct {
		System string `json:"system"`
		User   string `json:"professional-summary"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse summary prompt: %w", err)
	}
	if strings.TrimSpace(file.System) == "" || strings.TrimSpace(file.User) == "" {
		return nil, fmt.Errorf("summary prompt needs both system and professional-summary entries")
	}

	user, err := template.New("professional-summary").Parse(file.User)
	if err != nil {
		return nil, fmt.Errorf("failed to parse professional-summary template: %w", err)
	}
	return &SummaryPrompt{System: file.System, user: user}, nil
}

// User renders the user prompt for data
func (p *SummaryPrompt) User(data SummaryData) (string, error) {
	var b strings.Builder
	if err := p.user.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render summary prompt: %w", err)
	}
	return b.String(), nil
}
