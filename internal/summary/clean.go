package summary

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	// leadingMarkers matches bullets, list numbers and heading marks before the text
	leadingMarkers = regexp.MustCompile(`^[-*•#\d.\s]+`)
)

// Clean normalizes model output into a single paragraph. It returns
// *EmptySummaryError when nothing usable remains.
func Clean(text string) (string, error) {
	text = llm.StripCodeFence(text)
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = leadingMarkers.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &EmptySummaryError{}
	}
	return text, nil
}
