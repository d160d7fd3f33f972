// Package summary generates an ATS-friendly professional summary for a CV with an LLM.
package summary

import (
	"fmt"
	"strings"
)

// GateMessage is shown when a CV is not complete enough to summarize
const GateMessage = "Fill Full Name, Email, Phone, Location, Target Role, and add at least one Experience/Education/Skill/Project before generating."

// MissingFieldsError is returned before any network call when required CV data is missing
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s (missing: %s)", GateMessage, strings.Join(e.Fields, ", "))
}

// EmptySummaryError is returned when the model output is empty after cleaning
type EmptySummaryError struct{}

func (e *EmptySummaryError) Error() string {
	return "AI returned empty summary"
}
