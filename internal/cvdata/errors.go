// Package cvdata normalizes persisted resume JSON and applies field-level edits to a CvRecord.
package cvdata

import "fmt"

// LoadError represents an error reading a CV document from disk
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// MissingInfoError is returned when an entry is added without its required fields
type MissingInfoError struct {
	Message string
}

func (e *MissingInfoError) Error() string {
	return fmt.Sprintf("missing info: %s", e.Message)
}

// DuplicateSkillError is returned when a skill already exists (case-insensitive)
type DuplicateSkillError struct {
	Skill string
}

func (e *DuplicateSkillError) Error() string {
	return fmt.Sprintf("duplicate skill: %q is already added", e.Skill)
}

// NotFoundError is returned when an entry id does not exist in the record
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
