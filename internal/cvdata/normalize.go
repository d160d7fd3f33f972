package cvdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/types"
)

// StorageKeyPrefix is the versioned prefix for per-user CV documents.
const StorageKeyPrefix = "cvData:v1:"

// GuestUID is used in storage keys when no identity is known.
const GuestUID = "guest"

// StorageKey returns the key-value store key for a user id.
func StorageKey(uid string) string {
	if uid == "" {
		uid = GuestUID
	}
	return StorageKeyPrefix + uid
}

// Normalize coerces an arbitrary decoded JSON value into a CvRecord.
// It never fails: absent or wrongly-typed fields fall back to their zero value,
// and experience, education, and project entries without an id are dropped.
func Normalize(raw any) types.CvRecord {
	obj := asObject(raw)
	personal := asObject(obj["personal"])

	cv := types.CvRecord{
		Personal: types.PersonalInfo{
			FullName: asString(personal["fullName"]),
			Email:    asString(personal["email"]),
			Phone:    asString(personal["phone"]),
			Location: asString(personal["location"]),
			LinkedIn: asString(personal["linkedIn"]),
			GitHub:   asString(personal["github"]),
		},
		TargetRole:  asString(obj["targetRole"]),
		Experiences: normalizeExperiences(obj["experiences"]),
		Education:   normalizeEducation(obj["education"]),
		Skills:      asStringSlice(obj["skills"]),
		Projects:    normalizeProjects(obj["projects"]),
	}

	if s, ok := obj["professionalSummary"].(string); ok {
		cv.ProfessionalSummary = &s
	}
	if s, ok := obj["updatedAt"].(string); ok {
		cv.UpdatedAt = &s
	}

	return cv
}

// NormalizeJSON decodes data and normalizes it. Empty or corrupt input
// yields an empty record.
func NormalizeJSON(data []byte) types.CvRecord {
	var raw any
	if len(data) == 0 || json.Unmarshal(data, &raw) != nil {
		return Normalize(nil)
	}
	return Normalize(raw)
}

// LoadCvRecord reads a CV document from a JSON file and normalizes it.
// Only I/O failures are reported; malformed content is absorbed.
func LoadCvRecord(path string) (types.CvRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.CvRecord{}, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return NormalizeJSON(content), nil
}

func normalizeExperiences(raw any) []types.Experience {
	out := make([]types.Experience, 0)
	for _, item := range asArray(raw) {
		x, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := types.Experience{
			ID:          asString(x["id"]),
			CompanyName: asString(x["companyName"]),
			JobTitle:    asString(x["jobTitle"]),
			StartDate:   asString(x["startDate"]),
			EndDate:     asString(x["endDate"]),
			Description: asString(x["description"]),
		}
		if e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normalizeEducation(raw any) []types.Education {
	out := make([]types.Education, 0)
	for _, item := range asArray(raw) {
		x, ok := item.(map[string]any)
		if !ok {
			continue
		}
		e := types.Education{
			ID:          asString(x["id"]),
			Institution: asString(x["institution"]),
			Degree:      asString(x["degree"]),
			Year:        asString(x["year"]),
		}
		if e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normalizeProjects(raw any) []types.Project {
	out := make([]types.Project, 0)
	for _, item := range asArray(raw) {
		x, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := types.Project{
			ID:          asString(x["id"]),
			ProjectName: asString(x["projectName"]),
			Description: asString(x["description"]),
			TechStack:   asString(x["techStack"]),
		}
		if p.ID == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// asObject returns raw as an object, or an empty object for anything else.
func asObject(raw any) map[string]any {
	if m, ok := raw.(map[string]any); ok && m != nil {
		return m
	}
	return map[string]any{}
}

func asArray(raw any) []any {
	if a, ok := raw.([]any); ok {
		return a
	}
	return nil
}

func asString(raw any) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return ""
}

// asStringSlice keeps only the string elements of an array; other elements are dropped, not coerced.
func asStringSlice(raw any) []string {
	out := make([]string, 0)
	for _, item := range asArray(raw) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
