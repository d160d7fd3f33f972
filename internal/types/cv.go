// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

// PersonalInfo holds the contact block shown at the top of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedIn"`
	GitHub   string `json:"github"`
}

// Experience represents a single job entry.
type Experience struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Education represents a degree or course of study.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// Project represents a portfolio project.
type Project struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectName"`
	Description string `json:"description"`
	TechStack   string `json:"techStack"`
}

// CvRecord is the normalized, fully-typed resume document.
// Slice order is display order; new entries are prepended.
type CvRecord struct {
	Personal PersonalInfo `json:"personal"`
	// ProfessionalSummary is nil when the summary was never generated or edited.
	ProfessionalSummary *string      `json:"professionalSummary,omitempty"`
	TargetRole          string       `json:"targetRole"`
	Experiences         []Experience `json:"experiences"`
	Education           []Education  `json:"education"`
	Skills              []string     `json:"skills"`
	Projects            []Project    `json:"projects"`
	// UpdatedAt is an ISO-8601 timestamp stamped on every save.
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

// Summary returns the professional summary or the empty string when unset.
func (cv CvRecord) Summary() string {
	if cv.ProfessionalSummary == nil {
		return ""
	}
	return *cv.ProfessionalSummary
}

// HasContent reports whether the record has at least one experience,
// education entry, skill, or project.
func (cv CvRecord) HasContent() bool {
	return len(cv.Experiences) > 0 || len(cv.Education) > 0 || len(cv.Skills) > 0 || len(cv.Projects) > 0
}

// Clone returns a deep copy of the record.
func (cv CvRecord) Clone() CvRecord {
	out := cv
	out.Experiences = append([]Experience{}, cv.Experiences...)
	out.Education = append([]Education{}, cv.Education...)
	out.Skills = append([]string{}, cv.Skills...)
	out.Projects = append([]Project{}, cv.Projects...)
	if cv.ProfessionalSummary != nil {
		s := *cv.ProfessionalSummary
		out.ProfessionalSummary = &s
	}
	if cv.UpdatedAt != nil {
		s := *cv.UpdatedAt
		out.UpdatedAt = &s
	}
	return out
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
