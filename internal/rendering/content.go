package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

const (
	contactSeparator = " • "
	skillsSeparator  = ", "
	dateSeparator    = " - "
)

// Content is the escaped, template-ready view of a CvRecord shared by all
// template variants. Every string field is already HTML-escaped.
type Content struct {
	Name        string
	TargetRole  string
	Summary     string
	ContactLine string
	SkillsLine  string
	Skills      []string
	Experiences []ExperienceFragment
	Education   []EducationFragment
	Projects    []ProjectFragment
}

// ExperienceFragment is one rendered experience entry.
type ExperienceFragment struct {
	Title       string
	Company     string
	Dates       string
	Description string
}

// EducationFragment is one rendered education entry.
type EducationFragment struct {
	Degree      string
	Institution string
	Year        string
}

// ProjectFragment is one rendered project entry.
type ProjectFragment struct {
	Name        string
	TechStack   string
	Description string
}

// BuildContent extracts and escapes the content shown by every template.
func BuildContent(cv types.CvRecord) Content {
	return Content{
		Name:        EscapeHTML(cv.Personal.FullName),
		TargetRole:  EscapeHTML(cv.TargetRole),
		Summary:     EscapeHTML(strings.TrimSpace(cv.Summary())),
		ContactLine: EscapeHTML(contactLine(cv.Personal)),
		SkillsLine:  EscapeHTML(strings.Join(cv.Skills, skillsSeparator)),
		Skills:      escapeAll(cv.Skills),
		Experiences: experienceFragments(cv.Experiences),
		Education:   educationFragments(cv.Education),
		Projects:    projectFragments(cv.Projects),
	}
}

// contactLine joins the non-blank contact fields, trimmed, with a bullet separator.
func contactLine(p types.PersonalInfo) string {
	candidates := []string{p.Email, p.Phone, p.Location, p.LinkedIn, p.GitHub}
	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, contactSeparator)
}

// dateRange joins start and end, omitting whichever side is empty.
func dateRange(start, end string) string {
	parts := make([]string, 0, 2)
	if start != "" {
		parts = append(parts, start)
	}
	if end != "" {
		parts = append(parts, end)
	}
	return strings.Join(parts, dateSeparator)
}

func experienceFragments(experiences []types.Experience) []ExperienceFragment {
	out := make([]ExperienceFragment, 0, len(experiences))
	for _, e := range experiences {
		out = append(out, ExperienceFragment{
			Title:       EscapeHTML(e.JobTitle),
			Company:     EscapeHTML(e.CompanyName),
			Dates:       EscapeHTML(dateRange(e.StartDate, e.EndDate)),
			Description: EscapeHTML(e.Description),
		})
	}
	return out
}

func educationFragments(education []types.Education) []EducationFragment {
	out := make([]EducationFragment, 0, len(education))
	for _, ed := range education {
		out = append(out, EducationFragment{
			Degree:      EscapeHTML(ed.Degree),
			Institution: EscapeHTML(ed.Institution),
			Year:        EscapeHTML(ed.Year),
		})
	}
	return out
}

func projectFragments(projects []types.Project) []ProjectFragment {
	out := make([]ProjectFragment, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectFragment{
			Name:        EscapeHTML(p.ProjectName),
			TechStack:   EscapeHTML(p.TechStack),
			Description: EscapeHTML(p.Description),
		})
	}
	return out
}

func escapeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, EscapeHTML(v))
	}
	return out
}
