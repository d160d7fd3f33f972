package summary

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Limits applied to the prompt payload
const (
	maxSkills            = 12
	maxExperiences       = 4
	maxExperienceDescLen = 400
	maxProjects          = 3
	maxProjectDescLen    = 300
	maxEducation         = 2
)

// CompactInput is the trimmed CV sent to the model
type CompactInput struct {
	Personal    CompactPersonal     `json:"personal"`
	TargetRole  string              `json:"targetRole"`
	Skills      []string            `json:"skills"`
	Experiences []CompactExperience `json:"experiences"`
	Projects    []CompactProject    `json:"projects"`
	Education   []types.Education   `json:"education"`
}

// CompactPersonal keeps only the non-contact personal fields
type CompactPersonal struct {
	FullName string `json:"fullName"`
	Location string `json:"location"`
}

// CompactExperience is an experience entry without its id
type CompactExperience struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// CompactProject is a project entry without its id
type CompactProject struct {
	ProjectName string `json:"projectName"`
	TechStack   string `json:"techStack"`
	Description string `json:"description"`
}

// Compact builds the prompt payload from cv. Descriptions are truncated by rune count.
func Compact(cv types.CvRecord) CompactInput {
	out := CompactInput{
		Personal: CompactPersonal{
			FullName: cv.Personal.FullName,
			Location: cv.Personal.Location,
		},
		TargetRole:  cv.TargetRole,
		Skills:      append([]string{}, head(cv.Skills, maxSkills)...),
		Experiences: make([]CompactExperience, 0, maxExperiences),
		Projects:    make([]CompactProject, 0, maxProjects),
		Education:   append([]types.Education{}, head(cv.Education, maxEducation)...),
	}

	for _, e := range head(cv.Experiences, maxExperiences) {
		out.Experiences = append(out.Experiences, CompactExperience{
			CompanyName: e.CompanyName,
			JobTitle:    e.JobTitle,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: truncateRunes(e.Description, maxExperienceDescLen),
		})
	}
	for _, p := range head(cv.Projects, maxProjects) {
		out.Projects = append(out.Projects, CompactProject{
			ProjectName: p.ProjectName,
			TechStack:   p.TechStack,
			Description: truncateRunes(p.Description, maxProjectDescLen),
		})
	}

	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
