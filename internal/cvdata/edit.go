package cvdata

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
)

// Entry id prefixes
const (
	ExperiencePrefix = "exp"
	EducationPrefix  = "edu"
	ProjectPrefix    = "proj"
)

// NewEntryID returns a unique entry id such as "exp_3f1c...".
func NewEntryID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// AddExperience prepends a new experience with a generated id.
// Company name and job title are required.
func AddExperience(cv *types.CvRecord, e types.Experience) (types.Experience, error) {
	if strings.TrimSpace(e.CompanyName) == "" || strings.TrimSpace(e.JobTitle) == "" {
		return types.Experience{}, &MissingInfoError{Message: "Company Name and Job Title are required."}
	}
	e.ID = NewEntryID(ExperiencePrefix)
	cv.Experiences = append([]types.Experience{e}, cv.Experiences...)
	return e, nil
}

// UpdateExperience replaces the fields of the experience with the given id, keeping the id.
func UpdateExperience(cv *types.CvRecord, id string, e types.Experience) (types.Experience, error) {
	for i := range cv.Experiences {
		if cv.Experiences[i].ID == id {
			e.ID = id
			cv.Experiences[i] = e
			return e, nil
		}
	}
	return types.Experience{}, &NotFoundError{Kind: "experience", ID: id}
}

// RemoveExperience deletes the experience with the given id.
func RemoveExperience(cv *types.CvRecord, id string) error {
	for i := range cv.Experiences {
		if cv.Experiences[i].ID == id {
			cv.Experiences = append(cv.Experiences[:i:i], cv.Experiences[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "experience", ID: id}
}

// AddEducation prepends a new education entry. Institution and degree are required.
func AddEducation(cv *types.CvRecord, ed types.Education) (types.Education, error) {
	if strings.TrimSpace(ed.Institution) == "" || strings.TrimSpace(ed.Degree) == "" {
		return types.Education{}, &MissingInfoError{Message: "Institution and Degree are required."}
	}
	ed.ID = NewEntryID(EducationPrefix)
	cv.Education = append([]types.Education{ed}, cv.Education...)
	return ed, nil
}

// UpdateEducation replaces the fields of the education entry with the given id.
func UpdateEducation(cv *types.CvRecord, id string, ed types.Education) (types.Education, error) {
	for i := range cv.Education {
		if cv.Education[i].ID == id {
			ed.ID = id
			cv.Education[i] = ed
			return ed, nil
		}
	}
	return types.Education{}, &NotFoundError{Kind: "education", ID: id}
}

// RemoveEducation deletes the education entry with the given id.
func RemoveEducation(cv *types.CvRecord, id string) error {
	for i := range cv.Education {
		if cv.Education[i].ID == id {
			cv.Education = append(cv.Education[:i:i], cv.Education[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "education", ID: id}
}

// AddProject prepends a new project. Project name is required.
func AddProject(cv *types.CvRecord, p types.Project) (types.Project, error) {
	if strings.TrimSpace(p.ProjectName) == "" {
		return types.Project{}, &MissingInfoError{Message: "Project Name is required."}
	}
	p.ID = NewEntryID(ProjectPrefix)
	cv.Projects = append([]types.Project{p}, cv.Projects...)
	return p, nil
}

// UpdateProject replaces the fields of the project with the given id.
func UpdateProject(cv *types.CvRecord, id string, p types.Project) (types.Project, error) {
	for i := range cv.Projects {
		if cv.Projects[i].ID == id {
			p.ID = id
			cv.Projects[i] = p
			return p, nil
		}
	}
	return types.Project{}, &NotFoundError{Kind: "project", ID: id}
}

// RemoveProject deletes the project with the given id.
func RemoveProject(cv *types.CvRecord, id string) error {
	for i := range cv.Projects {
		if cv.Projects[i].ID == id {
			cv.Projects = append(cv.Projects[:i:i], cv.Projects[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "project", ID: id}
}

// AddSkill trims and prepends a skill. Uniqueness is case-insensitive.
func AddSkill(cv *types.CvRecord, skill string) (string, error) {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return "", &MissingInfoError{Message: "Skill is required."}
	}
	for _, s := range cv.Skills {
		if strings.EqualFold(s, trimmed) {
			return "", &DuplicateSkillError{Skill: trimmed}
		}
	}
	cv.Skills = append([]string{trimmed}, cv.Skills...)
	return trimmed, nil
}

// RemoveSkill deletes every skill exactly equal to skill.
func RemoveSkill(cv *types.CvRecord, skill string) error {
	kept := make([]string, 0, len(cv.Skills))
	for _, s := range cv.Skills {
		if s != skill {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(cv.Skills) {
		return &NotFoundError{Kind: "skill", ID: skill}
	}
	cv.Skills = kept
	return nil
}
