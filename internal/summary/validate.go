package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
)

// Input is the subset of a CV checked before generating a summary
type Input struct {
	FullName   string `validate:"required"`
	Email      string `validate:"required"`
	Phone      string `validate:"required"`
	Location   string `validate:"required"`
	TargetRole string `validate:"required"`

	Experiences int
	Education   int
	Skills      int
	Projects    int
}

// contentField names the struct-level rule requiring at least one entry
const contentField = "Content"

// fieldLabels maps struct fields to user-facing names, in display order
var fieldLabels = []struct {
	field string
	label string
}{
	{"FullName", "Full Name"},
	{"Email", "Email"},
	{"Phone", "Phone"},
	{"Location", "Location"},
	{"TargetRole", "Target Role"},
	{contentField, "Experience/Education/Skill/Project"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(requireContent, Input{})
	return v
}

// requireContent reports when the CV has no experience, education, skill or project
func requireContent(sl validator.StructLevel) {
	in := sl.Current().Interface().(Input)
	if in.Experiences+in.Education+in.Skills+in.Projects == 0 {
		sl.ReportError(in.Experiences, contentField, contentField, "required", "")
	}
}

// NewInput extracts the checked fields from cv. Strings are trimmed.
func NewInput(cv types.CvRecord) Input {
	return Input{
		FullName:    strings.TrimSpace(cv.Personal.FullName),
		Email:       strings.TrimSpace(cv.Personal.Email),
		Phone:       strings.TrimSpace(cv.Personal.Phone),
		Location:    strings.TrimSpace(cv.Personal.Location),
		TargetRole:  strings.TrimSpace(cv.TargetRole),
		Experiences: len(cv.Experiences),
		Education:   len(cv.Education),
		Skills:      len(cv.Skills),
		Projects:    len(cv.Projects),
	}
}

// Validate returns a *MissingFieldsError listing every missing requirement,
// or nil when the CV can be summarized.
func Validate(cv types.CvRecord) error {
	err := validate.Struct(NewInput(cv))
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate summary input: %w", err)
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = true
	}

	missing := &MissingFieldsError{}
	for _, fl := range fieldLabels {
		if failed[fl.field] {
			missing.Fields = append(missing.Fields, fl.label)
		}
	}
	return missing
}
