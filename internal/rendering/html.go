// Package rendering provides functionality to render HTML resumes from embedded templates.
package rendering

import (
	"embed"
	"strings"
	"text/template"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// TemplateID selects a resume template variant.
type TemplateID string

// Supported template variants
const (
	TemplateATS            TemplateID = "ats"
	TemplateATSCompact     TemplateID = "ats-compact"
	TemplateModernColored  TemplateID = "modern-colored"
	TemplateExecutiveSerif TemplateID = "executive-serif"
)

// TemplateInfo describes a template for pickers and API listings.
type TemplateInfo struct {
	ID          TemplateID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

var catalogue = []TemplateInfo{
	{ID: TemplateATS, Name: "ATS Simple (Recommended)", Description: "Single-column, text-first, recruiter/ATS friendly."},
	{ID: TemplateATSCompact, Name: "ATS Compact", Description: "Tighter spacing, clean header divider, still ATS friendly."},
	{ID: TemplateModernColored, Name: "Modern Colored", Description: "Modern look with subtle color accents."},
	{ID: TemplateExecutiveSerif, Name: "Executive Serif", Description: "Serif name header, bold rules, classic executive style."},
}

// parsed holds one compiled template per variant, keyed by id.
var parsed = mustParseTemplates()

// Templates returns the template catalogue in display order.
func Templates() []TemplateInfo {
	return append([]TemplateInfo(nil), catalogue...)
}

// ParseTemplateID maps a selector to a TemplateID. Unknown selectors fall back to the ATS template.
func ParseTemplateID(s string) TemplateID {
	id := TemplateID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := parsed[id]; ok {
		return id
	}
	return TemplateATS
}

// RenderATSHTML renders the plain single-column template.
func RenderATSHTML(cv types.CvRecord) string {
	return mustRender(TemplateATS, cv)
}

// RenderATSCompactHTML renders the compact template with section dividers.
func RenderATSCompactHTML(cv types.CvRecord) string {
	return mustRender(TemplateATSCompact, cv)
}

// RenderModernColoredHTML renders the accent-band template with skill chips.
func RenderModernColoredHTML(cv types.CvRecord) string {
	return mustRender(TemplateModernColored, cv)
}

// RenderExecutiveSerifHTML renders the serif template with a double rule under the name.
func RenderExecutiveSerifHTML(cv types.CvRecord) string {
	return mustRender(TemplateExecutiveSerif, cv)
}

// Render renders cv with the given template; unknown ids use the ATS template.
func Render(id TemplateID, cv types.CvRecord) string {
	return mustRender(ParseTemplateID(string(id)), cv)
}

// RenderHTML renders cv with the given template and reports template failures as errors.
func RenderHTML(id TemplateID, cv types.CvRecord) (string, error) {
	tmpl, ok := parsed[ParseTemplateID(string(id))]
	if !ok {
		return "", &TemplateError{Message: "template not registered: " + string(id)}
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, BuildContent(cv)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// mustRender panics only if an embedded template is broken.
func mustRender(id TemplateID, cv types.CvRecord) string {
	html, err := RenderHTML(id, cv)
	if err != nil {
		panic(err)
	}
	return html
}

func mustParseTemplates() map[TemplateID]*template.Template {
	out := make(map[TemplateID]*template.Template, len(catalogue))
	for _, info := range catalogue {
		name := "templates/" + string(info.ID) + ".html.tmpl"
		content, err := templateFiles.ReadFile(name)
		if err != nil {
			panic(&TemplateError{Message: "template file not found: " + name, Cause: err})
		}
		tmpl, err := template.New(string(info.ID)).Option("missingkey=error").Parse(string(content))
		if err != nil {
			panic(&TemplateError{Message: "failed to parse template " + name, Cause: err})
		}
		out[info.ID] = tmpl
	}
	return out
}
