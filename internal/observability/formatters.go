// Package observability provides structured logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// PrintCvRecord outputs a human-readable overview of a CV
func (p *Printer) PrintCvRecord(cv *types.CvRecord) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", cv.Personal.FullName))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", cv.TargetRole))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", cv.Personal.Email))
	if cv.UpdatedAt != nil {
		sb.WriteString(fmt.Sprintf("Updated:  %s\n", *cv.UpdatedAt))
	}
	sb.WriteString("\n")

	if len(cv.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(cv.Skills), strings.Join(cv.Skills, ", ")))
	}

	if len(cv.Experiences) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(cv.Experiences)))
		count := min(len(cv.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := cv.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", e.JobTitle, e.CompanyName))
		}
		if len(cv.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Experiences)-maxItemsToShow))
		}
	}

	sb.WriteString(fmt.Sprintf("Education: %d  Projects: %d\n", len(cv.Education), len(cv.Projects)))

	switch {
	case cv.ProfessionalSummary == nil:
		sb.WriteString("Summary:  (not generated)")
	case strings.TrimSpace(*cv.ProfessionalSummary) == "":
		sb.WriteString("Summary:  (cleared)")
	default:
		sb.WriteString(fmt.Sprintf("Summary:  %d words", len(strings.Fields(*cv.ProfessionalSummary))))
	}

	p.printBox("CV RECORD", sb.String())
}

// PrintSummary outputs a generated professional summary, wrapped to the box width
func (p *Printer) PrintSummary(summary string) {
	if summary == "" {
		return
	}
	p.printBox("PROFESSIONAL SUMMARY", wrap(summary, boxWidth-4))
}

// PrintMissingFields outputs what must be filled in before generating a summary
func (p *Printer) PrintMissingFields(fields []string) {
	if len(fields) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString("Fill in before generating:\n\n")
	for i, f := range fields {
		sb.WriteString(fmt.Sprintf("  ✗ %s", f))
		if i < len(fields)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("SUMMARY NOT READY", sb.String())
}

// PrintRendered outputs the files written by a render run
func (p *Printer) PrintRendered(paths map[string]string) {
	if len(paths) == 0 {
		return
	}

	var sb strings.Builder
	ids := make([]string, 0, len(paths))
	for id := range paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i, id := range ids {
		sb.WriteString(fmt.Sprintf("%-16s %s", id, paths[id]))
		if i < len(ids)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("RENDERED TEMPLATES", sb.String())
}

// PrintShareResult outputs where an exported PDF was delivered
func (p *Printer) PrintShareResult(result *export.ShareResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", result.Name))
	sb.WriteString(fmt.Sprintf("Location: %s", result.Location))
	if result.URL != "" {
		sb.WriteString(fmt.Sprintf("\nURL:      %s", result.URL))
	}
	if result.ExpiresAt != nil {
		sb.WriteString(fmt.Sprintf("\nExpires:  %s", result.ExpiresAt.Format("2006-01-02 15:04 MST")))
	}
	p.printBox("PDF EXPORTED", sb.String())
}

// wrap breaks text into lines of at most width runes on word boundaries
func wrap(text string, width int) string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
