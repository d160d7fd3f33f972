package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// PDFContentType is the MIME type of exported documents
const PDFContentType = "application/pdf"

// ShareResult describes where an exported PDF ended up
type ShareResult struct {
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	URL       string     `json:"url,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Message   string     `json:"message"`
}

// Sharer hands a finished PDF to its destination
type Sharer interface {
	Share(ctx context.Context, name string, pdf []byte) (ShareResult, error)
}

// FileSharer saves PDFs into a local directory. It is the fallback when no
// sharing backend is available.
type FileSharer struct {
	Dir string
}

// NewFileSharer creates a FileSharer writing into dir
func NewFileSharer(dir string) *FileSharer {
	return &FileSharer{Dir: dir}
}

// Share writes pdf to Dir/name
func (s *FileSharer) Share(_ context.Context, name string, pdf []byte) (ShareResult, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return ShareResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return ShareResult{}, fmt.Errorf("failed to write pdf: %w", err)
	}

	return ShareResult{
		Name:     name,
		Location: path,
		Message:  "PDF saved at: " + path,
	}, nil
}

// FileName builds a download name from the candidate name and template,
// e.g. "jane-doe-ats.pdf". Records without a name use "resume".
func FileName(cv types.CvRecord, id rendering.TemplateID) string {
	slug := slugify(cv.Personal.FullName)
	if slug == "" {
		slug = "resume"
	}
	return fmt.Sprintf("%s-%s.pdf", slug, rendering.ParseTemplateID(string(id)))
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
