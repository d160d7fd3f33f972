package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSharer_Share(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sharer := NewFileSharer(dir)

	result, err := sharer.Share(context.Background(), "jane-doe-ats.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "jane-doe-ats.pdf", result.Name)
	assert.Equal(t, filepath.Join(dir, "jane-doe-ats.pdf"), result.Location)
	assert.Equal(t, "PDF saved at: "+result.Location, result.Message)
	assert.Empty(t, result.URL)

	data, err := os.ReadFile(result.Location)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		id       rendering.TemplateID
		expected string
	}{
		{name: "simple", fullName: "Jane Doe", id: rendering.TemplateATS, expected: "jane-doe-ats.pdf"},
		{name: "punctuation", fullName: "  Dr. Jane  O'Doe ", id: rendering.TemplateModernColored, expected: "dr-jane-o-doe-modern-colored.pdf"},
		{name: "no name", fullName: "", id: rendering.TemplateExecutiveSerif, expected: "resume-executive-serif.pdf"},
		{name: "unknown template", fullName: "Jane", id: "fancy", expected: "jane-ats.pdf"},
		{name: "only symbols", fullName: "***", id: rendering.TemplateATSCompact, expected: "resume-ats-compact.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := types.CvRecord{Personal: types.PersonalInfo{FullName: tt.fullName}}
			assert.Equal(t, tt.expected, FileName(cv, tt.id))
		})
	}
}
