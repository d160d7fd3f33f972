// Package export turns rendered resumes into PDFs and shares them.
package export

import "fmt"

// Export stages
const (
	StageRender = "render"
	StagePDF    = "pdf"
	StageShare  = "share"
)

// ExportError reports which stage of an export failed
type ExportError struct {
	Stage string
	Cause error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Cause)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
