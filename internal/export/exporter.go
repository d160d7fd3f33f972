package export

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Exporter runs render, print and share for a CV
type Exporter struct {
	renderer PDFRenderer
	sharer   Sharer
	logger   logrus.FieldLogger

	inflight singleflight.Group
}

// NewExporter creates an Exporter
func NewExporter(renderer PDFRenderer, sharer Sharer, logger logrus.FieldLogger) *Exporter {
	return &Exporter{renderer: renderer, sharer: sharer, logger: logger}
}

// RenderPDF renders cv with the template and prints it
func (e *Exporter) RenderPDF(ctx context.Context, cv types.CvRecord, id rendering.TemplateID) ([]byte, error) {
	html, err := renderHTML(cv, id)
	if err != nil {
		return nil, err
	}
	return e.print(ctx, html)
}

func renderHTML(cv types.CvRecord, id rendering.TemplateID) (string, error) {
	html, err := rendering.RenderHTML(id, cv)
	if err != nil {
		return "", &ExportError{Stage: StageRender, Cause: err}
	}
	return html, nil
}

func (e *Exporter) print(ctx context.Context, html string) ([]byte, error) {
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, &ExportError{Stage: StagePDF, Cause: err}
	}
	return pdf, nil
}

// Export renders, prints and shares cv. Concurrent exports of the same
// document for the same owner and template share a single run. The shared
// run does not stop when one caller's context ends; a caller whose context
// ends stops waiting and gets ctx.Err().
func (e *Exporter) Export(ctx context.Context, owner string, cv types.CvRecord, id rendering.TemplateID) (ShareResult, error) {
	id = rendering.ParseTemplateID(string(id))
	html, err := renderHTML(cv, id)
	if err != nil {
		return ShareResult{}, e.failed(owner, id, err)
	}

	digest := sha256.Sum256([]byte(html))
	key := owner + "/" + string(id) + "/" + hex.EncodeToString(digest[:])
	name := FileName(cv, id)
	runCtx := context.WithoutCancel(ctx)

	ch := e.inflight.DoChan(key, func() (interface{}, error) {
		pdf, err := e.print(runCtx, html)
		if err != nil {
			return ShareResult{}, err
		}

		result, err := e.sharer.Share(runCtx, name, pdf)
		if err != nil {
			return ShareResult{}, &ExportError{Stage: StageShare, Cause: err}
		}
		return result, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return ShareResult{}, e.failed(owner, id, ctx.Err())
	}
	if res.Err != nil {
		return ShareResult{}, e.failed(owner, id, res.Err)
	}

	result := res.Val.(ShareResult)
	e.logger.WithFields(logrus.Fields{
		"owner":    owner,
		"template": id,
		"location": result.Location,
		"shared":   res.Shared,
	}).Info("Export completed")
	return result, nil
}

func (e *Exporter) failed(owner string, id rendering.TemplateID, err error) error {
	e.logger.WithFields(logrus.Fields{
		"owner":    owner,
		"template": id,
		"error":    err.Error(),
	}).Warn("Export failed")
	return err
}
