package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// templateHeader names the template actually used after fallback
const templateHeader = "X-Resume-Template"

// handleListTemplates returns the template catalogue
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Templates())
}

// loadForRender loads the caller's CV and resolves the ?template= selector
func (s *Server) loadForRender(w http.ResponseWriter, r *http.Request) (types.CvRecord, rendering.TemplateID, bool) {
	cv, ok := s.loadCV(w, r)
	if !ok {
		return types.CvRecord{}, "", false
	}
	id := rendering.ParseTemplateID(r.URL.Query().Get("template"))
	w.Header().Set(templateHeader, string(id))
	return cv, id, true
}

// handleResumeHTML renders the caller's CV as a standalone HTML document
func (s *Server) handleResumeHTML(w http.ResponseWriter, r *http.Request) {
	cv, id, ok := s.loadForRender(w, r)
	if !ok {
		return
	}

	html, err := rendering.RenderHTML(id, cv)
	if err != nil {
		s.handleError(w, r, err, "Failed to render resume")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// handleResumeText renders the caller's CV as plain text
func (s *Server) handleResumeText(w http.ResponseWriter, r *http.Request) {
	cv, id, ok := s.loadForRender(w, r)
	if !ok {
		return
	}

	html, err := rendering.RenderHTML(id, cv)
	if err != nil {
		s.handleError(w, r, err, "Failed to render resume")
		return
	}
	text, err := rendering.PlainText(html)
	if err != nil {
		s.handleError(w, r, err, "Failed to render resume")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text + "\n"))
}

// handleResumePDF streams the caller's CV as a PDF attachment
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "PDF export"}, "PDF export unavailable")
		return
	}
	cv, id, ok := s.loadForRender(w, r)
	if !ok {
		return
	}

	pdf, err := s.exporter.RenderPDF(r.Context(), cv, id)
	s.metrics.exports.WithLabelValues("download", outcome(err)).Inc()
	if err != nil {
		s.handleError(w, r, err, "Failed to export PDF")
		return
	}

	w.Header().Set("Content-Type", export.PDFContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(cv, id)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleShareResume exports the caller's CV and returns where it was delivered
func (s *Server) handleShareResume(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "PDF export"}, "PDF export unavailable")
		return
	}
	cv, id, ok := s.loadForRender(w, r)
	if !ok {
		return
	}

	result, err := s.exporter.Export(r.Context(), callerUID(r), cv, id)
	s.metrics.exports.WithLabelValues("share", outcome(err)).Inc()
	if err != nil {
		s.handleError(w, r, err, "Failed to export PDF")
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}
