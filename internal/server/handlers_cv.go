package server

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/cvdata"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes bounds request bodies; a full CV is a few kilobytes
const maxBodyBytes = 1 << 20

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// SkillRequest is the body of POST /cv/skills
type SkillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

// TargetRoleRequest is the body of PUT /cv/target-role. An empty string clears the role.
type TargetRoleRequest struct {
	TargetRole *string `json:"targetRole" validate:"required"`
}

// SummaryRequest is the body of PUT /cv/summary. An empty string clears the summary.
type SummaryRequest struct {
	ProfessionalSummary *string `json:"professionalSummary" validate:"required"`
}

// AutosaveResponse is returned when an autosave is scheduled
type AutosaveResponse struct {
	Status string `json:"status"`
}

// decodeJSON reads the request body into dst and runs struct validation when dst is a struct
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if v := reflect.ValueOf(dst); v.Kind() == reflect.Pointer && v.Elem().Kind() == reflect.Struct {
		if err := requestValidator.Struct(dst); err != nil {
			return validationFromTags(err)
		}
	}
	return nil
}

// callerUID returns the storage uid of the request identity
func callerUID(r *http.Request) string {
	return identity.FromContext(r.Context()).StorageUID()
}

// loadCV writes the caller's pending autosave, then loads the stored record.
// It writes the error response itself and reports false on failure.
func (s *Server) loadCV(w http.ResponseWriter, r *http.Request) (types.CvRecord, bool) {
	uid := callerUID(r)
	s.savers.Flush(uid)

	cv, err := s.repo.Load(r.Context(), uid)
	if err != nil {
		s.handleError(w, r, err, "Failed to load CV")
		return types.CvRecord{}, false
	}
	return cv, true
}

// updateCV loads the caller's record, applies edit and saves the result.
// The saved record is written with status on success.
func (s *Server) updateCV(w http.ResponseWriter, r *http.Request, status int, edit func(cv *types.CvRecord) error) {
	cv, ok := s.loadCV(w, r)
	if !ok {
		return
	}
	if err := edit(&cv); err != nil {
		s.handleError(w, r, err, "Failed to update CV")
		return
	}

	saved, err := s.repo.Save(r.Context(), callerUID(r), cv)
	if err != nil {
		s.handleError(w, r, err, "Failed to save CV")
		return
	}
	s.jsonResponse(w, status, saved)
}

// handleGetCV returns the caller's normalized record
func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	cv, ok := s.loadCV(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, cv)
}

// handlePutCV normalizes an arbitrary JSON document and saves it immediately
func (s *Server) handlePutCV(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := decodeJSON(w, r, &raw); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}

	uid := callerUID(r)
	// A pending autosave holds an older snapshot
	s.savers.For(uid).Stop()

	saved, err := s.repo.Save(r.Context(), uid, cvdata.Normalize(raw))
	if err != nil {
		s.handleError(w, r, err, "Failed to save CV")
		return
	}
	s.jsonResponse(w, http.StatusOK, saved)
}

// handleAutosave normalizes the body and hands it to the caller's debounced saver
func (s *Server) handleAutosave(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := decodeJSON(w, r, &raw); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}

	s.savers.For(callerUID(r)).Update(cvdata.Normalize(raw))
	s.metrics.autosaves.Inc()
	s.jsonResponse(w, http.StatusAccepted, AutosaveResponse{Status: "scheduled"})
}

// handlePutPersonal replaces the contact block
func (s *Server) handlePutPersonal(w http.ResponseWriter, r *http.Request) {
	var req types.PersonalInfo
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		cv.Personal = req
		return nil
	})
}

// handlePutTargetRole sets or clears the target role
func (s *Server) handlePutTargetRole(w http.ResponseWriter, r *http.Request) {
	var req TargetRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		cv.TargetRole = *req.TargetRole
		return nil
	})
}

// handlePutSummary stores a hand-edited summary; an empty string clears it
func (s *Server) handlePutSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		cv.ProfessionalSummary = types.StringPtr(*req.ProfessionalSummary)
		return nil
	})
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusCreated, func(cv *types.CvRecord) error {
		_, err := cvdata.AddSkill(cv, req.Skill)
		return err
	})
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	skill := r.PathValue("skill")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		return cvdata.RemoveSkill(cv, skill)
	})
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req types.Experience
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusCreated, func(cv *types.CvRecord) error {
		_, err := cvdata.AddExperience(cv, req)
		return err
	})
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	var req types.Experience
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		_, err := cvdata.UpdateExperience(cv, id, req)
		return err
	})
}

func (s *Server) handleRemoveExperience(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		return cvdata.RemoveExperience(cv, id)
	})
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	var req types.Education
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusCreated, func(cv *types.CvRecord) error {
		_, err := cvdata.AddEducation(cv, req)
		return err
	})
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req types.Education
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		_, err := cvdata.UpdateEducation(cv, id, req)
		return err
	})
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		return cvdata.RemoveEducation(cv, id)
	})
}

func (s *Server) handleAddProject(w http.ResponseWriter, r *http.Request) {
	var req types.Project
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	s.updateCV(w, r, http.StatusCreated, func(cv *types.CvRecord) error {
		_, err := cvdata.AddProject(cv, req)
		return err
	})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req types.Project
	if err := decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err, "Invalid request body")
		return
	}
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		_, err := cvdata.UpdateProject(cv, id, req)
		return err
	})
}

func (s *Server) handleRemoveProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.updateCV(w, r, http.StatusOK, func(cv *types.CvRecord) error {
		return cvdata.RemoveProject(cv, id)
	})
}
