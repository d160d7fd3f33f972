package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/cvdata"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/sirupsen/logrus"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates an optional collaborator is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return e.Feature + " is not configured on this server"
}

// validationFromTags converts validator errors into an *ErrValidation for the first failing field
func validationFromTags(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ErrValidation{
		Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
		Message: "failed on the '" + fe.Tag() + "' rule",
	}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Timeouts are checked first so a timed-out export or summary is never
// reported as a plain failure.
func HTTPStatus(err error) int {
	var (
		timeoutErr   *storage.TimeoutError
		missingErr   *summary.MissingFieldsError
		emptyErr     *summary.EmptySummaryError
		providerErr  *llm.ProviderError
		infoErr      *cvdata.MissingInfoError
		duplicateErr *cvdata.DuplicateSkillError
		notFoundErr  *cvdata.NotFoundError
		validErr     *ErrValidation
		unavailErr   *ErrUnavailable
	)

	switch {
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &missingErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &providerErr), errors.As(err, &emptyErr):
		return http.StatusBadGateway
	case errors.As(err, &infoErr), errors.As(err, &validErr):
		return http.StatusBadRequest
	case errors.As(err, &duplicateErr):
		return http.StatusConflict
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unavailErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes it with its mapped status. Internal
// failures get the fallback message instead of the raw error text.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := HTTPStatus(err)
	message := err.Error()

	var (
		timeoutErr *storage.TimeoutError
		infoErr    *cvdata.MissingInfoError
	)
	switch {
	case errors.As(err, &timeoutErr):
		message = timeoutErr.Message
	case errors.As(err, &infoErr):
		message = infoErr.Message
	case status == http.StatusInternalServerError:
		message = fallback
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		s.logger.WithFields(logrus.Fields{
			"path":   r.URL.Path,
			"status": status,
			"error":  err.Error(),
		}).Error(fallback)
	}
	s.errorResponse(w, status, message)
}
