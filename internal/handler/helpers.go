package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"projectboard/internal/domain"
	models "projectboard/internal/domain/models/board"
	"projectboard/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var fieldErrs validation.Errors

	switch {
	case errors.Is(err, domain.ErrValidation) && errors.As(err, &fieldErrs):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
			"errors": fieldMessages(fieldErrs),
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, conflictErr.StatusCode(), conflictErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// fieldMessages flattens ozzo field errors into {"field": "message"}
func fieldMessages(errs validation.Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

// PathParam reads a required path wildcard, writing a 400 when it is empty
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	return value, true
}

// statusFilter parses the optional ?status= query parameter.
// A nil status means no filtering.
func statusFilter(w http.ResponseWriter, r *http.Request) (*models.ProjectStatus, bool) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil, true
	}

	status, err := models.ParseStatus(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &status, true
}
