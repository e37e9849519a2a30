package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"docsight/internal/domain"
)

// errorResponse is the JSON error envelope shared by all endpoints.
type errorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var notFound *domain.NotFoundError
	var accessDenied *domain.AccessDeniedError
	var validation *domain.ValidationError
	var unavailable *domain.UnavailableError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &accessDenied):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders a domain error with its mapped status. Validation
// details (e.g. the list of valid template names) are passed through.
func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	resp := errorResponse{Code: status, Message: err.Error()}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		resp.Details = validation.Details
	}
	writeJSON(w, status, resp)
}
