package api

import (
	"encoding/json"
	"net/http"

	apperr "github.com/amterp/squares/internal/errors"
)

const (
	problemTypeBadRequest = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	problemTypeInternal   = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
	problemTypeTimeout    = "https://tools.ietf.org/html/rfc7231#section-6.6.4"

	genericErrorTitle  = "An error occurred while processing your request."
	genericErrorDetail = "An error occurred while processing your request. Please try again later."
)

// ProblemDetails is an RFC 7807 error body.
type ProblemDetails struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	TraceID string `json:"traceId,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a problem-details response, mapping error kinds to status codes.
// Internal failure details are only exposed when exposeDetail is set.
func Error(w http.ResponseWriter, r *http.Request, err error, exposeDetail bool) {
	problem := ProblemDetails{
		Type:    problemTypeInternal,
		Title:   genericErrorTitle,
		Status:  http.StatusInternalServerError,
		Detail:  genericErrorDetail,
		TraceID: RequestIDFromContext(r.Context()),
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		problem.Type = problemTypeBadRequest
		problem.Title = "Invalid request"
		problem.Status = http.StatusBadRequest
		problem.Detail = err.Error()
	default:
		if exposeDetail {
			problem.Detail = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	json.NewEncoder(w).Encode(problem)
}
