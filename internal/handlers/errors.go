package handlers

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/middleware"
	"github.com/umanari145/blog-backend/internal/repositories"
	"github.com/umanari145/blog-backend/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error            string                       `json:"error"`
	Message          string                       `json:"message,omitempty"`
	Trace            string                       `json:"trace,omitempty"`
	ValidationErrors []middleware.ValidationError `json:"validation_errors,omitempty"`
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case repositories.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case repositories.IsValidation(err):
		return http.StatusBadRequest
	case repositories.IsDuplicate(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorRenderer turns errors into status and body, shared by the gin and Lambda paths
type errorRenderer struct {
	exposeTrace bool
	logger      *logrus.Logger
}

func newErrorRenderer(exposeTrace bool, logger *logrus.Logger) *errorRenderer {
	if logger == nil {
		logger = logrus.New()
	}
	return &errorRenderer{exposeTrace: exposeTrace, logger: logger}
}

func (r *errorRenderer) render(err error) (int, ErrorResponse) {
	status := statusFor(err)

	switch status {
	case http.StatusNotFound:
		return status, ErrorResponse{Error: "not found"}
	case http.StatusUnauthorized:
		return status, ErrorResponse{Error: "unauthorized"}
	case http.StatusBadRequest:
		return status, ErrorResponse{
			Error:            "Validation failed",
			Message:          err.Error(),
			ValidationErrors: middleware.FormatValidationErrors(err),
		}
	case http.StatusConflict:
		return status, ErrorResponse{Error: "Already exists", Message: err.Error()}
	}

	r.logger.WithError(err).Error("Request failed")

	resp := ErrorResponse{Error: err.Error(), Message: "Internal server error"}
	if r.exposeTrace {
		resp.Trace = trace(err)
	}
	return status, resp
}

func badRequest(err error) (int, ErrorResponse) {
	return http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Message: err.Error()}
}

// trace renders the innermost stack recorded in err's chain, which points
// closest to where the failure happened. Without one, the current stack is used.
func trace(err error) string {
	var deepest stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			deepest = st
		}
	}
	if deepest != nil {
		return fmt.Sprintf("%s%+v", err.Error(), deepest.StackTrace())
	}
	return fmt.Sprintf("%+v", pkgerrors.WithStack(err))
}
