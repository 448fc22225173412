package api

import (
	"errors"
	"net/http"

	"github.com/htgs-go/htgs/config"
	"github.com/htgs-go/htgs/contracts"
)

// API-specific errors.
var (
	// ErrGraphExists is returned when trying to register a graph name that
	// is already loaded.
	ErrGraphExists = errors.New("graph already loaded")

	// ErrGraphNotFound is returned when a named graph has not been loaded.
	ErrGraphNotFound = errors.New("graph not found")
)

// ErrorCode represents an API error code.
type ErrorCode string

// Error codes for API responses.
const (
	CodeInvalidInput  ErrorCode = "invalid_input"
	CodeGraphCycle    ErrorCode = "graph_cycle"
	CodeUnknownKind   ErrorCode = "unknown_kind"
	CodeGraphExists   ErrorCode = "graph_exists"
	CodeGraphNotFound ErrorCode = "graph_not_found"
	CodeInternalError ErrorCode = "internal_error"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Code       ErrorCode
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// MapError maps a domain error to an HTTPError.
func MapError(err error) *HTTPError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, contracts.ErrInvalidInput):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}

	case errors.Is(err, contracts.ErrGraphCycle), errors.Is(err, config.ErrCycleDetected):
		return &HTTPError{http.StatusUnprocessableEntity, CodeGraphCycle, err}

	case errors.Is(err, config.ErrUnknownTaskKind):
		return &HTTPError{http.StatusBadRequest, CodeUnknownKind, err}

	case errors.Is(err, ErrGraphExists):
		return &HTTPError{http.StatusConflict, CodeGraphExists, err}

	case errors.Is(err, ErrGraphNotFound):
		return &HTTPError{http.StatusNotFound, CodeGraphNotFound, err}

	case errors.Is(err, config.ErrConfigEmpty),
		errors.Is(err, config.ErrGraphNameEmpty),
		errors.Is(err, config.ErrNoTasks),
		errors.Is(err, config.ErrTaskIDEmpty),
		errors.Is(err, config.ErrTaskIDDuplicate),
		errors.Is(err, config.ErrTaskKindEmpty),
		errors.Is(err, config.ErrInvalidNumThreads),
		errors.Is(err, config.ErrEdgeRefNotFound),
		errors.Is(err, config.ErrNoConsumer),
		errors.Is(err, config.ErrConsumerNotFound),
		errors.Is(err, config.ErrNoProducer),
		errors.Is(err, config.ErrProducerNotFound):
		return &HTTPError{http.StatusBadRequest, CodeInvalidInput, err}

	default:
		return &HTTPError{http.StatusInternalServerError, CodeInternalError, err}
	}
}

// WriteError writes an error response to the HTTP response writer.
func WriteError(w http.ResponseWriter, err error) {
	httpErr := MapError(err)
	if httpErr == nil {
		return
	}

	resp := ErrorDTO{
		Code:    string(httpErr.Code),
		Message: httpErr.Error(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)
	writeJSON(w, resp)
}
