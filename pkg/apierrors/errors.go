package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrConflict     = NewAPIError("CONFLICT", "Resource conflict", http.StatusConflict)
	ErrStoreFailure = NewAPIError("STORE_FAILURE", "Database operation failed", http.StatusInternalServerError)
)

// NotFound builds a NotFound error with a concrete message while still
// matching ErrNotFound under errors.Is.
func NotFound(message string) error {
	return &wrapped{kind: ErrNotFound, apiErr: NewAPIError(ErrNotFound.Code, message, ErrNotFound.Status)}
}

// InvalidInput builds an InvalidInput error with a concrete message.
func InvalidInput(message string) error {
	return &wrapped{kind: ErrInvalidInput, apiErr: NewAPIError(ErrInvalidInput.Code, message, ErrInvalidInput.Status)}
}

// Unauthorized builds an Unauthorized error with a concrete message.
func Unauthorized(message string) error {
	return &wrapped{kind: ErrUnauthorized, apiErr: NewAPIError(ErrUnauthorized.Code, message, ErrUnauthorized.Status)}
}

// Conflict builds a Conflict error with a concrete message.
func Conflict(message string) error {
	return &wrapped{kind: ErrConflict, apiErr: NewAPIError(ErrConflict.Code, message, ErrConflict.Status)}
}

// StoreFailure wraps a driver error into a generic store failure. The client
// message stays generic; the raw error text rides along in Details and is
// included in the JSON response.
func StoreFailure(err error) error {
	w := &wrapped{kind: ErrStoreFailure, apiErr: NewAPIError(ErrStoreFailure.Code, ErrStoreFailure.Message, ErrStoreFailure.Status)}
	if err != nil {
		w.apiErr.Details = err.Error()
	}
	return w
}

type wrapped struct {
	kind   *APIError
	apiErr *APIError
}

func (w *wrapped) Error() string { return w.apiErr.Error() }

func (w *wrapped) Is(target error) bool { return target == w.kind }

func (w *wrapped) api() *APIError { return w.apiErr }

// WriteError writes an error as a standardized JSON response.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError

	var wr *wrapped
	if errors.As(err, &wr) {
		apiErr = wr.api()
	} else if !errors.As(err, &apiErr) {
		apiErr = NewAPIError(ErrStoreFailure.Code, ErrStoreFailure.Message, ErrStoreFailure.Status, err.Error())
	}

	if apiErr.Status >= 500 {
		logrus.WithField("details", apiErr.Details).Errorf("Server error %s", apiErr.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
