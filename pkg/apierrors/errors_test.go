package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsMatchWithErrorsIs(t *testing.T) {
	assert.True(t, errors.Is(NotFound("user not found"), ErrNotFound))
	assert.True(t, errors.Is(InvalidInput("duration must be positive"), ErrInvalidInput))
	assert.True(t, errors.Is(Unauthorized("nope"), ErrUnauthorized))
	assert.True(t, errors.Is(Conflict("taken"), ErrConflict))
	assert.True(t, errors.Is(StoreFailure(errors.New("boom")), ErrStoreFailure))

	assert.False(t, errors.Is(NotFound("user not found"), ErrInvalidInput))
}

func TestWriteErrorStatusAndBody(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{NotFound("user not found"), http.StatusNotFound, "NOT_FOUND"},
		{InvalidInput("name is required"), http.StatusBadRequest, "INVALID_INPUT"},
		{StoreFailure(errors.New("driver exploded")), http.StatusInternalServerError, "STORE_FAILURE"},
		{errors.New("some plain error"), http.StatusInternalServerError, "STORE_FAILURE"},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, c.err)

		assert.Equal(t, c.wantStatus, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, c.wantCode, body.Code)
		assert.Equal(t, c.wantStatus, body.Status)
	}
}

func TestStoreFailureKeepsMessageGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, StoreFailure(errors.New("connection refused 10.0.0.3:27017")))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Database operation failed", body.Message)

	// Details carry the raw driver error and do reach the response body.
	assert.Equal(t, "connection refused 10.0.0.3:27017", body.Details)
}
