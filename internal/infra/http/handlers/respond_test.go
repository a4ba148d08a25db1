package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func TestWriteErrorDomainCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", usecase.NewValidationError("name is required"), http.StatusBadRequest, usecase.CodeValidation},
		{"not found", usecase.NewNotFoundError("lead"), http.StatusNotFound, usecase.CodeNotFound},
		{"duplicate name", usecase.NewDuplicateNameError("sector"), http.StatusConflict, usecase.CodeDuplicateName},
		{"in use", usecase.NewInUseError("sector"), http.StatusConflict, usecase.CodeInUse},
		{"stale version", usecase.NewConflictError("lead"), http.StatusConflict, usecase.CodeConflict},
		{"already completed", usecase.NewAlreadyCompletedError("task"), http.StatusConflict, usecase.CodeAlreadyCompleted},
		{"invalid transition", usecase.NewInvalidTransitionError("contacte", "client"), http.StatusUnprocessableEntity, usecase.CodeInvalidTransition},
		{"not available", usecase.NewNotAvailableError("campaigns"), http.StatusServiceUnavailable, usecase.CodeNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body errorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestWriteErrorTechnical(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, usecase.NewPersistenceError(errors.New("connection refused")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWriteErrorUnknownFallsBackToInternal(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL", body.Code)
}
