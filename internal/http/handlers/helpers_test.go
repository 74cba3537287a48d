package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{club.ErrGroupNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", club.ErrPlayerNotFound), http.StatusNotFound},
		{ranking.ErrTransitionInProgress, http.StatusConflict},
		{club.ErrDuplicateLevel, http.StatusConflict},
		{club.ErrDuplicateMatch, http.StatusConflict},
		{ranking.ErrSameSides, http.StatusUnprocessableEntity},
		{ranking.ErrWinnerNotASide, http.StatusUnprocessableEntity},
		{ranking.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{club.ErrPlayerOutsideGroup, http.StatusUnprocessableEntity},
		{processor.ErrImportNotConfigured, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	t.Run("internal errors are not leaked", func(t *testing.T) {
		rr := httptest.NewRecorder()
		respondError(rr, errors.New("database is locked"))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"message":"Internal server error."}`, rr.Body.String())
	})

	t.Run("validation errors keep their fields", func(t *testing.T) {
		rr := httptest.NewRecorder()
		respondError(rr, &processor.ValidationError{Fields: map[string][]string{"group_id": {"The group id field is required."}}})
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.JSONEq(t, `{"errors":{"group_id":["The group id field is required."]}}`, rr.Body.String())
	})
}

func TestIsDryRunFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.False(t, IsDryRunFromContext(req))

	req = req.WithContext(context.WithValue(req.Context(), DryRunKey, true))
	assert.True(t, IsDryRunFromContext(req))
}

func TestDecodeJSON(t *testing.T) {
	var v struct{ Name string }
	rr := httptest.NewRecorder()
	ok := decodeJSON(rr, httptest.NewRequest("POST", "/", nil), &v)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body messageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Invalid JSON body.", body.Message)
}
