package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]string{"slug": "ada-lovelace"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "ada-lovelace", decode(t, rr)["slug"])
}

func TestJSON_NilBody(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusTooManyRequests, "Too many votes")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, map[string]any{"error": "Too many votes"}, decode(t, rr))
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expose      bool
		wantCode    int
		wantError   string
		wantDetails string
	}{
		{
			name:      "app error 404",
			err:       fmt.Errorf("handler: %w", NewAppError(http.StatusNotFound, "Article not found", errors.New("no rows"))),
			wantCode:  http.StatusNotFound,
			wantError: "Article not found",
		},
		{
			name:      "app error 400 hides cause even when exposing",
			err:       NewAppError(http.StatusBadRequest, "Invalid MongoDB ID", errors.New("the provided hex string is not a valid ObjectID")),
			expose:    true,
			wantCode:  http.StatusBadRequest,
			wantError: "Invalid MongoDB ID",
		},
		{
			name:      "unknown error becomes 500",
			err:       errors.New("connection refused"),
			wantCode:  http.StatusInternalServerError,
			wantError: "Internal Server Error",
		},
		{
			name:        "500 details exposed and sanitized",
			err:         errors.New("dial mongodb://root:pw@db failed"),
			expose:      true,
			wantCode:    http.StatusInternalServerError,
			wantError:   "Internal Server Error",
			wantDetails: "dial mongodb://root:****@db failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetExposeDetails(tt.expose)
			t.Cleanup(func() { SetExposeDetails(false) })

			rr := httptest.NewRecorder()
			SafeError(rr, tt.err)

			assert.Equal(t, tt.wantCode, rr.Code)
			body := decode(t, rr)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantDetails == "" {
				assert.NotContains(t, body, "details")
			} else {
				assert.Equal(t, tt.wantDetails, body["details"])
			}
		})
	}
}

func TestSafeError_Nil(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestAppError(t *testing.T) {
	cause := errors.New("cause")
	e := NewAppError(http.StatusNotFound, "Article not found", cause)
	assert.Equal(t, "cause", e.Error())
	assert.ErrorIs(t, e, cause)

	assert.Equal(t, "msg only", NewAppError(400, "msg only", nil).Error())
}
