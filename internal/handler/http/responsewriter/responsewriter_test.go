package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	require.NotNil(t, wrapped)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.Same(t, wrapped, Wrap(wrapped), "re-wrapping returns the same writer")
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name  string
		codes []int
		want  int
	}{
		{"single 404", []int{http.StatusNotFound}, http.StatusNotFound},
		{"first write wins", []int{http.StatusTooManyRequests, http.StatusOK}, http.StatusTooManyRequests},
		{"500", []int{http.StatusInternalServerError}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			wrapped := Wrap(rec)

			for _, c := range tt.codes {
				wrapped.WriteHeader(c)
			}

			assert.Equal(t, tt.want, wrapped.StatusCode())
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n, err := wrapped.Write([]byte(`{"slug":"gravity"}`))
	require.NoError(t, err)
	_, err = wrapped.Write([]byte("\n"))
	require.NoError(t, err)

	assert.Equal(t, 18, n)
	assert.Equal(t, 19, wrapped.BytesWritten())
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, "{\"slug\":\"gravity\"}\n", rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, http.ResponseWriter(rec), Wrap(rec).Unwrap())
}
