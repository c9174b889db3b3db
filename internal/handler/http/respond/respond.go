// Package respond provides utilities for sending HTTP responses in JSON format.
// Every error body has the shape {"error": "...", "details": "..."}; details
// are only included when enabled with SetExposeDetails, and are sanitized.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

var exposeDetails atomic.Bool

// SetExposeDetails toggles whether sanitized causes are included in 5xx bodies.
func SetExposeDetails(v bool) {
	exposeDetails.Store(v)
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeError writes err to the client without leaking internals.
//
// An *AppError anywhere in the chain supplies the status and user message.
// Anything else becomes 500 "Internal Server Error". Server-side failures are
// logged with credentials masked.
func SafeError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(http.StatusInternalServerError)

	var appErr *AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		msg = appErr.UserMsg
	}

	body := ErrorBody{Error: msg}
	if code >= 500 {
		// 機密情報をマスクしてログ出力
		sanitized := SanitizeError(err)
		slog.Default().Error("internal server error",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("error", sanitized))
		if exposeDetails.Load() {
			body.Details = sanitized
		}
	}

	JSON(w, code, body)
}
