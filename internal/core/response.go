// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Fields are the domain keys merged into a success envelope next to
// status and message.
type Fields map[string]any

type ErrorEnvelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, status int, message string, fields Fields) {
	body := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		body[k] = v
	}
	body["status"] = StatusSuccess
	if message != "" {
		body["message"] = message
	}

	JSON(w, status, body)
}

func OK(w http.ResponseWriter, fields Fields) {
	Success(w, http.StatusOK, "", fields)
}

func Created(w http.ResponseWriter, message string, fields Fields) {
	Success(w, http.StatusCreated, message, fields)
}

func Message(w http.ResponseWriter, message string) {
	Success(w, http.StatusOK, message, nil)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorEnvelope{
		Code:    status,
		Status:  StatusError,
		Message: message,
	})
}

// JSONError renders an AppError with its own status; anything else is
// treated as unexpected.
func JSONError(w http.ResponseWriter, err error) {
	if appErr, ok := AsAppError(err); ok {
		Error(w, appErr.StatusCode, appErr.Message)
		return
	}
	InternalServerError(w, err)
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = MsgUnauthorized
	}
	Error(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("unhandled error", "error", err)
	Error(w, http.StatusInternalServerError, MsgInternal)
}
