package handlers

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorBody is the JSON error shape of every endpoint
type ErrorBody struct {
	Error string `json:"error"`
}

// MsgIPRequired is returned when a lookup endpoint has no ip query parameter
const MsgIPRequired = "IP address is required"

// MsgInternalError is sent when a response body cannot be encoded
const MsgInternalError = "Internal server error"

// JSONResponse sends a JSON response with the given status code. The body is
// encoded before the header is written so an encoding failure becomes a 500.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(statusCode)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Error: MsgInternalError})
	}

	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}

// ErrorResponse sends a JSON error response. Only message reaches the client.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, ErrorBody{Error: message})
}

// recoverJSON turns a panic in a JSON handler into a generic 500. The panic
// value is logged, never returned.
func recoverJSON(w http.ResponseWriter, r *http.Request, logger *slog.Logger, message string) {
	if rec := recover(); rec != nil {
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		logger.Error(message, "path", r.URL.Path, "panic", rec)
		ErrorResponse(w, http.StatusInternalServerError, message)
	}
}

// requiredIP returns the ip query parameter, writing a 400 when it is absent
func requiredIP(w http.ResponseWriter, r *http.Request) (string, bool) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		ErrorResponse(w, http.StatusBadRequest, MsgIPRequired)
		return "", false
	}
	return ip, true
}
