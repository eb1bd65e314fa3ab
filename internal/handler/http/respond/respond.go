// Package respond writes the non-HTML responses of the server: JSON for the
// operational endpoints and short plain-text errors for rejected requests.
// Error details are logged, never returned to the client.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"rss-reader/internal/observability/logging"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Text writes a plain-text response.
func Text(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg + "\n"))
}

// safeMarkers identify client errors whose message may be shown as is.
var safeMarkers = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"too long",
	"too short",
}

// IsSafe reports whether err's message can be returned to the client with
// status code. 5xx messages are never safe.
func IsSafe(code int, err error) bool {
	if err == nil || code >= 500 {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range safeMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// SafeError writes err as plain text when it is a client error safe to show,
// and the generic status text otherwise. Unsafe errors are logged with
// credentials masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if IsSafe(code, err) {
		Text(w, code, err.Error())
		return
	}
	slog.Default().Error("request failed",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", logging.SanitizeError(err)))
	Text(w, code, strings.ToLower(http.StatusText(code)))
}

// SafeJSONError is SafeError for JSON endpoints: the body is {"error": msg}.
func SafeJSONError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	msg := strings.ToLower(http.StatusText(code))
	if IsSafe(code, err) {
		msg = err.Error()
	} else {
		slog.Default().Error("request failed",
			slog.String("status", http.StatusText(code)),
			slog.Int("code", code),
			slog.String("error", logging.SanitizeError(err)))
	}
	JSON(w, code, map[string]string{"error": msg})
}
