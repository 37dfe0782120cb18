package httpx

import (
	"github.com/diewo77/cobranzas/internal/logger"
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body of the API. Error holds a stable
// machine-readable code; Details is free-form context for humans.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload with the given status. Marshalling happens before the
// header write so an encode failure never produces partial JSON.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			l := logger.WithComponent("httpx")
			l.Error().Err(err).Msg("response encode failed")
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes a uniform error body with the given status and code.
func JSONError(w http.ResponseWriter, status int, code string, details any) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
