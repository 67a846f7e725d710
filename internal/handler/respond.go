package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/middleware"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeBody decodes an optional JSON body into v. It writes the error
// response itself and returns false when the body is unusable.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
	return false
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "path", r.URL.Path, "request_id", middleware.RequestIDFromContext(r.Context()), "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
