package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/avolkov/microblog/internal/server/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the stable single-message error shape used for
// authentication, not-found, and internal failures.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationError emits the field-level error shape used for
// validation failures.
func writeValidationError(w http.ResponseWriter, ve *services.ValidationError) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Fields})
}
