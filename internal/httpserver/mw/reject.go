package mw

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
)

// reject writes err in the same JSON shape the handlers use.
func reject(w http.ResponseWriter, err *apperrors.LinkError) {
	body := map[string]any{
		"code":    err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		body["details"] = err.Details
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(err.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": body})
}
