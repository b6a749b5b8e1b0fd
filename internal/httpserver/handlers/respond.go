package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

type errorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details map[string]any      `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as a JSON error. Anything that is not a LinkError is
// reported as internal and logged.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	lErr := apperrors.As(err)
	if lErr.Code == apperrors.ErrInternal {
		log.Error("request failed", logger.Error(err))
	}
	writeJSON(w, lErr.Status, errorResponse{Error: errorBody{
		Code:    lErr.Code,
		Message: lErr.Message,
		Details: lErr.Details,
	}})
}
