// Package handlers implements the HTTP handlers of the tool surface. Writes
// go through the command bus, reads through the query bus; responses carry
// both the raw payload and a text rendering for tool output.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "campaign-backend/pkg/errors"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive, got %d", n)
	}
	return n, nil
}

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondMessage(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   status >= 400,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps the error taxonomy onto HTTP statuses. Unknown errors
// come back as opaque 500s so upstream details never leak to callers.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		respondJSON(w, logger, status, map[string]interface{}{
			"error":   true,
			"type":    appErr.Type,
			"message": appErr.Message,
			"code":    status,
		})
		return
	}

	logger.Error("unclassified error", zap.Error(err))
	respondMessage(w, logger, http.StatusInternalServerError, "internal error")
}
