package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/widget-api/internal/platform/logger"
)

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithStatus writes an empty response with the given status code.
func RespondWithStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}
