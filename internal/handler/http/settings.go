package http

import (
	"log/slog"
	"net/http"

	"github.com/lavage-pro/carwash-backend-go/internal/domain/settings"
	"github.com/lavage-pro/carwash-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	ToggleMode(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ToggleMode switches between commission and salary. Existing jobs keep
// the mode they were tagged with.
func (h *settingsHandlerImpl) ToggleMode(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.ToggleMode(r.Context())
	if err != nil {
		slog.Error("ToggleMode service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Compensation mode switched to "+string(result.Mode), result)
}
