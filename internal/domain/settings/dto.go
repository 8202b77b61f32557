package settings

import "time"

type SettingsResponse struct {
	Mode      Mode       `json:"mode"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func ToResponse(s Settings) SettingsResponse {
	resp := SettingsResponse{Mode: s.Mode}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
