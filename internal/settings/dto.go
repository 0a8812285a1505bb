package settings

type UpdateSettingsDTO struct {
	APIKey             *string `json:"api_key"`
	SoundEnabled       *bool   `json:"sound_enabled"`
	Theme              *Theme  `json:"theme"`
	KeyboardNavigation *bool   `json:"keyboard_navigation"`
}

type SettingsResponse struct {
	HasAPIKey          bool   `json:"has_api_key"`
	APIKeyHint         string `json:"api_key_hint,omitempty"`
	SoundEnabled       bool   `json:"sound_enabled"`
	Theme              Theme  `json:"theme"`
	IsDarkMode         bool   `json:"is_dark_mode"`
	KeyboardNavigation bool   `json:"keyboard_navigation"`
}

func toResponse(s Settings) SettingsResponse {
	resp := SettingsResponse{
		HasAPIKey:          hasValidAPIKey(s.APIKey),
		SoundEnabled:       s.SoundEnabled,
		Theme:              s.Theme,
		IsDarkMode:         s.Theme == ThemeDark,
		KeyboardNavigation: s.KeyboardNavigation,
	}
	if len(s.APIKey) > 4 {
		resp.APIKeyHint = "..." + s.APIKey[len(s.APIKey)-4:]
	}
	return resp
}
