package settings

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

type Settings struct {
	APIKey             string `json:"-"`
	SoundEnabled       bool   `json:"sound_enabled"`
	Theme              Theme  `json:"theme"`
	KeyboardNavigation bool   `json:"keyboard_navigation"`
}

func Defaults() Settings {
	return Settings{
		SoundEnabled:       true,
		Theme:              ThemeLight,
		KeyboardNavigation: true,
	}
}

// storedSettings is the persisted document. Missing booleans fall back to defaults.
type storedSettings struct {
	APIKey             string `json:"api_key"`
	Encrypted          bool   `json:"encrypted"`
	SoundEnabled       *bool  `json:"sound_enabled,omitempty"`
	Theme              Theme  `json:"theme,omitempty"`
	KeyboardNavigation *bool  `json:"keyboard_navigation,omitempty"`
}
