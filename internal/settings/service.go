package settings

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

var (
	ErrInvalidTheme  = errors.New("theme must be light or dark")
	ErrMissingCipher = errors.New("stored api key is encrypted but no CRYPTO_KEY is configured")
)

type Service interface {
	Get() Settings
	APIKey() string
	HasValidAPIKey() bool
	Update(ctx context.Context, dto UpdateSettingsDTO) (Settings, error)
	SetAPIKey(ctx context.Context, key string)
	SetSoundEnabled(ctx context.Context, enabled bool)
	SetTheme(ctx context.Context, theme Theme) error
	ToggleTheme(ctx context.Context) Theme
	SetKeyboardNavigation(ctx context.Context, enabled bool)
	Reset(ctx context.Context)
}

type settingsService struct {
	mu       sync.RWMutex
	repo     SettingsRepository
	settings Settings
}

// NewService loads stored settings and falls back to defaults when nothing usable is
// stored. defaultAPIKey is adopted when no key was stored.
func NewService(ctx context.Context, repo SettingsRepository, defaultAPIKey string) Service {
	log := config.WithContext(ctx)
	s := &settingsService{repo: repo, settings: Defaults()}

	stored, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.settings = *stored
	case errors.Is(err, persistence.ErrNotFound):
		log.Debug("No stored settings, using defaults")
	default:
		log.WithError(err).Warn("Failed to load settings, using defaults")
	}

	if strings.TrimSpace(s.settings.APIKey) == "" && strings.TrimSpace(defaultAPIKey) != "" {
		s.SetAPIKey(ctx, defaultAPIKey)
	}
	return s
}

func (s *settingsService) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *settingsService) APIKey() string {
	return s.Get().APIKey
}

func (s *settingsService) HasValidAPIKey() bool {
	return hasValidAPIKey(s.APIKey())
}

func hasValidAPIKey(key string) bool {
	return strings.TrimSpace(key) != ""
}

func (s *settingsService) Update(ctx context.Context, dto UpdateSettingsDTO) (Settings, error) {
	if dto.Theme != nil && !dto.Theme.IsValid() {
		return s.Get(), ErrInvalidTheme
	}

	return s.mutate(ctx, func(st *Settings) {
		if dto.APIKey != nil {
			st.APIKey = strings.TrimSpace(*dto.APIKey)
		}
		if dto.SoundEnabled != nil {
			st.SoundEnabled = *dto.SoundEnabled
		}
		if dto.Theme != nil {
			st.Theme = *dto.Theme
		}
		if dto.KeyboardNavigation != nil {
			st.KeyboardNavigation = *dto.KeyboardNavigation
		}
	}), nil
}

func (s *settingsService) SetAPIKey(ctx context.Context, key string) {
	s.mutate(ctx, func(st *Settings) { st.APIKey = strings.TrimSpace(key) })
}

func (s *settingsService) SetSoundEnabled(ctx context.Context, enabled bool) {
	s.mutate(ctx, func(st *Settings) { st.SoundEnabled = enabled })
}

func (s *settingsService) SetTheme(ctx context.Context, theme Theme) error {
	if !theme.IsValid() {
		return ErrInvalidTheme
	}
	s.mutate(ctx, func(st *Settings) { st.Theme = theme })
	return nil
}

func (s *settingsService) ToggleTheme(ctx context.Context) Theme {
	updated := s.mutate(ctx, func(st *Settings) {
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
	})
	return updated.Theme
}

func (s *settingsService) SetKeyboardNavigation(ctx context.Context, enabled bool) {
	s.mutate(ctx, func(st *Settings) { st.KeyboardNavigation = enabled })
}

func (s *settingsService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.settings = Defaults()
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to clear stored settings")
	}
}

// mutate applies fn and persists the result. Storage failures are logged only.
func (s *settingsService) mutate(ctx context.Context, fn func(*Settings)) Settings {
	s.mu.Lock()
	fn(&s.settings)
	updated := s.settings
	s.mu.Unlock()

	if err := s.repo.Save(ctx, updated); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to persist settings")
	}
	return updated
}
