package settings

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

const storageKey = "binary-brain-settings"

type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s Settings) error
	Clear(ctx context.Context) error
}

type settingsRepository struct {
	store  persistence.Store
	cipher *config.Cipher
}

// NewRepository stores settings in the persistence chain. With a nil cipher the API key
// is stored as plain text.
func NewRepository(store persistence.Store, cipher *config.Cipher) SettingsRepository {
	return &settingsRepository{store: store, cipher: cipher}
}

func (r *settingsRepository) Load(ctx context.Context) (*Settings, error) {
	var stored storedSettings
	if _, err := r.store.Load(ctx, storageKey, &stored); err != nil {
		return nil, err
	}

	s := Defaults()
	if stored.SoundEnabled != nil {
		s.SoundEnabled = *stored.SoundEnabled
	}
	if stored.Theme.IsValid() {
		s.Theme = stored.Theme
	}
	if stored.KeyboardNavigation != nil {
		s.KeyboardNavigation = *stored.KeyboardNavigation
	}

	s.APIKey = stored.APIKey
	if stored.Encrypted && stored.APIKey != "" {
		if r.cipher == nil {
			return nil, ErrMissingCipher
		}
		key, err := r.cipher.Decrypt(stored.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt api key: %w", err)
		}
		s.APIKey = key
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s Settings) error {
	stored := storedSettings{
		APIKey:             s.APIKey,
		SoundEnabled:       &s.SoundEnabled,
		Theme:              s.Theme,
		KeyboardNavigation: &s.KeyboardNavigation,
	}

	if r.cipher != nil && s.APIKey != "" {
		encrypted, err := r.cipher.Encrypt(s.APIKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt api key: %w", err)
		}
		stored.APIKey = encrypted
		stored.Encrypted = true
	}

	_, err := r.store.Save(ctx, storageKey, stored)
	return err
}

func (r *settingsRepository) Clear(ctx context.Context) error {
	return r.store.Clear(ctx, storageKey)
}
