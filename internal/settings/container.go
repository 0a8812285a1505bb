package settings

import (
	"context"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

type SettingsContainer struct {
	Service Service
	Handler *Handler
}

func NewSettingsContainer(ctx context.Context, store persistence.Store, cipher *config.Cipher, defaultAPIKey string) *SettingsContainer {
	repo := NewRepository(store, cipher)
	service := NewService(ctx, repo, defaultAPIKey)
	handler := NewHandler(service)

	return &SettingsContainer{
		Service: service,
		Handler: handler,
	}
}
