package session

import (
	"context"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/ingest"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

type SessionContainer struct {
	Service Service
	Handler *Handler
}

func NewSessionContainer(ctx context.Context, store persistence.Store, cfg ingest.Config, explainer Explainer, creds CredentialSource, opts ...Option) *SessionContainer {
	repo := NewRepository(store)
	ingestor := ingest.NewIngestor(cfg)
	service := NewService(repo, ingestor, explainer, creds, opts...)
	if err := service.Restore(ctx); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Starting with an empty quiz")
	}

	maxFileSize := cfg.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = config.DefaultMaxFileSize
	}
	handler := NewHandler(service, maxFileSize)

	return &SessionContainer{
		Service: service,
		Handler: handler,
	}
}
