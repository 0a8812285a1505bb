package container

import (
	"context"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/explain"
	"github.com/saulo-duarte/binary-brain/internal/ingest"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
	"github.com/saulo-duarte/binary-brain/internal/session"
	"github.com/saulo-duarte/binary-brain/internal/settings"
)

type Container struct {
	Config            config.Config
	Store             persistence.Store
	SettingsContainer *settings.SettingsContainer
	ExplainContainer  *explain.ExplainContainer
	SessionContainer  *session.SessionContainer
}

func New() *Container {
	config.Init()
	cfg := config.Load()
	ctx := context.Background()
	log := config.WithContext(ctx)

	store := persistence.NewStore(backends(ctx, cfg)...)
	log.WithField("backends", store.Backends()).Info("Persistence chain ready")

	var cipher *config.Cipher
	if cfg.CryptoKey != "" {
		c, err := config.NewCipher(cfg.CryptoKey)
		if err != nil {
			log.Fatalf("invalid crypto key: %v", err)
		}
		cipher = c
	}

	settingsContainer := settings.NewSettingsContainer(ctx, store, cipher, cfg.GeminiAPIKey)
	explainContainer := explain.NewExplainContainer(cfg.GeminiModel, settingsContainer.Service)
	var sessionOpts []session.Option
	if cfg.Serverless {
		sessionOpts = append(sessionOpts, session.WithSharedState())
	}
	sessionContainer := session.NewSessionContainer(
		ctx,
		store,
		ingest.Config{MaxFileSize: cfg.MaxFileSize, Separator: cfg.CSVSeparator},
		explainContainer.Service,
		settingsContainer.Service,
		sessionOpts...,
	)

	return &Container{
		Config:            cfg,
		Store:             store,
		SettingsContainer: settingsContainer,
		ExplainContainer:  explainContainer,
		SessionContainer:  sessionContainer,
	}
}

// backends builds the ordered persistence chain. Remote backends that cannot be reached
// at startup are skipped; memory is always last.
func backends(ctx context.Context, cfg config.Config) []persistence.Backend {
	log := config.WithContext(ctx)
	var chain []persistence.Backend

	if cfg.RedisAddr != "" {
		b, err := persistence.NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis backend unavailable, skipping")
		} else {
			chain = append(chain, b)
		}
	}

	if cfg.DatabaseDSN != "" {
		db, err := config.Connect(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, skipping postgres backend")
		} else if b, err := persistence.NewGormBackend(db); err != nil {
			log.WithError(err).Warn("Failed to migrate postgres backend, skipping")
		} else {
			chain = append(chain, b)
		}
	}

	return append(chain, persistence.NewMemoryBackend())
}
