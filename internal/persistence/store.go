package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/metrics"
)

var (
	ErrNotFound   = errors.New("key not found")
	ErrNoBackends = errors.New("no storage backends configured")
)

type Backend interface {
	Name() string
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store keeps JSON documents in an ordered list of backends. Save and Load stop at the
// first backend that succeeds; every failure on the way is logged with its reason.
type Store interface {
	Save(ctx context.Context, key string, v interface{}) (backend string, err error)
	Load(ctx context.Context, key string, v interface{}) (backend string, err error)
	Clear(ctx context.Context, key string) error
	Backends() []string
}

type store struct {
	backends []Backend
}

func NewStore(backends ...Backend) Store {
	return &store{backends: backends}
}

func (s *store) Backends() []string {
	names := make([]string, len(s.backends))
	for i, b := range s.backends {
		names[i] = b.Name()
	}
	return names
}

func (s *store) Save(ctx context.Context, key string, v interface{}) (string, error) {
	if len(s.backends) == 0 {
		return "", ErrNoBackends
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}

	log := config.WithContext(ctx).WithField("key", key)
	var errs []error
	for _, b := range s.backends {
		if err := b.Put(ctx, key, data); err != nil {
			log.WithError(err).Warnf("Storage backend %s failed to save, trying next", b.Name())
			metrics.ObserveStorageFailure(b.Name(), "put")
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		log.Debugf("Saved to storage backend %s", b.Name())
		return b.Name(), nil
	}
	return "", fmt.Errorf("all storage backends failed: %w", errors.Join(errs...))
}

func (s *store) Load(ctx context.Context, key string, v interface{}) (string, error) {
	log := config.WithContext(ctx).WithField("key", key)

	var errs []error
	for _, b := range s.backends {
		data, err := b.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			log.WithError(err).Warnf("Storage backend %s failed to load, trying next", b.Name())
			metrics.ObserveStorageFailure(b.Name(), "get")
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if err := json.Unmarshal(data, v); err != nil {
			log.WithError(err).Warnf("Storage backend %s returned an unreadable document", b.Name())
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		return b.Name(), nil
	}

	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", ErrNotFound, errors.Join(errs...))
	}
	return "", ErrNotFound
}

func (s *store) Clear(ctx context.Context, key string) error {
	log := config.WithContext(ctx).WithField("key", key)

	var errs []error
	for _, b := range s.backends {
		if err := b.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			log.WithError(err).Warnf("Storage backend %s failed to delete", b.Name())
			metrics.ObserveStorageFailure(b.Name(), "delete")
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	return errors.Join(errs...)
}
