package persistence_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

type failingBackend struct {
	name  string
	err   error
	calls int
}

func (f *failingBackend) Name() string { return f.name }

func (f *failingBackend) Get(context.Context, string) ([]byte, error) {
	f.calls++
	return nil, f.err
}

func (f *failingBackend) Put(context.Context, string, []byte) error {
	f.calls++
	return f.err
}

func (f *failingBackend) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

type document struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreSave(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstSuccessWins", func(t *testing.T) {
		primary := persistence.NewMemoryBackend()
		secondary := &failingBackend{name: "secondary", err: errors.New("unused")}
		store := persistence.NewStore(primary, secondary)

		backend, err := store.Save(ctx, "doc", document{Name: "a", Count: 1})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if backend != "memory" {
			t.Errorf("expected memory backend, got %s", backend)
		}
		if secondary.calls != 0 {
			t.Errorf("secondary should not be called, got %d calls", secondary.calls)
		}
	})

	t.Run("FallsBackToNextBackend", func(t *testing.T) {
		broken := &failingBackend{name: "redis", err: errors.New("connection refused")}
		fallback := persistence.NewMemoryBackend()
		store := persistence.NewStore(broken, fallback)

		backend, err := store.Save(ctx, "doc", document{Name: "b"})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if backend != "memory" {
			t.Errorf("expected fallback backend, got %s", backend)
		}

		var got document
		if _, err := store.Load(ctx, "doc", &got); err != nil || got.Name != "b" {
			t.Errorf("Load after fallback = %+v, %v", got, err)
		}
	})

	t.Run("AllBackendsFail", func(t *testing.T) {
		store := persistence.NewStore(
			&failingBackend{name: "redis", err: errors.New("connection refused")},
			&failingBackend{name: "postgres", err: errors.New("disk full")},
		)

		_, err := store.Save(ctx, "doc", document{})
		if err == nil {
			t.Fatal("expected error")
		}
		for _, reason := range []string{"redis: connection refused", "postgres: disk full"} {
			if !strings.Contains(err.Error(), reason) {
				t.Errorf("error %q should mention %q", err, reason)
			}
		}
	})

	t.Run("NoBackends", func(t *testing.T) {
		_, err := persistence.NewStore().Save(ctx, "doc", document{})
		if !errors.Is(err, persistence.ErrNoBackends) {
			t.Errorf("expected ErrNoBackends, got %v", err)
		}
	})
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		store := persistence.NewStore(persistence.NewMemoryBackend())

		var got document
		_, err := store.Load(ctx, "missing", &got)
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SkipsBrokenBackend", func(t *testing.T) {
		broken := &failingBackend{name: "redis", err: errors.New("timeout")}
		memory := persistence.NewMemoryBackend()
		if err := memory.Put(ctx, "doc", []byte(`{"name":"kept","count":2}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		store := persistence.NewStore(broken, memory)

		var got document
		backend, err := store.Load(ctx, "doc", &got)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if backend != "memory" || got.Name != "kept" || got.Count != 2 {
			t.Errorf("unexpected load result %s %+v", backend, got)
		}
	})

	t.Run("FailureReasonSurfaced", func(t *testing.T) {
		store := persistence.NewStore(&failingBackend{name: "redis", err: errors.New("timeout")})

		var got document
		_, err := store.Load(ctx, "doc", &got)
		if !errors.Is(err, persistence.ErrNotFound) || !strings.Contains(err.Error(), "redis: timeout") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("UnreadableDocument", func(t *testing.T) {
		memory := persistence.NewMemoryBackend()
		_ = memory.Put(ctx, "doc", []byte("{not json"))
		store := persistence.NewStore(memory)

		var got document
		if _, err := store.Load(ctx, "doc", &got); !errors.Is(err, persistence.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()

	t.Run("ClearsEveryBackend", func(t *testing.T) {
		first := persistence.NewMemoryBackend()
		second := persistence.NewMemoryBackend()
		_ = first.Put(ctx, "doc", []byte(`{}`))
		_ = second.Put(ctx, "doc", []byte(`{}`))
		store := persistence.NewStore(first, second)

		if err := store.Clear(ctx, "doc"); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		for _, b := range []persistence.Backend{first, second} {
			if _, err := b.Get(ctx, "doc"); !errors.Is(err, persistence.ErrNotFound) {
				t.Errorf("key still present after Clear")
			}
		}
	})

	t.Run("ReportsFailuresButContinues", func(t *testing.T) {
		broken := &failingBackend{name: "redis", err: errors.New("timeout")}
		memory := persistence.NewMemoryBackend()
		_ = memory.Put(ctx, "doc", []byte(`{}`))
		store := persistence.NewStore(broken, memory)

		if err := store.Clear(ctx, "doc"); err == nil {
			t.Error("expected error from broken backend")
		}
		if _, err := memory.Get(ctx, "doc"); !errors.Is(err, persistence.ErrNotFound) {
			t.Error("memory backend should still be cleared")
		}
	})

	t.Run("BackendNames", func(t *testing.T) {
		store := persistence.NewStore(&failingBackend{name: "redis"}, persistence.NewMemoryBackend())
		names := store.Backends()
		if len(names) != 2 || names[0] != "redis" || names[1] != "memory" {
			t.Errorf("unexpected backends %v", names)
		}
	})
}
