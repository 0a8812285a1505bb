package explain

import (
	"context"
	"testing"
)

func TestGeminiProviderClient(t *testing.T) {
	ctx := context.Background()
	p := NewGeminiProvider("").(*geminiProvider)

	if p.Model() != "gemini-2.0-flash" {
		t.Errorf("expected default model, got %s", p.Model())
	}

	t.Run("ReusedForSameCredential", func(t *testing.T) {
		first, err := p.clientFor(ctx, "key-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := p.clientFor(ctx, "key-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Error("expected the same client for the same credential")
		}
	})

	t.Run("ReplacedOnNewCredential", func(t *testing.T) {
		before, _ := p.clientFor(ctx, "key-a")
		for _, key := range []string{"key-b", "key-c", "key-d"} {
			if _, err := p.clientFor(ctx, key); err != nil {
				t.Fatalf("unexpected error for %s: %v", key, err)
			}
		}

		if p.credential != "key-d" {
			t.Errorf("expected current credential key-d, got %s", p.credential)
		}
		after, _ := p.clientFor(ctx, "key-a")
		if after == before {
			t.Error("expected a fresh client after the credential changed")
		}
	})
}
