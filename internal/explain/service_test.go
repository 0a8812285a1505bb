package explain_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/saulo-duarte/binary-brain/internal/explain"
)

type fakeProvider struct {
	calls      int
	credential string
	user       string
	reply      string
	err        error
}

func (f *fakeProvider) SendPrompt(_ context.Context, credential, _, user string) (string, error) {
	f.calls++
	f.credential = credential
	f.user = user
	return f.reply, f.err
}

func (f *fakeProvider) Model() string { return "fake-model" }

func TestRequestExplanation(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankCredentialSkipsProvider", func(t *testing.T) {
		p := &fakeProvider{reply: "x"}
		svc := explain.NewService(p)

		_, err := svc.RequestExplanation(ctx, "Der Himmel ist blau", true, "   ")
		if !errors.Is(err, explain.ErrInvalidCredential) {
			t.Fatalf("expected ErrInvalidCredential, got %v", err)
		}
		if p.calls != 0 {
			t.Errorf("provider called %d times", p.calls)
		}
	})

	t.Run("BlankQuestion", func(t *testing.T) {
		svc := explain.NewService(&fakeProvider{})
		_, err := svc.RequestExplanation(ctx, " ", true, "key")
		if !errors.Is(err, explain.ErrEmptyQuestion) {
			t.Fatalf("expected ErrEmptyQuestion, got %v", err)
		}
	})

	t.Run("ReturnsProviderText", func(t *testing.T) {
		p := &fakeProvider{reply: "Weil Licht gestreut wird."}
		svc := explain.NewService(p)

		got, err := svc.RequestExplanation(ctx, "Der Himmel ist blau", true, " key ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != p.reply {
			t.Errorf("expected %q, got %q", p.reply, got)
		}
		if p.credential != "key" {
			t.Errorf("expected trimmed credential, got %q", p.credential)
		}
		if !strings.Contains(p.user, "Der Himmel ist blau") || !strings.Contains(p.user, "RICHTIG") {
			t.Errorf("prompt missing question or verdict: %q", p.user)
		}
	})

	t.Run("PropagatesProviderErrors", func(t *testing.T) {
		p := &fakeProvider{err: explain.ErrRateLimited}
		svc := explain.NewService(p)

		_, err := svc.RequestExplanation(ctx, "q", false, "key")
		if !errors.Is(err, explain.ErrRateLimited) {
			t.Fatalf("expected ErrRateLimited, got %v", err)
		}
	})
}

func TestTestConnection(t *testing.T) {
	ctx := context.Background()

	t.Run("BlankCredential", func(t *testing.T) {
		svc := explain.NewService(&fakeProvider{})
		if _, err := svc.TestConnection(ctx, ""); !errors.Is(err, explain.ErrInvalidCredential) {
			t.Fatalf("expected ErrInvalidCredential, got %v", err)
		}
	})

	t.Run("ReportsModel", func(t *testing.T) {
		svc := explain.NewService(&fakeProvider{reply: "ok"})
		resp, err := svc.TestConnection(ctx, "key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Model != "fake-model" || resp.Message != "ok" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})
}

func TestBuildUserPrompt(t *testing.T) {
	testCases := []struct {
		correct bool
		want    string
	}{
		{true, "Korrekte Antwort: Richtig"},
		{false, "Korrekte Antwort: Falsch"},
	}

	for _, tc := range testCases {
		got := explain.BuildUserPrompt("Aussage", tc.correct)
		if !strings.Contains(got, tc.want) {
			t.Errorf("prompt for %v missing %q: %s", tc.correct, tc.want, got)
		}
	}
}

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{explain.ErrInvalidCredential, 400},
		{explain.ErrAccessDenied, 403},
		{explain.ErrRateLimited, 429},
		{explain.ErrUnavailable, 502},
		{errors.New("boom"), 500},
	}

	for _, tc := range testCases {
		if got := explain.StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
