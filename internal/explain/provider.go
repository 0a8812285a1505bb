package explain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"google.golang.org/genai"
)

type Provider interface {
	SendPrompt(ctx context.Context, credential, system, user string) (string, error)
	Model() string
}

type geminiProvider struct {
	model string

	mu         sync.Mutex
	credential string
	client     *genai.Client
}

func NewGeminiProvider(model string) Provider {
	if model == "" {
		model = config.DefaultGeminiModel
	}
	return &geminiProvider{model: model}
}

func (p *geminiProvider) Model() string { return p.model }

// clientFor keeps a single client and replaces it when the credential changes.
func (p *geminiProvider) clientFor(ctx context.Context, credential string) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil && p.credential == credential {
		return p.client, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = c
	p.credential = credential
	return c, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, credential, system, user string) (string, error) {
	log := config.WithContext(ctx)

	c, err := p.clientFor(ctx, credential)
	if err != nil {
		return "", err
	}

	result, err := c.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(system+"\n\n"+user),
		&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.3)},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", classify(err)
	}

	raw := strings.TrimSpace(result.Text())
	log.Debugf("[EXPLAIN] Raw Gemini response:\n%s", raw)
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}
