package explain

import (
	"context"
	"strings"

	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/metrics"
)

type Service interface {
	RequestExplanation(ctx context.Context, questionText string, correctAnswer bool, credential string) (string, error)
	TestConnection(ctx context.Context, credential string) (*ConnectionResponse, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) RequestExplanation(ctx context.Context, questionText string, correctAnswer bool, credential string) (explanation string, err error) {
	defer func() { metrics.ObserveExplanation(err) }()

	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", ErrInvalidCredential
	}
	questionText = strings.TrimSpace(questionText)
	if questionText == "" {
		return "", ErrEmptyQuestion
	}

	explanation, err = s.provider.SendPrompt(ctx, credential, systemPrompt, BuildUserPrompt(questionText, correctAnswer))
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Explanation request failed")
		return "", err
	}
	return explanation, nil
}

func (s *service) TestConnection(ctx context.Context, credential string) (*ConnectionResponse, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrInvalidCredential
	}

	msg, err := s.provider.SendPrompt(ctx, credential, systemPrompt, connectionPrompt)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Connection test failed")
		return nil, err
	}
	return &ConnectionResponse{Message: msg, Model: s.provider.Model()}, nil
}
