package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/binary-brain/internal/answer"
	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/ingest"
	"github.com/saulo-duarte/binary-brain/internal/metrics"
	"github.com/saulo-duarte/binary-brain/internal/persistence"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
	"github.com/sirupsen/logrus"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoFile           = errors.New("no uploaded file stored")
)

type Explainer interface {
	RequestExplanation(ctx context.Context, questionText string, correctAnswer bool, credential string) (string, error)
}

type CredentialSource interface {
	APIKey() string
}

type Service interface {
	Restore(ctx context.Context) error
	Upload(ctx context.Context, src ingest.Source) ingest.FileUploadResult
	File(ctx context.Context) (*StoredFile, error)
	State(ctx context.Context) StateResponse
	Start(ctx context.Context) ActionResponse
	Answer(ctx context.Context, value bool) AnswerResponse
	Next(ctx context.Context) ActionResponse
	Previous(ctx context.Context) ActionResponse
	GoTo(ctx context.Context, index int) ActionResponse
	Reset(ctx context.Context) StateResponse
	Clear(ctx context.Context) StateResponse
	Statistics(ctx context.Context) quiz.Statistics
	Explain(ctx context.Context, questionID string) (string, error)
}

type sessionService struct {
	mu       sync.Mutex
	quiz     *quiz.Session
	file     *UploadedFile
	format   answer.Format
	repo     QuizRepository
	ingestor ingest.Ingestor
	explain  Explainer
	creds    CredentialSource
	now      func() time.Time
	shared   bool
}

type Option func(*sessionService)

func WithClock(now func() time.Time) Option {
	return func(s *sessionService) { s.now = now }
}

// WithSharedState reloads the quiz from the repository before every call. Use it when
// several processes serve the same quiz through a shared backend.
func WithSharedState() Option {
	return func(s *sessionService) { s.shared = true }
}

func NewService(repo QuizRepository, ingestor ingest.Ingestor, explainer Explainer, creds CredentialSource, opts ...Option) Service {
	s := &sessionService{
		repo:     repo,
		ingestor: ingestor,
		explain:  explainer,
		creds:    creds,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.quiz = quiz.NewSession(quiz.WithClock(s.now))
	return s
}

// Restore loads the last persisted quiz. A missing document is not an error.
func (s *sessionService) Restore(ctx context.Context) error {
	log := config.WithContext(ctx)

	data, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			log.Info("No persisted quiz found")
			return nil
		}
		return fmt.Errorf("failed to restore persisted quiz: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(data)
	log.WithField("questions", s.quiz.TotalQuestions()).Info("Persisted quiz restored")
	return nil
}

func (s *sessionService) Upload(ctx context.Context, src ingest.Source) ingest.FileUploadResult {
	log := config.WithContext(ctx)

	result := s.ingestor.Ingest(ctx, src)
	if !result.Success {
		return result
	}

	data, err := readAll(src)
	if err != nil {
		log.WithError(err).Warn("Failed to keep a copy of the uploaded file")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.quiz.LoadQuestions(result.Questions)
	s.file = &UploadedFile{
		ID:           uuid.New(),
		OriginalName: src.Name(),
		Size:         src.Size(),
		Type:         src.ContentType(),
		UploadedAt:   s.now(),
	}
	s.format = result.Format
	result.Questions = s.quiz.Questions()
	s.persist(ctx)

	if data != nil {
		if err := s.repo.SaveFile(ctx, StoredFile{UploadedFile: *s.file, Data: data}); err != nil {
			log.WithError(err).Warn("Failed to persist uploaded file")
		}
	}
	return result
}

// File returns the last uploaded file with its content.
func (s *sessionService) File(ctx context.Context) (*StoredFile, error) {
	s.mu.Lock()
	s.refresh(ctx)
	current := s.file
	s.mu.Unlock()

	if current == nil {
		return nil, ErrNoFile
	}

	stored, err := s.repo.LoadFile(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, ErrNoFile
		}
		return nil, err
	}
	if stored.ID != current.ID {
		return nil, ErrNoFile
	}
	return stored, nil
}

func (s *sessionService) State(ctx context.Context) StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	return s.snapshot()
}

func (s *sessionService) Start(ctx context.Context) ActionResponse {
	return s.act(ctx, s.quiz.StartQuiz)
}

func (s *sessionService) Answer(ctx context.Context, value bool) AnswerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	recorded := s.quiz.IsQuizActive() && s.quiz.CurrentQuestion() != nil
	correct := s.quiz.AnswerQuestion(value)
	if recorded {
		metrics.ObserveAnswer(correct)
		s.persist(ctx)
	}
	return AnswerResponse{Recorded: recorded, Correct: correct, State: s.snapshot()}
}

func (s *sessionService) Next(ctx context.Context) ActionResponse {
	return s.act(ctx, s.quiz.NextQuestion)
}

func (s *sessionService) Previous(ctx context.Context) ActionResponse {
	return s.act(ctx, s.quiz.PreviousQuestion)
}

func (s *sessionService) GoTo(ctx context.Context, index int) ActionResponse {
	return s.act(ctx, func() bool { return s.quiz.GoToQuestion(index) })
}

func (s *sessionService) Reset(ctx context.Context) StateResponse {
	return s.act(ctx, func() bool {
		s.quiz.ResetQuiz()
		return true
	}).State
}

// Clear drops the questions and removes the persisted quiz from every backend.
func (s *sessionService) Clear(ctx context.Context) StateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quiz.ClearQuestions()
	s.file = nil
	s.format = ""
	if err := s.repo.Clear(ctx); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to clear persisted quiz")
	}
	return s.snapshot()
}

func (s *sessionService) Statistics(ctx context.Context) quiz.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	return s.quiz.Statistics()
}

// Explain returns the cached explanation for a question or asks the explainer for one.
// The lock is not held while the explainer runs, so the result is only cached when the
// question is still the same afterwards.
func (s *sessionService) Explain(ctx context.Context, questionID string) (string, error) {
	log := config.WithContext(ctx).WithField("question_id", questionID)

	s.mu.Lock()
	s.refresh(ctx)
	q := s.quiz.Question(questionID)
	s.mu.Unlock()

	if q == nil {
		return "", ErrQuestionNotFound
	}
	if q.Explanation != nil && *q.Explanation != "" {
		return *q.Explanation, nil
	}

	explanation, err := s.explain.RequestExplanation(ctx, q.Text, q.CorrectAnswer, s.creds.APIKey())
	if err != nil {
		log.WithError(err).Error("Failed to get explanation")
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	current := s.quiz.Question(questionID)
	if current == nil || current.Text != q.Text || current.CorrectAnswer != q.CorrectAnswer {
		log.Info("Question changed while explaining, result not cached")
		return explanation, nil
	}
	if s.quiz.SetExplanation(questionID, explanation) {
		s.persist(ctx)
	}
	return explanation, nil
}

func (s *sessionService) act(ctx context.Context, fn func() bool) ActionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(ctx)
	ok := fn()
	if ok || s.quiz.IsQuizCompleted() {
		s.persist(ctx)
	}
	return ActionResponse{Result: ok, State: s.snapshot()}
}

// refresh must be called with mu held. It is a no-op unless the state is shared.
func (s *sessionService) refresh(ctx context.Context) {
	if !s.shared {
		return
	}

	data, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		s.quiz.ClearQuestions()
		s.file = nil
		s.format = ""
	case err != nil:
		config.WithContext(ctx).WithError(err).Warn("Failed to reload quiz, using local copy")
	default:
		s.apply(data)
	}
}

func (s *sessionService) apply(data *PersistedQuizData) {
	s.quiz.Restore(data.State)
	s.file = data.File
	s.format = data.Format
}

// persist must be called with mu held. Failures are logged and otherwise ignored.
func (s *sessionService) persist(ctx context.Context) {
	data := PersistedQuizData{
		File:         s.file,
		State:        s.quiz.Snapshot(),
		Format:       s.format,
		LastModified: s.now(),
	}
	if err := s.repo.Save(ctx, data); err != nil {
		config.WithContext(ctx).WithFields(logrus.Fields{
			"questions": len(data.State.Questions),
		}).WithError(err).Warn("Failed to persist quiz")
	}
}

func (s *sessionService) snapshot() StateResponse {
	return StateResponse{
		State:           s.quiz.Snapshot(),
		CurrentQuestion: s.quiz.CurrentQuestion(),
		Statistics:      s.quiz.Statistics(),
		Progress:        s.quiz.Progress(),
		HasNext:         s.quiz.HasNextQuestion(),
		HasPrevious:     s.quiz.HasPreviousQuestion(),
		File:            s.file,
		Format:          s.format,
	}
}

func readAll(src ingest.Source) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
