package session

import (
	"context"
	"errors"

	"github.com/saulo-duarte/binary-brain/internal/persistence"
)

const (
	storageKey     = "binaryBrain_persistedData"
	fileStorageKey = "binaryBrain_uploadedFile"
)

type QuizRepository interface {
	Load(ctx context.Context) (*PersistedQuizData, error)
	Save(ctx context.Context, data PersistedQuizData) error
	SaveFile(ctx context.Context, file StoredFile) error
	LoadFile(ctx context.Context) (*StoredFile, error)
	Clear(ctx context.Context) error
}

type quizRepository struct {
	store persistence.Store
}

func NewRepository(store persistence.Store) QuizRepository {
	return &quizRepository{store: store}
}

func (r *quizRepository) Load(ctx context.Context) (*PersistedQuizData, error) {
	var data PersistedQuizData
	if _, err := r.store.Load(ctx, storageKey, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *quizRepository) Save(ctx context.Context, data PersistedQuizData) error {
	_, err := r.store.Save(ctx, storageKey, data)
	return err
}

func (r *quizRepository) SaveFile(ctx context.Context, file StoredFile) error {
	_, err := r.store.Save(ctx, fileStorageKey, file)
	return err
}

func (r *quizRepository) LoadFile(ctx context.Context) (*StoredFile, error) {
	var file StoredFile
	if _, err := r.store.Load(ctx, fileStorageKey, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// Clear removes both the quiz document and the stored upload.
func (r *quizRepository) Clear(ctx context.Context) error {
	return errors.Join(
		r.store.Clear(ctx, storageKey),
		r.store.Clear(ctx, fileStorageKey),
	)
}
