package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/binary-brain/internal/answer"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
)

type UploadedFile struct {
	ID           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	Type         string    `json:"type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// StoredFile is the raw upload kept next to the quiz document.
type StoredFile struct {
	UploadedFile
	Data []byte `json:"data"`
}

// PersistedQuizData is the document kept under the quiz storage key.
type PersistedQuizData struct {
	File         *UploadedFile `json:"file,omitempty"`
	State        quiz.State    `json:"quiz_state"`
	Format       answer.Format `json:"format,omitempty"`
	LastModified time.Time     `json:"last_modified"`
}
