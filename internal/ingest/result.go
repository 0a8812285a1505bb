package ingest

import (
	"github.com/saulo-duarte/binary-brain/internal/answer"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
)

type FileUploadResult struct {
	Success   bool            `json:"success"`
	Questions []quiz.Question `json:"questions"`
	Errors    []string        `json:"errors,omitempty"`
	Format    answer.Format   `json:"format,omitempty"`
}

func failure(errs ...string) FileUploadResult {
	return FileUploadResult{
		Success:   false,
		Questions: []quiz.Question{},
		Errors:    errs,
	}
}
