package session

import (
	"github.com/saulo-duarte/binary-brain/internal/answer"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
)

type AnswerDTO struct {
	Answer *bool `json:"answer"`
}

type StateResponse struct {
	quiz.State
	CurrentQuestion *quiz.Question  `json:"current_question"`
	Statistics      quiz.Statistics `json:"statistics"`
	Progress        float64         `json:"progress"`
	HasNext         bool            `json:"has_next"`
	HasPrevious     bool            `json:"has_previous"`
	File            *UploadedFile   `json:"file,omitempty"`
	Format          answer.Format   `json:"format,omitempty"`
}

// ActionResponse reports whether a navigation or lifecycle call took effect.
type ActionResponse struct {
	Result bool          `json:"result"`
	State  StateResponse `json:"state"`
}

type AnswerResponse struct {
	Recorded bool          `json:"recorded"`
	Correct  bool          `json:"correct"`
	State    StateResponse `json:"state"`
}

type ExplanationResponse struct {
	QuestionID  string `json:"question_id"`
	Explanation string `json:"explanation"`
}
