package quiz

import (
	"fmt"
	"time"
)

type Question struct {
	ID            string  `json:"id"`
	Text          string  `json:"text"`
	CorrectAnswer bool    `json:"correct_answer"`
	Explanation   *string `json:"explanation,omitempty"`
}

type UserAnswer struct {
	QuestionID string    `json:"question_id"`
	UserAnswer bool      `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	Timestamp  time.Time `json:"timestamp"`
}

type Statistics struct {
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	WrongAnswers   int     `json:"wrong_answers"`
	Accuracy       float64 `json:"accuracy"`
	TimeSpent      int64   `json:"time_spent"`
}

// State is a point-in-time copy of a Session.
type State struct {
	Questions            []Question   `json:"questions"`
	CurrentQuestionIndex int          `json:"current_question_index"`
	Answers              []UserAnswer `json:"answers"`
	IsQuizActive         bool         `json:"is_quiz_active"`
	IsQuizCompleted      bool         `json:"is_quiz_completed"`
	StartTime            *time.Time   `json:"start_time,omitempty"`
	EndTime              *time.Time   `json:"end_time,omitempty"`
}

func QuestionID(index int) string {
	return fmt.Sprintf("question-%d", index)
}
