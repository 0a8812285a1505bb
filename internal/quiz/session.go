package quiz

import (
	"time"
)

// Session walks an ordered list of questions: Idle -> Active -> Completed, and back to
// Idle on reset. It is not safe for concurrent use.
type Session struct {
	questions    []Question
	currentIndex int
	answers      []UserAnswer
	active       bool
	completed    bool
	startTime    *time.Time
	endTime      *time.Time

	now func() time.Time
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(opts ...Option) *Session {
	s := &Session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadQuestions replaces the question list and resets the session. Questions without
// an id get "question-<index>".
func (s *Session) LoadQuestions(questions []Question) {
	s.questions = assignIDs(questions)
	s.ResetQuiz()
}

func (s *Session) StartQuiz() bool {
	if len(s.questions) == 0 {
		return false
	}

	now := s.now()
	s.active = true
	s.completed = false
	s.currentIndex = 0
	s.answers = nil
	s.startTime = &now
	s.endTime = nil
	return true
}

// AnswerQuestion records an answer for the current question, replacing an earlier answer
// to the same question, and reports whether it was correct.
func (s *Session) AnswerQuestion(value bool) bool {
	q := s.CurrentQuestion()
	if q == nil || !s.active {
		return false
	}

	answer := UserAnswer{
		QuestionID: q.ID,
		UserAnswer: value,
		IsCorrect:  value == q.CorrectAnswer,
		Timestamp:  s.now(),
	}

	for i := range s.answers {
		if s.answers[i].QuestionID == q.ID {
			s.answers[i] = answer
			return answer.IsCorrect
		}
	}
	s.answers = append(s.answers, answer)
	return answer.IsCorrect
}

// NextQuestion advances the position. On the last question it completes the quiz and
// returns false.
func (s *Session) NextQuestion() bool {
	if s.HasNextQuestion() {
		s.currentIndex++
		return true
	}
	s.CompleteQuiz()
	return false
}

func (s *Session) PreviousQuestion() bool {
	if s.HasPreviousQuestion() {
		s.currentIndex--
		return true
	}
	return false
}

func (s *Session) GoToQuestion(index int) bool {
	if index < 0 || index >= len(s.questions) {
		return false
	}
	s.currentIndex = index
	return true
}

func (s *Session) CompleteQuiz() {
	now := s.now()
	s.active = false
	s.completed = true
	s.endTime = &now
}

// ResetQuiz returns to Idle and keeps the loaded questions.
func (s *Session) ResetQuiz() {
	s.currentIndex = 0
	s.answers = nil
	s.active = false
	s.completed = false
	s.startTime = nil
	s.endTime = nil
}

func (s *Session) ClearQuestions() {
	s.questions = nil
	s.ResetQuiz()
}

func (s *Session) CurrentQuestion() *Question {
	if s.currentIndex < 0 || s.currentIndex >= len(s.questions) {
		return nil
	}
	q := s.questions[s.currentIndex]
	return &q
}

func (s *Session) Question(id string) *Question {
	for _, q := range s.questions {
		if q.ID == id {
			return &q
		}
	}
	return nil
}

// SetExplanation attaches an explanation to the question with the given id.
func (s *Session) SetExplanation(id, explanation string) bool {
	for i := range s.questions {
		if s.questions[i].ID == id {
			text := explanation
			s.questions[i].Explanation = &text
			return true
		}
	}
	return false
}

func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *Session) Answers() []UserAnswer {
	out := make([]UserAnswer, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) CurrentQuestionIndex() int { return s.currentIndex }
func (s *Session) IsQuizActive() bool        { return s.active }
func (s *Session) IsQuizCompleted() bool     { return s.completed }
func (s *Session) TotalQuestions() int       { return len(s.questions) }

func (s *Session) AnswerFor(questionID string) *UserAnswer {
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			return &a
		}
	}
	return nil
}

func (s *Session) IsAnswered(questionID string) bool {
	return s.AnswerFor(questionID) != nil
}

func (s *Session) CorrectAnswers() int {
	count := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			count++
		}
	}
	return count
}

func (s *Session) WrongAnswers() int {
	return len(s.answers) - s.CorrectAnswers()
}

// Accuracy is the share of correct answers over all loaded questions, in percent.
func (s *Session) Accuracy() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.CorrectAnswers()) / float64(len(s.questions)) * 100
}

// TimeSpent is the whole seconds between start and completion.
func (s *Session) TimeSpent() int64 {
	if s.startTime == nil || s.endTime == nil {
		return 0
	}
	return int64(s.endTime.Sub(*s.startTime) / time.Second)
}

func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		return 0
	}
	return float64(s.currentIndex+1) / float64(len(s.questions)) * 100
}

func (s *Session) HasNextQuestion() bool {
	return s.currentIndex < len(s.questions)-1
}

func (s *Session) HasPreviousQuestion() bool {
	return s.currentIndex > 0
}

func (s *Session) Statistics() Statistics {
	return Statistics{
		TotalQuestions: s.TotalQuestions(),
		CorrectAnswers: s.CorrectAnswers(),
		WrongAnswers:   s.WrongAnswers(),
		Accuracy:       s.Accuracy(),
		TimeSpent:      s.TimeSpent(),
	}
}

func (s *Session) Snapshot() State {
	return State{
		Questions:            s.Questions(),
		CurrentQuestionIndex: s.currentIndex,
		Answers:              s.Answers(),
		IsQuizActive:         s.active,
		IsQuizCompleted:      s.completed,
		StartTime:            copyTime(s.startTime),
		EndTime:              copyTime(s.endTime),
	}
}

// Restore replaces the session with a previously captured State. Answers to questions
// that are not in the list are dropped and the position is clamped into range.
func (s *Session) Restore(state State) {
	s.questions = assignIDs(state.Questions)

	known := make(map[string]bool, len(s.questions))
	for _, q := range s.questions {
		known[q.ID] = true
	}
	s.answers = nil
	for _, a := range state.Answers {
		if known[a.QuestionID] {
			s.answers = append(s.answers, a)
		}
	}

	s.currentIndex = state.CurrentQuestionIndex
	if s.currentIndex < 0 || s.currentIndex >= len(s.questions) {
		s.currentIndex = 0
	}

	s.active = state.IsQuizActive && len(s.questions) > 0
	s.completed = state.IsQuizCompleted
	s.startTime = copyTime(state.StartTime)
	s.endTime = copyTime(state.EndTime)
}

func assignIDs(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = QuestionID(i)
		}
		out[i] = q
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
