package quiz

import (
	"github.com/propwijzer/propwijzer/internal/domain"
	domquiz "github.com/propwijzer/propwijzer/internal/domain/quiz"
)

// Session walks one client through the question sequence: strictly linear,
// each question answered exactly once, result computed after the last
// answer. Not safe for concurrent use; the caller owns one session per
// active quiz and sequences access to it.
type Session struct {
	svc     *Service
	index   int
	answers map[string]string
	result  *domquiz.Result
}

// NewSession starts a session at the first question.
func NewSession(svc *Service) *Session {
	return &Session{svc: svc, answers: make(map[string]string)}
}

// Current returns the question awaiting an answer, or false when the
// sequence is exhausted.
func (s *Session) Current() (domquiz.Question, bool) {
	qs := s.svc.def.Questions
	if s.index >= len(qs) {
		return domquiz.Question{}, false
	}
	return qs[s.index], true
}

// Answer records the selected option value for the current question and
// advances. The value is not validated here; unmatched values fall out at
// scoring time.
func (s *Session) Answer(value string) error {
	q, ok := s.Current()
	if !ok {
		return domain.ErrQuizComplete
	}
	s.answers[q.ID] = value
	s.index++
	return nil
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.svc.def.Questions)
}

// Result computes the recommendation once and returns the cached value on
// repeat calls. Fails until the last question is answered.
func (s *Session) Result() (domquiz.Result, error) {
	if !s.Done() {
		return domquiz.Result{}, domain.ErrQuizIncomplete
	}
	if s.result == nil {
		r := s.svc.Calculate(s.answers)
		s.result = &r
	}
	return *s.result, nil
}

// Restart clears all answers and returns to the first question. Idempotent.
func (s *Session) Restart() {
	s.index = 0
	s.answers = make(map[string]string)
	s.result = nil
}
