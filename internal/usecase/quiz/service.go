// Package quiz reduces an answered question sequence to a recommendation
// between the two configured firm outcomes. Pure computation over static
// definitions; one call per completed quiz.
package quiz

import (
	"math"

	domquiz "github.com/propwijzer/propwijzer/internal/domain/quiz"
)

// Confidence clamp bounds. The shown percentage never leaves [55, 92]
// regardless of the true score ratio; presentation tuning, not business
// logic.
const (
	minConfidence = 55
	maxConfidence = 92
)

// maxReasons caps the justification list on the result page.
const maxReasons = 4

// Service computes quiz recommendations from a static definition.
type Service struct {
	def *domquiz.Definition
}

// New creates a quiz service. The definition is assumed validated.
func New(def *domquiz.Definition) *Service {
	return &Service{def: def}
}

// Definition returns the static question/outcome definition.
func (s *Service) Definition() *domquiz.Definition {
	return s.def
}

// Calculate reduces the answer map to a result. Answers are read per
// question in definition order, so identical maps always produce identical
// results. Answer values that match no option contribute nothing.
func (s *Service) Calculate(answers map[string]string) domquiz.Result {
	first, second := s.def.Outcomes[0], s.def.Outcomes[1]

	totals := map[string]int{first.ID: 0, second.ID: 0}
	var tagsSeen []string

	for _, q := range s.def.Questions {
		value, answered := answers[q.ID]
		if !answered {
			continue
		}
		opt, ok := q.OptionByValue(value)
		if !ok {
			// Malformed answer values are skipped, not rejected.
			continue
		}
		for outcome, w := range opt.Weights {
			totals[outcome] += w
		}
		tagsSeen = append(tagsSeen, opt.Tags...)
	}

	// Ties go to the first configured outcome.
	winner, runnerUp := first, second
	if totals[second.ID] > totals[first.ID] {
		winner, runnerUp = second, first
	}

	return domquiz.Result{
		RecommendedFirm: winner.ID,
		RunnerUp:        runnerUp.ID,
		Scores:          totals,
		MatchPercentage: confidence(totals[winner.ID], totals[runnerUp.ID]),
		Reasons:         s.reasons(tagsSeen, winner.ID),
		Tips:            winner.Tips,
	}
}

// confidence converts the score pair to a clamped percentage.
func confidence(winner, loser int) int {
	sum := winner + loser
	pct := 50
	if sum > 0 {
		pct = int(math.Round(float64(winner) / float64(sum) * 100))
	}
	if pct < minConfidence {
		return minConfidence
	}
	if pct > maxConfidence {
		return maxConfidence
	}
	return pct
}

// reasons deduplicates tags preserving first-seen order, resolves each to
// the winner's justification text, drops empty texts, and caps the list.
func (s *Service) reasons(tags []string, winnerID string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}

		text := s.def.Reasons[tag][winnerID]
		if text == "" {
			continue
		}
		out = append(out, text)
		if len(out) == maxReasons {
			break
		}
	}
	return out
}
