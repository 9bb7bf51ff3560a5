// Package quiz holds the quiz definitions and result types. Question data
// is static configuration: loaded once, never mutated.
package quiz

import "fmt"

// Option is one selectable answer for a question. Weights map outcome id
// to a non-negative score contribution; Tags feed the reason lookup.
type Option struct {
	Label   string         `yaml:"label"`
	Value   string         `yaml:"value"`
	Weights map[string]int `yaml:"weights"`
	Tags    []string       `yaml:"tags"`
}

// Question is one quiz step with a fixed ordered option list.
type Question struct {
	ID      string   `yaml:"id"`
	Text    string   `yaml:"text"`
	Options []Option `yaml:"options"`
}

// OptionByValue returns the option matching the given value.
func (q *Question) OptionByValue(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Outcome is presentation metadata for one recommendable firm. Only the ID
// participates in scoring; the rest is rendered on the result page.
type Outcome struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Tagline    string   `yaml:"tagline"`
	Highlights []string `yaml:"highlights"`
	ReviewURL  string   `yaml:"review_url"`
	SignupURL  string   `yaml:"signup_url"`
	Tips       []string `yaml:"tips"`
}

// ReasonEntry holds the per-outcome justification text for one answer tag.
// The text for one of the two outcomes may be empty; empty reasons are
// dropped when building the result.
type ReasonEntry map[string]string

// Definition bundles everything the quiz engine needs: the ordered question
// list, the two outcomes in priority order (first wins ties), and the
// tag -> reason table.
type Definition struct {
	Questions []Question             `yaml:"questions"`
	Outcomes  []Outcome              `yaml:"outcomes"`
	Reasons   map[string]ReasonEntry `yaml:"reasons"`
}

// QuestionByID returns the question with the given id.
func (d *Definition) QuestionByID(id string) (Question, bool) {
	for _, q := range d.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// OutcomeByID returns the outcome with the given id.
func (d *Definition) OutcomeByID(id string) (Outcome, bool) {
	for _, o := range d.Outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return Outcome{}, false
}

// Validate checks structural invariants: exactly two outcomes, non-negative
// option weights, and a reason entry for every tag an option references.
func (d *Definition) Validate() error {
	if len(d.Outcomes) != 2 {
		return fmt.Errorf("quiz requires exactly 2 outcomes, got %d", len(d.Outcomes))
	}
	for _, q := range d.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.ID)
		}
		for _, o := range q.Options {
			for outcome, w := range o.Weights {
				if w < 0 {
					return fmt.Errorf("question %q option %q: negative weight for %q",
						q.ID, o.Value, outcome)
				}
			}
			for _, tag := range o.Tags {
				if _, ok := d.Reasons[tag]; !ok {
					return fmt.Errorf("question %q option %q references unknown tag %q",
						q.ID, o.Value, tag)
				}
			}
		}
	}
	return nil
}

// Result is the derived recommendation. Computed once after the last
// answer; never persisted.
type Result struct {
	RecommendedFirm string
	RunnerUp        string
	Scores          map[string]int
	MatchPercentage int
	Reasons         []string
	Tips            []string
}
