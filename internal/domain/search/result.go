package search

// Result is a single search hit.
type Result struct {
	id          string
	resultType  ResultType
	title       string
	description string
	url         string
	priority    int
}

// New creates a search result.
func New(id string, t ResultType, title, description, url string, priority int) Result {
	return Result{
		id: id, resultType: t, title: title,
		description: description, url: url, priority: priority,
	}
}

// ID returns the record identifier.
func (r *Result) ID() string { return r.id }

// Type returns the content category of the hit.
func (r *Result) Type() ResultType { return r.resultType }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Description returns the short description.
func (r *Result) Description() string { return r.description }

// URL returns the target URL.
func (r *Result) URL() string { return r.url }

// Priority returns the final biased score the results are ordered by.
func (r *Result) Priority() int { return r.priority }
