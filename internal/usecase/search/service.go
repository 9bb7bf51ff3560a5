// Package search scores free-text queries against the whole content catalog
// and returns one merged, ranked result list. Pure computation over the
// in-memory catalog; safe to call from any number of concurrent requests.
package search

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/propwijzer/propwijzer/internal/domain/catalog"
	domsearch "github.com/propwijzer/propwijzer/internal/domain/search"
	"github.com/propwijzer/propwijzer/internal/logger"
)

// minQueryLen is the minimum query length (in runes, after trimming) below
// which no scoring is attempted.
const minQueryLen = 2

// Priority bias per result type, added after the raw match score. Commercial
// content ranks above reference content on otherwise similar scores. These
// are presentation-tuning constants, not business rules.
const (
	partnerBoost = 10
	cityBias     = -5
	nicheBias    = -10
	blogBias     = -5
	glossaryBias = -15
	pageBias     = -20
)

// Secondary-field weights, discounting matches outside the title/name field.
const (
	firmDescWeight    = 0.8
	glossaryDefWeight = 0.6
	pageDescWeight    = 0.6
	keywordMatchScore = 60 // flat score when a niche keyword or blog tag hits
	keywordMatchFloor = 50 // keyword/tag must score above this to count
)

// Service ranks catalog records against free-text queries.
type Service struct {
	cat     *catalog.Catalog
	popular []string
	queries QueryRecorder
}

// New creates a search service over the given catalog. popular is the fixed
// suggestion list; queries may be nil.
func New(cat *catalog.Catalog, popular []string, queries QueryRecorder) *Service {
	return &Service{cat: cat, popular: popular, queries: queries}
}

// Search scores the query against every record of every collection, drops
// non-matches, and returns at most limit results ordered by descending
// priority. Queries shorter than two runes return an empty list.
func (s *Service) Search(ctx context.Context, query string, limit int) []domsearch.Result {
	q := Normalize(query)
	if len([]rune(q)) < minQueryLen || limit <= 0 {
		return nil
	}

	s.recordQuery(ctx, q)

	results := make([]domsearch.Result, 0, 16)
	results = append(results, s.scoreFirms(q)...)
	results = append(results, s.scoreCities(q)...)
	results = append(results, s.scoreNiches(q)...)
	results = append(results, s.scoreTools(q)...)
	results = append(results, s.scorePosts(q)...)
	results = append(results, s.scoreGlossary(q)...)
	results = append(results, s.scorePages(q)...)

	// Stable: ties keep the fixed collection scan order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Priority() > results[j].Priority()
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// PopularSearches returns the configured static suggestion list.
func (s *Service) PopularSearches() []string {
	return s.popular
}

func (s *Service) scoreFirms(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, f := range s.cat.Firms {
		score := scoreNorm(q, Normalize(f.Name))
		if sec := weighted(scoreNorm(q, Normalize(f.Description)), firmDescWeight); sec > score {
			score = sec
		}
		if score == 0 {
			continue
		}
		if f.Partner {
			score += partnerBoost
		}
		out = append(out, domsearch.New(
			f.ID, domsearch.TypeFirm, f.Name, f.Description, "/prop-firms/"+f.Slug, score,
		))
	}
	return out
}

func (s *Service) scoreCities(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, c := range s.cat.Cities {
		score := scoreNorm(q, Normalize(c.Name))
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			c.ID, domsearch.TypeCity, c.Name, c.Description, "/steden/"+c.Slug, score+cityBias,
		))
	}
	return out
}

func (s *Service) scoreNiches(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, n := range s.cat.Niches {
		score := scoreNorm(q, Normalize(n.Name))
		if anyAbove(q, n.SEOKeywords, keywordMatchFloor) && keywordMatchScore > score {
			score = keywordMatchScore
		}
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			n.ID, domsearch.TypeNiche, n.Name, n.Description, "/categorie/"+n.Slug, score+nicheBias,
		))
	}
	return out
}

func (s *Service) scoreTools(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, t := range s.cat.Tools {
		score := scoreNorm(q, Normalize(t.Name))
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			t.ID, domsearch.TypeTool, t.Name, t.Description, "/tools/"+t.Slug, score,
		))
	}
	return out
}

func (s *Service) scorePosts(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, p := range s.cat.Posts {
		score := scoreNorm(q, Normalize(p.Title))
		if anyAbove(q, p.Tags, keywordMatchFloor) && keywordMatchScore > score {
			score = keywordMatchScore
		}
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			p.ID, domsearch.TypeBlog, p.Title, p.Summary, "/blog/"+p.Slug, score+blogBias,
		))
	}
	return out
}

func (s *Service) scoreGlossary(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, g := range s.cat.Glossary {
		score := scoreNorm(q, Normalize(g.Term))
		if sec := weighted(scoreNorm(q, Normalize(g.ShortDefinition)), glossaryDefWeight); sec > score {
			score = sec
		}
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			g.ID, domsearch.TypeGlossary, g.Term, g.ShortDefinition,
			"/woordenlijst/"+g.Slug, score+glossaryBias,
		))
	}
	return out
}

func (s *Service) scorePages(q string) []domsearch.Result {
	var out []domsearch.Result
	for _, p := range s.cat.Pages {
		score := scoreNorm(q, Normalize(p.Title))
		if sec := weighted(scoreNorm(q, Normalize(p.Description)), pageDescWeight); sec > score {
			score = sec
		}
		if score == 0 {
			continue
		}
		out = append(out, domsearch.New(
			p.Path, domsearch.TypePage, p.Title, p.Description, p.Path, score+pageBias,
		))
	}
	return out
}

// recordQuery bumps the analytics counter. Failures are logged and ignored;
// counting must never affect a search response.
func (s *Service) recordQuery(ctx context.Context, q string) {
	if s.queries == nil {
		return
	}
	if err := s.queries.IncrQuery(ctx, q); err != nil {
		logger.FromContext(ctx).Warn("record search query", zap.Error(err))
	}
}

func weighted(score int, weight float64) int {
	return int(float64(score) * weight)
}

// anyAbove reports whether any candidate scores above floor against q.
func anyAbove(q string, candidates []string, floor int) bool {
	for _, c := range candidates {
		if scoreNorm(q, Normalize(c)) > floor {
			return true
		}
	}
	return false
}
