// Package catalog holds the static content records the site is built from.
// The catalog is loaded once at startup and never mutated; every consumer
// (search, quiz, tracking, rendering) only reads it.
package catalog

import (
	"fmt"
	"time"

	"github.com/propwijzer/propwijzer/internal/domain"
)

// Firm is a proprietary trading firm listed on the site.
type Firm struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Slug         string   `yaml:"slug"`
	Description  string   `yaml:"description"`
	AffiliateURL string   `yaml:"affiliate_url"`
	Partner      bool     `yaml:"partner"`
	Rating       float64  `yaml:"rating"`
	ProfitSplit  int      `yaml:"profit_split"`
	Tags         []string `yaml:"tags"`
}

// City is a city landing page ("prop trading in Amsterdam").
type City struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Province    string `yaml:"province"`
	Description string `yaml:"description"`
}

// Niche is a category landing page ("futures prop firms").
type Niche struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	SEOKeywords []string `yaml:"seo_keywords"`
}

// Tool is an interactive tool page (calculators, comparisons).
type Tool struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// BlogPost is an article. Body is markdown, rendered on demand.
type BlogPost struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Summary     string    `yaml:"summary"`
	Body        string    `yaml:"body"`
	Tags        []string  `yaml:"tags"`
	PublishedAt time.Time `yaml:"published_at"`
}

// GlossaryTerm is a short trading-jargon definition.
type GlossaryTerm struct {
	ID              string `yaml:"id"`
	Term            string `yaml:"term"`
	Slug            string `yaml:"slug"`
	ShortDefinition string `yaml:"short_definition"`
}

// StaticPage is a fixed site page (about, contact, disclaimer).
type StaticPage struct {
	Title       string `yaml:"title"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// Catalog aggregates every content collection.
type Catalog struct {
	Firms    []Firm         `yaml:"firms"`
	Cities   []City         `yaml:"cities"`
	Niches   []Niche        `yaml:"niches"`
	Tools    []Tool         `yaml:"tools"`
	Posts    []BlogPost     `yaml:"posts"`
	Glossary []GlossaryTerm `yaml:"glossary"`
	Pages    []StaticPage   `yaml:"pages"`
}

// FirmByID returns the firm with the given id.
func (c *Catalog) FirmByID(id string) (Firm, error) {
	for _, f := range c.Firms {
		if f.ID == id {
			return f, nil
		}
	}
	return Firm{}, fmt.Errorf("%w: %s", domain.ErrFirmNotFound, id)
}

// FirmBySlug returns the firm with the given slug.
func (c *Catalog) FirmBySlug(slug string) (Firm, error) {
	for _, f := range c.Firms {
		if f.Slug == slug {
			return f, nil
		}
	}
	return Firm{}, fmt.Errorf("%w: %s", domain.ErrFirmNotFound, slug)
}

// PostBySlug returns the blog post with the given slug.
func (c *Catalog) PostBySlug(slug string) (BlogPost, error) {
	for _, p := range c.Posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
}

// Validate checks structural invariants: non-empty identifiers and names,
// unique firm ids, affiliate URLs present on every firm.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Firms))
	for _, f := range c.Firms {
		if f.ID == "" || f.Name == "" {
			return fmt.Errorf("%w: firm with empty id or name", domain.ErrInvalidCatalog)
		}
		if _, dup := seen[f.ID]; dup {
			return fmt.Errorf("%w: duplicate firm id %q", domain.ErrInvalidCatalog, f.ID)
		}
		seen[f.ID] = struct{}{}
		if f.AffiliateURL == "" {
			return fmt.Errorf("%w: firm %q has no affiliate url", domain.ErrInvalidCatalog, f.ID)
		}
	}
	for _, p := range c.Posts {
		if p.Slug == "" || p.Title == "" {
			return fmt.Errorf("%w: post with empty slug or title", domain.ErrInvalidCatalog)
		}
	}
	for _, g := range c.Glossary {
		if g.Term == "" {
			return fmt.Errorf("%w: glossary entry with empty term", domain.ErrInvalidCatalog)
		}
	}
	return nil
}
