package search

// ResultType is the content category a search hit belongs to.
type ResultType string

// Result type constants. The order of declaration matches the order
// collections are scanned during a search.
const (
	TypeFirm     ResultType = "firm"
	TypeCity     ResultType = "city"
	TypeNiche    ResultType = "niche"
	TypeTool     ResultType = "tool"
	TypeBlog     ResultType = "blog"
	TypeGlossary ResultType = "glossary"
	TypePage     ResultType = "page"
)

// IsValid checks if the type is one of the supported values.
func (t ResultType) IsValid() bool {
	switch t {
	case TypeFirm, TypeCity, TypeNiche, TypeTool, TypeBlog, TypeGlossary, TypePage:
		return true
	}
	return false
}

// Dutch display labels per result type, used by the rendering layer.
var typeLabels = map[ResultType]string{
	TypeFirm:     "Prop firm",
	TypeCity:     "Stad",
	TypeNiche:    "Categorie",
	TypeTool:     "Tool",
	TypeBlog:     "Artikel",
	TypeGlossary: "Begrip",
	TypePage:     "Pagina",
}

// Style tokens per result type, consumed by the frontend as CSS class hints.
var typeColors = map[ResultType]string{
	TypeFirm:     "blue",
	TypeCity:     "green",
	TypeNiche:    "purple",
	TypeTool:     "orange",
	TypeBlog:     "teal",
	TypeGlossary: "gray",
	TypePage:     "slate",
}

// Label returns the display label for the type, with a generic fallback
// for unknown values.
func (t ResultType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return "Resultaat"
}

// Color returns the style token for the type, with a neutral fallback
// for unknown values.
func (t ResultType) Color() string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return "gray"
}
