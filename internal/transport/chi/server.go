// Package chi exposes the site API over HTTP: search, quiz, blog content,
// the affiliate redirect, click statistics, health, and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/propwijzer/propwijzer/internal/content"
	"github.com/propwijzer/propwijzer/internal/domain"
	"github.com/propwijzer/propwijzer/internal/domain/catalog"
	domsearch "github.com/propwijzer/propwijzer/internal/domain/search"
	"github.com/propwijzer/propwijzer/internal/metrics"
	healthuc "github.com/propwijzer/propwijzer/internal/usecase/health"
	quizuc "github.com/propwijzer/propwijzer/internal/usecase/quiz"
	searchuc "github.com/propwijzer/propwijzer/internal/usecase/search"
	trackinguc "github.com/propwijzer/propwijzer/internal/usecase/tracking"
)

// Error codes returned in the JSON error envelope.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeUnauthorized  = "unauthorized"
	codeInternalError = "internal_error"
)

// statsDaysMax bounds the click stats window.
const statsDaysMax = 365

// Server wires the use case services to HTTP handlers.
type Server struct {
	search   *searchuc.Service
	quiz     *quizuc.Service
	tracking *trackinguc.Service
	health   *healthuc.Service
	renderer *content.Renderer
	cat      *catalog.Catalog
	logger   *zap.Logger

	defaultLimit int
	maxLimit     int
}

// NewServer creates the HTTP API server.
func NewServer(
	search *searchuc.Service,
	quiz *quizuc.Service,
	tracking *trackinguc.Service,
	health *healthuc.Service,
	renderer *content.Renderer,
	cat *catalog.Catalog,
	logger *zap.Logger,
	defaultLimit, maxLimit int,
) *Server {
	return &Server{
		search:   search,
		quiz:     quiz,
		tracking: tracking,
		health:   health,
		renderer: renderer,
		cat:      cat,
		logger:   logger,

		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Register attaches all routes. adminKeys guard the stats subtree only.
func (s *Server) Register(r chi.Router, adminKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/go/{firm}", s.Redirect)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/search", s.Search)
		api.Get("/search/popular", s.PopularSearches)
		api.Get("/quiz/questions", s.QuizQuestions)
		api.Post("/quiz/result", s.QuizResult)
		api.Get("/blog/{slug}", s.BlogPost)

		api.Route("/stats", func(st chi.Router) {
			st.Use(BearerAuthMiddleware(adminKeys))
			st.Get("/clicks", s.ClickStats)
		})
	})
}

// searchResultItem is the wire shape of one search hit.
type searchResultItem struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	TypeLabel   string `json:"type_label"`
	TypeColor   string `json:"type_color"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Priority    int    `json:"priority"`
}

// Search handles GET /api/v1/search?q=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := s.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	results := s.search.Search(r.Context(), query, limit)

	outcome := "hit"
	switch {
	case len([]rune(strings.TrimSpace(query))) < 2:
		outcome = "short"
	case len(results) == 0:
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// PopularSearches handles GET /api/v1/search/popular.
func (s *Server) PopularSearches(w http.ResponseWriter, r *http.Request) {
	items := s.search.PopularSearches()
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// QuizQuestions handles GET /api/v1/quiz/questions. Weights and tags stay
// server-side; clients only see labels and values.
func (s *Server) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	type optionItem struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}
	type questionItem struct {
		ID      string       `json:"id"`
		Text    string       `json:"text"`
		Options []optionItem `json:"options"`
	}

	def := s.quiz.Definition()
	items := make([]questionItem, len(def.Questions))
	for i, q := range def.Questions {
		opts := make([]optionItem, len(q.Options))
		for j, o := range q.Options {
			opts[j] = optionItem{Label: o.Label, Value: o.Value}
		}
		items[i] = questionItem{ID: q.ID, Text: q.Text, Options: opts}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// QuizResult handles POST /api/v1/quiz/result.
func (s *Server) QuizResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "answers is required")
		return
	}

	result := s.quiz.Calculate(req.Answers)
	metrics.QuizResultsTotal.WithLabelValues(result.RecommendedFirm).Inc()

	resp := map[string]any{
		"recommended_firm": result.RecommendedFirm,
		"runner_up":        result.RunnerUp,
		"scores":           result.Scores,
		"match_percentage": result.MatchPercentage,
		"reasons":          result.Reasons,
		"tips":             result.Tips,
	}
	if profile, ok := s.quiz.Definition().OutcomeByID(result.RecommendedFirm); ok {
		resp["profile"] = map[string]any{
			"name":       profile.Name,
			"tagline":    profile.Tagline,
			"highlights": profile.Highlights,
			"review_url": profile.ReviewURL,
			"signup_url": profile.SignupURL,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// BlogPost handles GET /api/v1/blog/{slug}: post metadata plus the body
// rendered to an HTML fragment.
func (s *Server) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := s.cat.PostBySlug(slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	htmlBody, err := s.renderer.Render(post.Body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"summary":      post.Summary,
		"html":         htmlBody,
		"tags":         post.Tags,
		"published_at": post.PublishedAt.UTC().Format(time.RFC3339),
	})
}

// Redirect handles GET /go/{firm}: records the click and 302s to the
// affiliate URL. The identifier may be a firm id or slug.
func (s *Server) Redirect(w http.ResponseWriter, r *http.Request) {
	firmRef := chi.URLParam(r, "firm")

	firm, err := s.tracking.Resolve(firmRef)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	s.tracking.Record(r.Context(), firm.ID, r.URL.Query().Get("src"), r.Referer())
	metrics.AffiliateClicksTotal.WithLabelValues(firm.ID).Inc()

	// Outbound affiliate hops must never be cached or the tracking is lost.
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, firm.AffiliateURL, http.StatusFound)
}

// ClickStats handles GET /api/v1/stats/clicks?firm=&days= (admin).
func (s *Server) ClickStats(w http.ResponseWriter, r *http.Request) {
	firmID := r.URL.Query().Get("firm")
	if firmID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "firm is required")
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}
	if days > statsDaysMax {
		days = statsDaysMax
	}

	counts, err := s.tracking.Stats(r.Context(), firmID, days)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"firm":  firmID,
		"days":  counts,
		"total": sumCounts(counts),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	// A degraded click store still serves the site; only report it.
	writeJSON(w, http.StatusOK, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToItem(r *domsearch.Result) searchResultItem {
	return searchResultItem{
		ID:          r.ID(),
		Type:        string(r.Type()),
		TypeLabel:   r.Type().Label(),
		TypeColor:   r.Type().Color(),
		Title:       r.Title(),
		Description: r.Description(),
		URL:         r.URL(),
		Priority:    r.Priority(),
	}
}

func sumCounts(counts []domain.DayCount) int64 {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrFirmNotFound,
		domain.ErrPostNotFound,
		domain.ErrTermNotFound,
		domain.ErrQuestionNotFound,
		domain.ErrQuizIncomplete,
		domain.ErrQuizComplete,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	switch {
	case errors.Is(err, domain.ErrFirmNotFound),
		errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrTermNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, msg)
	case errors.Is(err, domain.ErrQuizIncomplete),
		errors.Is(err, domain.ErrQuizComplete),
		errors.Is(err, domain.ErrQuestionNotFound):
		writeError(w, http.StatusBadRequest, codeBadRequest, msg)
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
