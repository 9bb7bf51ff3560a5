package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/propwijzer/propwijzer/internal/content"
	"github.com/propwijzer/propwijzer/internal/db/memory"
	"github.com/propwijzer/propwijzer/internal/domain/catalog"
	domquiz "github.com/propwijzer/propwijzer/internal/domain/quiz"
	clickrepo "github.com/propwijzer/propwijzer/internal/repository/click"
	healthuc "github.com/propwijzer/propwijzer/internal/usecase/health"
	quizuc "github.com/propwijzer/propwijzer/internal/usecase/quiz"
	searchuc "github.com/propwijzer/propwijzer/internal/usecase/search"
	trackinguc "github.com/propwijzer/propwijzer/internal/usecase/tracking"
)

func testRouter(t *testing.T, adminKeys []string) chi.Router {
	t.Helper()

	cat := &catalog.Catalog{
		Firms: []catalog.Firm{
			{ID: "ftmo", Name: "FTMO", Slug: "ftmo",
				Description:  "De bekendste prop firm van Europa",
				AffiliateURL: "https://trader.ftmo.com/?affiliates=test", Partner: true},
		},
		Posts: []catalog.BlogPost{
			{ID: "post-1", Title: "Wat is een prop firm?", Slug: "wat-is-een-prop-firm",
				Summary: "De basis.", Body: "# Uitleg\n\nJe handelt met **virtueel kapitaal**."},
		},
	}

	def := &domquiz.Definition{
		Outcomes: []domquiz.Outcome{
			{ID: "ftmo", Name: "FTMO", Tagline: "De bewezen keuze", SignupURL: "/go/ftmo?src=quiz"},
			{ID: "fundednext", Name: "FundedNext"},
		},
		Questions: []domquiz.Question{
			{
				ID:   "ervaring",
				Text: "Hoeveel ervaring heb je?",
				Options: []domquiz.Option{
					{Label: "Starter", Value: "starter", Weights: map[string]int{"ftmo": 0, "fundednext": 3}},
					{Label: "Ervaren", Value: "ervaren", Weights: map[string]int{"ftmo": 3, "fundednext": 0}},
				},
			},
		},
		Reasons: map[string]domquiz.ReasonEntry{},
	}

	store := memory.NewStore()
	clicks := clickrepo.New(store, "test:", 90*24*time.Hour)

	srv := NewServer(
		searchuc.New(cat, []string{"ftmo"}, clicks),
		quizuc.New(def),
		trackinguc.New(cat, clicks, nil),
		healthuc.New(store),
		content.NewRenderer(),
		cat,
		zap.NewNop(),
		8, 50,
	)

	r := chi.NewRouter()
	srv.Register(r, adminKeys)
	return r
}

func doRequest(t *testing.T, r chi.Router, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v\n%s", err, rr.Body.String())
	}
	return out
}

func TestSearch_ReturnsRankedItems(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/search?q=ftmo", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	items := body["items"].([]any)
	if len(items) == 0 {
		t.Fatal("expected results for ftmo")
	}
	first := items[0].(map[string]any)
	if first["id"] != "ftmo" || first["type"] != "firm" {
		t.Errorf("unexpected top result: %v", first)
	}
	if first["type_label"] != "Prop firm" {
		t.Errorf("expected Dutch type label, got %v", first["type_label"])
	}
}

func TestSearch_ShortQueryReturnsEmptyList(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/search?q=f", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["total"].(float64) != 0 {
		t.Errorf("expected empty result set, got %v", body)
	}
}

func TestSearch_InvalidLimit(t *testing.T) {
	r := testRouter(t, nil)

	for _, limit := range []string{"abc", "-1"} {
		rr := doRequest(t, r, "GET", "/api/v1/search?q=ftmo&limit="+limit, "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected 400, got %d", limit, rr.Code)
		}
	}
}

func TestPopularSearches(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/search/popular", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	items := body["items"].([]any)
	if len(items) != 1 || items[0] != "ftmo" {
		t.Errorf("unexpected popular searches: %v", items)
	}
}

func TestQuizQuestions_HidesWeights(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/quiz/questions", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	if strings.Contains(rr.Body.String(), "weights") {
		t.Error("option weights must not be exposed to clients")
	}

	body := decodeBody(t, rr)
	items := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 question, got %d", len(items))
	}
	q := items[0].(map[string]any)
	if q["id"] != "ervaring" {
		t.Errorf("unexpected question: %v", q)
	}
}

func TestQuizResult(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "POST", "/api/v1/quiz/result",
		`{"answers":{"ervaring":"ervaren"}}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["recommended_firm"] != "ftmo" {
		t.Errorf("expected ftmo recommendation, got %v", body["recommended_firm"])
	}
	profile := body["profile"].(map[string]any)
	if profile["tagline"] != "De bewezen keuze" {
		t.Errorf("expected winner profile attached, got %v", profile)
	}
}

func TestQuizResult_BadRequests(t *testing.T) {
	r := testRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing answers", "{}"},
		{"empty answers", `{"answers":{}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, r, "POST", "/api/v1/quiz/result", tc.body, nil)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestBlogPost_RendersMarkdown(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/blog/wat-is-een-prop-firm", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	htmlBody := body["html"].(string)
	if !strings.Contains(htmlBody, "<h1>Uitleg</h1>") {
		t.Errorf("markdown not rendered: %q", htmlBody)
	}
	if !strings.Contains(htmlBody, "<strong>virtueel kapitaal</strong>") {
		t.Errorf("markdown not rendered: %q", htmlBody)
	}
}

func TestBlogPost_UnknownSlug(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/blog/bestaat-niet", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["code"] != codeNotFound {
		t.Errorf("expected code %s, got %v", codeNotFound, body["code"])
	}
}

func TestRedirect_KnownFirm(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/go/ftmo?src=quiz", "", nil)
	if rr.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://trader.ftmo.com/?affiliates=test" {
		t.Errorf("unexpected location %q", loc)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("expected no-store, got %q", cc)
	}
}

func TestRedirect_UnknownFirm(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/go/bestaat-niet", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestClickStats_OpenWhenNoKeysConfigured(t *testing.T) {
	r := testRouter(t, nil)

	// One redirect so today's bucket has a count.
	doRequest(t, r, "GET", "/go/ftmo", "", nil)

	rr := doRequest(t, r, "GET", "/api/v1/stats/clicks?firm=ftmo&days=2", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d\n%s", rr.Code, rr.Body.String())
	}

	body := decodeBody(t, rr)
	if body["total"].(float64) != 1 {
		t.Errorf("expected total 1, got %v", body["total"])
	}
	if len(body["days"].([]any)) != 2 {
		t.Errorf("expected 2 day buckets, got %v", body["days"])
	}
}

func TestClickStats_RequiresAdminKey(t *testing.T) {
	r := testRouter(t, []string{"geheim"})

	rr := doRequest(t, r, "GET", "/api/v1/stats/clicks?firm=ftmo", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rr.Code)
	}

	rr = doRequest(t, r, "GET", "/api/v1/stats/clicks?firm=ftmo", "",
		http.Header{"Authorization": []string{"Bearer geheim"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rr.Code)
	}
}

func TestClickStats_BadRequests(t *testing.T) {
	r := testRouter(t, nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing firm", "/api/v1/stats/clicks"},
		{"invalid days", "/api/v1/stats/clicks?firm=ftmo&days=abc"},
		{"zero days", "/api/v1/stats/clicks?firm=ftmo&days=0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, r, "GET", tc.path, "", nil)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestClickStats_UnknownFirm(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/api/v1/stats/clicks?firm=bestaat-niet", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r := testRouter(t, nil)

	rr := doRequest(t, r, "GET", "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := decodeBody(t, rr)
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body["status"])
	}
}
