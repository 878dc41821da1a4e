package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persuasion-engine/internal/catalog"
	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/metrics"
	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/internal/source/prompts"
	"github.com/persuasion-engine/internal/storage/sqlite"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

type fixedScore int

func (f fixedScore) IntN(int) int { return int(f) }

var testPrompts = []string{"AI transformation in Indian fintech", "Building authentic personal brand"}

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	repo, err := sqlite.New(filepath.Join(t.TempDir(), "presets.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Migrate())
	t.Cleanup(func() { _ = repo.Close() })

	topics := source.NewManager()
	topics.Register(prompts.New(testPrompts, logger.Nop()))

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return Deps{
		Engine: engine.New(
			engine.WithScoreSource(fixedScore(10)),
			engine.WithClock(func() time.Time { return now }),
		),
		Catalog:  catalog.Default(),
		Presets:  repo,
		Topics:   topics,
		Featured: prompts.NewFeatured(testPrompts),
		Limiter:  ratelimit.NewDefaultLimiter(),
		Metrics:  metrics.New(),
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewServer(deps).Router()
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() map[string]string {
	return map[string]string{
		"topic":           "AI transformation in Indian fintech",
		"platform":        "linkedin",
		"culturalContext": "hybrid",
		"persuasionLevel": "moderate",
		"targetEmotion":   "curiosity",
		"contentType":     "insight",
	}
}

func TestGenerateContent(t *testing.T) {
	deps := newTestDeps(t)
	r := newTestRouter(t, deps)

	w := do(r, http.MethodPost, "/api/v1/content", validBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.GeneratedContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got.Content, "Everyone talks about AI transformation in Indian fintech")
	assert.Equal(t, 85, got.ViralScore)
	assert.Len(t, got.Hooks, 5)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	assert.Equal(t, 1.0, testutil.ToFloat64(deps.Metrics.Generations.WithLabelValues("linkedin", "moderate")))
}

func TestGenerateContentValidationError(t *testing.T) {
	deps := newTestDeps(t)
	r := newTestRouter(t, deps)

	body := validBody()
	body["platform"] = "tiktok"
	body["topic"] = "  "
	w := do(r, http.MethodPost, "/api/v1/content", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error  string              `json:"error"`
		Fields []engine.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 2)
	assert.Equal(t, "platform", resp.Fields[0].Field)
	assert.Equal(t, []string{"linkedin", "instagram"}, resp.Fields[0].Allowed)
	assert.Equal(t, "topic", resp.Fields[1].Field)
	assert.Contains(t, resp.Error, "invalid content request")

	assert.Equal(t, 1.0, testutil.ToFloat64(deps.Metrics.ValidationFailures.WithLabelValues("topic")))
}

func TestGenerateContentMalformedBody(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	w := do(r, http.MethodPost, "/api/v1/content", `{"topic":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateContentRateLimited(t *testing.T) {
	deps := newTestDeps(t)
	deps.Limiter = ratelimit.NewLimiter(0.001, 1)
	r := newTestRouter(t, deps)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/content", validBody()).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/v1/content", validBody()).Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(deps.Metrics.RateLimited))
}

func TestGenerateContentWithPreset(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	preset := map[string]string{
		"name":            "insta",
		"platform":        "instagram",
		"culturalContext": "global",
		"persuasionLevel": "aggressive",
		"targetEmotion":   "urgency",
		"contentType":     "challenge",
	}
	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/v1/presets", preset).Code)

	w := do(r, http.MethodPost, "/api/v1/content?preset=insta", map[string]string{"topic": "growth loops"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.GeneratedContent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.PlatformInstagram, got.Platform)
	assert.Contains(t, got.Content, "growth loops")

	w = do(r, http.MethodPost, "/api/v1/content?preset=ghost", map[string]string{"topic": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTemplates(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	w := do(r, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []templateResponse `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 6)
	assert.Equal(t, models.PlatformLinkedIn, resp.Templates[0].Platform)
	assert.Equal(t, models.PersuasionSubtle, resp.Templates[0].PersuasionLevel)
	assert.Equal(t, models.PersuasionAggressive, resp.Templates[5].PersuasionLevel)
}

func TestLabCatalogEndpoints(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	var patterns struct {
		Patterns []models.PersuasionPattern `json:"patterns"`
	}
	w := do(r, http.MethodGet, "/api/v1/patterns?platform=instagram", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patterns))
	assert.Len(t, patterns.Patterns, 3)

	w = do(r, http.MethodGet, "/api/v1/patterns", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patterns))
	assert.Len(t, patterns.Patterns, 4)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/patterns?platform=tiktok", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/patterns/authority-echo", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/patterns/nope", nil).Code)

	var triggers struct {
		Triggers []models.PsychologyTrigger `json:"triggers"`
	}
	w = do(r, http.MethodGet, "/api/v1/triggers", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &triggers))
	assert.Len(t, triggers.Triggers, 4)

	var lab struct {
		Metrics   []models.LabMetric   `json:"metrics"`
		Funnel    []models.FunnelStage `json:"funnel"`
		Synthetic bool                 `json:"synthetic"`
	}
	w = do(r, http.MethodGet, "/api/v1/lab/analytics", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lab))
	assert.Len(t, lab.Metrics, 4)
	assert.Len(t, lab.Funnel, 4)
	assert.True(t, lab.Synthetic)
}

func TestTopicEndpoints(t *testing.T) {
	deps := newTestDeps(t)
	r := newTestRouter(t, deps)

	var suggestions struct {
		Suggestions []models.TopicSuggestion `json:"suggestions"`
		Errors      []string                 `json:"errors"`
	}
	w := do(r, http.MethodGet, "/api/v1/topics/suggestions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &suggestions))
	require.Len(t, suggestions.Suggestions, 2)
	assert.Equal(t, testPrompts[0], suggestions.Suggestions[0].Title)
	assert.Empty(t, suggestions.Errors)

	var featured struct {
		Topic string `json:"topic"`
	}
	w = do(r, http.MethodGet, "/api/v1/topics/featured", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &featured))
	assert.Equal(t, testPrompts[0], featured.Topic)

	deps.Featured.Advance()
	w = do(r, http.MethodGet, "/api/v1/topics/featured", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &featured))
	assert.Equal(t, testPrompts[1], featured.Topic)
}

func TestPresetLifecycle(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	preset := map[string]string{
		"name":            " weekly ",
		"platform":        "linkedin",
		"culturalContext": "indian",
		"persuasionLevel": "subtle",
		"targetEmotion":   "authority",
		"contentType":     "story",
	}
	w := do(r, http.MethodPost, "/api/v1/presets", preset)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/v1/presets/weekly", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Preset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.CulturalIndian, got.CulturalContext)

	var list struct {
		Presets []models.Preset `json:"presets"`
	}
	w = do(r, http.MethodGet, "/api/v1/presets", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Presets, 1)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/api/v1/presets/weekly", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/api/v1/presets/weekly", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/presets/weekly", nil).Code)
}

func TestSavePresetRejectsInvalid(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/api/v1/presets", map[string]string{"platform": "linkedin"}).Code)

	w := do(r, http.MethodPost, "/api/v1/presets", map[string]string{"name": "bad", "platform": "myspace"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPresetsUnavailable(t *testing.T) {
	deps := newTestDeps(t)
	deps.Presets = nil
	r := newTestRouter(t, deps)

	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/api/v1/presets", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	deps := newTestDeps(t)
	deps.AllowedOrigins = []string{"https://app.example.com"}
	r := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/content", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, newTestDeps(t))

	w := do(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"templates":6`)

	w = do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "persuasion_engine_http_requests_total")
}

func TestSleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
