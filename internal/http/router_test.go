package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yungbote/studygroup-backend/internal/data/catalogcache"
	"github.com/yungbote/studygroup-backend/internal/data/repos"
	"github.com/yungbote/studygroup-backend/internal/data/repos/testutil"
	types "github.com/yungbote/studygroup-backend/internal/domain"
	httpH "github.com/yungbote/studygroup-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studygroup-backend/internal/http/middleware"
	"github.com/yungbote/studygroup-backend/internal/observability"
	"github.com/yungbote/studygroup-backend/internal/services"
)

type testAPI struct {
	engine *gin.Engine
	token  string
	user   *types.User
	act    *types.Activity
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := httpH.RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}

	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.New(prometheus.NewRegistry())

	userRepo := repos.NewUserRepo(db, log)
	catalogRepo := repos.NewCatalogRepo(db, log)
	logRepo := repos.NewActivityLogRepo(db, log)
	prefRepo := repos.NewUserPreferenceRepo(db, log)
	compRepo := repos.NewSubtopicCompletionRepo(db, log)
	recRepo := repos.NewMLRecommendationRepo(db, log)
	cat := catalogcache.New(catalogRepo, nil, metrics, log, catalogcache.Config{})

	recs := services.NewRecommendationService(log, logRepo, prefRepo, compRepo, recRepo, cat, metrics, services.RecommendationConfig{})
	tracking := services.NewActivityTrackingService(log, userRepo, catalogRepo, logRepo, prefRepo, recRepo, recs, metrics, 0)
	catalog := services.NewCatalogService(log, cat, catalogRepo, compRepo, userRepo, tracking)
	insights := services.NewInsightsService(log, logRepo, compRepo, cat)
	auth := services.NewAuthService(log, userRepo, "test-secret", time.Hour)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "api@example.com")
	a := testutil.SeedActivity(t, ctx, db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "quiz basics", "web intro", "one", "two")
	token, err := auth.IssueToken(ctx, u.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	engine := NewRouter(RouterConfig{
		Log:                     log,
		AuthMiddleware:          httpMW.NewAuthMiddleware(log, auth),
		ActivityTrackingHandler: httpH.NewActivityTrackingHandler(tracking, insights),
		CatalogHandler:          httpH.NewCatalogHandler(catalog),
		HealthHandler:           httpH.NewHealthHandler(db),
		Metrics:                 metrics,
	})
	return &testAPI{engine: engine, token: token, user: u, act: a}
}

func (api *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if api.token != "" {
		req.Header.Set("Authorization", "Bearer "+api.token)
	}
	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, req)
	return rec
}

func TestLogActivityEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/ml/log", map[string]any{
		"activity_type":   "quiz",
		"activity_id":     api.act.ID,
		"duration":        120,
		"completion_rate": 90,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/ml/log: want 201 got %d (%s)", rec.Code, rec.Body.String())
	}
	var out struct {
		ActivityLog types.ActivityLog `json:"activity_log"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ActivityLog.UserID != api.user.ID || out.ActivityLog.EndTime == nil {
		t.Fatalf("unexpected log %+v", out.ActivityLog)
	}

	for name, body := range map[string]map[string]any{
		"missing type":   {"duration": 5},
		"blank type":     {"activity_type": "   "},
		"negative":       {"activity_type": "quiz", "duration": -1},
		"rate above 100": {"activity_type": "quiz", "completion_rate": 150},
	} {
		if rec := api.do(t, http.MethodPost, "/api/ml/log", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: want 400 got %d", name, rec.Code)
		}
	}

	rec = api.do(t, http.MethodPost, "/api/ml/log", map[string]any{"activity_type": "quiz", "activity_id": uuid.New()})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown activity: want 404 got %d", rec.Code)
	}
}

func TestRecommendationAndStatsEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPut, "/api/ml/preferences", map[string]any{"preferred_topics": []string{"web"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/ml/preferences: want 200 got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/ml/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/ml/recommendations: want 200 got %d", rec.Code)
	}
	var recs []types.MLRecommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &recs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 1 || recs[0].ActivityID != api.act.ID {
		t.Fatalf("unexpected recommendations %+v", recs)
	}

	rec = api.do(t, http.MethodGet, "/api/ml/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/ml/stats: want 200 got %d", rec.Code)
	}
	var stats services.ActivityStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stats.ActivityTrend) != 7 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	for _, path := range []string{"/api/ml/patterns", "/api/ml/learning-path"} {
		if rec := api.do(t, http.MethodGet, path, nil); rec.Code != http.StatusOK {
			t.Fatalf("GET %s: want 200 got %d", path, rec.Code)
		}
	}
}

func TestCatalogEndpoints(t *testing.T) {
	api := newTestAPI(t)
	sub := api.act.Subtopics[0].ID

	rec := api.do(t, http.MethodPost, "/api/activities/subtopics/"+sub.String()+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: want 200 got %d (%s)", rec.Code, rec.Body.String())
	}
	var res services.CompletionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Progress != 50 {
		t.Fatalf("complete: want progress 50 got %d", res.Progress)
	}

	if rec := api.do(t, http.MethodGet, "/api/activities", nil); rec.Code != http.StatusOK {
		t.Fatalf("GET /api/activities: want 200 got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/activities/"+api.act.ID.String(), nil); rec.Code != http.StatusOK {
		t.Fatalf("GET activity: want 200 got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/activities/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("GET unknown activity: want 404 got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/activities/not-a-uuid", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("GET bad id: want 400 got %d", rec.Code)
	}
	path := "/api/activities/" + api.act.ID.String() + "/subtopics/" + sub.String()
	if rec := api.do(t, http.MethodGet, path, nil); rec.Code != http.StatusOK {
		t.Fatalf("GET subtopic: want 200 got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodPost, "/api/activities/subtopics/"+uuid.NewString()+"/complete", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("complete unknown: want 404 got %d", rec.Code)
	}
}

func TestUnauthenticatedAndProbeRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	if rec := api.do(t, http.MethodGet, "/api/ml/recommendations", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401 got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, healthPath, nil); rec.Code != http.StatusOK {
		t.Fatalf("health: want 200 got %d", rec.Code)
	}
	rec := api.do(t, http.MethodGet, metricsPath, nil)
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("studygroup_api_requests_total")) {
		t.Fatalf("metrics: want request counter, got %d", rec.Code)
	}
}
