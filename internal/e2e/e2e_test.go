//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dsaslb/restaurant-management-system/internal/config"
	"github.com/dsaslb/restaurant-management-system/internal/infra"
	"github.com/dsaslb/restaurant-management-system/internal/middleware"
	"github.com/dsaslb/restaurant-management-system/internal/model"
	"github.com/dsaslb/restaurant-management-system/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, session string) *http.Response {
	t.Helper()
	var reader *bytes.Buffer
	if body == nil {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = body
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func sessionFrom(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server       *httptest.Server
	db           *gorm.DB
	adminSession string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("restaurant_test"),
		tcPostgres.WithUsername("restaurant"),
		tcPostgres.WithPassword("restaurant"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	// Stub Nominatim so reverse geocoding works offline
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"서울특별시 중구 세종대로 110"}`))
	}))
	t.Cleanup(nominatim.Close)

	cfg := &config.Config{
		Port:            8000,
		Env:             "test",
		SessionSecret:   "e2e-session-secret-32-characters!",
		SessionTTLHours: 2,
		DatabaseURL:     pgURL,
		RedisURL:        rdURL,
		GeocoderURL:     nominatim.URL,
		WorkerPoolSize:  1,
		PDFStoragePath:  t.TempDir(),
		StoreName:       "본점",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the bootstrap admin
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username: "admin", PasswordHash: string(hash),
		Role: model.RoleAdmin, Status: model.StatusActive,
	}).Error)

	geocoder := infra.NewGeocoder(cfg.GeocoderURL, infra.NewBreaker(5, time.Minute), rdb)
	srv := httptest.NewServer(router.New(cfg, db, rdb, geocoder))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "admin-pass-123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	session := sessionFrom(t, loginResp)
	loginResp.Body.Close()

	return &testEnv{server: srv, db: db, adminSession: session}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_AccountLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	// Register → pending
	resp := do(t, env.server, "POST", "/auth/register",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "staffpass1"}), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reg struct {
		User struct {
			Status string `json:"status"`
		} `json:"user"`
	}
	decodeJSON(t, resp, &reg)
	assert.Equal(t, "pending", reg.User.Status)

	// Duplicate username → 409
	resp = do(t, env.server, "POST", "/auth/register",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "otherpass1"}), "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Pending account cannot log in — same 401 as a bad password
	resp = do(t, env.server, "POST", "/auth/login",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "staffpass1"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// An action outside approve/reject is a 400 and leaves the account pending
	resp = do(t, env.server, "POST", "/auth/approve-or-reject",
		jsonBody(t, map[string]string{"username": "newstaff", "action": "frobnicate"}), env.adminSession)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/auth/login",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "staffpass1"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Admin approves
	resp = do(t, env.server, "POST", "/auth/approve-or-reject",
		jsonBody(t, map[string]string{"username": "newstaff", "action": "approve"}), env.adminSession)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Now login succeeds and sets the session cookie
	resp = do(t, env.server, "POST", "/auth/login",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "staffpass1"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	staffSession := sessionFrom(t, resp)
	resp.Body.Close()

	// Staff cannot reach admin-only routes — 403, not 401
	resp = do(t, env.server, "GET", "/auth/users", nil, staffSession)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin cannot delete their own account
	resp = do(t, env.server, "DELETE", "/auth/users/admin", nil, env.adminSession)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// But can delete the staff account
	resp = do(t, env.server, "DELETE", "/auth/users/newstaff", nil, env.adminSession)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/auth/login",
		jsonBody(t, map[string]string{"username": "newstaff", "password": "staffpass1"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_ConcurrentRegistrationOneWins(t *testing.T) {
	env := setupTestEnv(t)

	// Two simultaneous registrations for the same username: the unique
	// index decides the race, exactly one insert wins.
	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := do(t, env.server, "POST", "/auth/register",
				jsonBody(t, map[string]string{"username": "racer", "password": "racerpass1"}), "")
			codes <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(codes)

	got := []int{<-codes, <-codes}
	sort.Ints(got)
	assert.Equal(t, []int{http.StatusCreated, http.StatusConflict}, got)

	var count int64
	require.NoError(t, env.db.Model(&model.User{}).Where("username = ?", "racer").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestE2E_AttendanceRoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	// Unauthenticated punch is refused
	resp := do(t, env.server, "POST", "/attendance", jsonBody(t, map[string]any{
		"employee_id": "emp-1", "employee_name": "김철수", "store": "본점",
		"action": "check-in", "latitude": 37.5665, "longitude": 126.978,
	}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/attendance", jsonBody(t, map[string]any{
		"employee_id": "emp-1", "employee_name": "김철수", "store": "본점",
		"action": "check-in", "latitude": 37.5665, "longitude": 126.978,
	}), env.adminSession)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var punch struct {
		RecordID string `json:"record_id"`
		Address  string `json:"address"`
	}
	decodeJSON(t, resp, &punch)
	assert.NotEmpty(t, punch.RecordID)
	assert.Equal(t, "서울특별시 중구 세종대로 110", punch.Address)

	// Out-of-range latitude → 400, nothing written
	resp = do(t, env.server, "POST", "/attendance", jsonBody(t, map[string]any{
		"employee_id": "emp-1", "employee_name": "김철수", "store": "본점",
		"action": "check-in", "latitude": 91.0, "longitude": 0.0,
	}), env.adminSession)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown action → 400 as well
	resp = do(t, env.server, "POST", "/attendance", jsonBody(t, map[string]any{
		"employee_id": "emp-1", "employee_name": "김철수", "store": "본점",
		"action": "lunch-break", "latitude": 37.5665, "longitude": 126.978,
	}), env.adminSession)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "GET", "/records?employee_id=emp-1", nil, env.adminSession)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var records []map[string]any
	decodeJSON(t, resp, &records)
	assert.Len(t, records, 1)
}

func TestE2E_OrderFlow(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/menu", jsonBody(t, map[string]any{
		"name": "비빔밥", "category": "식사", "price": "9000",
	}), env.adminSession)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &item)

	resp = do(t, env.server, "POST", "/orders", jsonBody(t, map[string]any{
		"table_no": 5,
		"items":    []map[string]any{{"menu_item_id": item.ID, "quantity": 2}},
	}), env.adminSession)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var order struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}
	decodeJSON(t, resp, &order)
	assert.Equal(t, "18000", order.Total)

	// open → paid is refused, open → served → paid succeeds
	resp = do(t, env.server, "PATCH", "/orders/"+order.ID+"/status",
		jsonBody(t, map[string]string{"status": "paid"}), env.adminSession)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	for _, status := range []string{"served", "paid"} {
		resp = do(t, env.server, "PATCH", "/orders/"+order.ID+"/status",
			jsonBody(t, map[string]string{"status": status}), env.adminSession)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
