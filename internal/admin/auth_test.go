package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LilGuiGui/awesome-catering/internal/config"
	"github.com/LilGuiGui/awesome-catering/internal/domain"
	apperrors "github.com/LilGuiGui/awesome-catering/internal/errors"
	"github.com/LilGuiGui/awesome-catering/internal/session"
	"github.com/LilGuiGui/awesome-catering/internal/testutil"
)

func testAuth() *Auth {
	return NewAuth(config.AdminConfig{Username: "admin", Password: "admin123"})
}

func TestVerifyCredentials(t *testing.T) {
	auth := testAuth()

	assert.True(t, auth.VerifyCredentials("admin", "admin123"))
	assert.False(t, auth.VerifyCredentials("admin", "wrong"))
	assert.False(t, auth.VerifyCredentials("wrong", "admin123"))
	assert.False(t, auth.VerifyCredentials("", ""))
}

func TestAuthenticate(t *testing.T) {
	auth := testAuth()

	assert.NoError(t, auth.Authenticate("admin", "admin123"))

	err := auth.Authenticate("admin", "wrong")
	require.Error(t, err)
	ue, ok := apperrors.IsUnauthorizedError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid credentials", ue.Message)
}

func adminRequest(t *testing.T, admin bool) *http.Request {
	t.Helper()
	_, client := testutil.SetupTestRedis(t)
	store := session.NewStore(client, time.Hour, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)

	var captured *http.Request
	handler := session.Middleware(store, "catering_session", time.Hour, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, _ := session.FromContext(r.Context())
			state.Admin = admin
			captured = r
		}),
	)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, captured)
	return captured
}

func TestRequireAdmin_RejectsAnonymous(t *testing.T) {
	guarded := RequireAdmin(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without an admin session")
		}),
	)

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, adminRequest(t, false))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestRequireAdmin_NoSessionInContext(t *testing.T) {
	guarded := RequireAdmin(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without a session")
		}),
	)

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_AllowsAdminSession(t *testing.T) {
	ran := false
	guarded := RequireAdmin(zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ran = true
		}),
	)

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, adminRequest(t, true))

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_SetsAdminFlag(t *testing.T) {
	_, client := testutil.SetupTestRedis(t)
	store := session.NewStore(client, time.Hour, zap.NewNop())
	ctrl := NewController(testAuth(), nil, nil, zap.NewNop())

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "admin123"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))

	var state *session.State
	handler := session.Middleware(store, "catering_session", time.Hour, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state, _ = session.FromContext(r.Context())
			ctrl.Login(w, r)
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, state)
	assert.True(t, state.Admin)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctrl := NewController(testAuth(), nil, nil, zap.NewNop())

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "nope"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req = req.WithContext(contextWithState(req.Context(), t))

	rec := httptest.NewRecorder()
	ctrl.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func contextWithState(ctx context.Context, t *testing.T) context.Context {
	t.Helper()
	_, client := testutil.SetupTestRedis(t)
	store := session.NewStore(client, time.Hour, zap.NewNop())

	var out context.Context
	handler := session.Middleware(store, "catering_session", time.Hour, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			out = r.Context()
		}),
	)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, out)
	return out
}

func TestLogout_ClearsAdminFlag(t *testing.T) {
	ctrl := NewController(testAuth(), nil, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	ctx := contextWithState(req.Context(), t)
	state, _ := session.FromContext(ctx)
	state.Admin = true

	rec := httptest.NewRecorder()
	ctrl.Logout(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, state.Admin)
}

func TestGetOrders_StatusFilter(t *testing.T) {
	repo := &mockAdminOrderRepository{
		ListByTrackingStatusFunc: func(ctx context.Context, status domain.TrackingStatus) ([]domain.Order, error) {
			return []domain.Order{{OrderID: "ORDER-1-abc", TrackingStatus: status}}, nil
		},
	}
	ctrl := NewController(testAuth(), repo, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.GetOrders(rec, httptest.NewRequest(http.MethodGet, "/admin/api/orders?status=ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER-1-abc")
}

func TestGetOrders_InvalidStatusFilter(t *testing.T) {
	ctrl := NewController(testAuth(), &mockAdminOrderRepository{}, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.GetOrders(rec, httptest.NewRequest(http.MethodGet, "/admin/api/orders?status=shipped", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrders_DefaultsToActive(t *testing.T) {
	activeCalls := 0
	repo := &mockAdminOrderRepository{
		ListActiveFunc: func(ctx context.Context) ([]domain.Order, error) {
			activeCalls++
			return nil, nil
		},
	}
	ctrl := NewController(testAuth(), repo, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	ctrl.GetOrders(rec, httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, activeCalls)
	assert.Contains(t, rec.Body.String(), `"orders":[]`)
}

type mockAdminOrderRepository struct {
	GetFunc                  func(ctx context.Context, orderID string) (*domain.Order, error)
	ListActiveFunc           func(ctx context.Context) ([]domain.Order, error)
	ListByTrackingStatusFunc func(ctx context.Context, status domain.TrackingStatus) ([]domain.Order, error)
	ListRecentFunc           func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockAdminOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return m.GetFunc(ctx, orderID)
}

func (m *mockAdminOrderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	return m.ListActiveFunc(ctx)
}

func (m *mockAdminOrderRepository) ListByTrackingStatus(ctx context.Context, status domain.TrackingStatus) ([]domain.Order, error) {
	return m.ListByTrackingStatusFunc(ctx, status)
}

func (m *mockAdminOrderRepository) ListRecent(ctx context.Context) ([]domain.Order, error) {
	return m.ListRecentFunc(ctx)
}
