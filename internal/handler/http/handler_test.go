package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MKhiriev/go-story-sync/internal/collab"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/mock"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testHashKey = "hash-key"

// handlerMocks holds the service mocks behind a Handler under test.
type handlerMocks struct {
	auth     *mock.MockAuthService
	sync     *mock.MockSyncService
	projects *mock.MockProjectService
	appInfo  *mock.MockAppInfoService
	collab   *mock.MockService
	hub      *collab.Hub
}

func newHandlerWithMocks(t *testing.T, hashKey string) (*Handler, *handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &handlerMocks{
		auth:     mock.NewMockAuthService(ctrl),
		sync:     mock.NewMockSyncService(ctrl),
		projects: mock.NewMockProjectService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
		collab:   mock.NewMockService(ctrl),
		hub:      collab.NewHub(logger.Nop()),
	}
	services := &service.Services{
		AuthService:    m.auth,
		SyncService:    m.sync,
		ProjectService: m.projects,
		AppInfoService: m.appInfo,
	}
	cfg := config.StructuredConfig{App: config.App{HashKey: hashKey}}

	return NewHandler(services, m.collab, m.hub, cfg, logger.Nop()), m
}

// withUser puts userID into the request context the way the auth
// middleware does.
func withUser(r *http.Request, userID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), utils.UserIDCtxKey, userID))
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	hub := collab.NewHub(logger.Nop())
	cfg := config.StructuredConfig{
		App:           config.App{HashKey: "k"},
		Collaboration: config.Collaboration{OutboundBuffer: 16},
	}

	h := NewHandler(svc, nil, hub, cfg, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, hub, h.hub)
	assert.Equal(t, "k", h.hashKey)
	assert.Equal(t, 16, h.outboundBuffer)
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

// expectedRoutes lists every route that Init() must register. Authorized
// routes answer 401 without a token, which still proves they exist.
var expectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodGet, "/api/health"},
	{http.MethodGet, "/api/version"},
	{http.MethodPost, "/api/user/register"},
	{http.MethodPost, "/api/user/login"},
	{http.MethodPost, "/api/sync/push"},
	{http.MethodGet, "/api/sync/changes"},
	{http.MethodGet, "/api/projects"},
	{http.MethodPost, "/api/projects"},
	{http.MethodGet, "/api/collab/doc-1/participants"},
	{http.MethodGet, "/api/collab/ws"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	h, m := newHandlerWithMocks(t, "")
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("test").AnyTimes()
	m.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidDataProvided).AnyTimes()
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidDataProvided).AnyTimes()
	router := h.Init()

	for _, tc := range expectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code, "route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInit_UnknownRouteAndWrongMethod(t *testing.T) {
	h, _ := newHandlerWithMocks(t, "")
	router := h.Init()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodPost, "/api/version"},
		{http.MethodDelete, "/api/projects"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestInit_SetsTraceID(t *testing.T) {
	h, _ := newHandlerWithMocks(t, "")

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

// ─────────────────────────────────────────────
// version / health
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	for _, version := range []string{"1.2.3", ""} {
		h, m := newHandlerWithMocks(t, "")
		m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(version)

		rec := httptest.NewRecorder()
		h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		assert.Equal(t, version, rec.Body.String())
		assert.Equal(t, strconv.Itoa(models.ProtocolVersion), rec.Header().Get(protocolHeader))
	}
}

func TestHealth(t *testing.T) {
	h, _ := newHandlerWithMocks(t, "")

	rec := httptest.NewRecorder()
	h.health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
