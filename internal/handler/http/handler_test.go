// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// ---- Stub: SyncOrchestrator ----

type stubOrchestrator struct {
	mu sync.Mutex

	syncEverythingFn func(ctx context.Context, reason models.SyncReason) (models.SyncResult, error)
	syncNamedFn      func(ctx context.Context, reason models.SyncReason, names []string) (models.SyncResult, error)

	state    models.DisplayState
	syncing  bool
	lastSync time.Time

	addedErr   error
	removedErr error
	setErr     error

	foregrounds int
	backgrounds int
	added       int
	removed     int
	signOuts    int
	toggles     map[models.EngineName]bool

	// calls records the order of account lifecycle calls.
	calls    []string
	declined []models.EngineName
}

func newStubOrchestrator() *stubOrchestrator {
	return &stubOrchestrator{state: models.DisplayStateGood, toggles: map[models.EngineName]bool{}}
}

func (s *stubOrchestrator) SyncEverything(ctx context.Context, reason models.SyncReason) (models.SyncResult, error) {
	return s.syncEverythingFn(ctx, reason)
}

func (s *stubOrchestrator) SyncNamedCollections(ctx context.Context, reason models.SyncReason, names []string) (models.SyncResult, error) {
	return s.syncNamedFn(ctx, reason, names)
}

func (s *stubOrchestrator) SyncTabs(context.Context) (models.SyncResult, error) {
	return models.SyncResult{}, nil
}

func (s *stubOrchestrator) SyncHistory(context.Context) (models.SyncResult, error) {
	return models.SyncResult{}, nil
}

func (s *stubOrchestrator) SetEngineEnabled(_ context.Context, name models.EngineName, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.toggles[name] = enabled
	return nil
}

func (s *stubOrchestrator) SetDeclinedAtSetup(_ context.Context, names []models.EngineName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "declined")
	s.declined = names
	return nil
}

func (s *stubOrchestrator) OnAddedAccount(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "added")
	s.added++
	return s.addedErr
}

func (s *stubOrchestrator) OnRemovedAccount(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed++
	return s.removedErr
}

func (s *stubOrchestrator) SignOut(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signOuts++
	return nil
}

func (s *stubOrchestrator) ApplicationDidBecomeActive(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foregrounds++
}

func (s *stubOrchestrator) ApplicationDidEnterBackground() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backgrounds++
}

func (s *stubOrchestrator) IsSyncing() bool { return s.syncing }
func (s *stubOrchestrator) DisplayState() models.DisplayState { return s.state }

func (s *stubOrchestrator) LastSyncFinishTime(context.Context) (time.Time, bool) {
	return s.lastSync, !s.lastSync.IsZero()
}

func (s *stubOrchestrator) Subscribe() <-chan models.SyncEvent  { return make(chan models.SyncEvent) }
func (s *stubOrchestrator) Unsubscribe(<-chan models.SyncEvent) {}
func (s *stubOrchestrator) Close()                              {}

var _ service.SyncOrchestrator = (*stubOrchestrator)(nil)

// ---- Stub: AccountStore ----

type stubAccounts struct {
	saved []models.AccountState
	err   error
}

func (a *stubAccounts) SaveAccount(_ context.Context, account models.AccountState) error {
	if a.err != nil {
		return a.err
	}
	a.saved = append(a.saved, account)
	return nil
}

// ---- Helpers ----

type testAPI struct {
	orchestrator *stubOrchestrator
	accounts     *stubAccounts
	registry     *prometheus.Registry
	router       http.Handler
}

func newTestAPI(t *testing.T, authToken string) *testAPI {
	t.Helper()
	api := &testAPI{
		orchestrator: newStubOrchestrator(),
		accounts:     &stubAccounts{},
		registry:     prometheus.NewRegistry(),
	}
	api.router = NewHandler(api.orchestrator, api.accounts, api.registry, authToken, logger.Nop()).Init()
	return api
}

func (api *testAPI) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rr := httptest.NewRecorder()
	api.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

// ---- Sync ----

func TestSyncEverything(t *testing.T) {
	tests := []struct {
		name       string
		result     models.SyncResult
		err        error
		wantStatus int
		wantState  string
	}{
		{
			name:       "good run",
			result:     models.SyncResult{Reason: models.ReasonUser, State: models.DisplayStateGood},
			wantStatus: http.StatusOK,
			wantState:  "good",
		},
		{
			name:       "setup failure still reports a state",
			result:     models.SyncResult{Reason: models.ReasonUser, State: models.DisplayStateWarning},
			err:        fmt.Errorf("%w: boom", service.ErrScopedKey),
			wantStatus: http.StatusOK,
			wantState:  "warning",
		},
		{
			name:       "run already in progress",
			result:     models.SyncResult{Reason: models.ReasonUser},
			err:        fmt.Errorf("%w: %w", service.ErrSyncInProgress, context.Canceled),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, "")
			api.orchestrator.syncEverythingFn = func(_ context.Context, reason models.SyncReason) (models.SyncResult, error) {
				assert.Equal(t, models.ReasonUser, reason)
				return tt.result, tt.err
			}

			rr := api.do(http.MethodPost, "/api/sync", "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantState != "" {
				assert.Equal(t, map[string]any{"state": tt.wantState}, decodeBody(t, rr))
			}
			assert.NotContains(t, rr.Body.String(), "boom")
		})
	}
}

func TestSyncCollections(t *testing.T) {
	t.Run("forwards names", func(t *testing.T) {
		api := newTestAPI(t, "")
		api.orchestrator.syncNamedFn = func(_ context.Context, reason models.SyncReason, names []string) (models.SyncResult, error) {
			assert.Equal(t, models.ReasonUser, reason)
			assert.Equal(t, []string{"bookmarks", "nonsense"}, names)
			return models.SyncResult{State: models.DisplayStateGood}, nil
		}

		rr := api.do(http.MethodPost, "/api/sync/collections", `{"names":["bookmarks","nonsense"]}`)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	for _, body := range []string{`{"names":[]}`, `{"names":`, `{"collections":["tabs"]}`} {
		t.Run("rejects "+body, func(t *testing.T) {
			api := newTestAPI(t, "")
			rr := api.do(http.MethodPost, "/api/sync/collections", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestSyncState(t *testing.T) {
	api := newTestAPI(t, "")
	api.orchestrator.state = models.DisplayStateInProgress
	api.orchestrator.syncing = true

	rr := api.do(http.MethodGet, "/api/sync/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"state": "inProgress", "syncing": true}, decodeBody(t, rr))

	api.orchestrator.state = models.DisplayStateGood
	api.orchestrator.syncing = false
	api.orchestrator.lastSync = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	rr = api.do(http.MethodGet, "/api/sync/state", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "2026-03-01T12:00:00Z", body["last_sync_finished_at"])
}

// ---- Lifecycle and account ----

func TestLifecycle(t *testing.T) {
	api := newTestAPI(t, "")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/lifecycle/foreground", "").Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/lifecycle/background", "").Code)

	assert.Equal(t, 1, api.orchestrator.foregrounds)
	assert.Equal(t, 1, api.orchestrator.backgrounds)
}

func TestAccountAdded(t *testing.T) {
	const body = `{"uid":"u1","email":"a@b.c","verified":true,"refresh_token":"rt","scoped_keys":{},"command_index":0}`

	t.Run("saves and starts syncing", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, api.accounts.saved, 1)
		assert.Equal(t, "u1", api.accounts.saved[0].UID)
		assert.Equal(t, 1, api.orchestrator.added)
	})

	t.Run("initial sync failure is not an API error", func(t *testing.T) {
		api := newTestAPI(t, "")
		api.orchestrator.addedErr = service.ErrDeviceID
		api.orchestrator.state = models.DisplayStateBad

		rr := api.do(http.MethodPost, "/api/account/added", body)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]any{"state": "bad"}, decodeBody(t, rr))
	})

	t.Run("missing uid", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added", `{"email":"a@b.c"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, api.accounts.saved)
		assert.Equal(t, 0, api.orchestrator.added)
	})

	t.Run("verified without refresh token", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added", `{"uid":"u1","verified":true}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, api.accounts.saved)
	})

	t.Run("malformed scoped key", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added",
			`{"uid":"u1","scoped_keys":{"https://identity.mozilla.com/apps/oldsync":{"k":"abc"}}}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, api.accounts.saved)
	})

	t.Run("declined engines are recorded before the first sync", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added",
			`{"uid":"u1","verified":true,"refresh_token":"rt","declined_engines":["passwords","history"]}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, api.accounts.saved, 1)
		assert.Equal(t, "u1", api.accounts.saved[0].UID)
		assert.Equal(t, []models.EngineName{models.EnginePasswords, models.EngineHistory}, api.orchestrator.declined)
		assert.Equal(t, []string{"declined", "added"}, api.orchestrator.calls)
	})

	t.Run("no declined list", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"added"}, api.orchestrator.calls)
	})

	t.Run("unknown declined engine", func(t *testing.T) {
		api := newTestAPI(t, "")
		rr := api.do(http.MethodPost, "/api/account/added",
			`{"uid":"u1","declined_engines":["clients"]}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, api.accounts.saved)
		assert.Empty(t, api.orchestrator.calls)
	})

	t.Run("storage failure", func(t *testing.T) {
		api := newTestAPI(t, "")
		api.accounts.err = errors.New("keychain locked")

		rr := api.do(http.MethodPost, "/api/account/added", body)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "keychain")
		assert.Equal(t, 0, api.orchestrator.added)
	})
}

func TestAccountRemovedAndSignOut(t *testing.T) {
	api := newTestAPI(t, "")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/account/removed", "").Code)
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/account/signout", "").Code)
	assert.Equal(t, 1, api.orchestrator.removed)
	assert.Equal(t, 1, api.orchestrator.signOuts)

	api.orchestrator.removedErr = errors.New("disk full")
	assert.Equal(t, http.StatusInternalServerError, api.do(http.MethodPost, "/api/account/removed", "").Code)
}

// ---- Engines ----

func TestSetEngineEnabled(t *testing.T) {
	tests := []struct {
		name       string
		engine     string
		body       string
		setErr     error
		wantStatus int
	}{
		{name: "disable", engine: "tabs", body: `{"enabled":false}`, wantStatus: http.StatusNoContent},
		{name: "enable", engine: "passwords", body: `{"enabled":true}`, wantStatus: http.StatusNoContent},
		{name: "unknown engine", engine: "clients", body: `{"enabled":true}`, wantStatus: http.StatusBadRequest},
		{name: "missing flag", engine: "tabs", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "busy", engine: "tabs", body: `{"enabled":true}`, setErr: service.ErrSyncInProgress, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, "")
			api.orchestrator.setErr = tt.setErr

			rr := api.do(http.MethodPut, "/api/engines/"+tt.engine, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus == http.StatusNoContent {
				enabled, ok := api.orchestrator.toggles[models.EngineName(tt.engine)]
				assert.True(t, ok)
				assert.Equal(t, strings.Contains(tt.body, "true"), enabled)
			}
		})
	}
}

// ---- Routing and middleware ----

func TestRoutes_UnsupportedMethodIsNotFound(t *testing.T) {
	api := newTestAPI(t, "")

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/sync", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodDelete, "/api/engines/tabs", "").Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/api/nothing", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t, "secret")
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "sync_runs_total", Help: "runs"})
	api.registry.MustRegister(counter)
	counter.Inc()

	rr := api.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code, "metrics are not behind the control token")
	assert.Contains(t, rr.Body.String(), "sync_runs_total 1")
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer secret", wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", header: "bearer secret", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong token", header: "Bearer other", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "secret", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t, "secret")

			var header []string
			if tt.header != "" {
				header = []string{"Authorization", tt.header}
			}
			rr := api.do(http.MethodGet, "/api/sync/state", "", header...)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAuth_DisabledWithoutToken(t *testing.T) {
	api := newTestAPI(t, "")
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/sync/state", "").Code)
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{name: "reuses caller trace id", incoming: "trace-123"},
		{name: "generates one when missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			if tt.incoming != "" {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.Len(t, got, 36)
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("queued"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
	rr := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	out := buf.String()
	for _, want := range []string{`"method":"POST"`, `"uri":"/api/sync"`, `"status":202`, `"size":6`, `"duration":`} {
		assert.Contains(t, out, want)
	}
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"size":2`)
}
