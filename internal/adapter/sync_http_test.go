// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

func newTestSyncAdapter(t *testing.T, serverURL string) SyncAdapter {
	t.Helper()
	a, err := NewHTTPSyncAdapter(config.ClientAdapter{SyncAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestSync_Success(t *testing.T) {
	state := "opaque"
	req := models.SyncRunRequest{
		Reason:         models.WireReasonScheduled,
		Engines:        models.EngineSelection{Engines: []models.EngineName{models.EngineHistory}},
		PersistedState: &state,
		Device:         models.DeviceDescriptor{ID: "dev-1", DisplayName: "Desk", Kind: models.DeviceDesktop},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/run", r.URL.Path)
		assert.Equal(t, "Bearer tok-id", r.Header.Get("Authorization"))

		var got models.SyncRunRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.WireReasonScheduled, got.Reason)
		if assert.NotNil(t, got.PersistedState) {
			assert.Equal(t, "opaque", *got.PersistedState)
		}

		writeJSON(t, w, http.StatusOK, models.SyncOutcome{
			Status:            models.StatusOK,
			SuccessfulEngines: []models.EngineName{models.EngineHistory},
			DeclinedEngines:   []models.EngineName{models.EngineTabs},
			PersistedState:    "next",
		})
	}))
	defer srv.Close()

	cred := models.CachedCredential{Token: models.TokenServerToken{ID: "tok-id"}}
	out, err := newTestSyncAdapter(t, srv.URL).Sync(context.Background(), cred, req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOK, out.Status)
	assert.Equal(t, []models.EngineName{models.EngineHistory}, out.SuccessfulEngines)
	assert.True(t, out.IsDeclined(models.EngineTabs))
	assert.Equal(t, "next", out.PersistedState)
}

func TestSync_EmptyStatusDefaultsToOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	out, err := newTestSyncAdapter(t, srv.URL).Sync(context.Background(), models.CachedCredential{}, models.SyncRunRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, out.Status)
}

func TestSync_Errors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := newTestSyncAdapter(t, srv.URL).Sync(context.Background(), models.CachedCredential{}, models.SyncRunRequest{})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("bad body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := newTestSyncAdapter(t, srv.URL).Sync(context.Background(), models.CachedCredential{}, models.SyncRunRequest{})
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := newTestSyncAdapter(t, "http://127.0.0.1:1").Sync(context.Background(), models.CachedCredential{}, models.SyncRunRequest{})
		assert.ErrorIs(t, err, ErrNetwork)
	})
}

func TestDisconnect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/disconnect", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestSyncAdapter(t, srv.URL).Disconnect(context.Background()))
}

func TestReportTelemetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/telemetry", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"engines":[]}`, string(b))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	assert.NoError(t, newTestSyncAdapter(t, srv.URL).ReportTelemetry(context.Background(), `{"engines":[]}`))
}

func TestNewHTTPSyncAdapter_BadAddress(t *testing.T) {
	_, err := NewHTTPSyncAdapter(config.ClientAdapter{SyncAddress: " "}, logger.Nop())
	assert.Error(t, err)
}
