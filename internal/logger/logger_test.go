// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	return entry
}

func TestNew_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := New("sync", &buf)

	l.Info().Msg("hello")

	entry := decodeLine(t, buf.Bytes())
	assert.Equal(t, "sync", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", p)

	l.Warn().Msg("to file")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "to file", decodeLine(t, b)["message"])
}

func TestNewClientLogger_FallsBackToStdout(t *testing.T) {
	require.NotNil(t, NewClientLogger("client", ""))
	require.NotNil(t, NewClientLogger("client", filepath.Join(t.TempDir(), "missing", "dir", "x.log")))
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New("inherited-role", &buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", decodeLine(t, buf.Bytes())["role"])
}

func TestForRun_AddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	l := New("sync", &buf).ForRun("run-1", "scheduled")

	l.Info().Msg("run")

	entry := decodeLine(t, buf.Bytes())
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "scheduled", entry["reason"])
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	ctx := New("ctx", &buf).WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "ctx", decodeLine(t, buf.Bytes())["role"])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeLine(t, buf.Bytes())["req-key"])
}
