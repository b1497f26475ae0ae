// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"state": "good"}, http.StatusAccepted)
	require.NoError(t, err)

	assert.Positive(t, n)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"state":"good"}`, w.Body.String())
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteJSON(w, make(chan int), http.StatusOK)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReadJSON(t *testing.T) {
	type body struct {
		Names []string `json:"names"`
	}

	t.Run("ok", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"names":["tabs"]}`))
		var b body
		require.NoError(t, ReadJSON(r, &b))
		assert.Equal(t, []string{"tabs"}, b.Names)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"engines":[]}`))
		var b body
		assert.Error(t, ReadJSON(r, &b))
	})

	t.Run("trailing data", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"names":[]} {}`))
		var b body
		assert.Error(t, ReadJSON(r, &b))
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var b body
		assert.Error(t, ReadJSON(r, &b))
	})
}
