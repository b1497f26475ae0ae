// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "traceID", TraceIDCtxKey.String())
}

func TestTraceID(t *testing.T) {
	_, ok := GetTraceIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithTraceID(context.Background(), "abc")
	id, ok := GetTraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = GetTraceIDFromContext(WithTraceID(context.Background(), ""))
	assert.False(t, ok)

	wrongType := context.WithValue(context.Background(), TraceIDCtxKey, 42)
	_, ok = GetTraceIDFromContext(wrongType)
	assert.False(t, ok)
}
