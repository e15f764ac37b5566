// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitTransport_SpacesRequests(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	interval := 50 * time.Millisecond
	client := &http.Client{Transport: NewRateLimitTransport(nil, interval, 1)}

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := Post(context.Background(), client, ts.URL, FormBody{})
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// The first request uses the initial token; the next two wait.
	assert.GreaterOrEqual(t, elapsed, 2*interval-10*time.Millisecond)
}

func TestRateLimitTransport_ContextCancelled(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	client := &http.Client{Transport: NewRateLimitTransport(ts.Client().Transport, time.Hour, 1)}

	_, err := Post(context.Background(), client, ts.URL, FormBody{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = Post(ctx, client, ts.URL, FormBody{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewRateLimitTransport_MinimumBurst(t *testing.T) {
	rt := NewRateLimitTransport(nil, time.Second, 0)
	assert.Equal(t, 1, rt.limiter.Burst())
}
