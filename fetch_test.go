package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageClient_FetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "threadview-test", r.Header.Get("user-agent"))
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	c, err := NewPageClient("threadview-test", 4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	for range 2 {
		b, err := c.Fetch(context.Background(), srv.URL+"/item?id=1")
		require.NoError(t, err)
		assert.Equal(t, testPage, string(b))
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestPageClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := NewPageClient("", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "bad status code: 404")
}

func TestPageClient_TooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	c, err := NewPageClient("", 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	c.maxBytes = int64(len(testPage))
	b, err := c.Fetch(context.Background(), srv.URL+"/fits")
	require.NoError(t, err)
	assert.Equal(t, testPage, string(b))

	c.maxBytes = int64(len(testPage)) - 1
	_, err = c.Fetch(context.Background(), srv.URL+"/truncated")
	assert.ErrorIs(t, err, ErrPageTooLarge)

	_, ok := c.cache.Get(srv.URL + "/truncated")
	assert.False(t, ok)
}
