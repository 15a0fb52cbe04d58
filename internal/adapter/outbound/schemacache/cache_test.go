package schemacache_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i2y/graphqlmcp/internal/adapter/outbound/schemacache"
	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/fixture"
)

func newTestCache(t *testing.T, handler http.HandlerFunc) (*schemacache.Cache, *httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cache, err := schemacache.New(server.Client(), filepath.Join(t.TempDir(), "schemas"), logger)
	require.NoError(t, err)
	return cache, server, &hits
}

func descriptorFor(server *httptest.Server) domain.SchemaDescriptor {
	return domain.SchemaDescriptor{API: "admin", ID: "admin_2025-01", Version: "2025-01", URL: server.URL + "/admin_2025-01.json"}
}

func TestCache_LoadFetchesOnce(t *testing.T) {
	schema := fixture.ShopSchema()
	cache, server, hits := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin_2025-01.json", r.URL.Path)
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(schema)
	})
	ctx := context.Background()
	d := descriptorFor(server)

	first, err := cache.Load(ctx, d)
	require.NoError(t, err)
	second, err := cache.Load(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, schema, first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	onDisk, err := os.ReadFile(cache.Path(d))
	require.NoError(t, err)
	assert.Equal(t, schema, onDisk)
	assert.Equal(t, filepath.Join(cache.Dir(), "admin_2025-01.json"), cache.Path(d))
}

func TestCache_LoadDecompressesGzip(t *testing.T) {
	schema := fixture.ShopSchema()
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	_, err := zw.Write(schema)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	cache, server, _ := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(compressed.Bytes())
	})

	got, err := cache.Load(context.Background(), descriptorFor(server))
	require.NoError(t, err)
	assert.Equal(t, schema, got)
}

func TestCache_LoadPropagatesHTTPErrors(t *testing.T) {
	cache, server, hits := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	d := descriptorFor(server)

	_, err := cache.Load(context.Background(), d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	// Nothing is persisted, so the next call goes to the network again.
	_, statErr := os.Stat(cache.Path(d))
	assert.True(t, os.IsNotExist(statErr))
	_, err = cache.Load(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCache_LoadPrefersDisk(t *testing.T) {
	cache, server, hits := newTestCache(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})
	d := descriptorFor(server)
	require.NoError(t, os.MkdirAll(cache.Dir(), 0o755))
	require.NoError(t, os.WriteFile(cache.Path(d), []byte(`{"data":{}}`), 0o644))

	got, err := cache.Load(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, `{"data":{}}`, string(got))
	assert.Equal(t, int32(0), hits.Load())
}

func TestDefaultDir(t *testing.T) {
	dir := schemacache.DefaultDir()
	assert.Equal(t, "schemas", filepath.Base(dir))
	assert.Equal(t, "graphqlmcp", filepath.Base(filepath.Dir(dir)))
}
