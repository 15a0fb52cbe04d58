// Package schemacache keeps introspection documents on local disk and fetches
// missing ones from their published URL.
package schemacache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/i2y/graphqlmcp/internal/domain"
)

const instrumentationName = "github.com/i2y/graphqlmcp/internal/adapter/outbound/schemacache"

// DefaultDir returns <user cache dir>/graphqlmcp/schemas, falling back to the
// system temp directory when no user cache directory is defined.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "graphqlmcp", "schemas")
}

// Cache implements usecase.SchemaRepository. Files are named <id>.json and are
// never invalidated; there is no locking between concurrent writers.
type Cache struct {
	client *http.Client
	dir    string
	logger *slog.Logger

	hits   metric.Int64Counter
	misses metric.Int64Counter
}

// New creates a Cache rooted at dir. An empty dir selects DefaultDir.
func New(client *http.Client, dir string, logger *slog.Logger) (*Cache, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if dir == "" {
		dir = DefaultDir()
	}

	meter := otel.Meter(instrumentationName)
	hits, err := meter.Int64Counter("graphqlmcp.schema_cache.hits",
		metric.WithDescription("Introspection documents served from disk"))
	if err != nil {
		return nil, fmt.Errorf("failed to create hit counter: %w", err)
	}
	misses, err := meter.Int64Counter("graphqlmcp.schema_cache.misses",
		metric.WithDescription("Introspection documents fetched from the network"))
	if err != nil {
		return nil, fmt.Errorf("failed to create miss counter: %w", err)
	}

	return &Cache{
		client: client,
		dir:    dir,
		logger: logger.With("component", "schema_cache"),
		hits:   hits,
		misses: misses,
	}, nil
}

// Dir returns the directory holding cached documents.
func (c *Cache) Dir() string { return c.dir }

// Path returns the cache file used for descriptor.
func (c *Cache) Path(descriptor domain.SchemaDescriptor) string {
	return filepath.Join(c.dir, descriptor.ID+".json")
}

// Load returns the introspection document for descriptor, downloading and
// persisting it on a cache miss.
func (c *Cache) Load(ctx context.Context, descriptor domain.SchemaDescriptor) ([]byte, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "SchemaCache.Load")
	defer span.End()
	span.SetAttributes(attribute.String("graphql.schema_id", descriptor.ID))
	idAttr := metric.WithAttributes(attribute.String("schema_id", descriptor.ID))

	log := c.logger.With(slog.String("schema_id", descriptor.ID))
	path := c.Path(descriptor)

	content, err := os.ReadFile(path)
	if err == nil {
		c.hits.Add(ctx, 1, idAttr)
		log.Debug("Schema cache hit", slog.String("path", path))
		return content, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to read cached schema, refetching", slog.String("path", path), slog.Any("error", err))
	}

	c.misses.Add(ctx, 1, idAttr)
	log.Info("Schema cache miss, downloading", slog.String("url", descriptor.URL))

	content, err = c.download(ctx, descriptor.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", c.dir, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write cache file %s: %w", path, err)
	}
	log.Info("Cached schema", slog.String("path", path), slog.Int("bytes", len(content)))
	return content, nil
}

func (c *Cache) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	// An explicit Accept-Encoding turns off the transport's transparent decompression.
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch schema from %s: status %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body from %s: %w", url, err)
		}
		defer zr.Close()
		body = zr
	}

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema body from %s: %w", url, err)
	}
	return content, nil
}
