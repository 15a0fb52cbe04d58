// Package catalog loads the remote list of published GraphQL schemas.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// document is the wire form of the catalog.
type document struct {
	LatestVersion string `json:"latest_version"`
	APIs          []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Schemas     []struct {
			ID      string `json:"id"`
			Version string `json:"version"`
			URL     string `json:"url"`
		} `json:"schemas"`
	} `json:"apis"`
}

// documentShape is checked against the decoded JSON before it is flattened.
var documentShape = func() *openapi3.Schema {
	entry := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("version", openapi3.NewStringSchema()).
		WithProperty("url", openapi3.NewStringSchema())
	entry.Required = []string{"id", "version", "url"}

	api := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema().WithNullable()).
		WithProperty("schemas", openapi3.NewArraySchema().WithItems(entry))
	api.Required = []string{"name", "schemas"}

	doc := openapi3.NewObjectSchema().
		WithProperty("latest_version", openapi3.NewStringSchema().WithNullable()).
		WithProperty("apis", openapi3.NewArraySchema().WithItems(api))
	doc.Required = []string{"apis"}
	return doc
}()

// Fetcher implements usecase.CatalogFetcher. The remote document is fetched at
// most once per Fetcher; the result, including an empty catalog after a
// failure, is kept for the lifetime of the process.
type Fetcher struct {
	client *http.Client
	url    string
	logger *slog.Logger

	once    sync.Once
	catalog domain.Catalog
}

// NewFetcher creates a Fetcher for the catalog published at url.
func NewFetcher(client *http.Client, url string, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client: client,
		url:    url,
		logger: logger.With("component", "catalog_fetcher"),
	}
}

// FetchCatalog returns the flattened catalog. Concurrent first callers share a
// single request. It never fails; problems are logged and yield an empty catalog.
func (f *Fetcher) FetchCatalog(ctx context.Context) domain.Catalog {
	f.once.Do(func() {
		// Detached from the first caller's cancellation.
		c, err := f.fetch(context.WithoutCancel(ctx))
		if err != nil {
			f.logger.Error("Failed to load schema catalog", slog.String("url", f.url), slog.Any("error", err))
			c = domain.EmptyCatalog()
		}
		f.catalog = c
	})
	return f.catalog
}

func (f *Fetcher) fetch(ctx context.Context) (domain.Catalog, error) {
	if f.url == "" {
		return domain.Catalog{}, errors.New("no catalog URL configured")
	}
	log := f.logger.With(slog.String("url", f.url))
	log.Info("Fetching schema catalog")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to create request for %s: %w", f.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Catalog{}, fmt.Errorf("failed to fetch catalog: status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read catalog body: %w", err)
	}

	c, err := Parse(body)
	if err != nil {
		return domain.Catalog{}, err
	}
	log.Info("Loaded schema catalog",
		slog.Int("apis", len(c.APIs)),
		slog.Int("schemas", len(c.Schemas)),
		slog.String("latest_version", c.LatestVersion))
	return c, nil
}

// Parse validates and flattens a catalog document. Versions are de-duplicated
// in first-seen order.
func Parse(body []byte) (domain.Catalog, error) {
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	if err := documentShape.VisitJSON(generic); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog document has an unexpected shape: %w", err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := domain.EmptyCatalog()
	c.LatestVersion = doc.LatestVersion
	seen := make(map[string]struct{})
	for _, api := range doc.APIs {
		c.APIs = append(c.APIs, domain.APIInfo{Name: api.Name, Description: api.Description})
		for _, s := range api.Schemas {
			c.Schemas = append(c.Schemas, domain.SchemaDescriptor{
				API:     api.Name,
				ID:      s.ID,
				Version: s.Version,
				URL:     s.URL,
			})
			if _, ok := seen[s.Version]; !ok {
				seen[s.Version] = struct{}{}
				c.Versions = append(c.Versions, s.Version)
			}
		}
	}
	return c, nil
}
