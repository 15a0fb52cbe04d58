package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// ListSchemasUseCase renders the schema catalog for callers that need to pick
// a valid api/version pair.
type ListSchemasUseCase struct {
	catalog CatalogFetcher
	logger  *slog.Logger
}

// NewListSchemasUseCase creates a new ListSchemasUseCase.
func NewListSchemasUseCase(catalog CatalogFetcher, logger *slog.Logger) *ListSchemasUseCase {
	return &ListSchemasUseCase{
		catalog: catalog,
		logger:  logger.With("usecase", "ListSchemas"),
	}
}

// Execute returns the catalog and its text rendering.
func (uc *ListSchemasUseCase) Execute(ctx context.Context) (domain.Catalog, string) {
	uc.logger.Info("Listing schemas")
	catalog := uc.catalog.FetchCatalog(ctx)
	uc.logger.Info("Successfully listed schemas", slog.Int("count", len(catalog.Schemas)))
	return catalog, RenderCatalog(catalog)
}

// RenderCatalog renders APIs with their versions, then the latest version.
func RenderCatalog(c domain.Catalog) string {
	if len(c.Schemas) == 0 {
		return "No GraphQL schemas are currently available."
	}

	versionsByAPI := make(map[string][]string, len(c.APIs))
	for _, s := range c.Schemas {
		versionsByAPI[s.API] = append(versionsByAPI[s.API], s.Version)
	}

	var b strings.Builder
	b.WriteString("## Available GraphQL APIs:\n")
	for _, api := range c.APIs {
		fmt.Fprintf(&b, "\n- %s", api.Name)
		if api.Description != "" {
			fmt.Fprintf(&b, ": %s", api.Description)
		}
		if versions := versionsByAPI[api.Name]; len(versions) > 0 {
			fmt.Fprintf(&b, "\n  Versions: %s", strings.Join(versions, ", "))
		}
	}
	if c.LatestVersion != "" {
		fmt.Fprintf(&b, "\n\nLatest version: %s", c.LatestVersion)
	}
	return b.String()
}
