package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// WarmSchemaUseCase downloads a schema into the local cache and lets the
// registered warmers build whatever they derive from it.
type WarmSchemaUseCase struct {
	catalog    CatalogFetcher
	repository SchemaRepository
	warmers    []SchemaWarmer
	logger     *slog.Logger
}

// NewWarmSchemaUseCase creates a new WarmSchemaUseCase.
func NewWarmSchemaUseCase(catalog CatalogFetcher, repository SchemaRepository, logger *slog.Logger, warmers ...SchemaWarmer) *WarmSchemaUseCase {
	return &WarmSchemaUseCase{
		catalog:    catalog,
		repository: repository,
		warmers:    warmers,
		logger:     logger.With("usecase", "WarmSchema"),
	}
}

// Execute warms the schema for api and version. An empty version selects the
// latest published version. It returns the descriptor that was warmed.
func (uc *WarmSchemaUseCase) Execute(ctx context.Context, api, version string) (domain.SchemaDescriptor, error) {
	catalog := uc.catalog.FetchCatalog(ctx)
	if version == "" {
		version = catalog.LatestVersion
	}
	descriptor, err := FindSchema(api, version, catalog.Schemas)
	if err != nil {
		return domain.SchemaDescriptor{}, err
	}

	log := uc.logger.With(slog.String("schema_id", descriptor.ID))
	log.Info("Warming schema")

	if _, err := uc.repository.Load(ctx, descriptor); err != nil {
		log.Error("Failed to load schema", slog.Any("error", err))
		return descriptor, fmt.Errorf("failed to load schema %s: %w", descriptor.ID, err)
	}
	for _, w := range uc.warmers {
		if err := w.Warm(ctx, descriptor); err != nil {
			log.Error("Failed to warm schema", slog.Any("error", err))
			return descriptor, fmt.Errorf("failed to warm schema %s: %w", descriptor.ID, err)
		}
	}

	log.Info("Schema warmed")
	return descriptor, nil
}
