package usecase

import (
	"context"
	"fmt"

	"github.com/i2y/graphqlmcp/internal/domain"
	// Import mcp types needed for the adapter interface
	"github.com/mark3labs/mcp-go/mcp"
	mcpGoServer "github.com/mark3labs/mcp-go/server"
)

// --- Schema Source Related ---

// CatalogFetcher returns the flattened schema catalog. Implementations must never
// fail: an unavailable catalog is reported as an empty one.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) domain.Catalog
}

// SchemaRepository returns the raw introspection JSON for a descriptor,
// from local storage when possible.
type SchemaRepository interface {
	Load(ctx context.Context, descriptor domain.SchemaDescriptor) ([]byte, error)
}

// IntrospectionDecoder turns raw introspection JSON into the domain model.
type IntrospectionDecoder interface {
	Decode(raw []byte) (*domain.Schema, error)
}

// OperationChecker parses and validates a GraphQL operation against the schema
// identified by descriptor. It returns the operation type of the first
// operation definition ("query", "mutation", "subscription", or "" if unknown).
//
// A malformed document yields *domain.SyntaxError; a well-formed document that
// violates the schema yields *domain.OperationValidationError. Any other error
// means the schema itself could not be loaded or built.
type OperationChecker interface {
	Check(ctx context.Context, descriptor domain.SchemaDescriptor, operation string) (string, error)
}

// SchemaWarmer prepares per-schema state ahead of the first request that needs it.
type SchemaWarmer interface {
	Warm(ctx context.Context, descriptor domain.SchemaDescriptor) error
}

// --- Instrumentation ---

// UsageRecorder receives one record per tool call. Implementations must return
// immediately and never surface failures to the caller.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, toolName string, params any, result any)
}

// --- MCP Server Abstraction ---

// MCPServerAdapter defines the interface required to register tools on the
// underlying MCP server (like mcp-go).
type MCPServerAdapter interface {
	// AddTool registers a tool and its handler with the server.
	AddTool(tool mcp.Tool, handlerFunc mcpGoServer.ToolHandlerFunc)
}

// FindSchema returns the descriptor matching api and version. On a miss the
// returned *domain.SchemaNotFoundError lists every available schema.
func FindSchema(api, version string, schemas []domain.SchemaDescriptor) (domain.SchemaDescriptor, error) {
	for _, s := range schemas {
		if s.API == api && s.Version == version {
			return s, nil
		}
	}
	return domain.SchemaDescriptor{}, &domain.SchemaNotFoundError{
		API:       api,
		Version:   version,
		Available: schemas,
	}
}

// loadSchema loads and decodes the schema for descriptor.
func loadSchema(ctx context.Context, repo SchemaRepository, decoder IntrospectionDecoder, descriptor domain.SchemaDescriptor) (*domain.Schema, error) {
	raw, err := repo.Load(ctx, descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", descriptor.ID, err)
	}
	schema, err := decoder.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", descriptor.ID, err)
	}
	return schema, nil
}
