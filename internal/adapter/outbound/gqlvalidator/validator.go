// Package gqlvalidator checks GraphQL operations against cached introspection
// documents using gqlparser.
package gqlvalidator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

const tracerName = "github.com/i2y/graphqlmcp/internal/adapter/outbound/gqlvalidator"

// DefaultCacheSize is the number of built schemas kept in memory.
const DefaultCacheSize = 8

// Validator implements usecase.OperationChecker.
type Validator struct {
	repository usecase.SchemaRepository
	decoder    usecase.IntrospectionDecoder
	schemas    *lru.Cache[string, *ast.Schema]
	logger     *slog.Logger
}

// New creates a Validator that loads introspection documents through
// repository and keeps up to cacheSize built schemas, keyed by descriptor ID.
func New(repository usecase.SchemaRepository, decoder usecase.IntrospectionDecoder, cacheSize int, logger *slog.Logger) (*Validator, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	schemas, err := lru.New[string, *ast.Schema](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema cache: %w", err)
	}
	return &Validator{
		repository: repository,
		decoder:    decoder,
		schemas:    schemas,
		logger:     logger.With("component", "gql_validator"),
	}, nil
}

// Check loads the schema for descriptor, then parses operation and validates
// it against that schema. It returns the type of its first operation definition.
func (v *Validator) Check(ctx context.Context, descriptor domain.SchemaDescriptor, operation string) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Validator.Check")
	defer span.End()
	span.SetAttributes(attribute.String("graphql.schema_id", descriptor.ID))

	schema, err := v.schema(ctx, descriptor)
	if err != nil {
		return "", err
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: "operation", Input: operation})
	if err != nil {
		return "", &domain.SyntaxError{Message: gqlMessage(err)}
	}

	if errs := validator.Validate(schema, doc); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Message
		}
		return "", &domain.OperationValidationError{Messages: messages}
	}

	if len(doc.Operations) == 0 {
		return "", nil
	}
	return string(doc.Operations[0].Operation), nil
}

// Warm builds and memoizes the schema for descriptor.
func (v *Validator) Warm(ctx context.Context, descriptor domain.SchemaDescriptor) error {
	_, err := v.schema(ctx, descriptor)
	return err
}

func (v *Validator) schema(ctx context.Context, descriptor domain.SchemaDescriptor) (*ast.Schema, error) {
	if s, ok := v.schemas.Get(descriptor.ID); ok {
		return s, nil
	}

	log := v.logger.With(slog.String("schema_id", descriptor.ID))
	raw, err := v.repository.Load(ctx, descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", descriptor.ID, err)
	}
	model, err := v.decoder.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", descriptor.ID, err)
	}

	s, err := gqlparser.LoadSchema(&ast.Source{Name: descriptor.ID, Input: ToSDL(model)})
	if err != nil {
		log.Error("Failed to build schema from introspection", slog.Any("error", err))
		return nil, fmt.Errorf("failed to build schema %s: %s", descriptor.ID, gqlMessage(err))
	}

	v.schemas.Add(descriptor.ID, s)
	log.Info("Built schema for validation", slog.Int("types", len(s.Types)))
	return s, nil
}

func gqlMessage(err error) string {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return gqlErr.Message
	}
	return err.Error()
}
