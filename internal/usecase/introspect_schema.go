package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/schemafmt"
	"github.com/i2y/graphqlmcp/internal/search"
)

const tracerName = "github.com/i2y/graphqlmcp/internal/usecase"

// Section filters accepted by IntrospectSchemaUseCase.
const (
	FilterAll       = "all"
	FilterTypes     = "types"
	FilterQueries   = "queries"
	FilterMutations = "mutations"
)

// IntrospectOptions selects the schema to search and the report sections.
type IntrospectOptions struct {
	Schemas []domain.SchemaDescriptor
	API     string
	Version string
	// Filter lists the sections to render. Empty means FilterAll.
	Filter []string
}

// IntrospectionResult is either a rendered report or an error message.
type IntrospectionResult struct {
	Success      bool
	ResponseText string
	Error        string
}

// IntrospectSchemaUseCase searches a cached introspection document for types,
// queries and mutations matching a free-text query.
type IntrospectSchemaUseCase struct {
	repository SchemaRepository
	decoder    IntrospectionDecoder
	logger     *slog.Logger
}

// NewIntrospectSchemaUseCase creates a new IntrospectSchemaUseCase.
func NewIntrospectSchemaUseCase(repository SchemaRepository, decoder IntrospectionDecoder, logger *slog.Logger) *IntrospectSchemaUseCase {
	return &IntrospectSchemaUseCase{
		repository: repository,
		decoder:    decoder,
		logger:     logger.With("usecase", "IntrospectSchema"),
	}
}

// Execute resolves the schema, filters it against query and renders the
// matching sections. It never returns an error; failures are reported in the result.
func (uc *IntrospectSchemaUseCase) Execute(ctx context.Context, query string, opts IntrospectOptions) IntrospectionResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "IntrospectSchema")
	defer span.End()
	span.SetAttributes(
		attribute.String("graphql.api", opts.API),
		attribute.String("graphql.version", opts.Version),
	)

	log := uc.logger.With(slog.String("api", opts.API), slog.String("version", opts.Version), slog.String("query", query))
	log.Info("Searching schema")

	text, err := uc.introspect(ctx, query, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn("Schema search failed", slog.Any("error", err))
		return IntrospectionResult{Success: false, Error: err.Error()}
	}
	log.Debug("Schema search completed", slog.Int("response_length", len(text)))
	return IntrospectionResult{Success: true, ResponseText: text}
}

func (uc *IntrospectSchemaUseCase) introspect(ctx context.Context, query string, opts IntrospectOptions) (string, error) {
	descriptor, err := FindSchema(opts.API, opts.Version, opts.Schemas)
	if err != nil {
		return "", err
	}
	schema, err := loadSchema(ctx, uc.repository, uc.decoder, descriptor)
	if err != nil {
		return "", err
	}

	filter := opts.Filter
	if len(filter) == 0 {
		filter = []string{FilterAll}
	}
	wants := func(section string) bool {
		return slices.Contains(filter, FilterAll) || slices.Contains(filter, section)
	}

	typeName := func(t domain.NamedType) string { return t.Name }
	fieldName := func(f domain.Field) string { return f.Name }

	var (
		types     search.Result[domain.NamedType]
		queries   search.Result[domain.Field]
		mutations search.Result[domain.Field]
	)
	term := search.NormalizeQuery(query)
	if term != "" {
		types = search.FilterAndSort(schema.Types, typeName, term, search.MaxItems)
		if wants(FilterQueries) {
			queries = search.FilterAndSort(schema.QueryFields(), fieldName, term, search.MaxItems)
		}
		if wants(FilterMutations) {
			mutations = search.FilterAndSort(schema.MutationFields(), fieldName, term, search.MaxItems)
		}
	} else {
		types = search.Result[domain.NamedType]{Items: schema.Types}
	}

	var b strings.Builder
	if wants(FilterTypes) {
		writeSection(&b, "Types", "types", types, schemafmt.FormatSchemaType)
	}
	if wants(FilterQueries) {
		writeSection(&b, "Queries", "queries", queries, schemafmt.FormatOperation)
	}
	if wants(FilterMutations) {
		writeSection(&b, "Mutations", "mutations", mutations, schemafmt.FormatOperation)
	}
	return strings.TrimSpace(b.String()), nil
}

func writeSection[T any](b *strings.Builder, title, noun string, res search.Result[T], format func(T) string) {
	fmt.Fprintf(b, "## Matching GraphQL %s:\n", title)
	if res.WasTruncated {
		fmt.Fprintf(b, "(Results limited to %d items. Refine your search for more specific results.)\n\n", search.MaxItems)
	}
	if len(res.Items) == 0 {
		fmt.Fprintf(b, "No matching %s found.\n\n", noun)
		return
	}
	rendered := make([]string, len(res.Items))
	for i, it := range res.Items {
		rendered[i] = format(it)
	}
	b.WriteString(strings.Join(rendered, "\n\n"))
	b.WriteString("\n\n")
}
