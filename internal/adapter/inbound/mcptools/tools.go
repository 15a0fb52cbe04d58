// Package mcptools exposes the schema introspection and validation use cases
// as MCP tools.
package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

// Tool names.
const (
	IntrospectToolName = "introspect_graphql_schema"
	ValidateToolName   = "validate_graphql_codeblocks"
	ListToolName       = "list_graphql_schemas"
)

// DefaultAPI is used when neither the caller nor the configuration names an API.
const DefaultAPI = "admin"

// Handlers binds the use cases to MCP tool handlers.
type Handlers struct {
	catalog    usecase.CatalogFetcher
	introspect *usecase.IntrospectSchemaUseCase
	validate   *usecase.ValidateOperationUseCase
	list       *usecase.ListSchemasUseCase
	usage      usecase.UsageRecorder
	defaultAPI string
	logger     *slog.Logger
}

// NewHandlers creates the tool handlers. An empty defaultAPI selects DefaultAPI.
func NewHandlers(
	catalog usecase.CatalogFetcher,
	introspect *usecase.IntrospectSchemaUseCase,
	validate *usecase.ValidateOperationUseCase,
	list *usecase.ListSchemasUseCase,
	usage usecase.UsageRecorder,
	defaultAPI string,
	logger *slog.Logger,
) *Handlers {
	if defaultAPI == "" {
		defaultAPI = DefaultAPI
	}
	return &Handlers{
		catalog:    catalog,
		introspect: introspect,
		validate:   validate,
		list:       list,
		usage:      usage,
		defaultAPI: defaultAPI,
		logger:     logger.With("component", "mcp_tools"),
	}
}

// Register adds every tool to srv.
func (h *Handlers) Register(srv usecase.MCPServerAdapter) {
	srv.AddTool(introspectTool(), h.handleIntrospect)
	srv.AddTool(validateTool(), h.handleValidate)
	srv.AddTool(listTool(), h.handleList)
	h.logger.Info("Registered MCP tools", slog.Int("count", 3))
}

func introspectTool() mcp.Tool {
	return mcp.NewTool(IntrospectToolName,
		mcp.WithDescription("Search a GraphQL schema for types, queries and mutations whose names contain the search term. "+
			"Use it to find the exact field, argument and input names before writing an operation. "+
			"Search for one concept at a time, e.g. \"product\" rather than \"product variants and images\"."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term. A trailing plural 's' and whitespace are ignored; an empty term lists every type."),
		),
		mcp.WithString("api",
			mcp.Description("API to search. Call list_graphql_schemas for the available APIs."),
		),
		mcp.WithString("version",
			mcp.Description("API version. Defaults to the latest published version."),
		),
		mcp.WithArray("filter",
			mcp.Description("Sections to include: all, types, queries, mutations. Defaults to all."),
			mcp.Items(map[string]any{
				"type": "string",
				"enum": []string{usecase.FilterAll, usecase.FilterTypes, usecase.FilterQueries, usecase.FilterMutations},
			}),
		),
	)
}

func validateTool() mcp.Tool {
	return mcp.NewTool(ValidateToolName,
		mcp.WithDescription("Validate GraphQL operations against a schema. Each code block is parsed and checked independently; "+
			"syntax errors and schema validation errors are reported separately. The result is an error if any block fails."),
		mcp.WithArray("codeblocks",
			mcp.Required(),
			mcp.Description("GraphQL operations to validate, one per element."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("api",
			mcp.Description("API to validate against. Call list_graphql_schemas for the available APIs."),
		),
		mcp.WithString("version",
			mcp.Description("API version. Defaults to the latest published version."),
		),
	)
}

func listTool() mcp.Tool {
	return mcp.NewTool(ListToolName,
		mcp.WithDescription("List the GraphQL APIs and versions whose schemas can be searched and validated against."),
	)
}

func (h *Handlers) handleIntrospect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	query, ok := args["query"].(string)
	if !ok {
		return mcp.NewToolResultError("query is required and must be a string"), nil
	}
	filter, err := stringSlice(args["filter"])
	if err != nil {
		return mcp.NewToolResultError("filter " + err.Error()), nil
	}

	catalog := h.catalog.FetchCatalog(ctx)
	opts := usecase.IntrospectOptions{
		Schemas: catalog.Schemas,
		API:     h.apiArg(args),
		Version: versionArg(args, catalog),
		Filter:  filter,
	}
	res := h.introspect.Execute(ctx, query, opts)

	var result *mcp.CallToolResult
	if res.Success {
		result = mcp.NewToolResultText(res.ResponseText)
	} else {
		result = mcp.NewToolResultError(res.Error)
	}
	h.usage.RecordUsage(ctx, IntrospectToolName, args, map[string]any{"success": res.Success, "error": res.Error})
	return result, nil
}

func (h *Handlers) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	codeblocks, err := stringSlice(args["codeblocks"])
	if err != nil {
		return mcp.NewToolResultError("codeblocks " + err.Error()), nil
	}
	if len(codeblocks) == 0 {
		return mcp.NewToolResultError("codeblocks must contain at least one GraphQL operation"), nil
	}

	catalog := h.catalog.FetchCatalog(ctx)
	opts := usecase.ValidateOptions{
		API:     h.apiArg(args),
		Version: versionArg(args, catalog),
		Schemas: catalog.Schemas,
	}
	outcomes := h.validate.ExecuteBatch(ctx, codeblocks, opts)

	report := FormatValidationReport(outcomes)
	result := mcp.NewToolResultText(report)
	result.IsError = domain.AnyFailed(outcomes)

	h.usage.RecordUsage(ctx, ValidateToolName, args, outcomes)
	return result, nil
}

func (h *Handlers) handleList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog, text := h.list.Execute(ctx)
	h.usage.RecordUsage(ctx, ListToolName, request.GetArguments(), map[string]any{"schemas": len(catalog.Schemas)})
	return mcp.NewToolResultText(text), nil
}

// FormatValidationReport renders one section per code block, in input order.
func FormatValidationReport(outcomes []domain.ValidationOutcome) string {
	var b strings.Builder
	b.WriteString("## Validation Results")
	for i, o := range outcomes {
		fmt.Fprintf(&b, "\n\n### Code block %d: %s\n%s", i+1, o.Result, o.ResultDetail)
	}
	return b.String()
}

func (h *Handlers) apiArg(args map[string]any) string {
	if api, ok := args["api"].(string); ok && strings.TrimSpace(api) != "" {
		return strings.TrimSpace(api)
	}
	return h.defaultAPI
}

func versionArg(args map[string]any, catalog domain.Catalog) string {
	if v, ok := args["version"].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return catalog.LatestVersion
}

// stringSlice accepts a JSON array of strings as decoded by encoding/json. A
// missing value yields nil.
func stringSlice(v any) ([]string, error) {
	switch vals := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return vals, nil
	case []any:
		out := make([]string, len(vals))
		for i, item := range vals {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("must contain only strings, element %d is %T", i, item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("must be an array of strings, got %T", v)
}
