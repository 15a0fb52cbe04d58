package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/i2y/graphqlmcp/internal/adapter/outbound/introspection"
	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/fixture"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

func newIntrospectUseCase(repo usecase.SchemaRepository) *usecase.IntrospectSchemaUseCase {
	return usecase.NewIntrospectSchemaUseCase(repo, introspection.Decoder{}, newTestLogger())
}

func shopRepo() *MockSchemaRepository {
	repo := new(MockSchemaRepository)
	repo.On("Load", mock.Anything, adminSchema).Return(fixture.ShopSchema(), nil)
	return repo
}

func adminOpts(filter ...string) usecase.IntrospectOptions {
	return usecase.IntrospectOptions{
		Schemas: []domain.SchemaDescriptor{adminSchema},
		API:     "admin",
		Version: "2025-01",
		Filter:  filter,
	}
}

func TestIntrospectSchemaUseCase_NormalizationIsIdempotent(t *testing.T) {
	uc := newIntrospectUseCase(shopRepo())
	ctx := context.Background()

	base := uc.Execute(ctx, "product", adminOpts())
	require.True(t, base.Success, base.Error)

	for _, q := range []string{"products", "Product", "  Products "} {
		res := uc.Execute(ctx, q, adminOpts())
		require.True(t, res.Success, res.Error)
		assert.Equal(t, base.ResponseText, res.ResponseText, "query %q", q)
	}
}

func TestIntrospectSchemaUseCase_AllSections(t *testing.T) {
	assert := assert.New(t)
	uc := newIntrospectUseCase(shopRepo())

	res := uc.Execute(context.Background(), "product", adminOpts(usecase.FilterAll))
	assert.True(res.Success)

	text := res.ResponseText
	assert.True(strings.HasPrefix(text, "## Matching GraphQL Types:\n"))
	assert.Contains(text, "## Matching GraphQL Queries:")
	assert.Contains(text, "## Matching GraphQL Mutations:")
	// Ten matching types fit under the cap.
	assert.NotContains(text, "Results limited to")

	assert.Contains(text, "OBJECT Product\n  Description: The Product resource lets you manage products in a merchant's store.\n  Implements: Node\n  Fields:\n  id: ID!")
	assert.Contains(text, "  variants(first: Int = 10): ProductVariantConnection!")
	assert.Contains(text, "  bodyHtml: String @deprecated (Use `description` instead.)")
	assert.Contains(text, "product\n  Returns a Product resource by ID.\n  Arguments:\n    id: ID!\n  Returns: Product")
	assert.Contains(text, "productCreate\n  Creates a product.\n  Arguments:\n    input: ProductInput!\n  Returns: ProductCreatePayload")
	assert.NotContains(text, "customerCreate")

	// Shorter names rank first.
	assert.Less(strings.Index(text, "OBJECT Product\n"), strings.Index(text, "OBJECT ProductEdge"))
	assert.Less(strings.Index(text, "OBJECT ProductEdge"), strings.Index(text, "OBJECT ProductVariantConnection"))
}

func TestIntrospectSchemaUseCase_FilterSelectsSections(t *testing.T) {
	uc := newIntrospectUseCase(shopRepo())
	ctx := context.Background()

	res := uc.Execute(ctx, "customer", adminOpts(usecase.FilterMutations))
	require.True(t, res.Success)
	assert.Equal(t, "## Matching GraphQL Mutations:\ncustomerCreate\n  Arguments:\n    input: CustomerInput!\n  Returns: CustomerCreatePayload", res.ResponseText)

	res = uc.Execute(ctx, "nothing-like-this", adminOpts(usecase.FilterTypes, usecase.FilterQueries))
	require.True(t, res.Success)
	assert.Equal(t, "## Matching GraphQL Types:\nNo matching types found.\n\n## Matching GraphQL Queries:\nNo matching queries found.", res.ResponseText)
}

func TestIntrospectSchemaUseCase_EmptyQueryListsAllTypes(t *testing.T) {
	uc := newIntrospectUseCase(shopRepo())

	res := uc.Execute(context.Background(), "   ", adminOpts())
	require.True(t, res.Success)

	assert.NotContains(t, res.ResponseText, "Results limited to")
	assert.Contains(t, res.ResponseText, "SCALAR ID")
	assert.Contains(t, res.ResponseText, "OBJECT Shop")
	assert.Contains(t, res.ResponseText, "INPUT_OBJECT CustomerInput")
	assert.Contains(t, res.ResponseText, "No matching queries found.")
	assert.Contains(t, res.ResponseText, "No matching mutations found.")
}

func TestIntrospectSchemaUseCase_Truncation(t *testing.T) {
	types := make([]map[string]any, 0, 16)
	queryFields := make([]map[string]any, 0, 15)
	for i := 0; i < 15; i++ {
		name := fmt.Sprintf("Order%s", strings.Repeat("X", i))
		types = append(types, fixture.ObjectType(name, nil, fixture.Field("id", fixture.Named("SCALAR", "ID"))))
		queryFields = append(queryFields, fixture.Field(fmt.Sprintf("order%d", i), fixture.Named("OBJECT", "Order")))
	}
	types = append(types, fixture.ObjectType("Query", nil, queryFields...))
	raw := fixture.Document("Query", "", types...)

	repo := new(MockSchemaRepository)
	repo.On("Load", mock.Anything, adminSchema).Return(raw, nil)
	uc := newIntrospectUseCase(repo)

	res := uc.Execute(context.Background(), "order", adminOpts())
	require.True(t, res.Success)

	assert.Equal(t, 2, strings.Count(res.ResponseText, "(Results limited to 10 items. Refine your search for more specific results.)"))
	assert.Equal(t, 10, strings.Count(res.ResponseText, "OBJECT Order"))
	assert.Contains(t, res.ResponseText, "No matching mutations found.")
}

func TestIntrospectSchemaUseCase_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown schema", func(t *testing.T) {
		repo := new(MockSchemaRepository)
		uc := newIntrospectUseCase(repo)

		opts := adminOpts()
		opts.API = "bogus"
		res := uc.Execute(ctx, "product", opts)

		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "admin (2025-01)")
		assert.True(t, strings.HasSuffix(res.Error, "Currently supported schemas: admin (2025-01)"))
		repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("load error", func(t *testing.T) {
		repo := new(MockSchemaRepository)
		repo.On("Load", mock.Anything, adminSchema).Return(nil, errors.New("connection refused")).Once()
		uc := newIntrospectUseCase(repo)

		res := uc.Execute(ctx, "product", adminOpts())
		assert.False(t, res.Success)
		assert.Equal(t, "failed to load schema admin_2025-01: connection refused", res.Error)
		repo.AssertExpectations(t)
	})

	t.Run("corrupt schema", func(t *testing.T) {
		repo := new(MockSchemaRepository)
		repo.On("Load", mock.Anything, adminSchema).Return([]byte("{not json"), nil).Once()
		uc := newIntrospectUseCase(repo)

		res := uc.Execute(ctx, "product", adminOpts())
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "failed to decode schema admin_2025-01")
	})
}

func TestFindSchema(t *testing.T) {
	other := domain.SchemaDescriptor{API: "storefront", ID: "sf_2025-01", Version: "2025-01"}
	schemas := []domain.SchemaDescriptor{adminSchema, other}

	got, err := usecase.FindSchema("storefront", "2025-01", schemas)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	_, err = usecase.FindSchema("admin", "2024-01", schemas)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaNotFound)
	assert.Contains(t, err.Error(), "Currently supported schemas: admin (2025-01), storefront (2025-01)")

	_, err = usecase.FindSchema("admin", "2025-01", nil)
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "Currently supported schemas: "))
}
