package schemafmt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i2y/graphqlmcp/internal/domain"
)

func named(name string) domain.NamedRef {
	return domain.NamedRef{Kind: domain.KindScalar, Name: name}
}

func strPtr(s string) *string { return &s }

func TestFormatType(t *testing.T) {
	tests := []struct {
		name string
		ref  domain.TypeRef
		want string
	}{
		{name: "nil", ref: nil, want: "null"},
		{name: "named", ref: named("String"), want: "String"},
		{name: "non null", ref: domain.NonNullRef{OfType: named("ID")}, want: "ID!"},
		{name: "list", ref: domain.ListRef{OfType: named("Int")}, want: "[Int]"},
		{
			name: "non null list of non null",
			ref: domain.NonNullRef{OfType: domain.ListRef{OfType: domain.NonNullRef{
				OfType: domain.NamedRef{Kind: domain.KindObject, Name: "Product"},
			}}},
			want: "[Product!]!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatType(tt.ref))
		})
	}
}

func TestFormatArg(t *testing.T) {
	assert.Equal(t, "first: Int", FormatArg(domain.InputValue{Name: "first", Type: named("Int")}))
	assert.Equal(t, "first: Int = 10", FormatArg(domain.InputValue{Name: "first", Type: named("Int"), DefaultValue: strPtr("10")}))
}

func TestFormatField(t *testing.T) {
	f := domain.Field{
		Name: "variants",
		Args: []domain.InputValue{
			{Name: "first", Type: named("Int"), DefaultValue: strPtr("10")},
			{Name: "after", Type: named("String")},
		},
		Type: domain.NonNullRef{OfType: named("ProductVariantConnection")},
	}
	assert.Equal(t, "  variants(first: Int = 10, after: String): ProductVariantConnection!", FormatField(f))

	deprecated := domain.Field{Name: "bodyHtml", Type: named("String"), IsDeprecated: true, DeprecationReason: "Use description"}
	assert.Equal(t, "  bodyHtml: String @deprecated (Use description)", FormatField(deprecated))

	deprecated.DeprecationReason = ""
	assert.Equal(t, "  bodyHtml: String @deprecated", FormatField(deprecated))
}

func TestFormatSchemaType_FieldTruncation(t *testing.T) {
	fields := make([]domain.Field, 60)
	for i := range fields {
		fields[i] = domain.Field{Name: fmt.Sprintf("field%d", i), Type: named("String")}
	}
	out := FormatSchemaType(domain.NamedType{
		Kind: domain.KindObject,
		Name: "Wide",
		Body: domain.ObjectBody{Fields: fields},
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "OBJECT Wide", lines[0])
	assert.Equal(t, "  Fields:", lines[1])

	fieldLines := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "  field") {
			fieldLines++
		}
	}
	assert.Equal(t, 50, fieldLines)
	assert.Equal(t, "  ... and 10 more fields", lines[len(lines)-1])
}

func TestFormatSchemaType_InputObject(t *testing.T) {
	out := FormatSchemaType(domain.NamedType{
		Kind:        domain.KindInputObject,
		Name:        "ProductInput",
		Description: "The input fields\nfor a product.",
		Body: domain.InputObjectBody{InputFields: []domain.InputValue{
			{Name: "title", Type: named("String")},
			{Name: "status", Type: named("ProductStatus"), DefaultValue: strPtr("ACTIVE")},
		}},
	})

	assert.Equal(t, strings.Join([]string{
		"INPUT_OBJECT ProductInput",
		"  Description: The input fields for a product.",
		"  Input Fields:",
		"  title: String",
		"  status: ProductStatus = ACTIVE",
	}, "\n"), out)
}

func TestFormatSchemaType_DescriptionAndInterfaces(t *testing.T) {
	long := strings.Repeat("a", 200)
	out := FormatSchemaType(domain.NamedType{
		Kind:        domain.KindObject,
		Name:        "Product",
		Description: long,
		Interfaces:  []string{"Node", "HasMetafields"},
		Body:        domain.ObjectBody{Fields: []domain.Field{{Name: "id", Type: domain.NonNullRef{OfType: named("ID")}}}},
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "  Description: "+strings.Repeat("a", 150)+"...", lines[1])
	assert.Equal(t, "  Implements: Node, HasMetafields", lines[2])
	assert.Equal(t, "  id: ID!", lines[4])
}

func TestFormatSchemaType_ScalarAndEnum(t *testing.T) {
	assert.Equal(t, "SCALAR DateTime", FormatSchemaType(domain.NamedType{Kind: domain.KindScalar, Name: "DateTime"}))

	out := FormatSchemaType(domain.NamedType{
		Kind: domain.KindEnum,
		Name: "ProductStatus",
		Body: domain.EnumBody{Values: []domain.EnumValue{{Name: "ACTIVE"}, {Name: "DRAFT", IsDeprecated: true}}},
	})
	assert.Equal(t, "ENUM ProductStatus\n  Values:\n  ACTIVE\n  DRAFT @deprecated", out)
}

func TestFormatOperation(t *testing.T) {
	op := domain.Field{
		Name:        "products",
		Description: strings.Repeat("b", 120),
		Args:        []domain.InputValue{{Name: "first", Type: named("Int")}},
		Type:        domain.NonNullRef{OfType: domain.NamedRef{Kind: domain.KindObject, Name: "ProductConnection"}},
	}
	assert.Equal(t, strings.Join([]string{
		"products",
		"  " + strings.Repeat("b", 100) + "...",
		"  Arguments:",
		"    first: Int",
		"  Returns: ProductConnection!",
	}, "\n"), FormatOperation(op))

	bare := domain.Field{Name: "shop", Type: named("Shop")}
	assert.Equal(t, "shop\n  Returns: Shop", FormatOperation(bare))
}
