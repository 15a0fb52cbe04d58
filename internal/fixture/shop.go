// Package fixture builds small introspection documents shared by package tests.
package fixture

import (
	"encoding/json"
	"fmt"
)

// Ref is a JSON type reference node.
type Ref = map[string]any

// Named returns a terminal type reference.
func Named(kind, name string) Ref {
	return Ref{"kind": kind, "name": name, "ofType": nil}
}

// NonNull wraps a reference in NON_NULL.
func NonNull(of Ref) Ref {
	return Ref{"kind": "NON_NULL", "name": nil, "ofType": of}
}

// List wraps a reference in LIST.
func List(of Ref) Ref {
	return Ref{"kind": "LIST", "name": nil, "ofType": of}
}

func scalar(name string) Ref { return Named("SCALAR", name) }
func object(name string) Ref { return Named("OBJECT", name) }

// Arg builds an input value; defaultValue may be empty.
func Arg(name string, typ Ref, defaultValue string) map[string]any {
	var def any
	if defaultValue != "" {
		def = defaultValue
	}
	return map[string]any{"name": name, "description": nil, "type": typ, "defaultValue": def}
}

// Field builds an output field.
func Field(name string, typ Ref, args ...map[string]any) map[string]any {
	if args == nil {
		args = []map[string]any{}
	}
	return map[string]any{
		"name":              name,
		"description":       nil,
		"args":              args,
		"type":              typ,
		"isDeprecated":      false,
		"deprecationReason": nil,
	}
}

// Deprecated marks a field built by Field as deprecated.
func Deprecated(f map[string]any, reason string) map[string]any {
	f["isDeprecated"] = true
	if reason != "" {
		f["deprecationReason"] = reason
	}
	return f
}

// Described sets the description of a field or type.
func Described(m map[string]any, description string) map[string]any {
	m["description"] = description
	return m
}

// ObjectType builds an OBJECT type.
func ObjectType(name string, interfaces []string, fields ...map[string]any) map[string]any {
	ifaces := make([]Ref, 0, len(interfaces))
	for _, i := range interfaces {
		ifaces = append(ifaces, Named("INTERFACE", i))
	}
	return map[string]any{
		"kind":          "OBJECT",
		"name":          name,
		"description":   nil,
		"fields":        fields,
		"inputFields":   nil,
		"interfaces":    ifaces,
		"enumValues":    nil,
		"possibleTypes": nil,
	}
}

// InterfaceType builds an INTERFACE type.
func InterfaceType(name string, fields ...map[string]any) map[string]any {
	t := ObjectType(name, nil, fields...)
	t["kind"] = "INTERFACE"
	t["interfaces"] = []Ref{}
	return t
}

// InputType builds an INPUT_OBJECT type.
func InputType(name string, inputFields ...map[string]any) map[string]any {
	return map[string]any{
		"kind":          "INPUT_OBJECT",
		"name":          name,
		"description":   nil,
		"fields":        nil,
		"inputFields":   inputFields,
		"interfaces":    nil,
		"enumValues":    nil,
		"possibleTypes": nil,
	}
}

// EnumType builds an ENUM type.
func EnumType(name string, values ...string) map[string]any {
	vals := make([]map[string]any, 0, len(values))
	for _, v := range values {
		vals = append(vals, map[string]any{"name": v, "description": nil, "isDeprecated": false, "deprecationReason": nil})
	}
	return map[string]any{
		"kind":          "ENUM",
		"name":          name,
		"description":   nil,
		"fields":        nil,
		"inputFields":   nil,
		"interfaces":    nil,
		"enumValues":    vals,
		"possibleTypes": nil,
	}
}

// ScalarType builds a SCALAR type.
func ScalarType(name string) map[string]any {
	return map[string]any{"kind": "SCALAR", "name": name, "description": nil}
}

// DirectiveDef builds a __schema.directives entry.
func DirectiveDef(name string, locations []string, args ...map[string]any) map[string]any {
	if args == nil {
		args = []map[string]any{}
	}
	return map[string]any{
		"name":         name,
		"description":  nil,
		"locations":    locations,
		"args":         args,
		"isRepeatable": false,
	}
}

// Document wraps types into a {"data": {"__schema": ...}} introspection result.
func Document(queryRoot, mutationRoot string, types ...map[string]any) []byte {
	return DocumentWithDirectives(queryRoot, mutationRoot, nil, types...)
}

// DocumentWithDirectives is Document with a __schema.directives list.
func DocumentWithDirectives(queryRoot, mutationRoot string, directives []map[string]any, types ...map[string]any) []byte {
	if directives == nil {
		directives = []map[string]any{}
	}
	schema := map[string]any{
		"queryType":        map[string]any{"name": queryRoot},
		"mutationType":     nil,
		"subscriptionType": nil,
		"types":            types,
		"directives":       directives,
	}
	if mutationRoot != "" {
		schema["mutationType"] = map[string]any{"name": mutationRoot}
	}
	raw, err := json.Marshal(map[string]any{"data": map[string]any{"__schema": schema}})
	if err != nil {
		panic(fmt.Sprintf("fixture: %v", err))
	}
	return raw
}

// ShopSchema returns a small storefront-like schema with a QueryRoot and a
// Mutation root. Ten of its types contain "product" in their name.
func ShopSchema() []byte {
	id := NonNull(scalar("ID"))
	str := scalar("String")
	nnStr := NonNull(str)
	userErrors := NonNull(List(NonNull(object("UserError"))))

	return Document("QueryRoot", "Mutation",
		ScalarType("ID"),
		ScalarType("String"),
		ScalarType("Int"),
		ScalarType("Boolean"),
		ScalarType("DateTime"),
		InterfaceType("Node", Field("id", id)),
		Described(ObjectType("QueryRoot", nil,
			Described(Field("product", object("Product"), Arg("id", id, "")), "Returns a Product resource by ID."),
			Described(Field("products", NonNull(object("ProductConnection")),
				Arg("first", scalar("Int"), ""),
				Arg("query", str, ""),
			), "Returns a list of products."),
			Field("productVariant", object("ProductVariant"), Arg("id", id, "")),
			Field("customer", object("Customer"), Arg("id", id, "")),
			Field("shop", NonNull(object("Shop"))),
		), "The schema's entry-point for queries."),
		ObjectType("Mutation", nil,
			Described(Field("productCreate", object("ProductCreatePayload"),
				Arg("input", NonNull(Named("INPUT_OBJECT", "ProductInput")), ""),
			), "Creates a product."),
			Field("productUpdate", object("ProductUpdatePayload"),
				Arg("input", NonNull(Named("INPUT_OBJECT", "ProductInput")), ""),
			),
			Field("customerCreate", object("CustomerCreatePayload"),
				Arg("input", NonNull(Named("INPUT_OBJECT", "CustomerInput")), ""),
			),
		),
		Described(ObjectType("Product", []string{"Node"},
			Field("id", id),
			Field("title", nnStr),
			Field("handle", nnStr),
			Field("description", nnStr, Arg("truncateAt", scalar("Int"), "")),
			Field("status", NonNull(Named("ENUM", "ProductStatus"))),
			Field("createdAt", NonNull(scalar("DateTime"))),
			Field("variants", NonNull(object("ProductVariantConnection")), Arg("first", scalar("Int"), "10")),
			Deprecated(Field("bodyHtml", str), "Use `description` instead."),
		), "The Product resource lets you manage products in a merchant's store."),
		ObjectType("ProductConnection", nil,
			Field("edges", NonNull(List(NonNull(object("ProductEdge"))))),
			Field("pageInfo", NonNull(object("PageInfo"))),
		),
		ObjectType("ProductEdge", nil,
			Field("cursor", nnStr),
			Field("node", NonNull(object("Product"))),
		),
		ObjectType("ProductVariant", []string{"Node"},
			Field("id", id),
			Field("title", nnStr),
			Field("price", nnStr),
		),
		ObjectType("ProductVariantConnection", nil,
			Field("edges", NonNull(List(NonNull(object("ProductVariantEdge"))))),
		),
		ObjectType("ProductVariantEdge", nil,
			Field("node", NonNull(object("ProductVariant"))),
		),
		EnumType("ProductStatus", "ACTIVE", "ARCHIVED", "DRAFT"),
		InputType("ProductInput",
			Arg("id", scalar("ID"), ""),
			Arg("title", str, ""),
			Arg("status", Named("ENUM", "ProductStatus"), "ACTIVE"),
		),
		ObjectType("ProductCreatePayload", nil,
			Field("product", object("Product")),
			Field("userErrors", userErrors),
		),
		ObjectType("ProductUpdatePayload", nil,
			Field("product", object("Product")),
			Field("userErrors", userErrors),
		),
		ObjectType("UserError", nil,
			Field("field", List(nnStr)),
			Field("message", nnStr),
		),
		ObjectType("PageInfo", nil,
			Field("hasNextPage", NonNull(scalar("Boolean"))),
		),
		ObjectType("Customer", []string{"Node"},
			Field("id", id),
			Field("email", str),
		),
		InputType("CustomerInput",
			Arg("email", nnStr, ""),
		),
		ObjectType("CustomerCreatePayload", nil,
			Field("customer", object("Customer")),
			Field("userErrors", userErrors),
		),
		ObjectType("Shop", nil,
			Field("name", nnStr),
		),
	)
}
