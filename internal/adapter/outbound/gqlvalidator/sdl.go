package gqlvalidator

import (
	"fmt"
	"strings"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// ToSDL renders the introspection model as a GraphQL SDL document that
// gqlparser can load. Introspection types (__*), built-in scalars and
// built-in directives are omitted since the parser prelude defines them.
func ToSDL(s *domain.Schema) string {
	var buf strings.Builder

	if s.QueryType != "" {
		buf.WriteString("schema {\n")
		fmt.Fprintf(&buf, "  query: %s\n", s.QueryType)
		if s.MutationType != "" {
			fmt.Fprintf(&buf, "  mutation: %s\n", s.MutationType)
		}
		if s.SubscriptionType != "" {
			fmt.Fprintf(&buf, "  subscription: %s\n", s.SubscriptionType)
		}
		buf.WriteString("}\n\n")
	}

	for _, d := range s.Directives {
		if isBuiltinDirective(d.Name) {
			continue
		}
		writeDirective(&buf, d)
	}

	for _, t := range s.Types {
		if strings.HasPrefix(t.Name, "__") {
			continue
		}
		if t.Kind == domain.KindScalar && isBuiltinScalar(t.Name) {
			continue
		}

		switch t.Kind {
		case domain.KindObject:
			writeFielded(&buf, "type", t)
		case domain.KindInterface:
			writeFielded(&buf, "interface", t)
		case domain.KindInputObject:
			writeInputObject(&buf, t)
		case domain.KindEnum:
			writeEnum(&buf, t)
		case domain.KindUnion:
			writeUnion(&buf, t)
		case domain.KindScalar:
			fmt.Fprintf(&buf, "scalar %s\n\n", t.Name)
		}
	}
	return buf.String()
}

func isBuiltinScalar(name string) bool {
	switch name {
	case "String", "Int", "Float", "Boolean", "ID":
		return true
	}
	return false
}

func isBuiltinDirective(name string) bool {
	switch name {
	case "skip", "include", "deprecated", "specifiedBy", "oneOf":
		return true
	}
	return false
}

func writeDirective(buf *strings.Builder, d domain.Directive) {
	fmt.Fprintf(buf, "directive @%s", d.Name)
	writeArgs(buf, d.Args)
	if d.IsRepeatable {
		buf.WriteString(" repeatable")
	}
	fmt.Fprintf(buf, " on %s\n\n", strings.Join(d.Locations, " | "))
}

func writeFielded(buf *strings.Builder, keyword string, t domain.NamedType) {
	fmt.Fprintf(buf, "%s %s", keyword, t.Name)
	if len(t.Interfaces) > 0 {
		fmt.Fprintf(buf, " implements %s", strings.Join(t.Interfaces, " & "))
	}
	buf.WriteString(" {\n")
	for _, f := range t.Fields() {
		writeField(buf, f)
	}
	buf.WriteString("}\n\n")
}

func writeField(buf *strings.Builder, f domain.Field) {
	fmt.Fprintf(buf, "  %s", f.Name)
	writeArgs(buf, f.Args)
	fmt.Fprintf(buf, ": %s", typeRef(f.Type))
	if f.IsDeprecated {
		buf.WriteString(" @deprecated")
		if f.DeprecationReason != "" {
			fmt.Fprintf(buf, "(reason: %s)", quote(f.DeprecationReason))
		}
	}
	buf.WriteByte('\n')
}

func writeArgs(buf *strings.Builder, args []domain.InputValue) {
	if len(args) == 0 {
		return
	}
	buf.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		writeInputValue(buf, arg)
	}
	buf.WriteByte(')')
}

// quote renders s as a GraphQL string value. Only the escapes GraphQL
// defines are used; invalid UTF-8 becomes U+FFFD.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func writeInputValue(buf *strings.Builder, v domain.InputValue) {
	fmt.Fprintf(buf, "%s: %s", v.Name, typeRef(v.Type))
	if v.DefaultValue != nil {
		fmt.Fprintf(buf, " = %s", *v.DefaultValue)
	}
}

func writeInputObject(buf *strings.Builder, t domain.NamedType) {
	fmt.Fprintf(buf, "input %s {\n", t.Name)
	if body, ok := t.Body.(domain.InputObjectBody); ok {
		for _, f := range body.InputFields {
			buf.WriteString("  ")
			writeInputValue(buf, f)
			buf.WriteByte('\n')
		}
	}
	buf.WriteString("}\n\n")
}

func writeEnum(buf *strings.Builder, t domain.NamedType) {
	fmt.Fprintf(buf, "enum %s {\n", t.Name)
	if body, ok := t.Body.(domain.EnumBody); ok {
		for _, v := range body.Values {
			fmt.Fprintf(buf, "  %s\n", v.Name)
		}
	}
	buf.WriteString("}\n\n")
}

func writeUnion(buf *strings.Builder, t domain.NamedType) {
	var members []string
	if body, ok := t.Body.(domain.UnionBody); ok {
		members = body.PossibleTypes
	}
	fmt.Fprintf(buf, "union %s = %s\n\n", t.Name, strings.Join(members, " | "))
}

// typeRef differs from schemafmt.FormatType only for a missing reference,
// which must still parse as a type name.
func typeRef(ref domain.TypeRef) string {
	switch r := ref.(type) {
	case domain.NonNullRef:
		return typeRef(r.OfType) + "!"
	case domain.ListRef:
		return "[" + typeRef(r.OfType) + "]"
	case domain.NamedRef:
		return r.Name
	}
	return "Unknown"
}
