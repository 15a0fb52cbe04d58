// Package schemafmt renders introspection types, fields and operations as
// stable plain text for tool responses.
package schemafmt

import (
	"fmt"
	"strings"

	"github.com/i2y/graphqlmcp/internal/domain"
)

const (
	// MaxFieldsToShow caps the member lines rendered for one type.
	MaxFieldsToShow = 50
	// MaxTypeDescriptionLength caps type descriptions, in characters.
	MaxTypeDescriptionLength = 150
	// MaxOperationDescriptionLength caps query and mutation descriptions, in characters.
	MaxOperationDescriptionLength = 100
)

// FormatType renders a type reference in SDL notation, e.g. "[Product!]!".
// A nil reference renders as "null".
func FormatType(ref domain.TypeRef) string {
	switch r := ref.(type) {
	case domain.NonNullRef:
		return FormatType(r.OfType) + "!"
	case domain.ListRef:
		return "[" + FormatType(r.OfType) + "]"
	case domain.NamedRef:
		return r.Name
	}
	return "null"
}

// FormatArg renders "name: Type", followed by " = default" when a default is set.
func FormatArg(arg domain.InputValue) string {
	s := arg.Name + ": " + FormatType(arg.Type)
	if arg.DefaultValue != nil {
		s += " = " + *arg.DefaultValue
	}
	return s
}

// FormatField renders one indented field line with its arguments and deprecation marker.
func FormatField(f domain.Field) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(f.Name)
	if len(f.Args) > 0 {
		args := make([]string, len(f.Args))
		for i, a := range f.Args {
			args[i] = FormatArg(a)
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	b.WriteString(": " + FormatType(f.Type))
	if f.IsDeprecated {
		b.WriteString(" @deprecated")
		if f.DeprecationReason != "" {
			b.WriteString(" (" + f.DeprecationReason + ")")
		}
	}
	return b.String()
}

// FormatSchemaType renders a named type: header, description, implemented
// interfaces and a capped member listing.
func FormatSchemaType(t domain.NamedType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", t.Kind, t.Name)

	if t.Description != "" {
		b.WriteString("\n  Description: " + truncate(collapseNewlines(t.Description), MaxTypeDescriptionLength))
	}
	if len(t.Interfaces) > 0 {
		b.WriteString("\n  Implements: " + strings.Join(t.Interfaces, ", "))
	}

	switch body := t.Body.(type) {
	case domain.InputObjectBody:
		lines := make([]string, len(body.InputFields))
		for i, f := range body.InputFields {
			lines[i] = "  " + FormatArg(f)
		}
		writeCapped(&b, "Input Fields:", lines, "input fields")
	case domain.ObjectBody:
		lines := make([]string, len(body.Fields))
		for i, f := range body.Fields {
			lines[i] = FormatField(f)
		}
		writeCapped(&b, "Fields:", lines, "fields")
	case domain.EnumBody:
		lines := make([]string, len(body.Values))
		for i, v := range body.Values {
			lines[i] = "  " + v.Name
			if v.IsDeprecated {
				lines[i] += " @deprecated"
			}
		}
		writeCapped(&b, "Values:", lines, "values")
	case domain.UnionBody:
		if len(body.PossibleTypes) > 0 {
			b.WriteString("\n  Possible Types: " + strings.Join(body.PossibleTypes, ", "))
		}
	}
	return b.String()
}

// FormatOperation renders a root field (a query or a mutation) with its
// arguments and return type.
func FormatOperation(f domain.Field) string {
	var b strings.Builder
	b.WriteString(f.Name)
	if f.Description != "" {
		b.WriteString("\n  " + truncate(collapseNewlines(f.Description), MaxOperationDescriptionLength))
	}
	if len(f.Args) > 0 {
		b.WriteString("\n  Arguments:")
		for _, a := range f.Args {
			b.WriteString("\n    " + FormatArg(a))
		}
	}
	b.WriteString("\n  Returns: " + FormatType(f.Type))
	return b.String()
}

func writeCapped(b *strings.Builder, heading string, lines []string, noun string) {
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n  " + heading)
	shown := lines
	if len(shown) > MaxFieldsToShow {
		shown = shown[:MaxFieldsToShow]
	}
	for _, l := range shown {
		b.WriteString("\n" + l)
	}
	if rest := len(lines) - len(shown); rest > 0 {
		fmt.Fprintf(b, "\n  ... and %d more %s", rest, noun)
	}
}

func collapseNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
