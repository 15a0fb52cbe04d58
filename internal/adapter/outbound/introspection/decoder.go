package introspection

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// Root type names assumed when __schema does not name them explicitly.
var (
	fallbackQueryRoots    = []string{"QueryRoot", "Query"}
	fallbackMutationRoots = []string{"Mutation"}
)

// maxTypeRefDepth bounds NON_NULL/LIST nesting; standard introspection queries stop well below it.
const maxTypeRefDepth = 32

type document struct {
	Data *struct {
		Schema *rawSchema `json:"__schema"`
	} `json:"data"`
}

type rawSchema struct {
	QueryType        *rawName       `json:"queryType"`
	MutationType     *rawName       `json:"mutationType"`
	SubscriptionType *rawName       `json:"subscriptionType"`
	Types            []rawType      `json:"types"`
	Directives       []rawDirective `json:"directives"`
}

type rawName struct {
	Name string `json:"name"`
}

type rawType struct {
	Kind          string          `json:"kind"`
	Name          *string         `json:"name"`
	Description   *string         `json:"description"`
	Interfaces    []rawTypeRef    `json:"interfaces"`
	Fields        []rawField      `json:"fields"`
	InputFields   []rawInputValue `json:"inputFields"`
	EnumValues    []rawEnumValue  `json:"enumValues"`
	PossibleTypes []rawTypeRef    `json:"possibleTypes"`
}

type rawField struct {
	Name              string          `json:"name"`
	Description       *string         `json:"description"`
	Args              []rawInputValue `json:"args"`
	Type              *rawTypeRef     `json:"type"`
	IsDeprecated      bool            `json:"isDeprecated"`
	DeprecationReason *string         `json:"deprecationReason"`
}

type rawInputValue struct {
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	Type         *rawTypeRef `json:"type"`
	DefaultValue *string     `json:"defaultValue"`
}

type rawEnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type rawDirective struct {
	Name         string          `json:"name"`
	Description  *string         `json:"description"`
	Locations    []string        `json:"locations"`
	Args         []rawInputValue `json:"args"`
	IsRepeatable bool            `json:"isRepeatable"`
}

type rawTypeRef struct {
	Kind   string      `json:"kind"`
	Name   *string     `json:"name"`
	OfType *rawTypeRef `json:"ofType"`
}

// Decode parses a raw introspection result ({"data": {"__schema": ...}}) into the
// domain model. The document must contain a types array.
func Decode(raw []byte) (*domain.Schema, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse introspection JSON: %w", err)
	}
	if doc.Data == nil || doc.Data.Schema == nil {
		return nil, errors.New("introspection document has no data.__schema")
	}
	rs := doc.Data.Schema
	if rs.Types == nil {
		return nil, errors.New("introspection document has no __schema.types")
	}

	s := &domain.Schema{Types: make([]domain.NamedType, 0, len(rs.Types))}
	for i, rt := range rs.Types {
		t, err := convertType(rt)
		if err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
		s.Types = append(s.Types, t)
	}

	for _, rd := range rs.Directives {
		args, err := convertInputValues(rd.Args)
		if err != nil {
			return nil, fmt.Errorf("directive @%s: %w", rd.Name, err)
		}
		s.Directives = append(s.Directives, domain.Directive{
			Name:         rd.Name,
			Description:  deref(rd.Description),
			Locations:    rd.Locations,
			Args:         args,
			IsRepeatable: rd.IsRepeatable,
		})
	}

	s.QueryType = rootName(s, rs.QueryType, fallbackQueryRoots)
	s.MutationType = rootName(s, rs.MutationType, fallbackMutationRoots)
	if rs.SubscriptionType != nil {
		s.SubscriptionType = rs.SubscriptionType.Name
	}
	return s, nil
}

func rootName(s *domain.Schema, declared *rawName, fallbacks []string) string {
	if declared != nil && declared.Name != "" {
		return declared.Name
	}
	for _, name := range fallbacks {
		if t := s.TypeByName(name); t != nil && t.Kind == domain.KindObject {
			return name
		}
	}
	return ""
}

func convertType(rt rawType) (domain.NamedType, error) {
	t := domain.NamedType{
		Kind:        domain.TypeKind(rt.Kind),
		Name:        deref(rt.Name),
		Description: deref(rt.Description),
	}
	if t.Kind == "" {
		return t, fmt.Errorf("type %q has no kind", t.Name)
	}
	for _, iface := range rt.Interfaces {
		t.Interfaces = append(t.Interfaces, deref(iface.Name))
	}

	switch t.Kind {
	case domain.KindObject, domain.KindInterface:
		fields := make([]domain.Field, 0, len(rt.Fields))
		for _, rf := range rt.Fields {
			f, err := convertField(rf)
			if err != nil {
				return t, fmt.Errorf("type %s: %w", t.Name, err)
			}
			fields = append(fields, f)
		}
		t.Body = domain.ObjectBody{Fields: fields}
	case domain.KindInputObject:
		inputs, err := convertInputValues(rt.InputFields)
		if err != nil {
			return t, fmt.Errorf("type %s: %w", t.Name, err)
		}
		t.Body = domain.InputObjectBody{InputFields: inputs}
	case domain.KindEnum:
		values := make([]domain.EnumValue, 0, len(rt.EnumValues))
		for _, ev := range rt.EnumValues {
			values = append(values, domain.EnumValue{
				Name:              ev.Name,
				Description:       deref(ev.Description),
				IsDeprecated:      ev.IsDeprecated,
				DeprecationReason: deref(ev.DeprecationReason),
			})
		}
		t.Body = domain.EnumBody{Values: values}
	case domain.KindUnion:
		possible := make([]string, 0, len(rt.PossibleTypes))
		for _, pt := range rt.PossibleTypes {
			possible = append(possible, deref(pt.Name))
		}
		t.Body = domain.UnionBody{PossibleTypes: possible}
	}
	return t, nil
}

func convertField(rf rawField) (domain.Field, error) {
	ref, err := convertTypeRef(rf.Type, 0)
	if err != nil {
		return domain.Field{}, fmt.Errorf("field %s: %w", rf.Name, err)
	}
	args, err := convertInputValues(rf.Args)
	if err != nil {
		return domain.Field{}, fmt.Errorf("field %s: %w", rf.Name, err)
	}
	return domain.Field{
		Name:              rf.Name,
		Description:       deref(rf.Description),
		Args:              args,
		Type:              ref,
		IsDeprecated:      rf.IsDeprecated,
		DeprecationReason: deref(rf.DeprecationReason),
	}, nil
}

func convertInputValues(raw []rawInputValue) ([]domain.InputValue, error) {
	values := make([]domain.InputValue, 0, len(raw))
	for _, rv := range raw {
		ref, err := convertTypeRef(rv.Type, 0)
		if err != nil {
			return nil, fmt.Errorf("input value %s: %w", rv.Name, err)
		}
		values = append(values, domain.InputValue{
			Name:         rv.Name,
			Description:  deref(rv.Description),
			Type:         ref,
			DefaultValue: rv.DefaultValue,
		})
	}
	return values, nil
}

func convertTypeRef(r *rawTypeRef, depth int) (domain.TypeRef, error) {
	if r == nil {
		return nil, nil
	}
	if depth > maxTypeRefDepth {
		return nil, errors.New("type reference nested too deeply")
	}
	switch domain.TypeKind(r.Kind) {
	case domain.KindNonNull, domain.KindList:
		if r.OfType == nil {
			return nil, fmt.Errorf("%s type reference without ofType", r.Kind)
		}
		inner, err := convertTypeRef(r.OfType, depth+1)
		if err != nil {
			return nil, err
		}
		if r.Kind == string(domain.KindNonNull) {
			return domain.NonNullRef{OfType: inner}, nil
		}
		return domain.ListRef{OfType: inner}, nil
	}
	if r.Name == nil {
		return nil, fmt.Errorf("%s type reference without name", r.Kind)
	}
	return domain.NamedRef{Kind: domain.TypeKind(r.Kind), Name: *r.Name}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Decoder adapts Decode to the usecase.IntrospectionDecoder interface.
type Decoder struct{}

// Decode implements usecase.IntrospectionDecoder.
func (Decoder) Decode(raw []byte) (*domain.Schema, error) {
	return Decode(raw)
}
