package domain

// TypeKind is the __TypeKind of a named or wrapping type.
type TypeKind string

const (
	KindScalar      TypeKind = "SCALAR"
	KindObject      TypeKind = "OBJECT"
	KindInterface   TypeKind = "INTERFACE"
	KindUnion       TypeKind = "UNION"
	KindEnum        TypeKind = "ENUM"
	KindInputObject TypeKind = "INPUT_OBJECT"
	KindList        TypeKind = "LIST"
	KindNonNull     TypeKind = "NON_NULL"
)

// TypeRef is a reference to a type, possibly wrapped in NON_NULL and LIST.
// Implementations are NonNullRef, ListRef and NamedRef.
type TypeRef interface {
	typeRef()
}

// NonNullRef wraps a nullable type.
type NonNullRef struct {
	OfType TypeRef
}

// ListRef wraps the element type of a list.
type ListRef struct {
	OfType TypeRef
}

// NamedRef is the terminal node of a type reference.
type NamedRef struct {
	Kind TypeKind
	Name string
}

func (NonNullRef) typeRef() {}
func (ListRef) typeRef()    {}
func (NamedRef) typeRef()   {}

// BaseName unwraps every wrapper and returns the named type at the bottom,
// or "" for a nil reference.
func BaseName(ref TypeRef) string {
	switch r := ref.(type) {
	case NonNullRef:
		return BaseName(r.OfType)
	case ListRef:
		return BaseName(r.OfType)
	case NamedRef:
		return r.Name
	}
	return ""
}

// InputValue is a field argument or an input object field.
type InputValue struct {
	Name         string
	Description  string
	Type         TypeRef
	DefaultValue *string
}

// Field is a field of an OBJECT or INTERFACE type. Root type fields are the
// available queries and mutations.
type Field struct {
	Name              string
	Description       string
	Args              []InputValue
	Type              TypeRef
	IsDeprecated      bool
	DeprecationReason string
}

// EnumValue is one value of an ENUM type.
type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// TypeBody holds the kind-specific members of a named type. It is one of
// ObjectBody, InputObjectBody, EnumBody or UnionBody; scalars have no body.
type TypeBody interface {
	typeBody()
}

// ObjectBody is the body of OBJECT and INTERFACE types.
type ObjectBody struct {
	Fields []Field
}

// InputObjectBody is the body of INPUT_OBJECT types.
type InputObjectBody struct {
	InputFields []InputValue
}

// EnumBody is the body of ENUM types.
type EnumBody struct {
	Values []EnumValue
}

// UnionBody is the body of UNION types.
type UnionBody struct {
	PossibleTypes []string
}

func (ObjectBody) typeBody()      {}
func (InputObjectBody) typeBody() {}
func (EnumBody) typeBody()        {}
func (UnionBody) typeBody()       {}

// NamedType is one entry of __schema.types.
type NamedType struct {
	Kind        TypeKind
	Name        string
	Description string
	Interfaces  []string
	Body        TypeBody
}

// Fields returns the output fields of an object-like type, or nil.
func (t *NamedType) Fields() []Field {
	if b, ok := t.Body.(ObjectBody); ok {
		return b.Fields
	}
	return nil
}

// Directive is one entry of __schema.directives.
type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Args         []InputValue
	IsRepeatable bool
}

// Schema is a decoded introspection document.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            []NamedType
	Directives       []Directive
}

// TypeByName returns the type with the given name, or nil.
func (s *Schema) TypeByName(name string) *NamedType {
	if name == "" {
		return nil
	}
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i]
		}
	}
	return nil
}

// QueryFields returns the fields of the query root type.
func (s *Schema) QueryFields() []Field {
	if t := s.TypeByName(s.QueryType); t != nil {
		return t.Fields()
	}
	return nil
}

// MutationFields returns the fields of the mutation root type.
func (s *Schema) MutationFields() []Field {
	if t := s.TypeByName(s.MutationType); t != nil {
		return t.Fields()
	}
	return nil
}
