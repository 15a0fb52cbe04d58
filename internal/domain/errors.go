package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaNotFound is matched by SchemaNotFoundError via errors.Is.
var ErrSchemaNotFound = errors.New("schema not found")

// SchemaNotFoundError reports a lookup miss together with every schema that is
// currently known, so that callers can correct the api/version they asked for.
type SchemaNotFoundError struct {
	API       string
	Version   string
	Available []SchemaDescriptor
}

func (e *SchemaNotFoundError) Error() string {
	supported := make([]string, len(e.Available))
	for i, d := range e.Available {
		supported[i] = d.String()
	}
	return fmt.Sprintf("Schema configuration for API %q version %q not found in provided schemas. Currently supported schemas: %s",
		e.API, e.Version, strings.Join(supported, ", "))
}

func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// SyntaxError is returned when an operation is not a well-formed GraphQL document.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

// OperationValidationError carries one message per violated validation rule.
type OperationValidationError struct {
	Messages []string
}

func (e *OperationValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}
