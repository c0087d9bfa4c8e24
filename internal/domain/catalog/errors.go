// internal/domain/catalog/errors.go
package catalog

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when the collaborator has no active item
// with the requested id.
var ErrItemNotFound = errors.New("catalog item not found")

// ParseError reports a catalog payload that could not be turned into a
// valid ItemRef. Untyped collaborator data never crosses this boundary.
type ParseError struct {
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid catalog item: field %q %s", e.Field, e.Reason)
}
