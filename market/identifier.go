package market

import (
	"fmt"
	"strings"
)

// StandardID is a two-part identifier in the form "scheme~value", used for
// legal entities and curve names. The zero value is the absent identifier,
// which is valid only where a component documents it as optional.
type StandardID struct {
	scheme string
	value  string
}

// NewStandardID builds an identifier from a scheme and value.
func NewStandardID(scheme, value string) StandardID {
	return StandardID{scheme: scheme, value: value}
}

// ParseStandardID parses "scheme~value".
func ParseStandardID(s string) (StandardID, error) {
	scheme, value, ok := strings.Cut(s, "~")
	if !ok || scheme == "" || value == "" {
		return StandardID{}, fmt.Errorf("invalid standard id %q, want scheme~value", s)
	}
	return StandardID{scheme: scheme, value: value}, nil
}

// Scheme returns the identifier scheme.
func (id StandardID) Scheme() string { return id.scheme }

// Value returns the identifier value within the scheme.
func (id StandardID) Value() string { return id.value }

// IsZero reports whether the identifier is absent.
func (id StandardID) IsZero() bool { return id.scheme == "" && id.value == "" }

func (id StandardID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.scheme + "~" + id.value
}

// Compare provides a total order over identifiers (scheme, then value).
func (id StandardID) Compare(other StandardID) int {
	if c := strings.Compare(id.scheme, other.scheme); c != 0 {
		return c
	}
	return strings.Compare(id.value, other.value)
}
