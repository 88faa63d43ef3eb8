// Package xrm implements the X resource database: a text-based configuration
// store keyed by hierarchical resource names with pattern-binding semantics,
// matching the precedence rules of the classical Xlib resource manager.
package xrm

import "fmt"

// Binding is the separator preceding a component in a resource specifier.
type Binding int

const (
	// Tight requires the next component to be the immediately following level
	// of the hierarchy.
	Tight Binding = iota
	// Loose permits zero or more intervening levels before the next component.
	Loose
)

func (b Binding) String() string {
	if b == Loose {
		return "*"
	}
	return "."
}

// Kind distinguishes a literal name component from a wildcard placeholder.
type Kind int

const (
	// NameKind is a literal identifier component.
	NameKind Kind = iota
	// WildcardKind is the single-component placeholder "?".
	WildcardKind
)

// Component pairs a binding with either a literal name or a wildcard.
type Component struct {
	Binding Binding
	Kind    Kind
	Name    string // empty when Kind == WildcardKind
}

// String renders the component (without its binding) the way it would appear
// in a resource specifier: the literal name, or "?" for a wildcard.
func (c Component) String() string {
	if c.Kind == WildcardKind {
		return "?"
	}
	return c.Name
}

// Equal reports whether two components are structurally identical: same
// binding, same kind, and (for names) the identical byte sequence.
func (c Component) Equal(other Component) bool {
	return c.Binding == other.Binding && c.Kind == other.Kind && c.Name == other.Name
}

// MatchFlags records how a single query position was satisfied while
// aligning an entry's components against a query during matching. Flags are
// not mutually exclusive: NAME and PRECEDING_LOOSE commonly occur together.
type MatchFlags uint8

const (
	// FlagName: the entry component equaled the query name at this position.
	FlagName MatchFlags = 1 << iota
	// FlagClass: the entry component equaled the query class at this position.
	FlagClass
	// FlagWildcard: the entry component was "?".
	FlagWildcard
	// FlagSkipped: a loose binding consumed this query position with no
	// literal entry component (the entry "skipped over" this level).
	FlagSkipped
	// FlagPrecedingLoose: this position was reached across a loose binding
	// from the previous entry component.
	FlagPrecedingLoose
)

// Has reports whether the flag set contains the given flag.
func (f MatchFlags) Has(flag MatchFlags) bool {
	return f&flag != 0
}

func (f MatchFlags) String() string {
	return fmt.Sprintf("%08b", uint8(f))
}
