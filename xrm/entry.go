package xrm

import "strings"

// Entry is an ordered, non-empty sequence of components followed by a
// string value. The value is stored already unescaped (in-memory decoded
// form); the leading binding of the first component participates in
// matching like any other binding.
type Entry struct {
	Components []Component
	Value      string
}

// SpecifierEqual reports whether two entries have byte-for-byte identical
// specifiers: the same number of components, each with the same binding,
// kind, and name. Values are not compared.
func (e Entry) SpecifierEqual(other Entry) bool {
	if len(e.Components) != len(other.Components) {
		return false
	}
	for i, c := range e.Components {
		if !c.Equal(other.Components[i]) {
			return false
		}
	}
	return true
}

// String serializes the entry as it would appear in a resource file: the
// specifier (leading binding explicit only when loose), a colon, and the
// escaped value.
func (e Entry) String() string {
	var b strings.Builder
	for i, c := range e.Components {
		if i == 0 {
			if c.Binding == Loose {
				b.WriteByte('*')
			}
		} else {
			b.WriteString(c.Binding.String())
		}
		b.WriteString(c.String())
	}
	b.WriteString(": ")
	b.WriteString(Encode(e.Value))
	return b.String()
}
