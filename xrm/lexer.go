package xrm

import "strings"

// componentOptions controls the two grammars §4.1 describes: full entry
// parsing (wildcards and loose bindings permitted, terminated by whitespace
// or ':') and query parsing (tight bindings only, no wildcards, consumes
// the entire string).
type componentOptions struct {
	allowWildcard  bool
	allowLooseBind bool
	terminated     bool // true for full-entry mode: stop at ws or ':'
}

// parseComponents scans a leading run of "binding component" pairs, with an
// implicit tight binding permitted before the first component. It returns
// the parsed components and the unconsumed remainder of s.
func parseComponents(s string, opts componentOptions) ([]Component, string, error) {
	i := 0
	n := len(s)
	var comps []Component
	expectBinding := false

	for i < n {
		if opts.terminated && isSpecifierEnd(s[i]) {
			break
		}

		var binding Binding
		switch s[i] {
		case '.':
			binding = Tight
			i++
		case '*':
			if !opts.allowLooseBind {
				return nil, "", ErrMalformedSpecifier
			}
			binding = Loose
			i++
		default:
			if expectBinding {
				return nil, "", ErrMalformedSpecifier
			}
			binding = Tight
		}

		if i >= n {
			// Entry ends with a binding and no following component.
			return nil, "", ErrMalformedSpecifier
		}

		comp, consumed, err := parseComponent(s[i:], opts)
		if err != nil {
			return nil, "", err
		}
		comp.Binding = binding
		comps = append(comps, comp)
		i += consumed
		expectBinding = true
	}

	if len(comps) == 0 {
		return nil, "", ErrMalformedSpecifier
	}

	return comps, s[i:], nil
}

func isSpecifierEnd(c byte) bool {
	return c == ' ' || c == '\t' || c == ':'
}

// parseComponent parses a single component (name or wildcard) from the
// start of s, returning the number of bytes consumed.
func parseComponent(s string, opts componentOptions) (Component, int, error) {
	if len(s) == 0 {
		return Component{}, 0, ErrMalformedSpecifier
	}

	if s[0] == '?' {
		if !opts.allowWildcard {
			return Component{}, 0, ErrMalformedSpecifier
		}
		return Component{Kind: WildcardKind}, 1, nil
	}

	i := 0
	for i < len(s) && isNameChar(s[i]) {
		i++
	}
	if i == 0 {
		return Component{}, 0, ErrMalformedSpecifier
	}

	return Component{Kind: NameKind, Name: s[:i]}, i, nil
}

func isNameChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

func trimLeadingSpace(s string) string {
	return strings.TrimLeft(s, " \t")
}

// ParseEntry parses a single logical entry line (bindings, components, and
// value) per §4.1's full grammar. Leading whitespace before the first
// binding and around ':' is discarded.
func ParseEntry(line string) (Entry, error) {
	s := trimLeadingSpace(line)

	comps, rest, err := parseComponents(s, componentOptions{
		allowWildcard:  true,
		allowLooseBind: true,
		terminated:     true,
	})
	if err != nil {
		return Entry{}, err
	}

	rest = trimLeadingSpace(rest)
	if len(rest) == 0 || rest[0] != ':' {
		return Entry{}, ErrMalformedSpecifier
	}

	value := trimLeadingSpace(rest[1:])
	return Entry{Components: comps, Value: Decode(value)}, nil
}

// LineKind distinguishes the kinds of content a single logical line of a
// resource file can hold.
type LineKind int

const (
	// LineBlank is an empty (or whitespace-only) line.
	LineBlank LineKind = iota
	// LineComment is a line whose first non-whitespace character is '!'.
	LineComment
	// LineInclude is a "#include \"path\"" directive.
	LineInclude
	// LineEntry is a parsed resource entry.
	LineEntry
)

// Line is the result of classifying and, where applicable, parsing a single
// logical line from a resource file.
type Line struct {
	Kind        LineKind
	Entry       Entry
	IncludePath string
}

// ParseLine classifies a logical line and parses it if it is an entry.
// Comment lines, include directives, and blank lines never report an error;
// callers that need to resolve include directives should act on
// Line.IncludePath themselves (the core never performs I/O).
func ParseLine(line string) (Line, error) {
	trimmed := trimLeadingSpace(line)
	if trimmed == "" {
		return Line{Kind: LineBlank}, nil
	}
	if trimmed[0] == '!' {
		return Line{Kind: LineComment}, nil
	}
	if path, ok := parseIncludeDirective(trimmed); ok {
		return Line{Kind: LineInclude, IncludePath: path}, nil
	}

	entry, err := ParseEntry(line)
	if err != nil {
		return Line{}, err
	}
	return Line{Kind: LineEntry, Entry: entry}, nil
}

func parseIncludeDirective(trimmed string) (string, bool) {
	const prefix = "#include"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", false
	}

	rest := trimLeadingSpace(trimmed[len(prefix):])
	if len(rest) < 2 || rest[0] != '"' {
		return "", false
	}

	closeIdx := strings.IndexByte(rest[1:], '"')
	if closeIdx < 0 {
		return "", false
	}

	return rest[1 : 1+closeIdx], true
}

// SplitLogicalLines splits text into logical lines, folding line
// continuations (a trailing, unescaped '\' immediately before a newline)
// into a single logical line. CRLF and LF line endings are both accepted.
func SplitLogicalLines(text string) []string {
	var lines []string
	var cur strings.Builder

	raw := strings.Split(text, "\n")
	for idx, rawLine := range raw {
		rawLine = strings.TrimSuffix(rawLine, "\r")

		if n := trailingBackslashCount(rawLine); n%2 == 1 {
			cur.WriteString(rawLine[:len(rawLine)-1])
			continue
		}

		cur.WriteString(rawLine)

		// Skip emitting a final, wholly-empty logical line produced by a
		// trailing newline at the very end of the text.
		if idx == len(raw)-1 && cur.Len() == 0 {
			break
		}

		lines = append(lines, cur.String())
		cur.Reset()
	}

	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}

	return lines
}

func trailingBackslashCount(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
