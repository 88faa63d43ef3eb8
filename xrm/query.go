package xrm

// ParseQuery parses a dotted component string (e.g. "xterm.vt100.foreground")
// into the canonical component sequence consumed by the matcher, per §4.4.
// Bindings are always tight: components are separated by '.', and the
// leading binding is implicit and never written. Wildcards are not permitted,
// and empty strings, a leading '.', empty inter-dot segments, and illegal
// characters are rejected as ErrMalformedSpecifier.
func ParseQuery(s string) ([]Component, error) {
	if s == "" || s[0] == '.' {
		return nil, ErrMalformedSpecifier
	}

	comps, rest, err := parseComponents(s, componentOptions{
		allowWildcard:  false,
		allowLooseBind: false,
		terminated:     false,
	})
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, ErrMalformedSpecifier
	}

	return comps, nil
}
