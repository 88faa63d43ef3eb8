package xrm

// align attempts to align an entry's components against a query's name (and
// optional class) component sequences, building a per-position match record.
// It returns ok == false if the entry does not match at all (a tight-binding
// mismatch, or the entry/query are not both fully consumed).
func align(entryComps []Component, name []Component, class []Component) ([]MatchFlags, bool) {
	n := len(name)
	flags := make([]MatchFlags, n)
	i, j := 0, 0

	for i < n {
		if j >= len(entryComps) {
			return nil, false
		}

		ec := entryComps[j]
		loose := ec.Binding == Loose

		if ec.Kind == WildcardKind {
			flags[i] |= FlagWildcard
			if loose {
				flags[i] |= FlagPrecedingLoose
			}
			i++
			j++
			continue
		}

		if ec.Name == name[i].Name {
			flags[i] |= FlagName
			if loose {
				flags[i] |= FlagPrecedingLoose
			}
			i++
			j++
			continue
		}

		if class != nil && ec.Name == class[i].Name {
			flags[i] |= FlagClass
			if loose {
				flags[i] |= FlagPrecedingLoose
			}
			i++
			j++
			continue
		}

		if !loose {
			return nil, false
		}

		// Loose binding: this query position is skipped over; retry the
		// same entry component against the next position. The loose marker
		// re-attaches to whichever position eventually matches.
		flags[i] |= FlagSkipped
		i++
	}

	if j != len(entryComps) {
		return nil, false
	}

	return flags, true
}

// tier ranks how a single position matched, for precedence rule 1 and 2:
// NAME beats CLASS beats WILDCARD beats SKIPPED.
func tier(f MatchFlags) int {
	switch {
	case f.Has(FlagName):
		return 3
	case f.Has(FlagClass):
		return 2
	case f.Has(FlagWildcard):
		return 1
	default:
		return 0
	}
}

// comparePosition returns +1 if a wins at this position, -1 if b wins, and 0
// if the position is tied and scanning should continue.
func comparePosition(a, b MatchFlags) int {
	ta, tb := tier(a), tier(b)
	if ta != tb {
		if ta > tb {
			return 1
		}
		return -1
	}
	if ta == 0 {
		// Both positions were skipped; rule 1 doesn't distinguish between
		// two skips, so this position is not decisive.
		return 0
	}

	// Rule 3: a tight path (no PRECEDING_LOOSE) beats a loose path.
	pa, pb := a.Has(FlagPrecedingLoose), b.Has(FlagPrecedingLoose)
	if pa == pb {
		return 0
	}
	if !pa {
		return 1
	}
	return -1
}

// beats reports whether candidate strictly outranks incumbent under the
// precedence rules, scanning positions left to right and stopping at the
// first decisive position. A fully tied comparison keeps the incumbent,
// preserving the algorithm's first-seen-wins stability.
func beats(candidate, incumbent []MatchFlags) bool {
	for i := range candidate {
		if c := comparePosition(candidate[i], incumbent[i]); c != 0 {
			return c > 0
		}
	}
	return false
}

// ValidateQuery reports ErrLengthMismatch if class is present (non-nil) and
// has a different length than name. Lookup itself treats a length mismatch
// as a plain miss (per §4.3's failure conditions); callers that want to
// distinguish a malformed query from a genuine lookup miss can call this
// first.
func ValidateQuery(name, class []Component) error {
	if class != nil && len(class) != len(name) {
		return ErrLengthMismatch
	}
	return nil
}

// Lookup selects the best-matching entry for the query (name, class) against
// the database's entries, in database order, applying the precedence rules
// in §4.3, and returns the winning entry's value. class may be nil to query
// without a class fallback. The second return value reports whether any
// entry matched.
func (db *Database) Lookup(name []Component, class []Component) (string, bool) {
	if len(db.entries) == 0 || len(name) == 0 {
		return "", false
	}
	if class != nil && len(class) != len(name) {
		return "", false
	}

	var bestValue string
	var bestFlags []MatchFlags
	found := false

	for _, entry := range db.entries {
		flags, ok := align(entry.Components, name, class)
		if !ok {
			continue
		}
		if !found || beats(flags, bestFlags) {
			bestFlags = flags
			bestValue = entry.Value
			found = true
		}
	}

	return bestValue, found
}

// LookupString parses name and an optional class ("" means absent) as
// dotted component strings per §4.4, then looks up the result.
func (db *Database) LookupString(name string, class string) (string, bool) {
	qn, err := ParseQuery(name)
	if err != nil {
		return "", false
	}

	var qc []Component
	if class != "" {
		qc, err = ParseQuery(class)
		if err != nil {
			return "", false
		}
	}

	return db.Lookup(qn, qc)
}
