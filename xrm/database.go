package xrm

import (
	"fmt"
	"strings"
)

// Database is an ordered sequence of entries, preserving insertion order. No
// two entries share the same structural specifier; inserting a duplicate
// replaces the existing entry's value in place rather than appending.
type Database struct {
	entries []Entry
}

// New constructs an empty database.
func New() *Database {
	return &Database{}
}

// FromText parses a multi-line resource blob (§4.1/§4.2) into a new
// database. Parse failures on individual lines are swallowed, matching
// legacy Xlib/xrdb behavior (§7). onInclude, if non-nil, is called with the
// path named by each "#include" directive encountered; resolving includes
// is a filesystem collaborator's responsibility, not the core's.
func FromText(text string, onInclude func(path string)) *Database {
	db := New()
	db.Load(text, onInclude)
	return db
}

// Load parses a multi-line resource blob and Puts every successfully parsed
// entry, preserving insertion order (an entry whose specifier is already
// present replaces that entry's value in place). Lines that fail to parse
// are skipped silently.
func (db *Database) Load(text string, onInclude func(path string)) {
	for _, rawLine := range SplitLogicalLines(text) {
		line, err := ParseLine(rawLine)
		if err != nil {
			continue
		}
		db.applyLine(line, onInclude)
	}
}

// LoadStrict behaves like Load, but stops and returns the first parse error
// encountered (wrapped with the 1-based line number) instead of swallowing
// it. This is the opt-in strict mode left open by §9's open question.
func (db *Database) LoadStrict(text string, onInclude func(path string)) error {
	for lineNum, rawLine := range SplitLogicalLines(text) {
		line, err := ParseLine(rawLine)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		db.applyLine(line, onInclude)
	}
	return nil
}

func (db *Database) applyLine(line Line, onInclude func(path string)) {
	switch line.Kind {
	case LineEntry:
		db.Put(line.Entry)
	case LineInclude:
		if onInclude != nil {
			onInclude(line.IncludePath)
		}
	}
}

// Put appends entry, unless an entry with the identical structural
// specifier already exists, in which case its value is replaced in place
// (preserving its original position in insertion order).
func (db *Database) Put(entry Entry) {
	for i := range db.entries {
		if db.entries[i].SpecifierEqual(entry) {
			db.entries[i].Value = entry.Value
			return
		}
	}
	db.entries = append(db.entries, entry)
}

// PutLine parses line as a full entry (§4.1), then Put.
func (db *Database) PutLine(line string) error {
	entry, err := ParseEntry(line)
	if err != nil {
		return err
	}
	db.Put(entry)
	return nil
}

// PutResource parses specifier alone (bindings and components, no value
// grammar) and decodes value, then Puts the resulting entry.
func (db *Database) PutResource(specifier string, value string) error {
	comps, rest, err := parseComponents(specifier, componentOptions{
		allowWildcard:  true,
		allowLooseBind: true,
		terminated:     false,
	})
	if err != nil {
		return err
	}
	if rest != "" {
		return ErrMalformedSpecifier
	}

	db.Put(Entry{Components: comps, Value: Decode(value)})
	return nil
}

// Combine appends each entry of db, in order, into dst: replacing dst's
// value when the specifier already exists and override is true, discarding
// the incoming entry when override is false, and appending it when no entry
// with that specifier exists yet. db's own entries are emptied afterward,
// matching the "source is consumed" contract (§9) without an explicit
// ownership-transfer type.
func (db *Database) Combine(dst *Database, override bool) {
	for _, entry := range db.entries {
		dst.combineOne(entry, override)
	}
	db.entries = nil
}

func (dst *Database) combineOne(entry Entry, override bool) {
	for i := range dst.entries {
		if dst.entries[i].SpecifierEqual(entry) {
			if override {
				dst.entries[i].Value = entry.Value
			}
			return
		}
	}
	dst.entries = append(dst.entries, entry)
}

// String serializes the database in insertion order, one entry per line,
// newline-terminated. Comments and include directives are never re-emitted,
// since they are not preserved across a load/store round trip (§6).
func (db *Database) String() string {
	var b strings.Builder
	for _, entry := range db.entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Len returns the number of entries currently stored.
func (db *Database) Len() int {
	return len(db.entries)
}

// Entries returns a copy of the database's entries, in insertion order.
func (db *Database) Entries() []Entry {
	out := make([]Entry, len(db.entries))
	copy(out, db.entries)
	return out
}
