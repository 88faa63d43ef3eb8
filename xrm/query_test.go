package xrm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []Component
	}{
		{
			name:  "single component",
			input: "dpi",
			expected: []Component{
				{Binding: Tight, Kind: NameKind, Name: "dpi"},
			},
		},
		{
			name:  "multiple components",
			input: "xterm.vt100.foreground",
			expected: []Component{
				{Binding: Tight, Kind: NameKind, Name: "xterm"},
				{Binding: Tight, Kind: NameKind, Name: "vt100"},
				{Binding: Tight, Kind: NameKind, Name: "foreground"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			comps, err := ParseQuery(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, comps)
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "wildcard not permitted", input: "foo.?.bar"},
		{name: "empty inter-dot segment", input: "foo..bar"},
		{name: "illegal character", input: "foo$bar"},
		{name: "loose binding not permitted", input: "foo*bar"},
		{name: "trailing dot", input: "foo."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuery(tc.input)
			assert.ErrorIs(t, err, ErrMalformedSpecifier)
		})
	}
}
