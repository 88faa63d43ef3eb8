package xrm

import "strings"

// Encode converts an in-memory value into the escaped text form written to a
// serialized database. It emits "\ " for a leading space, "\\" for a literal
// backslash, and "\n" for an embedded newline; every other byte passes
// through unchanged.
func Encode(value string) string {
	if value == "" {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case i == 0 && c == ' ':
			b.WriteString(`\ `)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Decode converts the escaped text form of a value (as it appears after the
// ':' in a resource line) into its in-memory form. It is the inverse of the
// escape rules applied while lexing a value in §4.1:
//
//	\n        -> newline byte
//	\\        -> backslash
//	\ (space) -> literal space
//	\NNN      -> byte value, NNN exactly three octal digits
//	\x        -> literal x, for any other x
func Decode(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			b.WriteByte(c)
			continue
		}

		next := text[i+1]
		switch {
		case next == 'n':
			b.WriteByte('\n')
			i++
		case next == '\\':
			b.WriteByte('\\')
			i++
		case next == ' ':
			b.WriteByte(' ')
			i++
		case isOctalDigit(next) && i+3 < len(text) && isOctalDigit(text[i+2]) && isOctalDigit(text[i+3]):
			v := octalValue(next)*64 + octalValue(text[i+2])*8 + octalValue(text[i+3])
			b.WriteByte(byte(v))
			i += 3
		default:
			b.WriteByte(next)
			i++
		}
	}

	return b.String()
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func octalValue(c byte) int {
	return int(c - '0')
}
