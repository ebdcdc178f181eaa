package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DecodeEscape decodes a single escape sequence (backslash included),
// e.g. `\n` or `A`. ok is false for unknown or malformed escapes.
func DecodeEscape(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '\\' {
		return "", false
	}
	switch raw[1] {
	case 'n':
		return "\n", len(raw) == 2
	case 't':
		return "\t", len(raw) == 2
	case 'r':
		return "\r", len(raw) == 2
	case 'b':
		return "\b", len(raw) == 2
	case '0':
		return "\x00", len(raw) == 2
	case '\'', '"', '\\', '$':
		return string(raw[1]), len(raw) == 2
	case 'u':
		if len(raw) != 6 {
			return "", false
		}
		v, err := strconv.ParseUint(raw[2:], 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return "", false
		}
		return string(rune(v)), true
	default:
		return "", false
	}
}

// DecodeCharContent decodes the content of a character literal (quotes
// stripped) into exactly one rune.
func DecodeCharContent(raw string) (rune, bool) {
	var decoded string
	if strings.HasPrefix(raw, "\\") {
		s, ok := DecodeEscape(raw)
		if !ok {
			return 0, false
		}
		decoded = s
	} else {
		decoded = raw
	}
	r, size := utf8.DecodeRuneInString(decoded)
	if r == utf8.RuneError && size <= 1 {
		return 0, false
	}
	if size != len(decoded) {
		return 0, false
	}
	return r, true
}
