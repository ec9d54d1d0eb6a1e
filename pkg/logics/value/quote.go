package value

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Unquote decodes a quoted string literal as written in source text.
//
// Matching surrounding quote characters (' or ") are removed and backslash
// escapes are decoded: \n \t \r \a \b \f \v \\ \' \", plus the code point
// escapes \xHH, \uHHHH and \UHHHHHHHH. An unrecognized or malformed escape
// yields the character that follows the backslash. Unquote never fails.
func Unquote(lit string) string {
	if len(lit) >= 2 && (lit[0] == '"' || lit[0] == '\'') && lit[len(lit)-1] == lit[0] {
		lit = lit[1 : len(lit)-1]
	}
	if !strings.Contains(lit, `\`) {
		return lit
	}

	var sb strings.Builder
	sb.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch c = lit[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[c]
			if r, ok := codePoint(lit[i+1:], width); ok {
				sb.WriteRune(r)
				i += width
			} else {
				sb.WriteByte(c)
			}
		default:
			// Covers \\ \' \" and any unknown escape.
			r, size := utf8.DecodeRuneInString(lit[i:])
			sb.WriteRune(r)
			i += size - 1
		}
	}
	return sb.String()
}

func codePoint(s string, width int) (rune, bool) {
	if len(s) < width {
		return 0, false
	}
	n, err := strconv.ParseUint(s[:width], 16, 32)
	if err != nil || n > utf8.MaxRune {
		return 0, false
	}
	return rune(n), true
}
