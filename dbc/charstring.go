package dbc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// CharString is the body of a quoted string exactly as written, with every
// backslash sequence kept verbatim, including ones that are not recognized
// escapes.
type CharString string

// Quoted returns the string with its surrounding quotes.
func (s CharString) Quoted() string {
	return `"` + string(s) + `"`
}

// Unescape decodes the escapes \" \\ \/ \b \f \n \r \t and \uXXXX. Any
// other backslash sequence is left as it is.
func (s CharString) Unescape() string {
	raw := string(s)
	if !strings.Contains(raw, `\`) {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			_, n := utf8.DecodeRuneInString(raw[i:])
			sb.WriteString(raw[i : i+n])
			i += n
			continue
		}
		switch e := raw[i+1]; e {
		case '"', '\\', '/':
			sb.WriteByte(e)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if i+6 <= len(raw) {
				if r, err := strconv.ParseUint(raw[i+2:i+6], 16, 16); err == nil {
					sb.WriteRune(rune(r))
					i += 6
					continue
				}
			}
			sb.WriteString(raw[i : i+2])
		default:
			sb.WriteString(raw[i : i+2])
		}
		i += 2
	}
	return sb.String()
}

// unquote strips the quotes from text matched by the char_string rule.
func unquote(text string) CharString {
	return CharString(text[1 : len(text)-1])
}
