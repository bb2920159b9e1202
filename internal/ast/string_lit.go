package ast

import (
	"errors"
	"strings"
)

// decodeStringLiteral turns a string token's text (prefix, quotes and all)
// into its value. Escape sequences are resolved unless the literal is raw.
func decodeStringLiteral(text string) (string, error) {
	i := 0
	raw := false
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		if text[i] == 'r' || text[i] == 'R' {
			raw = true
		}
		i++
	}
	if i >= len(text) {
		return "", errors.New("malformed string literal")
	}
	quote := text[i]
	quoteLen := 1
	if strings.HasPrefix(text[i:], strings.Repeat(string(quote), 3)) {
		quoteLen = 3
	}
	body := text[i+quoteLen : len(text)-quoteLen]
	if raw || !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	return decodeEscapes(body)
}

func decodeEscapes(body string) (string, error) {
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case '\n':
			// Escaped newline joins physical lines.
		case '\\':
			sb.WriteByte('\\')
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case 'a':
			sb.WriteByte('\a')
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
		case 'v':
			sb.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v := 0
			n := 0
			for ; n < 3 && i < len(body) && body[i] >= '0' && body[i] <= '7'; n++ {
				v = v*8 + int(body[i]-'0')
				i++
			}
			i--
			sb.WriteByte(byte(v))
		case 'x':
			if i+2 >= len(body) || hexVal(body[i+1]) < 0 || hexVal(body[i+2]) < 0 {
				return "", errors.New("invalid \\x escape")
			}
			sb.WriteByte(byte(hexVal(body[i+1])*16 + hexVal(body[i+2])))
			i += 2
		case 'u', 'U':
			width := 4
			if body[i] == 'U' {
				width = 8
			}
			if i+width >= len(body) {
				return "", errors.New("invalid unicode escape")
			}
			r := 0
			for j := 1; j <= width; j++ {
				h := hexVal(body[i+j])
				if h < 0 {
					return "", errors.New("invalid unicode escape")
				}
				r = r*16 + h
			}
			sb.WriteRune(rune(r))
			i += width
		default:
			// Unknown escapes keep the backslash.
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}
