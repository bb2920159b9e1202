package source

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// cookieRe matches PEP 263 encoding declarations inside a comment.
var cookieRe = regexp.MustCompile(`coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// sniffCookie looks for an encoding declaration on the first or second line.
// The second line is only considered when the first is blank or a comment,
// since an encoding declaration after real code has no effect.
func sniffCookie(content []byte) (string, bool) {
	rest := content
	for i := 0; i < 2; i++ {
		line := rest
		if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
			line = rest[:nl]
			rest = rest[nl+1:]
		} else {
			rest = nil
		}
		trimmed := bytes.TrimLeft(line, " \t\f")
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] != '#' {
			return "", false
		}
		if m := cookieRe.FindSubmatch(trimmed); m != nil {
			return string(m[1]), true
		}
	}
	return "", false
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "utf-8", "utf8", "utf_8", "ascii", "us-ascii":
		return true
	default:
		return false
	}
}

// lookupEncoding resolves a cookie name against the IANA registry.
// Cookies use Python codec spellings ("latin_1", "cp1252") that the
// registry does not accept verbatim, so the name is folded first and
// cp-number names fall back to their windows-/ibm- equivalents.
func lookupEncoding(name string) (encoding.Encoding, error) {
	folded := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch folded {
	case "latin-1", "latin1", "iso8859-1", "8859", "cp819":
		folded = "latin1"
	}
	enc, err := ianaindex.IANA.Encoding(folded)
	if err == nil && enc != nil {
		return enc, nil
	}
	if n, ok := strings.CutPrefix(folded, "cp"); ok {
		if e, werr := ianaindex.IANA.Encoding("windows-" + n); werr == nil && e != nil {
			return e, nil
		}
		if e, ierr := ianaindex.IANA.Encoding("ibm" + n); ierr == nil && e != nil {
			return e, nil
		}
	}
	return enc, err
}

// decodeAs transcodes content from the named encoding to UTF-8.
func decodeAs(content []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		if !utf8.Valid(content) {
			return nil, &DecodeError{Encoding: name}
		}
		return content, nil
	}

	enc, err := lookupEncoding(name)
	if err != nil || enc == nil {
		return nil, &DecodeError{Encoding: name, Err: err}
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), content)
	if err != nil {
		return nil, &DecodeError{Encoding: name, Err: err}
	}
	return decoded, nil
}
