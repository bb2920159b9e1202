package source

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrNulByte is returned when source text contains an embedded NUL byte.
// It is a value error, deliberately distinct from every syntax error category.
var ErrNulByte = errors.New("source code string cannot contain null bytes")

// ErrLengthMismatch is returned when a byte view declares a length that does
// not match the actual content.
var ErrLengthMismatch = errors.New("source code buffer length does not match its content")

// DecodeError reports source bytes that are invalid under their declared
// encoding. The message is surfaced verbatim inside the resulting diagnostic.
type DecodeError struct {
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("'%s' codec can't decode source: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("'%s' codec can't decode source", e.Encoding)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Normalize turns raw caller-provided bytes into the single contiguous,
// NUL-free UTF-8 string the rest of the pipeline works on.
//
// declaredLen < 0 means the caller made no length claim. ignoreCookie skips
// the encoding-declaration sniff (set for inputs that arrived as text and are
// therefore already UTF-8).
func Normalize(raw []byte, declaredLen int, ignoreCookie bool) ([]byte, string, FileFlags, error) {
	if declaredLen >= 0 && declaredLen != len(raw) {
		return nil, "", 0, ErrLengthMismatch
	}

	var flags FileFlags

	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}

	encoding := "utf-8"
	if !ignoreCookie {
		name, ok := sniffCookie(content)
		if ok {
			flags |= FileHadCookie
			encoding = name
		}
	}

	decoded, err := decodeAs(content, encoding)
	if err != nil {
		return nil, encoding, flags, err
	}

	if bytes.IndexByte(decoded, 0) >= 0 {
		return nil, encoding, flags, ErrNulByte
	}

	decoded, hadCRLF := normalizeCRLF(decoded)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return decoded, encoding, flags, nil
}
