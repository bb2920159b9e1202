package driver

import (
	"adder/internal/diag"
	"adder/internal/lexer"
	"adder/internal/source"
	"adder/internal/token"
)

// TokenizeResult is the outcome of scanning one file. Tokens holds
// everything produced before the stream ended; Detail is non-nil when the
// tokenizer stopped early.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Detail  *diag.Detail
}

// Tokenize loads a file from disk and scans it to ENDMARKER or failure.
func Tokenize(path string, flags Flags) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return scan(fs, fileID, flags), nil
}

// TokenizeBytes scans in-memory source under the given display name.
func TokenizeBytes(name string, src []byte, flags Flags) *TokenizeResult {
	fs := source.NewFileSet()
	return scan(fs, fs.AddVirtual(name, src), flags)
}

func scan(fs *source.FileSet, id source.FileID, flags Flags) *TokenizeResult {
	file := fs.Get(id)
	lx := lexer.New(file, lexer.Options{
		DontImplyDedent: flags.Has(FlagDontImplyDedent),
	})

	res := &TokenizeResult{FileSet: fs, File: file}
	for {
		tok, det := lx.Next()
		if det != nil {
			res.Detail = det
			return res
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EndMarker {
			return res
		}
	}
}
