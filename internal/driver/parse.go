package driver

import (
	"adder/internal/diag"
	"adder/internal/parser"
	"adder/internal/source"
)

// ParseResult is the outcome of parsing one file to a concrete parse tree.
// Exactly one of Tree and Diag is set.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *parser.Tree
	Diag    *diag.Diagnostic
}

// ParseFile loads a file from disk and parses it under the given mode.
// The returned error covers I/O only; parse failures land in Diag.
func ParseFile(path string, mode Mode, flags Flags) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseIn(fs, fileID, mode, flags), nil
}

// ParseBytes parses in-memory source under the given display name.
func ParseBytes(name string, src []byte, mode Mode, flags Flags) *ParseResult {
	fs := source.NewFileSet()
	return parseIn(fs, fs.AddVirtual(name, src), mode, flags)
}

func parseIn(fs *source.FileSet, id source.FileID, mode Mode, flags Flags) *ParseResult {
	file := fs.Get(id)
	res := &ParseResult{FileSet: fs, File: file}

	tree, det := parser.ParseSource(file, mode.startSymbol(), parser.Options{
		BarryAsBDFL:     flags.Has(FlagBarryAsBDFL),
		DontImplyDedent: flags.Has(FlagDontImplyDedent),
	})
	if det != nil {
		res.Diag = diag.FromDetail(det)
		return res
	}
	res.Tree = tree
	return res
}
