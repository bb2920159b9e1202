package diagfmt

import (
	"fmt"
	"io"

	"adder/internal/codegen"
)

// Disassemble writes a readable listing of a code object, recursing into
// code constants the way nested functions and classes are stored.
func Disassemble(w io.Writer, co *codegen.CodeObject) {
	disassemble(w, co, "")
}

func disassemble(w io.Writer, co *codegen.CodeObject, indent string) {
	fmt.Fprintf(w, "%scode %s (file %s, line %d)\n", indent, co.Name, co.Filename, co.FirstLine)
	if co.Docstring != "" {
		fmt.Fprintf(w, "%s  doc: %q\n", indent, co.Docstring)
	}
	if len(co.Params) > 0 {
		fmt.Fprintf(w, "%s  params: %v\n", indent, co.Params)
	}
	if len(co.Globals) > 0 {
		fmt.Fprintf(w, "%s  globals: %v\n", indent, co.Globals)
	}
	for i, c := range co.Consts {
		fmt.Fprintf(w, "%s  const %d = %s\n", indent, i, c)
	}
	lastLine := uint32(0)
	for i, in := range co.Instrs {
		mark := "   "
		if in.Line != lastLine {
			mark = fmt.Sprintf("%3d", in.Line)
			lastLine = in.Line
		}
		fmt.Fprintf(w, "%s  %s %4d  %s\n", indent, mark, i, in)
	}
	for _, c := range co.Consts {
		if c.Kind == codegen.ConstCode {
			disassemble(w, c.Code, indent+"  ")
		}
	}
}
