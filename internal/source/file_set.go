package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves spans to
// line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> latest id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores already-normalized bytes, computes the line index, and returns a
// new FileID. A path may be added more than once; the index tracks the latest.
func (fileSet *FileSet) Add(path string, content []byte, encoding string, flags FileFlags) FileID {
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:       id,
		Path:     normalizedPath,
		Content:  content,
		LineIdx:  lineIdx,
		Encoding: encoding,
		Flags:    flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// AddSource normalizes raw caller bytes (cookie sniff, decode, NUL check) and
// adds the result. This is the entry point the compile pipeline uses.
func (fileSet *FileSet) AddSource(path string, raw []byte, declaredLen int, ignoreCookie bool) (FileID, error) {
	content, encoding, flags, err := Normalize(raw, declaredLen, ignoreCookie)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, encoding, flags|FileVirtual), nil
}

// Load reads a file from disk and normalizes it.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, encoding, flags, err := Normalize(raw, -1, false)
	if err != nil {
		return 0, err
	}
	return fileSet.Add(path, content, encoding, flags), nil
}

// AddVirtual adds an in-memory file without any decoding (tests, REPL lines).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, "utf-8", FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if any.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Pos resolves a single byte offset within the file.
func (f *File) Pos(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// GetLine returns the 1-based line with the given number, without its
// trailing newline. Out-of-range lines yield "".
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end uint32
	lenLineIdx := uint32(len(f.LineIdx))
	lenContent := uint32(len(f.Content))

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}
