package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, REPL).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped during loading.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were rewritten to LF.
	FileNormalizedCRLF
	// FileHadCookie indicates an encoding declaration was honored during loading.
	FileHadCookie
)

// File captures metadata and normalized content for a single source file.
// Content is always UTF-8 with LF line endings and no NUL bytes once it has
// passed Normalize.
type File struct {
	ID       FileID
	Path     string
	Content  []byte
	LineIdx  []uint32
	Encoding string // effective encoding of the original bytes
	Flags    FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
