package source

import "os"

// File is a single LangTwo source file held fully in memory.
type File struct {
	Path    string
	Content []byte
}

// NewFile wraps already-read content in a File.
func NewFile(path string, content []byte) *File {
	return &File{Path: path, Content: content}
}

// FromString wraps a literal program text, for tests and the driver.
func FromString(text string) *File {
	return &File{Path: "<string>", Content: []byte(text)}
}

// ReadFile loads a file from disk.
func ReadFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Content: content}, nil
}

// LineCol is a 1-based line/column position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Position resolves a byte offset to a 1-based line/column pair.
// Columns count bytes; diagfmt handles display width.
func (f *File) Position(off uint32) LineCol {
	pos := LineCol{Line: 1, Col: 1}
	limit := min(int(off), len(f.Content))
	for i := 0; i < limit; i++ {
		if f.Content[i] == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}
	return pos
}

// Line returns the text of the 1-based line n without its trailing newline,
// or "" if the file has no such line.
func (f *File) Line(n uint32) string {
	if n == 0 {
		return ""
	}
	line := uint32(1)
	start := 0
	for i := 0; i <= len(f.Content); i++ {
		if i == len(f.Content) || f.Content[i] == '\n' {
			if line == n {
				return string(f.Content[start:i])
			}
			line++
			start = i + 1
		}
	}
	return ""
}
