package fs

import (
	"path/filepath"
	"strings"
)

// EntryType classifies a listed node.
type EntryType int

const (
	EntryDir EntryType = iota
	EntryFile
)

func (t EntryType) String() string {
	if t == EntryDir {
		return "dir"
	}
	return "file"
}

// Entry is one node of the flattened tree. Identity is Path.
type Entry struct {
	Depth     int
	Expanded  bool
	Path      string
	Name      string
	Suffix    string // lowercased extension without the dot
	Type      EntryType
	IsSymlink bool
}

// IsDir reports whether the entry is listed as a directory.
func (e Entry) IsDir() bool {
	return e.Type == EntryDir
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Path, e.Name)
}

// Expand lists the entry's children one level deeper. It returns nil when the
// entry is a file or already expanded. Expanded is only set once the listing
// succeeded, so a failed expand can be retried.
func (e *Entry) Expand() ([]Entry, error) {
	if e.Expanded || e.Type != EntryDir {
		return nil, nil
	}
	children, err := List(e.Path, e.Depth+1)
	if err != nil {
		return nil, err
	}
	e.Expanded = true
	return children, nil
}

// Less orders directories before files, then by name.
func Less(a, b Entry) bool {
	if a.Type != b.Type {
		return a.Type == EntryDir
	}
	return a.Name < b.Name
}

// Suffix returns the lowercased extension of name. Dotfiles such as
// ".bashrc" and names ending in a dot have no suffix.
func Suffix(name string) string {
	ext := filepath.Ext(name)
	if ext == name || len(ext) <= 1 {
		return ""
	}
	return strings.ToLower(ext[1:])
}
