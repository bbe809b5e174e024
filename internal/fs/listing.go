package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the absolute, symlink-free form of path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", path, err)
	}
	return filepath.Clean(resolved), nil
}

// List reads the immediate children of dir and returns them sorted, each at
// the given depth. Child paths are joined onto dir, so callers should pass a
// canonical directory.
func List(dir string, depth int) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		rawName := e.Name()
		fullPath := filepath.Join(dir, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := e.Type()&os.ModeSymlink != 0

		// Symlinks are classified by their target; dangling ones stay files.
		if isSymlink {
			isDir = false
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		entryType := EntryFile
		if isDir {
			entryType = EntryDir
		}

		name := norm.NFC.String(rawName)
		entries = append(entries, Entry{
			Depth:     depth,
			Path:      fullPath,
			Name:      name,
			Suffix:    Suffix(name),
			Type:      entryType,
			IsSymlink: isSymlink,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
	return entries, nil
}
