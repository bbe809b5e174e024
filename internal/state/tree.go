package state

import (
	fsutil "github.com/kk-code-lab/idex/internal/fs"
)

// Entry mirrors fs.Entry so UI code can rely on a stable type.
type Entry = fsutil.Entry

// Tree is the flattened, depth-first view of a directory hierarchy. Expanded
// directories are immediately followed by their children, one level deeper.
type Tree struct {
	root     string
	entries  []Entry
	selected int
	scroll   int
}

// NewTree lists root at depth 1 with the first entry selected.
func NewTree(root string) (*Tree, error) {
	canonical, err := fsutil.Canonical(root)
	if err != nil {
		return nil, err
	}
	entries, err := fsutil.List(canonical, 1)
	if err != nil {
		return nil, err
	}
	return &Tree{root: canonical, entries: entries}, nil
}

// ===== ACCESSORS =====

func (t *Tree) Root() string     { return t.root }
func (t *Tree) Entries() []Entry { return t.entries }
func (t *Tree) Len() int         { return len(t.entries) }
func (t *Tree) Selected() int    { return t.selected }
func (t *Tree) Scroll() int      { return t.scroll }

// Current returns the selected entry, or nil on an empty tree.
func (t *Tree) Current() *Entry {
	if t.selected < 0 || t.selected >= len(t.entries) {
		return nil
	}
	return &t.entries[t.selected]
}

// IsFile reports whether the selected entry is a file.
func (t *Tree) IsFile() bool {
	cur := t.Current()
	return cur != nil && cur.Type == fsutil.EntryFile
}

// FocusedPath is the selected entry's path, or the root when nothing is listed.
func (t *Tree) FocusedPath() string {
	if cur := t.Current(); cur != nil {
		return cur.Path
	}
	return t.root
}

// Window returns the half-open index range visible in a viewport of rows.
func (t *Tree) Window(rows int) (start, end int) {
	start = min(max(t.scroll, 0), len(t.entries))
	end = len(t.entries)
	if rows >= 0 && rows < end-start {
		end = start + rows
	}
	return start, end
}

// Find returns the index of the entry at path.
func (t *Tree) Find(path string) (int, bool) {
	for i := range t.entries {
		if t.entries[i].Path == path {
			return i, true
		}
	}
	return -1, false
}

// ===== SELECTION & VIEWPORT =====

// SelectionValid reports whether row, relative to the viewport, maps to an entry.
func (t *Tree) SelectionValid(row int) bool {
	idx := t.scroll + row
	return row >= 0 && idx < len(t.entries)
}

// SetSelected selects the entry shown at viewport row. Out-of-range rows are
// ignored.
func (t *Tree) SetSelected(row int) {
	if !t.SelectionValid(row) {
		return
	}
	t.selected = t.scroll + row
}

// Advance moves the selection down by n, stopping at the last entry.
func (t *Tree) Advance(n int) {
	if len(t.entries) == 0 {
		return
	}
	t.selected = stepDown(t.selected, n, len(t.entries)-1)
}

// Back moves the selection up by n and pulls the viewport along so the
// selection never sits above it.
func (t *Tree) Back(n int) {
	if len(t.entries) == 0 {
		return
	}
	t.selected = stepUp(t.selected, n)
	if t.selected < t.scroll {
		t.scroll = t.selected
	}
}

// ScrollDown moves the viewport origin down by n without touching the selection.
func (t *Tree) ScrollDown(n int) {
	if len(t.entries) == 0 {
		return
	}
	t.scroll = stepDown(t.scroll, n, len(t.entries)-1)
}

// ScrollUp moves the viewport origin up by n without touching the selection.
func (t *Tree) ScrollUp(n int) {
	if len(t.entries) == 0 {
		return
	}
	t.scroll = stepUp(t.scroll, n)
}

// stepDown returns pos+n clamped to last. The comparison avoids computing
// pos+n, which overflows for deltas near math.MaxInt.
func stepDown(pos, n, last int) int {
	if n <= 0 {
		return pos
	}
	if n >= last-pos {
		return last
	}
	return pos + n
}

// stepUp returns pos-n clamped to 0.
func stepUp(pos, n int) int {
	if n <= 0 {
		return pos
	}
	if n >= pos {
		return 0
	}
	return pos - n
}

// ===== EXPAND / COLLAPSE =====

// Expand splices the selected directory's children in right after it. Files
// and already expanded directories are left alone. On a read error the tree
// is unchanged.
func (t *Tree) Expand() error {
	cur := t.Current()
	if cur == nil {
		return nil
	}
	children, err := cur.Expand()
	if err != nil || len(children) == 0 {
		return err
	}

	tail := append([]Entry(nil), t.entries[t.selected+1:]...)
	t.entries = append(append(t.entries[:t.selected+1], children...), tail...)
	return nil
}

// Collapse removes every descendant of the selected entry.
func (t *Tree) Collapse() {
	cur := t.Current()
	if cur == nil || !cur.Expanded {
		return
	}
	cur.Expanded = false

	depth := cur.Depth
	end := t.selected + 1
	for end < len(t.entries) && t.entries[end].Depth > depth {
		end++
	}
	t.entries = append(t.entries[:t.selected+1], t.entries[end:]...)
}

// Toggle collapses an expanded entry and expands a collapsed one.
func (t *Tree) Toggle() error {
	cur := t.Current()
	if cur == nil {
		return nil
	}
	if cur.Expanded {
		t.Collapse()
		return nil
	}
	return t.Expand()
}

// Apply runs a tree action against the tree.
func (t *Tree) Apply(action TreeAction) error {
	return action.applyTo(t)
}

// ===== REFRESH =====

type treeSnapshot struct {
	selectedPath string
	hasSelection bool
	scroll       int
	expanded     []string // depth-first order, parents before children
}

func (t *Tree) snapshot() treeSnapshot {
	snap := treeSnapshot{scroll: t.scroll}
	if cur := t.Current(); cur != nil {
		snap.selectedPath = cur.Path
		snap.hasSelection = true
	}
	for _, e := range t.entries {
		if e.Expanded {
			snap.expanded = append(snap.expanded, e.Path)
		}
	}
	return snap
}

// Refresh relists the tree from disk, re-expanding previously expanded
// directories and restoring the selection by path. When the previous
// selection is gone the selection and scroll reset to the top. If the root
// itself can no longer be read the tree is left as it was.
func (t *Tree) Refresh() error {
	snap := t.snapshot()

	entries, err := fsutil.List(t.root, 1)
	if err != nil {
		return err
	}
	next := &Tree{root: t.root, entries: entries}

	for _, path := range snap.expanded {
		idx, ok := next.Find(path)
		if !ok {
			continue
		}
		next.selected = idx
		// A directory that can't be listed anymore simply stays collapsed.
		_ = next.Expand()
	}

	next.selected, next.scroll = 0, 0
	if snap.hasSelection {
		if idx, ok := next.Find(snap.selectedPath); ok {
			next.selected = idx
			next.scroll = snap.scroll
			if last := len(next.entries) - 1; next.scroll > last {
				next.scroll = max(last, 0)
			}
		}
	}

	*t = *next
	return nil
}
