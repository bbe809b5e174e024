package render

// Layout splits the screen into the header, the tree list, the overlay
// (rule plus one content row) and the status line.
type Layout struct {
	Width    int
	Height   int
	ListTop  int
	ListRows int
	RuleY    int
	ContentY int
	StatusY  int
}

// chromeRows is everything that is not list: header, rule, content, status.
const chromeRows = 4

// ComputeLayout returns the layout for a w x h screen. On screens too small
// for every row the list shrinks first; rows that would land on the header
// are negative and skipped when drawing.
func ComputeLayout(w, h int) Layout {
	return Layout{
		Width:    w,
		Height:   h,
		ListTop:  1,
		ListRows: max(h-chromeRows, 0),
		RuleY:    h - 3,
		ContentY: h - 2,
		StatusY:  h - 1,
	}
}

// visible reports whether y is a drawable row below the header.
func (l Layout) visible(y int) bool {
	return y >= 1 && y < l.Height
}
