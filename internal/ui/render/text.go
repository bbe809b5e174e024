package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	textutil "github.com/kk-code-lab/idex/internal/textutil"
)

const ellipsis = "…"

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		width := r.runeWidthCache[ru]
		if width == 0 && ru != 0 {
			actualWidth := max(runewidth.RuneWidth(ru), 0)
			r.runeWidthCache[ru] = actualWidth + 1
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide[ru]; ok {
		return cached
	}
	width := max(runewidth.RuneWidth(ru), 0)
	r.runeWidthWide[ru] = width
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// truncateTextToWidth keeps the start of text and marks the cut with an
// ellipsis.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var builder strings.Builder
	currentWidth := 0
	for _, ru := range text {
		runeWidth := r.cachedRuneWidth(ru)
		if currentWidth+runeWidth > available {
			break
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}
	builder.WriteString(ellipsis)
	return builder.String()
}

// truncateTextLeft keeps the end of text, which is the useful part of a path.
func (r *Renderer) truncateTextLeft(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return ellipsis
	}

	runes := []rune(text)
	available := maxWidth - 1
	width := 0
	start := len(runes)
	for start > 0 {
		rw := r.cachedRuneWidth(runes[start-1])
		if width+rw > available {
			break
		}
		width += rw
		start--
	}
	return ellipsis + string(runes[start:])
}

// drawTextLine draws text from startX, stopping at maxWidth cells, and
// returns the next free column. Zero-width runes combine with the previous
// rune.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if x-startX+max(w, 1) > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += max(w, 1)
	}

	return x
}

func (r *Renderer) fillLine(startX, y, endX int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// cleanText makes user-controlled text safe to draw cell by cell.
func cleanText(text string) string {
	return textutil.Clean(text, textutil.DefaultTabWidth)
}
