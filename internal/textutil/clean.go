// Package textutil makes untrusted text (file names, command output, typed
// input) safe to draw on a terminal row.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabWidth = 4

// Invisible bidi and zero-width runes are drawn as labels so a name cannot
// disguise itself (e.g. an RLO flipping "gpj.exe" into "exe.jpg").
var formattingRuneLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x00AD: "⟪SHY⟫",
	0x180E: "⟪MVS⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0x206A: "⟪ISS⟫",
	0x206B: "⟪ASS⟫",
	0x206C: "⟪IAFS⟫",
	0x206D: "⟪AAFS⟫",
	0x206E: "⟪NADS⟫",
	0x206F: "⟪NODS⟫",
	0xFEFF: "⟪BOM⟫",
}

// Clean rewrites text for a single terminal row: tabs expand to tabWidth
// columns, line breaks become spaces, other control characters become '?'
// and formatting runes become visible labels. Clean text is returned as is.
func Clean(text string, tabWidth int) string {
	if !needsCleaning(text) {
		return text
	}

	var b strings.Builder
	column := 0
	for _, r := range text {
		switch {
		case r == '\t' && tabWidth > 0:
			spaces := tabWidth - column%tabWidth
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
			column++
		case isControl(r):
			b.WriteByte('?')
			column++
		default:
			if label, ok := formattingRuneLabels[r]; ok {
				b.WriteString(label)
				column += runewidth.StringWidth(label)
				continue
			}
			b.WriteRune(r)
			column += max(runewidth.RuneWidth(r), 1)
		}
	}
	return b.String()
}

func needsCleaning(text string) bool {
	for _, r := range text {
		if r == '\t' || isControl(r) {
			return true
		}
		if _, ok := formattingRuneLabels[r]; ok {
			return true
		}
	}
	return false
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}
