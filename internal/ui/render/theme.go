package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/idex/internal/config"
	fsutil "github.com/kk-code-lab/idex/internal/fs"
)

// ColorTheme holds the colours that are not configurable.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	RuleFg      tcell.Color
	PromptFg    tcell.Color
	ErrorFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		RuleFg:      tcell.ColorGray,
		PromptFg:    tcell.ColorYellow,
		ErrorFg:     tcell.ColorRed,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
	}
}

// ResolveStyle picks the icon and colour for an entry: exact name first, then
// the first matching glob, then the suffix, then the folder or file default.
// Globs and suffixes only apply to files.
func ResolveStyle(cfg *config.Config, e fsutil.Entry) config.Style {
	if s, ok := cfg.Names[e.Name]; ok {
		return s
	}
	if e.IsDir() {
		return cfg.Folder
	}
	for _, g := range cfg.Globs {
		if g.Match(e.Name) {
			return g.Style
		}
	}
	if e.Suffix != "" {
		if s, ok := cfg.Suffixes[e.Suffix]; ok {
			return s
		}
	}
	return cfg.File
}
