package config

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyCombo is a normalised key chord usable as a map key. Printable keys use
// Key == tcell.KeyRune; shift is folded into the rune for those.
type KeyCombo struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// QuitCombo is the reserved interrupt chord.
var QuitCombo = KeyCombo{Key: tcell.KeyRune, Rune: 'c', Mod: tcell.ModCtrl}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
}

var canonicalKeyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "backtab",
	tcell.KeyEscape:     "esc",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdn",
}

var modifierNames = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"shift":   tcell.ModShift,
	"meta":    tcell.ModMeta,
}

// ParseKeyCombo parses chords such as "j", "ctrl-d", "shift-up", "alt-enter"
// or "ctrl--".
func ParseKeyCombo(s string) (KeyCombo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyCombo{}, fmt.Errorf("empty key combo")
	}

	keyName := s
	var mods []string
	// The last character is never a separator, so "ctrl--" binds '-'.
	if i := strings.LastIndex(s[:len(s)-1], "-"); i >= 0 {
		keyName = s[i+1:]
		mods = strings.Split(s[:i], "-")
	}

	var mask tcell.ModMask
	for _, m := range mods {
		bit, ok := modifierNames[strings.ToLower(m)]
		if !ok {
			return KeyCombo{}, fmt.Errorf("unknown modifier %q in %q", m, s)
		}
		mask |= bit
	}

	if utf8.RuneCountInString(keyName) == 1 {
		r, _ := utf8.DecodeRuneInString(keyName)
		return normalizeRune(r, mask), nil
	}

	lower := strings.ToLower(keyName)
	if lower == "space" {
		return normalizeRune(' ', mask), nil
	}
	if key, ok := namedKeys[lower]; ok {
		return KeyCombo{Key: key, Mod: mask}, nil
	}
	if n, ok := functionKeyNumber(lower); ok {
		return KeyCombo{Key: tcell.KeyF1 + tcell.Key(n-1), Mod: mask}, nil
	}
	return KeyCombo{}, fmt.Errorf("unknown key %q in %q", keyName, s)
}

func functionKeyNumber(name string) (int, bool) {
	if len(name) < 2 || name[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, n >= 1 && n <= 64
}

// normalizeRune folds shift into the rune and lowercases ctrl letters, since
// terminals report ctrl chords without case.
func normalizeRune(r rune, mask tcell.ModMask) KeyCombo {
	if mask&tcell.ModShift != 0 {
		r = unicode.ToUpper(r)
		mask &^= tcell.ModShift
	}
	if mask&tcell.ModCtrl != 0 {
		r = unicode.ToLower(r)
	}
	return KeyCombo{Key: tcell.KeyRune, Rune: r, Mod: mask}
}

// ComboFromEvent normalises a key event the same way ParseKeyCombo
// normalises configuration strings.
func ComboFromEvent(ev *tcell.EventKey) KeyCombo {
	key, r, mod := ev.Key(), ev.Rune(), ev.Modifiers()

	switch {
	case key == tcell.KeyRune:
		return normalizeRune(r, mod)
	case key == tcell.KeyCtrlSpace:
		return normalizeRune(' ', mod|tcell.ModCtrl)
	case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
		// Terminals disagree on BS vs DEL for the backspace key.
		return KeyCombo{Key: tcell.KeyBackspace2, Mod: mod &^ tcell.ModCtrl}
	case key == tcell.KeyTab || key == tcell.KeyEnter || key == tcell.KeyEscape:
		return KeyCombo{Key: key, Mod: mod &^ tcell.ModCtrl}
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return normalizeRune('a'+rune(key-tcell.KeyCtrlA), mod|tcell.ModCtrl)
	default:
		return KeyCombo{Key: key, Mod: mod}
	}
}

// String renders the combo in configuration syntax.
func (k KeyCombo) String() string {
	var b strings.Builder
	for _, m := range []struct {
		bit  tcell.ModMask
		name string
	}{{tcell.ModCtrl, "ctrl"}, {tcell.ModAlt, "alt"}, {tcell.ModMeta, "meta"}, {tcell.ModShift, "shift"}} {
		if k.Mod&m.bit != 0 {
			b.WriteString(m.name)
			b.WriteByte('-')
		}
	}
	if k.Key == tcell.KeyRune {
		if k.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(k.Rune)
		}
		return b.String()
	}
	if name, ok := canonicalKeyNames[k.Key]; ok {
		b.WriteString(name)
		return b.String()
	}
	if k.Key >= tcell.KeyF1 && k.Key <= tcell.KeyF64 {
		fmt.Fprintf(&b, "f%d", int(k.Key-tcell.KeyF1)+1)
		return b.String()
	}
	fmt.Fprintf(&b, "key(%d)", int(k.Key))
	return b.String()
}
