package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
	"github.com/gobwas/glob"

	statepkg "github.com/kk-code-lab/idex/internal/state"
)

//go:embed default.toml
var defaultConfig []byte

// DefaultSource names the embedded configuration in errors.
const DefaultSource = "<default>"

const (
	defaultDoubleClickDelay = 500 * time.Millisecond
	defaultPollInterval     = 1000 * time.Millisecond
	defaultTabText          = "  "
)

// Error reports a configuration problem. Key is empty when the problem is not
// tied to a single key (for example a syntax error).
type Error struct {
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Path, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Style is an icon plus a colour. ColorDefault means "leave the terminal
// colour alone".
type Style struct {
	Icon  string
	Color tcell.Color
}

// GlobStyle applies Style to file names matching Pattern.
type GlobStyle struct {
	Pattern string
	Style   Style
	glob    glob.Glob
}

// Match reports whether name matches the pattern.
func (g GlobStyle) Match(name string) bool {
	return g.glob != nil && g.glob.Match(name)
}

// Tab is the per-depth indentation.
type Tab struct {
	Text  string
	Color tcell.Color
}

// Config is the validated, ready-to-use configuration.
type Config struct {
	Source           string
	DoubleClickDelay time.Duration
	PollInterval     time.Duration
	// DoubleClick runs when a file is double clicked; nil disables it.
	DoubleClick statepkg.Action
	Tab         Tab
	Keymap      map[KeyCombo]statepkg.Action
	Folder      Style
	File        Style
	Suffixes    map[string]Style
	Names       map[string]Style
	Globs       []GlobStyle
}

// Binding looks up the action bound to combo.
func (c *Config) Binding(combo KeyCombo) (statepkg.Action, bool) {
	action, ok := c.Keymap[combo]
	return action, ok
}

type styleFile struct {
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
}

type globStyleFile struct {
	Pattern string `toml:"pattern"`
	Icon    string `toml:"icon"`
	Color   string `toml:"color"`
}

type tabFile struct {
	Text  *string `toml:"text"`
	Color string  `toml:"color"`
}

type fileConfig struct {
	DoubleClickDelay int64                  `toml:"double_click_delay"`
	PollInterval     int64                  `toml:"poll_interval"`
	DoubleClick      ActionValue            `toml:"double_click"`
	Tab              tabFile                `toml:"tab"`
	Bindings         map[string]ActionValue `toml:"bindings"`
	Folder           styleFile              `toml:"folder"`
	File             styleFile              `toml:"file"`
	Files            map[string]styleFile   `toml:"files"`
	Names            map[string]styleFile   `toml:"names"`
	Style            []globStyleFile        `toml:"style"`
}

// Path returns the configuration file location:
// $XDG_CONFIG_HOME/idex/conf.toml, else ~/.config/idex/conf.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "idex", "conf.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config directory: %w", err)
	}
	return filepath.Join(home, ".config", "idex", "conf.toml"), nil
}

// Load reads the configuration from Path, falling back to the embedded
// default when no file exists.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads path, falling back to the embedded default when it does not
// exist. Every other failure is returned.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default()
	}
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return Parse(data, path)
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Parse(defaultConfig, DefaultSource)
}

// Parse decodes and validates TOML configuration text. source is only used
// in error messages.
func Parse(data []byte, source string) (*Config, error) {
	raw := fileConfig{
		DoubleClickDelay: defaultDoubleClickDelay.Milliseconds(),
		PollInterval:     defaultPollInterval.Milliseconds(),
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, &Error{Path: source, Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, &Error{Path: source, Key: undecoded[0].String(), Err: errors.New("unknown key")}
	}
	return compile(raw, source)
}

func compile(raw fileConfig, source string) (*Config, error) {
	fail := func(key string, err error) (*Config, error) {
		return nil, &Error{Path: source, Key: key, Err: err}
	}

	cfg := &Config{
		Source:      source,
		DoubleClick: raw.DoubleClick.Action,
		Keymap:      make(map[KeyCombo]statepkg.Action, len(raw.Bindings)),
		Suffixes:    make(map[string]Style, len(raw.Files)),
		Names:       make(map[string]Style, len(raw.Names)),
	}

	if raw.DoubleClickDelay < 0 {
		return fail("double_click_delay", fmt.Errorf("must not be negative, got %d", raw.DoubleClickDelay))
	}
	cfg.DoubleClickDelay = time.Duration(raw.DoubleClickDelay) * time.Millisecond
	if raw.PollInterval <= 0 {
		return fail("poll_interval", fmt.Errorf("must be positive, got %d", raw.PollInterval))
	}
	cfg.PollInterval = time.Duration(raw.PollInterval) * time.Millisecond

	cfg.Tab.Text = defaultTabText
	if raw.Tab.Text != nil {
		cfg.Tab.Text = *raw.Tab.Text
	}
	color, err := ParseColor(raw.Tab.Color)
	if err != nil {
		return fail("tab.color", err)
	}
	cfg.Tab.Color = color

	// Sorted so the first reported error is stable.
	combos := make([]string, 0, len(raw.Bindings))
	for k := range raw.Bindings {
		combos = append(combos, k)
	}
	sort.Strings(combos)
	seen := make(map[KeyCombo]string, len(combos))
	for _, name := range combos {
		key := "bindings." + name
		combo, err := ParseKeyCombo(name)
		if err != nil {
			return fail(key, err)
		}
		if combo == QuitCombo {
			return fail(key, fmt.Errorf("%s is reserved for quitting", combo))
		}
		if prev, dup := seen[combo]; dup {
			return fail(key, fmt.Errorf("same key as %q", prev))
		}
		seen[combo] = name
		cfg.Keymap[combo] = raw.Bindings[name].Action
	}

	if cfg.Folder, err = compileStyle(raw.Folder); err != nil {
		return fail("folder.color", err)
	}
	if cfg.File, err = compileStyle(raw.File); err != nil {
		return fail("file.color", err)
	}
	for suffix, s := range raw.Files {
		style, err := compileStyle(s)
		if err != nil {
			return fail("files."+suffix+".color", err)
		}
		cfg.Suffixes[strings.ToLower(strings.TrimPrefix(suffix, "."))] = style
	}
	for name, s := range raw.Names {
		style, err := compileStyle(s)
		if err != nil {
			return fail("names."+name+".color", err)
		}
		cfg.Names[name] = style
	}
	for i, s := range raw.Style {
		key := fmt.Sprintf("style[%d]", i)
		if s.Pattern == "" {
			return fail(key+".pattern", errors.New("pattern is required"))
		}
		g, err := glob.Compile(s.Pattern)
		if err != nil {
			return fail(key+".pattern", fmt.Errorf("invalid glob %q: %w", s.Pattern, err))
		}
		style, err := compileStyle(styleFile{Icon: s.Icon, Color: s.Color})
		if err != nil {
			return fail(key+".color", err)
		}
		cfg.Globs = append(cfg.Globs, GlobStyle{Pattern: s.Pattern, Style: style, glob: g})
	}

	return cfg, nil
}

func compileStyle(s styleFile) (Style, error) {
	color, err := ParseColor(s.Color)
	if err != nil {
		return Style{}, err
	}
	return Style{Icon: s.Icon, Color: color}, nil
}

// ParseColor accepts tcell colour names ("blue", "gray") and "#rrggbb".
// An empty string is tcell.ColorDefault.
func ParseColor(name string) (tcell.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "default", "reset":
		return tcell.ColorDefault, nil
	}
	color := tcell.GetColor(name)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color %q", name)
	}
	return color, nil
}
