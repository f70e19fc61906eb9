// Package theme loads named styles from YAML so callers can write
// Apply("error", msg) instead of repeating colour and attribute labels.
package theme

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/types"
)

// ErrUnknownStyle is returned when a style name is not defined by a theme.
var ErrUnknownStyle = errors.New("unknown style")

//go:embed default.yaml
var defaultTheme []byte

// StyleDef is a style as written in a theme file. Labels are catalog labels.
type StyleDef struct {
	Fg    string   `yaml:"fg,omitempty"`
	Bg    string   `yaml:"bg,omitempty"`
	Attrs []string `yaml:"attrs,omitempty"`
}

type file struct {
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps style names to overrides.
type Theme struct {
	styles map[string]types.Override
}

// Parse reads a YAML theme. Unknown keys and unknown labels are errors.
func Parse(data []byte) (*Theme, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding theme: %w", err)
	}

	t := &Theme{styles: make(map[string]types.Override, len(f.Styles))}
	for name, def := range f.Styles {
		o, err := types.ParseOverride(def.Fg, def.Bg, def.Attrs...)
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		t.styles[name] = o
	}
	return t, nil
}

// Load reads and parses a YAML theme file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the built-in theme.
func Default() *Theme {
	t, err := Parse(defaultTheme)
	if err != nil {
		panic(fmt.Sprintf("theme: invalid built-in theme: %v", err))
	}
	return t
}

// Merge returns a theme holding the styles of t overridden by those of other.
func (t *Theme) Merge(other *Theme) *Theme {
	merged := &Theme{styles: make(map[string]types.Override, len(t.styles)+len(other.styles))}
	for name, o := range t.styles {
		merged.styles[name] = o
	}
	for name, o := range other.styles {
		merged.styles[name] = o
	}
	return merged
}

// Style returns a copy of the override registered under name.
func (t *Theme) Style(name string) (types.Override, error) {
	o, ok := t.styles[name]
	if !ok {
		return types.Override{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	return o.Copy(), nil
}

// Names returns the style names in alphabetical order.
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply wraps content in the named style.
func (t *Theme) Apply(name string, content any) (expr.Expr, error) {
	o, err := t.Style(name)
	if err != nil {
		return nil, err
	}
	return expr.Styled(content, o), nil
}
