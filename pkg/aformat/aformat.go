// Package aformat provides a public API for building styled terminal text.
//
// This package provides functions to:
//   - Wrap text in foreground, background and attribute overrides
//   - Concatenate and interpolate styled fragments
//   - Render them with minimal SGR transitions that restore the enclosing style
//   - Export to plain text, neotex or a tcell screen
//
// Example usage:
//
//	import "github.com/badele/aformat/pkg/aformat"
//
//	you, _ := aformat.Format("You", "red", "")
//	line, _ := aformat.Format(aformat.Interpolate("Hello, Are %s Well", you), "blue", "")
//	fmt.Println(line)
package aformat

import (
	"github.com/gdamore/tcell/v2"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/exporter"
	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/theme"
	"github.com/badele/aformat/internal/types"
)

// Type aliases for public API
type (
	// Expr is an immutable styled expression.
	Expr = expr.Expr

	// Span is a run of text sharing one style.
	Span = expr.Span

	// State is a fully resolved style.
	State = types.State

	// Override is a partial style attached to an expression.
	Override = types.Override

	// Escape is a catalog entry: namespace, label, code and raw sequence.
	Escape = catalog.Escape

	// Color is a foreground or background colour label.
	Color = catalog.Color

	// Attr is a text attribute label.
	Attr = catalog.Attr

	// Theme maps style names to overrides.
	Theme = theme.Theme
)

// Colour labels
const (
	Black   = catalog.Black
	Red     = catalog.Red
	Green   = catalog.Green
	Yellow  = catalog.Yellow
	Blue    = catalog.Blue
	Magenta = catalog.Magenta
	Cyan    = catalog.Cyan
	White   = catalog.White
	Default = catalog.Default
)

// Attribute labels
const (
	Bold        = catalog.Bold
	Faint       = catalog.Faint
	Italic      = catalog.Italic
	Underline   = catalog.Underline
	Blink       = catalog.Blink
	Reverse     = catalog.Reverse
	Conceal     = catalog.Conceal
	Strike      = catalog.Strike
	Unbold      = catalog.Unbold
	Unfaint     = catalog.Unfaint
	Unitalic    = catalog.Unitalic
	Ununderline = catalog.Ununderline
	Unblink     = catalog.Unblink
	Unreverse   = catalog.Unreverse
	Unconceal   = catalog.Unconceal
	Unstrike    = catalog.Unstrike
)

// Errors
var (
	ErrUnknownLabel   = catalog.ErrUnknownLabel
	ErrFormatMismatch = expr.ErrFormatMismatch
	ErrUnknownStyle   = theme.ErrUnknownStyle
)

// Text creates an unstyled atom.
func Text(content any) Expr {
	return expr.Text(content)
}

// Concat creates the concatenation of left and right.
func Concat(left, right any) Expr {
	return expr.Concat(left, right)
}

// Join concatenates parts from left to right.
func Join(parts ...any) Expr {
	return expr.Join(parts...)
}

// Interpolate substitutes args into template. Supported conversions are %s,
// %v and %q with flags, width and precision.
func Interpolate(template any, args ...any) Expr {
	return expr.Interpolate(template, args...)
}

// Styled wraps content in an override.
func Styled(content any, o Override) Expr {
	return expr.Styled(content, o)
}

// WithStyle returns a copy of e carrying o.
func WithStyle(e Expr, o Override) Expr {
	return expr.WithStyle(e, o)
}

// Format wraps content in the given labels. Empty colour labels leave the
// axis untouched.
func Format(content any, fg, bg string, attrs ...string) (Expr, error) {
	return expr.Format(content, fg, bg, attrs...)
}

// Render renders e from the default state.
func Render(e Expr) (string, error) {
	return expr.Render(e)
}

// Plain returns the text of e without escapes.
func Plain(e Expr) (string, error) {
	return expr.Plain(e)
}

// Lookup returns the catalog entry for a namespace ("fg", "bg", "attr",
// "ctl") and label.
func Lookup(namespace, label string) (Escape, error) {
	ns, err := catalog.ParseNamespace(namespace)
	if err != nil {
		return Escape{}, err
	}
	return catalog.Lookup(ns, label)
}

// DefaultState returns the terminal's initial style.
func DefaultState() State {
	return types.DefaultState()
}

// Diff returns the escapes moving a terminal from one state to another.
func Diff(from, to State) []Escape {
	return types.Diff(from, to)
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	return exporter.ConvertToUTF8(data, sourceEncoding)
}

// ConvertToEncoding converts UTF-8 data to the target encoding.
// Supported encodings: "utf8", "cp437", "cp850", "iso-8859-1"
func ConvertToEncoding(data []byte, targetEncoding string) ([]byte, error) {
	return exporter.ConvertToEncoding(data, targetEncoding)
}

// ExportANSI renders e and encodes the result.
func ExportANSI(e Expr, outputEncoding string) (string, error) {
	return exporter.ExportANSI(e, outputEncoding)
}

// ExportText exports the visible text of e in the given encoding.
func ExportText(e Expr, outputEncoding string) (string, error) {
	return exporter.ExportText(e, outputEncoding)
}

// ExportDebug renders e with escapes written as "{ns.label}".
func ExportDebug(e Expr) (string, error) {
	return exporter.ExportDebug(e)
}

// ExportNeotex exports e to Neotex format.
// Returns (text, sequences, error) where:
//   - text is the plain text content
//   - sequences is the neotex format sequences with positions
func ExportNeotex(e Expr) (string, string, error) {
	return exporter.ExportNeotex(e)
}

// DrawScreen draws e onto a tcell screen at (x, y) and returns the rows used.
func DrawScreen(screen tcell.Screen, x, y int, e Expr) (int, error) {
	return exporter.DrawScreen(screen, x, y, e)
}

// Width returns the display width of the widest line of e.
func Width(e Expr) (int, error) {
	return exporter.Width(e)
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	return theme.Default()
}

// LoadTheme reads a YAML theme file.
func LoadTheme(path string) (*Theme, error) {
	return theme.Load(path)
}
