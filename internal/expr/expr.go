// Package expr builds styled text as a tree of immutable nodes and renders it
// with the smallest set of SGR escapes.
//
// Every node may carry a style override. Rendering a node merges the override
// into the ambient state inherited from its parent, emits the escapes that
// lead from the ambient state to the new one, renders the children under the
// new state and finally emits the escapes that lead back. Closing a nested
// style therefore restores the enclosing style instead of resetting the
// terminal:
//
//	you := expr.WithStyle(expr.Text("You"), types.Override{Fg: catalog.Red})
//	line := expr.WithStyle(expr.Join("Hello, Are ", you, " Well"), types.Override{Fg: catalog.Blue})
//	s, _ := expr.Render(line)
//	// "\x1b[34mHello, Are \x1b[31mYou\x1b[34m Well\x1b[39m"
//
// Nodes are never modified after construction and can be rendered from
// several goroutines at once.
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/types"
)

// ErrFormatMismatch is returned when an interpolation template and its
// arguments do not fit together.
var ErrFormatMismatch = errors.New("format mismatch")

// Expr is a node of a styled text tree: *Atom, *Pair or *Interpolation.
type Expr interface {
	// Override returns a copy of the node's own style override.
	Override() types.Override

	// Render returns the text of the node for a stream whose current style
	// is ambient. The output leaves the stream in the ambient style again.
	Render(ambient types.State) (string, error)

	// Spans returns the visible text of the node split into runs of equal
	// style.
	Spans(ambient types.State) ([]Span, error)

	render(p printer, ambient types.State) (string, error)
	withOverride(o types.Override) Expr
}

// printer turns a transition into output text.
type printer func(escapes []catalog.Escape) string

func ansiPrinter(escapes []catalog.Escape) string {
	return types.JoinEscapes(escapes)
}

func debugPrinter(escapes []catalog.Escape) string {
	var sb strings.Builder
	for _, e := range escapes {
		sb.WriteString(e.GoString())
	}
	return sb.String()
}

/////////////////////////////////////////////////////////////////////////////
// RENDER PROTOCOL
/////////////////////////////////////////////////////////////////////////////

type node struct {
	override types.Override
}

func (n node) Override() types.Override {
	return n.override.Copy()
}

// wrap renders body under the state obtained by merging o into ambient and
// surrounds it with the entry and exit transitions.
func wrap(p printer, o types.Override, ambient types.State, body func(state types.State) (string, error)) (string, error) {
	state := types.Merge(ambient, o)

	s, err := body(state)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(p(types.Diff(ambient, state)))
	sb.WriteString(s)
	sb.WriteString(p(types.Diff(state, ambient)))
	return sb.String(), nil
}

// renderValue renders a child, which is either a node or a plain value.
func renderValue(p printer, v any, state types.State) (string, error) {
	if e, ok := v.(Expr); ok {
		return e.render(p, state)
	}
	return stringify(v), nil
}

// formatValue renders an argument for a slot. Width, precision and quoting
// work on the visible text of a node, which is then rendered again from its
// spans so the exit transition is never cut.
func formatValue(p printer, verb string, v any, state types.State) (string, error) {
	e, ok := v.(Expr)
	if !ok {
		return formatArg(verb, stringify(v)), nil
	}
	if verb == "s" || verb == "v" {
		return e.render(p, state)
	}

	spans, err := e.Spans(state)
	if err != nil {
		return "", err
	}
	return renderSpans(p, formatSpans(verb, spans, state), state), nil
}

func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

/////////////////////////////////////////////////////////////////////////////
// ATOM
/////////////////////////////////////////////////////////////////////////////

// Atom is a leaf holding literal content or a single nested node.
type Atom struct {
	node
	content any
}

// Text returns an Atom without style.
func Text(content any) *Atom {
	return &Atom{content: content}
}

func (a *Atom) Content() any {
	return a.content
}

func (a *Atom) Render(ambient types.State) (string, error) {
	return a.render(ansiPrinter, ambient)
}

func (a *Atom) render(p printer, ambient types.State) (string, error) {
	return wrap(p, a.override, ambient, func(state types.State) (string, error) {
		return renderValue(p, a.content, state)
	})
}

func (a *Atom) withOverride(o types.Override) Expr {
	c := *a
	c.override = o
	return &c
}

func (a *Atom) String() string   { return display(a) }
func (a *Atom) GoString() string { return goDisplay(a) }

/////////////////////////////////////////////////////////////////////////////
// PAIR
/////////////////////////////////////////////////////////////////////////////

// Pair concatenates two children rendered under the same state.
type Pair struct {
	node
	left  any
	right any
}

// Concat returns the Pair of left and right.
func Concat(left, right any) *Pair {
	return &Pair{left: left, right: right}
}

// Join concatenates parts from left to right.
func Join(parts ...any) Expr {
	switch len(parts) {
	case 0:
		return Text("")
	case 1:
		if e, ok := parts[0].(Expr); ok {
			return e
		}
		return Text(parts[0])
	}

	var e Expr = Concat(parts[0], parts[1])
	for _, part := range parts[2:] {
		e = Concat(e, part)
	}
	return e
}

func (pr *Pair) Left() any  { return pr.left }
func (pr *Pair) Right() any { return pr.right }

func (pr *Pair) Render(ambient types.State) (string, error) {
	return pr.render(ansiPrinter, ambient)
}

func (pr *Pair) render(p printer, ambient types.State) (string, error) {
	return wrap(p, pr.override, ambient, func(state types.State) (string, error) {
		left, err := renderValue(p, pr.left, state)
		if err != nil {
			return "", err
		}
		right, err := renderValue(p, pr.right, state)
		if err != nil {
			return "", err
		}
		return left + right, nil
	})
}

func (pr *Pair) withOverride(o types.Override) Expr {
	c := *pr
	c.override = o
	return &c
}

func (pr *Pair) String() string   { return display(pr) }
func (pr *Pair) GoString() string { return goDisplay(pr) }

/////////////////////////////////////////////////////////////////////////////
// INTERPOLATION
/////////////////////////////////////////////////////////////////////////////

// Interpolation substitutes rendered arguments into a printf-style template.
// Slots accept the %s, %v and %q conversions with optional flags, width and
// precision; "%%" is a literal percent sign.
type Interpolation struct {
	node
	template any
	args     []any
}

// Interpolate returns an Interpolation of template with args.
func Interpolate(template any, args ...any) *Interpolation {
	return &Interpolation{template: template, args: append([]any(nil), args...)}
}

func (in *Interpolation) Template() any { return in.template }

func (in *Interpolation) Args() []any {
	return append([]any(nil), in.args...)
}

func (in *Interpolation) Render(ambient types.State) (string, error) {
	return in.render(ansiPrinter, ambient)
}

func (in *Interpolation) render(p printer, ambient types.State) (string, error) {
	return wrap(p, in.override, ambient, func(state types.State) (string, error) {
		template, err := renderValue(p, in.template, state)
		if err != nil {
			return "", err
		}
		pieces, err := parseTemplate(template)
		if err != nil {
			return "", err
		}
		verbs := slotVerbs(pieces)
		if err := checkArity(len(verbs), len(in.args)); err != nil {
			return "", err
		}

		args := make([]string, len(in.args))
		for i, arg := range in.args {
			if args[i], err = formatValue(p, verbs[i], arg, state); err != nil {
				return "", err
			}
		}

		return substitute(pieces, args)
	})
}

func (in *Interpolation) withOverride(o types.Override) Expr {
	c := *in
	c.override = o
	return &c
}

func (in *Interpolation) String() string   { return display(in) }
func (in *Interpolation) GoString() string { return goDisplay(in) }

/////////////////////////////////////////////////////////////////////////////
// ENTRY POINTS
/////////////////////////////////////////////////////////////////////////////

// WithStyle returns a copy of e carrying o as its own override.
func WithStyle(e Expr, o types.Override) Expr {
	return e.withOverride(o.Copy())
}

// Styled wraps content in an Atom carrying o.
func Styled(content any, o types.Override) Expr {
	return WithStyle(Text(content), o)
}

// Format wraps content in an Atom styled from catalog labels. Empty colour
// labels leave the axis unset.
func Format(content any, fg, bg string, attrs ...string) (Expr, error) {
	o, err := types.ParseOverride(fg, bg, attrs...)
	if err != nil {
		return nil, err
	}
	return Styled(content, o), nil
}

// Render renders e for a stream in the default state.
func Render(e Expr) (string, error) {
	return e.Render(types.DefaultState())
}

// Debug renders e from the default state with every escape written in its
// "{ns.label}" form.
func Debug(e Expr) (string, error) {
	return e.render(debugPrinter, types.DefaultState())
}

func display(e Expr) string {
	s, err := Render(e)
	if err != nil {
		return "%!(" + err.Error() + ")"
	}
	return s
}

func goDisplay(e Expr) string {
	return fmt.Sprintf("aformat(%q)", display(e))
}
