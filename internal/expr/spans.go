package expr

import (
	"fmt"
	"strings"

	"github.com/badele/aformat/internal/types"
)

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	State types.State
}

// appendSpan adds s to spans, merging it into the last span when both share
// the same state. Empty spans are dropped.
func appendSpan(spans []Span, s Span) []Span {
	if s.Text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].State == s.State {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}

func appendSpans(spans []Span, more []Span) []Span {
	for _, s := range more {
		spans = appendSpan(spans, s)
	}
	return spans
}

func spansValue(v any, state types.State) ([]Span, error) {
	if e, ok := v.(Expr); ok {
		return e.Spans(state)
	}
	return appendSpan(nil, Span{Text: stringify(v), State: state}), nil
}

func (a *Atom) Spans(ambient types.State) ([]Span, error) {
	return spansValue(a.content, types.Merge(ambient, a.override))
}

func (pr *Pair) Spans(ambient types.State) ([]Span, error) {
	state := types.Merge(ambient, pr.override)

	left, err := spansValue(pr.left, state)
	if err != nil {
		return nil, err
	}
	right, err := spansValue(pr.right, state)
	if err != nil {
		return nil, err
	}
	return appendSpans(left, right), nil
}

// Spans parses each template span separately, so a conversion cannot be
// split across two differently styled parts of the template.
func (in *Interpolation) Spans(ambient types.State) ([]Span, error) {
	state := types.Merge(ambient, in.override)

	template, err := spansValue(in.template, state)
	if err != nil {
		return nil, err
	}

	parsed := make([][]piece, len(template))
	slots := 0
	for i, s := range template {
		if parsed[i], err = parseTemplate(s.Text); err != nil {
			return nil, err
		}
		slots += countSlots(parsed[i])
	}
	if err := checkArity(slots, len(in.args)); err != nil {
		return nil, err
	}

	var out []Span
	next := 0
	for i, s := range template {
		for _, p := range parsed[i] {
			if !p.isSlot() {
				out = appendSpan(out, Span{Text: p.text, State: s.State})
				continue
			}
			arg, err := spansValue(in.args[next], state)
			if err != nil {
				return nil, err
			}
			out = appendSpans(out, formatSpans(p.verb, arg, s.State))
			next++
		}
	}
	return out, nil
}

// formatSpans applies a conversion to an argument while keeping its styles
// where possible. Precision cuts the spans, padding takes the style of the
// slot. Quoting collapses the argument into a single span.
func formatSpans(verb string, arg []Span, slot types.State) []Span {
	if verb == "s" || verb == "v" {
		return arg
	}

	text := spansText(arg)
	formatted := fmt.Sprintf("%"+verb, text)

	if !strings.Contains(verb, "q") {
		kept := arg
		if i := strings.IndexByte(verb, '.'); i >= 0 {
			text = fmt.Sprintf("%"+verb[i:len(verb)-1]+"s", text)
			kept = truncateSpans(arg, len(text))
		}

		switch {
		case formatted == text:
			return kept
		case strings.HasPrefix(formatted, text):
			return appendSpan(append([]Span(nil), kept...), Span{Text: formatted[len(text):], State: slot})
		case strings.HasSuffix(formatted, text):
			return appendSpans([]Span{{Text: formatted[:len(formatted)-len(text)], State: slot}}, kept)
		}
	}

	state := slot
	if len(arg) == 1 {
		state = arg[0].State
	}
	return appendSpan(nil, Span{Text: formatted, State: state})
}

// truncateSpans keeps the first n bytes of spans.
func truncateSpans(spans []Span, n int) []Span {
	var out []Span
	for _, s := range spans {
		if n <= 0 {
			break
		}
		if len(s.Text) > n {
			s.Text = s.Text[:n]
		}
		out = appendSpan(out, s)
		n -= len(s.Text)
	}
	return out
}

// renderSpans renders spans from ambient and returns to it.
func renderSpans(p printer, spans []Span, ambient types.State) string {
	var sb strings.Builder
	cur := ambient
	for _, s := range spans {
		sb.WriteString(p(types.Diff(cur, s.State)))
		sb.WriteString(s.Text)
		cur = s.State
	}
	sb.WriteString(p(types.Diff(cur, ambient)))
	return sb.String()
}

func spansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Flatten returns the spans of e rendered from the default state.
func Flatten(e Expr) ([]Span, error) {
	return e.Spans(types.DefaultState())
}

// Plain returns the text of e without any escape.
func Plain(e Expr) (string, error) {
	spans, err := Flatten(e)
	if err != nil {
		return "", err
	}
	return spansText(spans), nil
}
