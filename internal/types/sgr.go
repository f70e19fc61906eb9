package types

import (
	"fmt"
	"strings"

	"github.com/badele/aformat/internal/catalog"
)

/////////////////////////////////////////////////////////////////////////////
// ATTRIBUTE SET
/////////////////////////////////////////////////////////////////////////////

// AttrSet is an immutable set of attribute labels, "un" labels included.
type AttrSet uint16

func NewAttrSet(attrs ...catalog.Attr) AttrSet {
	var s AttrSet
	for _, a := range attrs {
		s = s.With(a)
	}
	return s
}

func (s AttrSet) Has(a catalog.Attr) bool {
	return a.Valid() && s&(1<<a) != 0
}

func (s AttrSet) With(a catalog.Attr) AttrSet {
	if !a.Valid() {
		return s
	}
	return s | 1<<a
}

func (s AttrSet) Without(a catalog.Attr) AttrSet {
	if !a.Valid() {
		return s
	}
	return s &^ (1 << a)
}

// Minus returns the attributes of s that are not in other.
func (s AttrSet) Minus(other AttrSet) AttrSet {
	return s &^ other
}

func (s AttrSet) Len() int {
	n := 0
	for v := s; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Attrs lists the members in catalog order.
func (s AttrSet) Attrs() []catalog.Attr {
	var attrs []catalog.Attr
	for _, a := range catalog.Attrs() {
		if s.Has(a) {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

func (s AttrSet) String() string {
	var parts []string
	for _, a := range s.Attrs() {
		parts = append(parts, a.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}

/////////////////////////////////////////////////////////////////////////////
// STATE
/////////////////////////////////////////////////////////////////////////////

// State is the ambient style at a point of the output stream.
type State struct {
	Fg    catalog.Color
	Bg    catalog.Color
	Attrs AttrSet
}

// DefaultState is the terminal's state before any escape is written.
func DefaultState() State {
	return State{Fg: catalog.Default, Bg: catalog.Default}
}

func (s State) Equals(other State) bool {
	return s == other
}

func (s State) String() string {
	return fmt.Sprintf("fg:%s, bg:%s, attrs:%s", s.Fg, s.Bg, s.Attrs)
}

/////////////////////////////////////////////////////////////////////////////
// OVERRIDE
/////////////////////////////////////////////////////////////////////////////

// Override is a partial style attached to an expression node. NoColor leaves
// an axis untouched; Attrs is an ordered list of toggles.
type Override struct {
	Fg    catalog.Color
	Bg    catalog.Color
	Attrs []catalog.Attr
}

// ParseOverride builds an Override from catalog labels. Empty colour labels
// leave the axis unset.
func ParseOverride(fg, bg string, attrs ...string) (Override, error) {
	var o Override
	var err error

	if fg != "" {
		if o.Fg, err = catalog.ParseColor(fg); err != nil {
			return Override{}, fmt.Errorf("fg: %w", err)
		}
	}
	if bg != "" {
		if o.Bg, err = catalog.ParseColor(bg); err != nil {
			return Override{}, fmt.Errorf("bg: %w", err)
		}
	}
	for _, label := range attrs {
		a, err := catalog.ParseAttr(label)
		if err != nil {
			return Override{}, fmt.Errorf("attrs: %w", err)
		}
		o.Attrs = append(o.Attrs, a)
	}

	return o, nil
}

func (o Override) IsZero() bool {
	return o.Fg == catalog.NoColor && o.Bg == catalog.NoColor && len(o.Attrs) == 0
}

// Copy returns an Override that shares no memory with o.
func (o Override) Copy() Override {
	c := o
	if o.Attrs != nil {
		c.Attrs = append([]catalog.Attr(nil), o.Attrs...)
	}
	return c
}

func (o Override) String() string {
	var parts []string
	if o.Fg != catalog.NoColor {
		parts = append(parts, "fg:"+o.Fg.String())
	}
	if o.Bg != catalog.NoColor {
		parts = append(parts, "bg:"+o.Bg.String())
	}
	if len(o.Attrs) > 0 {
		labels := make([]string, len(o.Attrs))
		for i, a := range o.Attrs {
			labels[i] = a.String()
		}
		parts = append(parts, "attrs:["+strings.Join(labels, ",")+"]")
	}
	return strings.Join(parts, ", ")
}

/////////////////////////////////////////////////////////////////////////////
// MERGE
/////////////////////////////////////////////////////////////////////////////

// Merge applies an override on top of the current state. Colours replace the
// current axis; each attribute either cancels its active inverse or is added.
func Merge(current State, o Override) State {
	next := current

	for _, a := range o.Attrs {
		if inv := a.Inverse(); next.Attrs.Has(inv) {
			next.Attrs = next.Attrs.Without(inv)
		} else {
			next.Attrs = next.Attrs.With(a)
		}
	}

	if o.Fg != catalog.NoColor {
		next.Fg = o.Fg
	}
	if o.Bg != catalog.NoColor {
		next.Bg = o.Bg
	}

	return next
}

/////////////////////////////////////////////////////////////////////////////
// DIFFERENTIAL SGR ENCODING
/////////////////////////////////////////////////////////////////////////////

// Diff returns the escapes that move the terminal from previous to current:
// colour changes (fg then bg), attributes switched on, then attributes
// switched off through their inverse label. Equal states need no escape.
func Diff(previous, current State) []catalog.Escape {
	if previous.Equals(current) {
		return nil
	}

	var escapes []catalog.Escape

	if previous.Fg != current.Fg {
		escapes = append(escapes, current.Fg.Fg())
	}
	if previous.Bg != current.Bg {
		escapes = append(escapes, current.Bg.Bg())
	}

	for _, a := range current.Attrs.Minus(previous.Attrs).Attrs() {
		escapes = append(escapes, a.Escape())
	}
	for _, a := range previous.Attrs.Minus(current.Attrs).Attrs() {
		escapes = append(escapes, a.Inverse().Escape())
	}

	return escapes
}

// DiffToANSI joins the raw sequences of Diff.
func DiffToANSI(previous, current State) string {
	return JoinEscapes(Diff(previous, current))
}

// JoinEscapes concatenates raw sequences.
func JoinEscapes(escapes []catalog.Escape) string {
	var sb strings.Builder
	for _, e := range escapes {
		sb.WriteString(e.Seq)
	}
	return sb.String()
}

// Apply plays escapes onto a state the way a terminal would. Attribute
// escapes follow the same toggle rule as Merge; reset returns to the default.
func Apply(s State, escapes []catalog.Escape) State {
	for _, e := range escapes {
		switch e.Namespace {
		case catalog.NamespaceFg:
			if c, err := catalog.ParseColor(e.Label); err == nil {
				s.Fg = c
			}
		case catalog.NamespaceBg:
			if c, err := catalog.ParseColor(e.Label); err == nil {
				s.Bg = c
			}
		case catalog.NamespaceAttr:
			if a, err := catalog.ParseAttr(e.Label); err == nil {
				s = Merge(s, Override{Attrs: []catalog.Attr{a}})
			}
		case catalog.NamespaceCtl:
			s = DefaultState()
		}
	}
	return s
}
