package catalog

import "fmt"

/////////////////////////////////////////////////////////////////////////////
// COLOR
/////////////////////////////////////////////////////////////////////////////

// Color is a label of the fg and bg namespaces. The zero value NoColor means
// "not specified" and has no escape sequence.
type Color uint8

const (
	NoColor Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	Default
)

const (
	fgOffset = 30
	bgOffset = 40
)

var colorLabels = [...]string{"", "black", "red", "green", "yellow", "blue", "magenta", "cyan", "white", "default"}

// Slot 8 (SGR 38/48) is the extended colour introducer, not a label.
var colorSlots = [...]int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 9}

// Colors returns the defined colours in SGR order.
func Colors() []Color {
	return []Color{Black, Red, Green, Yellow, Blue, Magenta, Cyan, White, Default}
}

func (c Color) Valid() bool {
	return c > NoColor && int(c) < len(colorLabels)
}

func (c Color) String() string {
	if !c.Valid() {
		if c == NoColor {
			return "none"
		}
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorLabels[c]
}

// Index is the colour's slot in the 0-9 SGR colour range.
func (c Color) Index() int {
	if !c.Valid() {
		return -1
	}
	return colorSlots[c]
}

// Fg returns the foreground escape for c, or the zero Escape for NoColor.
func (c Color) Fg() Escape {
	if !c.Valid() {
		return Escape{}
	}
	return newEscape(NamespaceFg, c.String(), fgOffset+c.Index())
}

// Bg returns the background escape for c.
func (c Color) Bg() Escape {
	if !c.Valid() {
		return Escape{}
	}
	return newEscape(NamespaceBg, c.String(), bgOffset+c.Index())
}

// Escape returns the escape of c on the given colour axis.
func (c Color) Escape(ns Namespace) Escape {
	if ns == NamespaceBg {
		return c.Bg()
	}
	return c.Fg()
}

// ParseColor resolves a colour label.
func ParseColor(label string) (Color, error) {
	for _, c := range Colors() {
		if colorLabels[c] == label {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("%w: color %q", ErrUnknownLabel, label)
}

/////////////////////////////////////////////////////////////////////////////
// ATTRIBUTE
/////////////////////////////////////////////////////////////////////////////

// Attr is a label of the attr namespace. The first eight values switch an
// attribute on, the last eight are their "un" counterparts in the same order.
type Attr uint8

const (
	Bold Attr = iota
	Faint
	Italic
	Underline
	Blink
	Reverse
	Conceal
	Strike
	Unbold
	Unfaint
	Unitalic
	Ununderline
	Unblink
	Unreverse
	Unconceal
	Unstrike

	attrCount
)

const (
	attrHalf     = attrCount / 2
	unattrOffset = 20
)

var attrLabels = [attrHalf]string{"bold", "faint", "italic", "underline", "blink", "reverse", "conceal", "strike"}

// Slots 0 and 6 carry no label.
var attrSlots = [attrHalf]int{1, 2, 3, 4, 5, 7, 8, 9}

// Attrs returns every attribute label, plain ones first.
func Attrs() []Attr {
	attrs := make([]Attr, 0, attrCount)
	for a := Attr(0); a < attrCount; a++ {
		attrs = append(attrs, a)
	}
	return attrs
}

func (a Attr) Valid() bool {
	return a < attrCount
}

// IsInverse reports whether a is one of the "un" labels.
func (a Attr) IsInverse() bool {
	return a >= attrHalf && a < attrCount
}

// Inverse returns the paired label: bold <-> unbold.
func (a Attr) Inverse() Attr {
	if a.IsInverse() {
		return a - attrHalf
	}
	return a + attrHalf
}

func (a Attr) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attr(%d)", uint8(a))
	}
	if a.IsInverse() {
		return "un" + attrLabels[a-attrHalf]
	}
	return attrLabels[a]
}

// Code is the SGR parameter of a, -1 when a is not a label.
func (a Attr) Code() int {
	if !a.Valid() {
		return -1
	}
	if a.IsInverse() {
		return unattrOffset + attrSlots[a-attrHalf]
	}
	return attrSlots[a]
}

func (a Attr) Escape() Escape {
	if !a.Valid() {
		return Escape{}
	}
	return newEscape(NamespaceAttr, a.String(), a.Code())
}

// ParseAttr resolves an attribute label, "un" forms included.
func ParseAttr(label string) (Attr, error) {
	for _, a := range Attrs() {
		if a.String() == label {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: attr %q", ErrUnknownLabel, label)
}

/////////////////////////////////////////////////////////////////////////////
// CONTROL
/////////////////////////////////////////////////////////////////////////////

type Control uint8

const (
	Reset Control = iota
)

var controlLabels = [...]string{"reset"}
var controlCodes = [...]int{0}

func Controls() []Control {
	return []Control{Reset}
}

func (c Control) Valid() bool {
	return int(c) < len(controlLabels)
}

func (c Control) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Control(%d)", uint8(c))
	}
	return controlLabels[c]
}

func (c Control) Escape() Escape {
	if !c.Valid() {
		return Escape{}
	}
	return newEscape(NamespaceCtl, c.String(), controlCodes[c])
}
