// Package catalog holds the static table of SGR escape sequences used by the
// renderer: colours for the fg and bg namespaces, text attributes with their
// "un" inverses, and the reset control code.
//
// Tables are built once at package initialisation and never modified.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrUnknownLabel is returned when a label has no entry in a namespace.
var ErrUnknownLabel = errors.New("unknown label")

const (
	csi = "\x1b["
	sgr = "m"
)

// Sequence builds the raw SGR escape sequence for a code.
func Sequence(code int) string {
	return csi + strconv.Itoa(code) + sgr
}

/////////////////////////////////////////////////////////////////////////////
// NAMESPACE
/////////////////////////////////////////////////////////////////////////////

type Namespace int

const (
	NamespaceFg Namespace = iota
	NamespaceBg
	NamespaceAttr
	NamespaceCtl
)

var namespaceNames = [...]string{"fg", "bg", "attr", "ctl"}

func (n Namespace) String() string {
	if n < 0 || int(n) >= len(namespaceNames) {
		return fmt.Sprintf("Namespace(%d)", int(n))
	}
	return namespaceNames[n]
}

// Namespaces returns every namespace in catalog order.
func Namespaces() []Namespace {
	return []Namespace{NamespaceFg, NamespaceBg, NamespaceAttr, NamespaceCtl}
}

// ParseNamespace resolves "fg", "bg", "attr" or "ctl".
func ParseNamespace(s string) (Namespace, error) {
	for i, name := range namespaceNames {
		if name == s {
			return Namespace(i), nil
		}
	}
	return 0, fmt.Errorf("unknown namespace: %q", s)
}

/////////////////////////////////////////////////////////////////////////////
// ESCAPE
/////////////////////////////////////////////////////////////////////////////

// Escape is one catalog entry. String returns the raw sequence, GoString the
// self-describing "{fg.red}" form used for debugging and documentation.
type Escape struct {
	Namespace Namespace
	Label     string
	Code      int
	Seq       string
}

func (e Escape) String() string {
	return e.Seq
}

func (e Escape) GoString() string {
	return "{" + e.Namespace.String() + "." + e.Label + "}"
}

// Inverse returns the paired "un" escape of an attribute entry.
func (e Escape) Inverse() (Escape, bool) {
	if e.Namespace != NamespaceAttr {
		return Escape{}, false
	}
	a, err := ParseAttr(e.Label)
	if err != nil {
		return Escape{}, false
	}
	return a.Inverse().Escape(), true
}

func newEscape(ns Namespace, label string, code int) Escape {
	return Escape{Namespace: ns, Label: label, Code: code, Seq: Sequence(code)}
}

/////////////////////////////////////////////////////////////////////////////
// TABLES
/////////////////////////////////////////////////////////////////////////////

var (
	byLabel [len(namespaceNames)]map[string]Escape
	bySeq   map[string]Escape
)

func init() {
	for i := range byLabel {
		byLabel[i] = make(map[string]Escape)
	}
	bySeq = make(map[string]Escape)

	add := func(e Escape) {
		byLabel[e.Namespace][e.Label] = e
		bySeq[e.Seq] = e
	}

	for _, c := range Colors() {
		add(c.Fg())
		add(c.Bg())
	}
	for _, a := range Attrs() {
		add(a.Escape())
	}
	for _, c := range Controls() {
		add(c.Escape())
	}
}

// Lookup returns the escape registered under label in namespace ns.
func Lookup(ns Namespace, label string) (Escape, error) {
	if ns < 0 || int(ns) >= len(byLabel) {
		return Escape{}, fmt.Errorf("%w: %s.%s", ErrUnknownLabel, ns, label)
	}
	e, ok := byLabel[ns][label]
	if !ok {
		return Escape{}, fmt.Errorf("%w: %s.%s", ErrUnknownLabel, ns, label)
	}
	return e, nil
}

// ReverseLookup finds the catalog entry for a raw sequence.
func ReverseLookup(seq string) (Escape, bool) {
	e, ok := bySeq[seq]
	return e, ok
}

// Labels returns the sorted labels of a namespace.
func Labels(ns Namespace) []string {
	if ns < 0 || int(ns) >= len(byLabel) {
		return nil
	}
	labels := make([]string, 0, len(byLabel[ns]))
	for label := range byLabel[ns] {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Entries returns every escape of a namespace ordered by SGR code.
func Entries(ns Namespace) []Escape {
	if ns < 0 || int(ns) >= len(byLabel) {
		return nil
	}
	entries := make([]Escape, 0, len(byLabel[ns]))
	for _, e := range byLabel[ns] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}
