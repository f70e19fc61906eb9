package types

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/badele/aformat/internal/catalog"
)

func debugForms(escapes []catalog.Escape) []string {
	forms := []string{}
	for _, e := range escapes {
		forms = append(forms, e.GoString())
	}
	return forms
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		current  State
		override Override
		want     State
	}{
		{
			name:     "fg replaces fg",
			current:  State{Fg: catalog.Red, Bg: catalog.Default},
			override: Override{Fg: catalog.Blue},
			want:     State{Fg: catalog.Blue, Bg: catalog.Default},
		},
		{
			name:     "bg keeps fg",
			current:  State{Fg: catalog.Red, Bg: catalog.Default},
			override: Override{Bg: catalog.Blue},
			want:     State{Fg: catalog.Red, Bg: catalog.Blue},
		},
		{
			name:     "inverse cancels",
			current:  State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)},
			override: Override{Attrs: []catalog.Attr{catalog.Unbold}},
			want:     DefaultState(),
		},
		{
			name:     "unrelated inverse is kept",
			current:  State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)},
			override: Override{Attrs: []catalog.Attr{catalog.Unitalic}},
			want:     State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold, catalog.Unitalic)},
		},
		{
			name:     "toggles in order",
			current:  DefaultState(),
			override: Override{Attrs: []catalog.Attr{catalog.Bold, catalog.Unbold}},
			want:     DefaultState(),
		},
		{
			name:     "empty override",
			current:  State{Fg: catalog.Cyan, Bg: catalog.Black, Attrs: NewAttrSet(catalog.Strike)},
			override: Override{},
			want:     State{Fg: catalog.Cyan, Bg: catalog.Black, Attrs: NewAttrSet(catalog.Strike)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.current, tt.override)
			if !got.Equals(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMergeDoesNotMutate(t *testing.T) {
	current := State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)}
	before := current

	Merge(current, Override{Fg: catalog.Red, Attrs: []catalog.Attr{catalog.Unbold, catalog.Italic}})

	if current != before {
		t.Fatalf("current state changed from %s to %s", before, current)
	}
}

func TestAttributeCancellation(t *testing.T) {
	for _, s := range sampleStates() {
		once := Merge(s, Override{Attrs: []catalog.Attr{catalog.Bold}})
		twice := Merge(once, Override{Attrs: []catalog.Attr{catalog.Unbold}})

		// an already active bold is switched off by unbold
		want := s.Attrs.Without(catalog.Bold)
		if s.Attrs.Has(catalog.Unbold) {
			want = s.Attrs
		}
		if twice.Attrs != want {
			t.Errorf("%s: bold then unbold gave %s, want %s", s, twice.Attrs, want)
		}
	}

	s := DefaultState()
	got := Merge(Merge(s, Override{Attrs: []catalog.Attr{catalog.Bold}}), Override{Attrs: []catalog.Attr{catalog.Unbold}})
	if got.Attrs != s.Attrs {
		t.Errorf("expected %s, got %s", s.Attrs, got.Attrs)
	}
}

func TestIndependentAttributesAccumulate(t *testing.T) {
	s := State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Underline)}
	got := Merge(Merge(s, Override{Attrs: []catalog.Attr{catalog.Bold}}), Override{Attrs: []catalog.Attr{catalog.Italic}})

	want := NewAttrSet(catalog.Underline, catalog.Bold, catalog.Italic)
	if got.Attrs != want {
		t.Errorf("expected %s, got %s", want, got.Attrs)
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want []string
	}{
		{
			name: "fg back to default",
			from: State{Fg: catalog.Blue, Bg: catalog.Default},
			to:   State{Fg: catalog.Default, Bg: catalog.Default},
			want: []string{"{fg.default}"},
		},
		{
			name: "bg only",
			from: State{Fg: catalog.Blue, Bg: catalog.Yellow},
			to:   State{Fg: catalog.Blue, Bg: catalog.Default},
			want: []string{"{bg.default}"},
		},
		{
			name: "fg only while bg stays",
			from: State{Fg: catalog.Blue, Bg: catalog.Yellow},
			to:   State{Fg: catalog.Default, Bg: catalog.Yellow},
			want: []string{"{fg.default}"},
		},
		{
			name: "turn on before turn off",
			from: State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)},
			to:   State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Italic)},
			want: []string{"{attr.italic}", "{attr.unbold}"},
		},
		{
			name: "colours before attributes",
			from: DefaultState(),
			to:   State{Fg: catalog.Red, Bg: catalog.White, Attrs: NewAttrSet(catalog.Strike, catalog.Bold)},
			want: []string{"{fg.red}", "{bg.white}", "{attr.bold}", "{attr.strike}"},
		},
		{
			name: "switching off an inverse label",
			from: State{Fg: catalog.Default, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Unitalic)},
			to:   DefaultState(),
			want: []string{"{attr.italic}"},
		},
		{
			name: "equal states",
			from: State{Fg: catalog.Red, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)},
			to:   State{Fg: catalog.Red, Bg: catalog.Default, Attrs: NewAttrSet(catalog.Bold)},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := debugForms(Diff(tt.from, tt.to))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffToANSI(t *testing.T) {
	got := DiffToANSI(DefaultState(), State{Fg: catalog.Red, Bg: catalog.Default})
	if got != "\x1b[31m" {
		t.Errorf("expected %q, got %q", "\x1b[31m", got)
	}
}

func TestDiffNoOp(t *testing.T) {
	for _, s := range sampleStates() {
		if got := Diff(s, s); len(got) != 0 {
			t.Errorf("Diff(%s, %s) = %v, want empty", s, s, debugForms(got))
		}
	}
}

func TestDiffRestoresState(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, s := range sampleStates() {
		for i := 0; i < 20; i++ {
			o := randomOverride(rng)
			merged := Merge(s, o)

			if got := Apply(s, Diff(s, merged)); got != merged {
				t.Fatalf("entering %s from %s reached %s", o, s, got)
			}
			if got := Apply(merged, Diff(merged, s)); got != s {
				t.Fatalf("leaving %s back to %s reached %s", o, s, got)
			}
		}
	}
}

func TestMergeKeepsInverseInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, s := range sampleStates() {
		for i := 0; i < 20; i++ {
			got := Merge(s, randomOverride(rng))
			for _, a := range got.Attrs.Attrs() {
				if got.Attrs.Has(a.Inverse()) {
					t.Fatalf("%s holds both %s and %s", got, a, a.Inverse())
				}
			}
		}
	}
}

func TestApplyReset(t *testing.T) {
	s := State{Fg: catalog.Red, Bg: catalog.Blue, Attrs: NewAttrSet(catalog.Bold)}
	if got := Apply(s, []catalog.Escape{catalog.Reset.Escape()}); got != DefaultState() {
		t.Errorf("expected default state, got %s", got)
	}
}

func TestParseOverride(t *testing.T) {
	o, err := ParseOverride("red", "", "bold", "unitalic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Override{Fg: catalog.Red, Attrs: []catalog.Attr{catalog.Bold, catalog.Unitalic}}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("override mismatch (-want +got):\n%s", diff)
	}
	if o.String() != "fg:red, attrs:[bold,unitalic]" {
		t.Errorf("unexpected String(): %q", o.String())
	}

	for _, tc := range [][3]string{{"pink", "", ""}, {"", "bold", ""}, {"", "", "red"}} {
		var attrs []string
		if tc[2] != "" {
			attrs = append(attrs, tc[2])
		}
		if _, err := ParseOverride(tc[0], tc[1], attrs...); err == nil {
			t.Errorf("ParseOverride(%q, %q, %v): expected error", tc[0], tc[1], attrs)
		}
	}
}

func TestOverrideCopy(t *testing.T) {
	o := Override{Attrs: []catalog.Attr{catalog.Bold}}
	c := o.Copy()
	c.Attrs[0] = catalog.Italic
	if o.Attrs[0] != catalog.Bold {
		t.Fatal("Copy shares the attribute slice")
	}
}

func TestAttrSet(t *testing.T) {
	s := NewAttrSet(catalog.Italic, catalog.Bold, catalog.Italic)
	if s.Len() != 2 {
		t.Errorf("expected 2 members, got %d", s.Len())
	}
	if s.String() != "{bold,italic}" {
		t.Errorf("unexpected String(): %q", s.String())
	}
	if s.Without(catalog.Bold).Has(catalog.Bold) {
		t.Error("Without did not remove bold")
	}
	if s.Minus(NewAttrSet(catalog.Bold)) != NewAttrSet(catalog.Italic) {
		t.Error("Minus mismatch")
	}
}

func sampleStates() []State {
	sets := []AttrSet{
		0,
		NewAttrSet(catalog.Bold),
		NewAttrSet(catalog.Unbold),
		NewAttrSet(catalog.Bold, catalog.Italic),
		NewAttrSet(catalog.Underline, catalog.Unblink, catalog.Strike),
		NewAttrSet(catalog.Unfaint, catalog.Unconceal),
	}
	var states []State
	for _, fg := range catalog.Colors() {
		for _, bg := range []catalog.Color{catalog.Default, catalog.Yellow, catalog.Black} {
			for _, attrs := range sets {
				states = append(states, State{Fg: fg, Bg: bg, Attrs: attrs})
			}
		}
	}
	return states
}

func randomOverride(rng *rand.Rand) Override {
	colors := append([]catalog.Color{catalog.NoColor}, catalog.Colors()...)
	attrs := catalog.Attrs()

	o := Override{
		Fg: colors[rng.Intn(len(colors))],
		Bg: colors[rng.Intn(len(colors))],
	}
	for n := rng.Intn(4); n > 0; n-- {
		o.Attrs = append(o.Attrs, attrs[rng.Intn(len(attrs))])
	}
	return o
}
