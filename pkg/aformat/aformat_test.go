package aformat

import (
	"errors"
	"testing"
)

func TestNestedRestoration(t *testing.T) {
	you, err := Format("You", "red", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, err := Format(Interpolate("Hello, Are %s Well", you), "blue", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Render(line)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\x1b[34mHello, Are \x1b[31mYou\x1b[34m Well\x1b[39m"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStyledConstants(t *testing.T) {
	e := Styled("x", Override{Fg: Green, Attrs: []Attr{Italic}})
	got, err := Render(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "\x1b[32m\x1b[3mx\x1b[39m\x1b[23m"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLookup(t *testing.T) {
	e, err := Lookup("attr", "strike")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Seq != "\x1b[9m" {
		t.Fatalf("expected strike sequence, got %q", e.Seq)
	}

	if _, err := Lookup("fg", "orange"); !errors.Is(err, ErrUnknownLabel) {
		t.Fatalf("expected ErrUnknownLabel, got %v", err)
	}
	if _, err := Lookup("ink", "red"); err == nil {
		t.Fatal("expected error for unknown namespace")
	}
}

func TestDiffFromDefault(t *testing.T) {
	to := DefaultState()
	to.Fg = Magenta

	escapes := Diff(DefaultState(), to)
	if len(escapes) != 1 || escapes[0].Code != 35 {
		t.Fatalf("expected a single fg.magenta escape, got %v", escapes)
	}
}

func TestDefaultThemeApply(t *testing.T) {
	e, err := DefaultTheme().Apply("success", "ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := Plain(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ok" {
		t.Fatalf("expected %q, got %q", "ok", text)
	}
}
