package exporter

import (
	"errors"
	"testing"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/types"
)

func TestExportANSI(t *testing.T) {
	tests := []struct {
		name     string
		e        expr.Expr
		encoding string
		want     string
	}{
		{
			name:     "plain",
			e:        expr.Text("Hello"),
			encoding: "utf8",
			want:     "Hello",
		},
		{
			name:     "foreground",
			e:        expr.Styled("Hello", types.Override{Fg: catalog.Red}),
			encoding: "utf8",
			want:     "\x1b[31mHello\x1b[39m",
		},
		{
			name:     "default encoding",
			e:        expr.Styled("Hi", types.Override{Attrs: []catalog.Attr{catalog.Bold}}),
			encoding: "",
			want:     "\x1b[1mHi\x1b[21m",
		},
		{
			name:     "cp437",
			e:        expr.Styled("é", types.Override{Fg: catalog.Red}),
			encoding: "cp437",
			want:     "\x1b[31m\x82\x1b[39m",
		},
		{
			name:     "iso-8859-1",
			e:        expr.Text("é"),
			encoding: "iso-8859-1",
			want:     "\xe9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExportANSI(tt.e, tt.encoding)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExportANSIErrors(t *testing.T) {
	if _, err := ExportANSI(expr.Text("Hello"), "ebcdic"); err == nil {
		t.Error("expected error for unsupported encoding")
	}

	bad := expr.Interpolate("%s %s", "only one")
	if _, err := ExportANSI(bad, "utf8"); !errors.Is(err, expr.ErrFormatMismatch) {
		t.Errorf("expected ErrFormatMismatch, got %v", err)
	}
}

func TestExportDebug(t *testing.T) {
	e := expr.Join(
		expr.Styled("Hi", types.Override{Fg: catalog.Red}),
		" ",
		expr.Styled("there", types.Override{Attrs: []catalog.Attr{catalog.Underline}}),
	)

	got, err := ExportDebug(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "{fg.red}Hi{fg.default} {attr.underline}there{attr.ununderline}"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestConvertEncodingRoundTrip(t *testing.T) {
	input := []byte("\x1b[31mcafé ░▒▓\x1b[39m")

	encoded, err := ConvertToEncoding(input, "cp437")
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	decoded, err := ConvertToUTF8(encoded, "cp437")
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if string(decoded) != string(input) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded, input)
	}
}

func TestConvertToUTF8StripsBOM(t *testing.T) {
	got, err := ConvertToUTF8([]byte("\xef\xbb\xbfHello"), "utf8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", got)
	}
}
