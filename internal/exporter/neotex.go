package exporter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/types"
)

// NeotexVersion is the current version of the neotex format
const NeotexVersion = 1

// Neotex colour codes indexed by catalog colour slot (0-7).
// Lowercase is the normal colour, uppercase the bold (bright) one.
var neotexFgColors = []string{
	"Fk", "Fr", "Fg", "Fy", "Fb", "Fm", "Fc", "Fw",
	"FK", "FR", "FG", "FY", "FB", "FM", "FC", "FW",
}

var neotexBgColors = []string{
	"Bk", "Br", "Bg", "By", "Bb", "Bm", "Bc", "Bw",
}

// neotexEffects lists the attributes neotex can express, bold excepted since
// it is carried by the colour case. Conceal and strike have no neotex code.
var neotexEffects = []struct {
	attr catalog.Attr
	code string
}{
	{catalog.Faint, "EM"},
	{catalog.Italic, "EI"},
	{catalog.Underline, "EU"},
	{catalog.Blink, "EB"},
	{catalog.Reverse, "ER"},
}

func fgColorToNeotex(s types.State) []string {
	idx := s.Fg.Index()
	if s.Fg == catalog.Default || idx < 0 {
		return nil
	}
	if s.Attrs.Has(catalog.Bold) {
		idx += 8
	}
	return []string{neotexFgColors[idx]}
}

func bgColorToNeotex(s types.State) []string {
	idx := s.Bg.Index()
	if s.Bg == catalog.Default || idx < 0 {
		return nil
	}
	return []string{neotexBgColors[idx]}
}

// StateToNeotex converts a style state to neotex codes.
func StateToNeotex(s types.State) []string {
	codes := []string{}
	codes = append(codes, fgColorToNeotex(s)...)
	codes = append(codes, bgColorToNeotex(s)...)
	for _, e := range neotexEffects {
		if s.Attrs.Has(e.attr) {
			codes = append(codes, e.code)
		}
	}
	return codes
}

// DiffStateToNeotex generates minimal neotex codes to move from previous to
// current. Neotex has no "off" codes, so any effect or colour being switched
// off is encoded as R0 followed by the full current state.
func DiffStateToNeotex(current types.State, previous *types.State) []string {
	if previous == nil {
		return StateToNeotex(current)
	}
	if current.Equals(*previous) {
		return nil
	}
	if current.Equals(types.DefaultState()) {
		return []string{"R0"}
	}

	needsReset := false
	if previous.Fg != catalog.Default && current.Fg == catalog.Default {
		needsReset = true
	}
	if previous.Bg != catalog.Default && current.Bg == catalog.Default {
		needsReset = true
	}
	if previous.Attrs.Has(catalog.Bold) && !current.Attrs.Has(catalog.Bold) {
		needsReset = true
	}
	for _, e := range neotexEffects {
		if previous.Attrs.Has(e.attr) && !current.Attrs.Has(e.attr) {
			needsReset = true
		}
	}

	if needsReset {
		return append([]string{"R0"}, StateToNeotex(current)...)
	}

	var codes []string
	for _, e := range neotexEffects {
		if current.Attrs.Has(e.attr) && !previous.Attrs.Has(e.attr) {
			codes = append(codes, e.code)
		}
	}

	boldChanged := current.Attrs.Has(catalog.Bold) != previous.Attrs.Has(catalog.Bold)
	if current.Fg != previous.Fg || boldChanged {
		codes = append(codes, fgColorToNeotex(current)...)
	}
	if current.Bg != previous.Bg {
		codes = append(codes, bgColorToNeotex(current)...)
	}

	return codes
}

type neotexLine struct {
	text    strings.Builder
	changes []neotexChange
}

type neotexChange struct {
	pos   int
	state types.State
}

// splitLines cuts spans on newlines and records, per line, the rune
// position at which each style starts.
func splitLines(spans []expr.Span) []*neotexLine {
	line := &neotexLine{}
	lines := []*neotexLine{line}
	var last *types.State

	for _, s := range spans {
		parts := strings.Split(s.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				line = &neotexLine{}
				lines = append(lines, line)
			}
			if part == "" {
				continue
			}
			if last == nil || *last != s.State {
				state := s.State
				line.changes = append(line.changes, neotexChange{pos: utf8.RuneCountInString(line.text.String()), state: state})
				last = &state
			}
			line.text.WriteString(part)
		}
	}
	return lines
}

// ExportNeotex exports e as neotex: the plain text and, per line, the
// positioned style changes using differential encoding.
func ExportNeotex(e expr.Expr) (string, string, error) {
	spans, err := expr.Flatten(e)
	if err != nil {
		return "", "", fmt.Errorf("error flattening expression: %w", err)
	}

	lines := splitLines(spans)

	textWidth := 0
	for _, line := range lines {
		if w := utf8.RuneCountInString(line.text.String()); w > textWidth {
			textWidth = w
		}
	}

	var textBuilder strings.Builder
	var seqBuilder strings.Builder
	var previous *types.State

	for lineIdx, line := range lines {
		textBuilder.WriteString(line.text.String())

		var lineSeqs []string
		if lineIdx == 0 {
			lineSeqs = append(lineSeqs, fmt.Sprintf("!V%d", NeotexVersion))
			lineSeqs = append(lineSeqs, fmt.Sprintf("!TW%d/%d", textWidth, textWidth))
			lineSeqs = append(lineSeqs, fmt.Sprintf("!NL%d", len(lines)))
		}

		for _, change := range line.changes {
			codes := DiffStateToNeotex(change.state, previous)
			if len(codes) > 0 {
				// positions are 1-indexed for editor compatibility
				lineSeqs = append(lineSeqs, fmt.Sprintf("%d:%s", change.pos+1, strings.Join(codes, ", ")))
			}
			state := change.state
			previous = &state
		}

		seqBuilder.WriteString(strings.Join(lineSeqs, "; "))

		if lineIdx < len(lines)-1 {
			textBuilder.WriteString("\n")
			seqBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), seqBuilder.String(), nil
}
