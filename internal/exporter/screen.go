package exporter

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/expr"
	"github.com/badele/aformat/internal/types"
)

var tcellColors = map[catalog.Color]tcell.Color{
	catalog.Black:   tcell.ColorBlack,
	catalog.Red:     tcell.ColorMaroon,
	catalog.Green:   tcell.ColorGreen,
	catalog.Yellow:  tcell.ColorOlive,
	catalog.Blue:    tcell.ColorNavy,
	catalog.Magenta: tcell.ColorPurple,
	catalog.Cyan:    tcell.ColorTeal,
	catalog.White:   tcell.ColorSilver,
	catalog.Default: tcell.ColorDefault,
}

func tcellColor(c catalog.Color) tcell.Color {
	if tc, ok := tcellColors[c]; ok {
		return tc
	}
	return tcell.ColorDefault
}

// StateToStyle converts a style state to a tcell style. "un" labels are the
// absence of an attribute. Conceal has no tcell counterpart and is handled by
// DrawScreen.
func StateToStyle(s types.State) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(s.Fg)).
		Background(tcellColor(s.Bg)).
		Bold(s.Attrs.Has(catalog.Bold)).
		Dim(s.Attrs.Has(catalog.Faint)).
		Italic(s.Attrs.Has(catalog.Italic)).
		Underline(s.Attrs.Has(catalog.Underline)).
		Blink(s.Attrs.Has(catalog.Blink)).
		Reverse(s.Attrs.Has(catalog.Reverse)).
		StrikeThrough(s.Attrs.Has(catalog.Strike))
}

// DrawScreen draws e on screen starting at column x of row y. Newlines
// start a new row at column x; text beyond the screen is clipped. Concealed
// text is drawn as blanks. It returns the number of rows used.
func DrawScreen(screen tcell.Screen, x, y int, e expr.Expr) (int, error) {
	spans, err := expr.Flatten(e)
	if err != nil {
		return 0, fmt.Errorf("error flattening expression: %w", err)
	}

	width, height := screen.Size()
	col, row := x, y

	// last drawn cell, combining runes attach to it
	lastX, lastMain := -1, rune(0)
	var lastComb []rune

	for _, s := range spans {
		style := StateToStyle(s.State)
		concealed := s.State.Attrs.Has(catalog.Conceal)

		for _, r := range s.Text {
			if r == '\n' {
				col = x
				row++
				lastX = -1
				continue
			}
			if row < 0 || row >= height {
				continue
			}
			if concealed {
				r = ' '
			}

			w := runewidth.RuneWidth(r)
			if w == 0 {
				if lastX >= 0 {
					lastComb = append(lastComb, r)
					screen.SetContent(lastX, row, lastMain, lastComb, style)
				}
				continue
			}
			if col >= 0 && col+w <= width {
				screen.SetContent(col, row, r, nil, style)
				lastX, lastMain, lastComb = col, r, nil
			} else {
				lastX = -1
			}
			col += w
		}
	}

	return row - y + 1, nil
}
