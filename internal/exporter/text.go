package exporter

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/badele/aformat/internal/expr"
)

// ExportText exports the visible text of e without any escape sequence.
func ExportText(e expr.Expr, outputEncoding string) (string, error) {
	s, err := expr.Plain(e)
	if err != nil {
		return "", fmt.Errorf("error flattening expression: %w", err)
	}
	return encode(s, outputEncoding)
}

// Width returns the display width of the widest line of e.
func Width(e expr.Expr) (int, error) {
	s, err := expr.Plain(e)
	if err != nil {
		return 0, fmt.Errorf("error flattening expression: %w", err)
	}

	width := 0
	for _, line := range strings.Split(s, "\n") {
		if w := runewidth.StringWidth(line); w > width {
			width = w
		}
	}
	return width, nil
}
