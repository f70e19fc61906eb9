package exporter

import (
	"fmt"

	"github.com/badele/aformat/internal/expr"
)

// ExportANSI renders e from the default state and encodes the result.
func ExportANSI(e expr.Expr, outputEncoding string) (string, error) {
	s, err := expr.Render(e)
	if err != nil {
		return "", fmt.Errorf("error rendering expression: %w", err)
	}
	return encode(s, outputEncoding)
}

// ExportDebug renders e with every escape written as "{ns.label}".
func ExportDebug(e expr.Expr) (string, error) {
	s, err := expr.Debug(e)
	if err != nil {
		return "", fmt.Errorf("error rendering expression: %w", err)
	}
	return s, nil
}

func encode(s, outputEncoding string) (string, error) {
	out, err := ConvertToEncoding([]byte(s), outputEncoding)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
