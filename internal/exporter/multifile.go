package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/badele/aformat/internal/expr"
)

// ExportToMultipleFile writes the neotex form of e next to basePath:
//   - .ant : plain text content
//   - .anc : plain sequence content
//
// It returns the two paths written.
func ExportToMultipleFile(basePath string, e expr.Expr) (string, string, error) {
	text, sequences, err := ExportNeotex(e)
	if err != nil {
		return "", "", err
	}

	basePath = strings.TrimSuffix(basePath, filepath.Ext(basePath))
	antPath := basePath + ".ant"
	ancPath := basePath + ".anc"

	if err := os.WriteFile(antPath, []byte(text), 0o644); err != nil {
		return "", "", fmt.Errorf("error writing %s: %w", antPath, err)
	}
	if err := os.WriteFile(ancPath, []byte(sequences), 0o644); err != nil {
		return "", "", fmt.Errorf("error writing %s: %w", ancPath, err)
	}

	return antPath, ancPath, nil
}
