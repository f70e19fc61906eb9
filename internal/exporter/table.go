package exporter

import (
	"fmt"
	"io"

	"github.com/badele/aformat/internal/catalog"
)

const sampleText = "sample"

// ExportCatalogTable writes the catalog entries of the given namespaces, or
// of every namespace when none is given, as a table. When sample is true the
// last column shows a word rendered with the entry's sequence.
func ExportCatalogTable(writer io.Writer, sample bool, namespaces ...catalog.Namespace) error {
	if len(namespaces) == 0 {
		namespaces = catalog.Namespaces()
	}

	fmt.Fprintln(writer, "┌──────┬────────────────────┬──────┬──────────┬──────────────┐")
	fmt.Fprintf(writer, "│ %-4s │ %-18s │ %-4s │ %-8s │ %-12s │\n", "NS", "Label", "Code", "Raw", "Sample")
	fmt.Fprintln(writer, "├──────┼────────────────────┼──────┼──────────┼──────────────┤")

	for _, ns := range namespaces {
		for _, e := range catalog.Entries(ns) {
			// padded before the escapes are added
			text := fmt.Sprintf("%-12s", sampleText)
			if sample {
				text = e.Seq + sampleText + catalog.Sequence(0) + text[len(sampleText):]
			}
			fmt.Fprintf(writer, "│ %-4s │ %-18s │ %4d │ %-8s │ %s │\n",
				ns, e.GoString(), e.Code, truncate(e.Seq, 8), text)
		}
	}

	fmt.Fprintln(writer, "└──────┴────────────────────┴──────┴──────────┴──────────────┘")

	return nil
}

func truncate(s string, maxLen int) string {
	s = fmt.Sprintf("%q", s)

	// Remove quote added by %q
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
