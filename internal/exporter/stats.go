package exporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/badele/aformat/internal/catalog"
	"github.com/badele/aformat/internal/expr"
)

// Stats describes the output of a rendered expression.
type Stats struct {
	Bytes   int
	Width   int
	Lines   int
	Spans   int
	Escapes map[string]int
}

// TotalEscapes returns the number of escape sequences in the output.
func (s Stats) TotalEscapes() int {
	total := 0
	for _, n := range s.Escapes {
		total += n
	}
	return total
}

// CollectStats renders e and counts the SGR sequences of the output. Known
// sequences are keyed by their "{ns.label}" form, others by their raw text.
func CollectStats(e expr.Expr) (Stats, error) {
	out, err := expr.Render(e)
	if err != nil {
		return Stats{}, fmt.Errorf("error rendering expression: %w", err)
	}
	spans, err := expr.Flatten(e)
	if err != nil {
		return Stats{}, fmt.Errorf("error flattening expression: %w", err)
	}
	width, err := Width(e)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Bytes:   len(out),
		Width:   width,
		Lines:   strings.Count(out, "\n") + 1,
		Spans:   len(spans),
		Escapes: make(map[string]int),
	}

	for rest := out; ; {
		start := strings.Index(rest, "\x1b[")
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], 'm')
		if end < 0 {
			break
		}
		seq := rest[start : start+end+1]
		key := fmt.Sprintf("%q", seq)
		if esc, ok := catalog.ReverseLookup(seq); ok {
			key = esc.GoString()
		}
		stats.Escapes[key]++
		rest = rest[start+end+1:]
	}

	return stats, nil
}

// DisplayStats writes s to writer, most used escapes first.
func DisplayStats(writer io.Writer, s Stats) {
	fmt.Fprintln(writer, "=== Render Statistics ===")
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, "  Output size: %d bytes\n", s.Bytes)
	fmt.Fprintf(writer, "  Width: %d\n", s.Width)
	fmt.Fprintf(writer, "  Lines: %d\n", s.Lines)
	fmt.Fprintf(writer, "  Spans: %d\n", s.Spans)
	fmt.Fprintf(writer, "  Escapes: %d\n", s.TotalEscapes())

	if len(s.Escapes) > 0 {
		fmt.Fprintln(writer, "\n--- Most Used Escapes")
		displayTopN(writer, s.Escapes, 10)
	}
}

func displayTopN(writer io.Writer, data map[string]int, n int) {
	type entry struct {
		Key   string
		Count int
	}

	var entries []entry
	for k, v := range data {
		entries = append(entries, entry{k, v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})

	for i, e := range entries {
		if i >= n {
			break
		}
		fmt.Fprintf(writer, "  %-30s: %5d\n", e.Key, e.Count)
	}
}
