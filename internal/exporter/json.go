package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/badele/aformat/internal/expr"
)

type SpanJSON struct {
	Text  string   `json:"text"`
	Fg    string   `json:"fg"`
	Bg    string   `json:"bg"`
	Attrs []string `json:"attrs,omitempty"`
}

type SpansJSONOutput struct {
	Spans []SpanJSON `json:"spans"`
	Width int        `json:"width"`
}

// ExportJSON exports the spans of e as indented JSON.
func ExportJSON(e expr.Expr) (string, error) {
	spans, err := expr.Flatten(e)
	if err != nil {
		return "", fmt.Errorf("error flattening expression: %w", err)
	}
	width, err := Width(e)
	if err != nil {
		return "", err
	}

	output := SpansJSONOutput{Spans: make([]SpanJSON, 0, len(spans)), Width: width}
	for _, s := range spans {
		sj := SpanJSON{Text: s.Text, Fg: s.State.Fg.String(), Bg: s.State.Bg.String()}
		for _, a := range s.State.Attrs.Attrs() {
			sj.Attrs = append(sj.Attrs, a.String())
		}
		output.Spans = append(output.Spans, sj)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("JSON serialization error: %w", err)
	}
	return string(data), nil
}
