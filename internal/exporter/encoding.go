package exporter

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encodings lists the output encodings accepted by the exporters.
var Encodings = []string{"utf8", "cp437", "cp850", "iso-8859-1"}

func charmapFor(name string) (*charmap.Charmap, error) {
	switch name {
	case "cp437":
		return charmap.CodePage437, nil
	case "cp850":
		return charmap.CodePage850, nil
	case "iso-8859-1":
		return charmap.ISO8859_1, nil
	}
	return nil, fmt.Errorf("unsupported encoding: %s", name)
}

// ConvertToEncoding converts UTF-8 data to the target encoding. Escape
// sequences are plain ASCII and pass through every supported charmap.
func ConvertToEncoding(data []byte, targetEncoding string) ([]byte, error) {
	if targetEncoding == "" || targetEncoding == "utf8" {
		return data, nil
	}

	cm, err := charmapFor(targetEncoding)
	if err != nil {
		return nil, err
	}
	return transformAll(data, cm.NewEncoder())
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ConvertToUTF8 converts data from sourceEncoding to UTF-8. A leading UTF-8
// BOM is stripped.
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if sourceEncoding == "" || sourceEncoding == "utf8" {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	cm, err := charmapFor(sourceEncoding)
	if err != nil {
		return nil, err
	}
	out, err := transformAll(data, cm.NewDecoder())
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}

func transformAll(data []byte, t transform.Transformer) ([]byte, error) {
	reader := transform.NewReader(bytes.NewReader(data), t)
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}
	return out, nil
}
