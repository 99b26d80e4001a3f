package interchange

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arr-ai/dbc/dbc"
)

// EncodeJSON writes d as indented JSON.
func EncodeJSON(w io.Writer, d *dbc.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ToTree(d))
}

// DecodeJSON reads a document written by EncodeJSON. Numbers are decoded
// exactly, so 64-bit integers survive.
func DecodeJSON(r io.Reader) (*dbc.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var t Tree
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return FromTree(t)
}

// EncodeYAML writes d as YAML.
func EncodeYAML(w io.Writer, d *dbc.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToTree(d)); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML reads a document written by EncodeYAML. Since YAML is a
// superset of JSON it also reads the output of EncodeJSON.
func DecodeYAML(r io.Reader) (*dbc.Document, error) {
	var t Tree
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return FromTree(t)
}
