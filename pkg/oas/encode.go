package oas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func MarshalJSON(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

func MarshalYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a document previously written by MarshalYAML.
func UnmarshalYAML(data []byte) (*Document, error) {
	doc := new(Document)
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteYAMLFile writes the YAML encoding of doc to path.
func WriteYAMLFile(doc *Document, path string) error {
	data, err := MarshalYAML(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("oas: write %s: %w", path, err)
	}
	return nil
}
