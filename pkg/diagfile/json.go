package diagfile

import (
	"encoding/json"
	"os"

	"fsmdraw/pkg/diagram"
)

// ToJSON serializes a diagram document.
func ToJSON(d *diagram.Diagram, pretty bool) ([]byte, error) {
	doc := toDocument(d)
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// ParseJSON reconstructs a diagram from a JSON document. Unresolved
// node references fail the whole parse.
func ParseJSON(data []byte) (*diagram.Diagram, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// WriteFile saves a diagram as pretty JSON.
func WriteFile(path string, d *diagram.Diagram) error {
	data, err := ToJSON(d, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadFile loads a diagram from a JSON file.
func ReadFile(path string) (*diagram.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}
