package diagfile

import (
	"gopkg.in/yaml.v3"

	"fsmdraw/pkg/diagram"
)

// ToYAML serializes a diagram document as YAML.
func ToYAML(d *diagram.Diagram) ([]byte, error) {
	return yaml.Marshal(toDocument(d))
}

// ParseYAML reconstructs a diagram from a YAML document. The document
// shape matches the JSON format; reference validation is identical.
func ParseYAML(data []byte) (*diagram.Diagram, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}
