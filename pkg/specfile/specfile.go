package specfile

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the root of the raw specification document, matching the
// dataflows.io/system.json schema.
type Spec struct {
	// SpecificationVersion identifies the schema revision this document
	// was authored against.
	SpecificationVersion string `yaml:"specificationVersion" json:"specificationVersion"`

	// Title is the human-readable name of the root system.
	Title string `yaml:"title" json:"title"`

	// Systems is the ordered list of top-level sub-systems.
	Systems []System `yaml:"systems,omitempty" json:"systems,omitempty"`

	// Links connects sub-systems by dotted canonical path.
	Links []Link `yaml:"links,omitempty" json:"links,omitempty"`

	// Flows describes animated data-flow sequences over the link graph.
	Flows []Flow `yaml:"flows,omitempty" json:"flows,omitempty"`
}

// Position is an author-supplied integer world coordinate.
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// System is one node of the author-facing specification tree.
type System struct {
	// ID is locally unique among siblings; matches [a-zA-Z0-9_-]+.
	ID string `yaml:"id" json:"id"`

	// Position is the optional relative position within the parent. When
	// absent, the loader assigns a default position.
	Position *Position `yaml:"position,omitempty" json:"position,omitempty"`

	// Title is optional display text; may contain literal "\n".
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// HideSystems collapses this system (and all descendants) into a
	// solid black-box in the rendered layout.
	HideSystems bool `yaml:"hideSystems,omitempty" json:"hideSystems,omitempty"`

	// Systems is the recursive list of children.
	Systems []System `yaml:"systems,omitempty" json:"systems,omitempty"`
}

// Link connects two sub-systems named by dotted canonical path.
type Link struct {
	A string `yaml:"a" json:"a"`
	B string `yaml:"b" json:"b"`
}

// FlowStep is one frame of an animated flow.
type FlowStep struct {
	Keyframe int      `yaml:"keyframe" json:"keyframe"`
	From     string   `yaml:"from" json:"from"`
	To       string   `yaml:"to" json:"to"`
	Links    []string `yaml:"links,omitempty" json:"links,omitempty"`
}

// Flow is an ordered sequence of steps describing an animated data flow.
type Flow struct {
	Steps []FlowStep `yaml:"steps" json:"steps"`
}

// LoadYAML parses a YAML document into a Spec. Malformed YAML is a
// structural error returned directly from the parser and is never
// recovered from -- unlike the semantic errors pkg/loader and
// pkg/validation produce, this aborts before any resolution is attempted.
func LoadYAML(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &s, nil
}

// LoadYAMLFile reads and parses a YAML specification file.
func LoadYAMLFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return LoadYAML(data)
}

// LoadJSON parses a JSON document into a Spec.
func LoadJSON(data []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return &s, nil
}

// ToYAML serializes the Spec back to YAML bytes.
func (s *Spec) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// ToJSON serializes the Spec to indented JSON bytes.
func (s *Spec) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
