package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrDuplicateSection is returned when a section key is added twice.
var ErrDuplicateSection = errors.New("duplicate navigation section")

// Navigation maps section keys to sections. Unlike a Go map it keeps
// insertion order, which is the default display order of the menus.
//
// The zero value is an empty navigation ready to use.
type Navigation struct {
	keys     []string
	sections map[string]Section
}

// NewNavigation builds a navigation from sections in display order.
func NewNavigation(sections ...Section) (Navigation, error) {
	var nav Navigation
	for _, section := range sections {
		if err := nav.Add(section); err != nil {
			return Navigation{}, err
		}
	}

	return nav, nil
}

// Add appends a section. Keys are unique; adding an existing key fails with
// ErrDuplicateSection and leaves the navigation unchanged.
func (n *Navigation) Add(section Section) error {
	if _, exists := n.sections[section.Key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSection, section.Key)
	}

	if n.sections == nil {
		n.sections = make(map[string]Section)
	}

	n.keys = append(n.keys, section.Key)
	n.sections[section.Key] = section.Clone()

	return nil
}

// Get returns a copy of the section stored under key.
func (n Navigation) Get(key string) (Section, bool) {
	section, ok := n.sections[key]
	if !ok {
		return Section{}, false
	}

	return section.Clone(), true
}

// Keys returns the section keys in display order.
func (n Navigation) Keys() []string {
	return slices.Clone(n.keys)
}

// Sections returns copies of all sections in display order.
func (n Navigation) Sections() []Section {
	sections := make([]Section, 0, len(n.keys))
	for _, key := range n.keys {
		sections = append(sections, n.sections[key].Clone())
	}

	return sections
}

// Len returns the number of sections.
func (n Navigation) Len() int {
	return len(n.keys)
}

// Clone returns a deep copy of the navigation.
func (n Navigation) Clone() Navigation {
	clone := Navigation{keys: slices.Clone(n.keys)}
	if n.sections != nil {
		clone.sections = make(map[string]Section, len(n.sections))
		for key, section := range n.sections {
			clone.sections[key] = section.Clone()
		}
	}

	return clone
}

// Equal reports whether both navigations hold the same sections, links and
// order.
func (n Navigation) Equal(other Navigation) bool {
	if !slices.Equal(n.keys, other.keys) {
		return false
	}

	for _, key := range n.keys {
		a, b := n.sections[key], other.sections[key]
		if a.Title != b.Title || !slices.Equal(a.Links, b.Links) {
			return false
		}
	}

	return true
}

// MarshalYAML encodes the navigation as a YAML mapping in display order.
func (n Navigation) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, key := range n.keys {
		var value yaml.Node
		if err := value.Encode(n.sections[key]); err != nil {
			return nil, fmt.Errorf("navigation.%s: %w", key, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&value,
		)
	}

	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the order of its keys.
// Duplicate keys are rejected.
func (n *Navigation) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: navigation must be a mapping of sections", value.Line)
	}

	var nav Navigation
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, sectionNode := value.Content[i], value.Content[i+1]

		if sectionNode.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(sectionNode.Content); j += 2 {
				switch field := sectionNode.Content[j]; field.Value {
				case "title", "links":
				default:
					return fmt.Errorf("line %d: navigation.%s: unknown field %q",
						field.Line, keyNode.Value, field.Value)
				}
			}
		}

		var section Section
		if err := sectionNode.Decode(&section); err != nil {
			return fmt.Errorf("navigation.%s: %w", keyNode.Value, err)
		}
		section.Key = keyNode.Value

		if err := nav.Add(section); err != nil {
			return fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
	}

	*n = nav
	return nil
}

// MarshalJSON encodes the navigation as a JSON object in display order.
func (n Navigation) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}

		sectionJSON, err := json.Marshal(n.sections[key])
		if err != nil {
			return nil, fmt.Errorf("navigation.%s: %w", key, err)
		}

		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(sectionJSON)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys.
func (n *Navigation) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Navigation{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("navigation must be a JSON object")
	}

	var nav Navigation
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected navigation key %v", tok)
		}

		var section Section
		if err := dec.Decode(&section); err != nil {
			return fmt.Errorf("navigation.%s: %w", key, err)
		}
		section.Key = key

		if err := nav.Add(section); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*n = nav
	return nil
}
