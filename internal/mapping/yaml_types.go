package mapping

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"remapper/internal/entry"
)

// Access is an access modifier override in YAML form.
type Access struct {
	entry.AccessModifier
}

// IsUnchanged returns true if no override is set.
func (a Access) IsUnchanged() bool {
	return a.AccessModifier == entry.AccessUnchanged
}

// IsZero lets omitempty drop unchanged access.
func (a Access) IsZero() bool {
	return a.IsUnchanged()
}

// UnmarshalYAML implements custom YAML unmarshaling for Access.
func (a *Access) UnmarshalYAML(node *yaml.Node) error {
	var s string

	if err := node.Decode(&s); err != nil {
		return err
	}

	m, err := entry.ParseAccessModifier(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	a.AccessModifier = m

	return nil
}

// MarshalYAML implements custom YAML marshaling for Access.
func (a Access) MarshalYAML() (any, error) {
	return a.String(), nil
}

// UnmarshalYAML implements custom YAML unmarshaling for VarList.
// Accepts:
//   - List of objects: [{index: 1, name: value}]
//   - Map from slot to name: {1: value}
func (v *VarList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []VarMapping

		if err := node.Decode(&list); err != nil {
			return err
		}

		v.set(list)

		return nil

	case yaml.MappingNode:
		list := make(VarList, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]

			idx, err := strconv.Atoi(key.Value)
			if err != nil {
				return fmt.Errorf("line %d: variable slot %q is not a number", key.Line, key.Value)
			}

			list = append(list, VarMapping{Index: idx, Name: value.Value})
		}

		v.set(list)

		return nil

	default:
		return fmt.Errorf("line %d: expected list or map of variables", node.Line)
	}
}

// set stores list, normalizing an empty list to nil.
func (v *VarList) set(list VarList) {
	if len(list) == 0 {
		*v = nil
		return
	}

	*v = list
}
