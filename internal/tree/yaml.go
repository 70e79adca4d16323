package tree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements yaml.Unmarshaler for Node. A scalar declares a
// file with that content; a mapping declares a directory. A null value is
// decoded by yaml itself into the zero Node, an empty file.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*n = File(value.Value)
		return nil
	case yaml.MappingNode:
		children := map[string]Node{}
		if err := value.Decode(&children); err != nil {
			return err
		}
		*n = Dir(children)
		return nil
	default:
		return fmt.Errorf("line %d: tree entry must be a string or a mapping", value.Line)
	}
}
