package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON encodes bindings as one indented JSON object keyed by
// identifier, followed by a newline. Keys come out sorted.
func WriteJSON(w io.Writer, bindings map[string]string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bindings); err != nil {
		return fmt.Errorf("encoding bindings: %w", err)
	}
	return nil
}
