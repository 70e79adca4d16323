package output

import (
	"fmt"
	"io"
	"sort"
)

// WriteBinding prints the SHA bound to id on its own line. An id the run never
// defined is an error.
func WriteBinding(w io.Writer, bindings map[string]string, id string) error {
	sha, ok := bindings[id]
	if !ok {
		return fmt.Errorf("unknown identifier %q", id)
	}
	_, err := fmt.Fprintln(w, sha)
	return err
}

// WriteAll prints one id=sha line per binding, ordered by id.
func WriteAll(w io.Writer, bindings map[string]string) error {
	for _, id := range sortedIDs(bindings) {
		if _, err := fmt.Fprintf(w, "%s=%s\n", id, bindings[id]); err != nil {
			return err
		}
	}
	return nil
}

func sortedIDs(bindings map[string]string) []string {
	ids := make([]string, 0, len(bindings))
	for id := range bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
