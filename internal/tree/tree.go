// Package tree turns declared path → content mappings into nested directory
// structures and persists them bottom-up as git trees.
package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Separator splits declared paths into segments.
const Separator = "/"

var (
	// ErrPathConflict is returned when two declared paths claim the same
	// location, or a path descends through a location already holding a file.
	ErrPathConflict = errors.New("path conflict")

	// ErrInvalidPath is returned for paths with empty, "." or ".." segments.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError records the declared path that could not be materialized.
type PathError struct {
	Path   string
	Reason string
	Err    error
}

func (e *PathError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Reason)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Node is a declared tree node: either a file with content, or a directory
// whose keys are slash-separated paths relative to it.
type Node struct {
	Content  []byte
	Children map[string]Node
	IsDir    bool
}

// File returns a declared file node.
func File(content string) Node {
	return Node{Content: []byte(content)}
}

// Dir returns a declared directory node.
func Dir(children map[string]Node) Node {
	if children == nil {
		children = map[string]Node{}
	}
	return Node{Children: children, IsDir: true}
}

// Flatten expands nested declared directories into a flat path → content
// mapping. Two declarations reaching the same path are a conflict.
func Flatten(declared map[string]Node) (map[string][]byte, error) {
	out := make(map[string][]byte)
	if err := flatten(out, "", declared); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(out map[string][]byte, prefix string, declared map[string]Node) error {
	for _, key := range sortedKeys(declared) {
		node := declared[key]
		full := key
		if prefix != "" {
			full = prefix + Separator + key
		}

		if node.IsDir {
			if err := flatten(out, full, node.Children); err != nil {
				return err
			}
			continue
		}

		if _, ok := out[full]; ok {
			return &PathError{Path: full, Reason: "declared more than once", Err: ErrPathConflict}
		}
		out[full] = node.Content
	}
	return nil
}

// ValidatePath reports an ErrInvalidPath when the declared path contains an
// empty, "." or ".." segment.
func ValidatePath(path string) error {
	for _, seg := range strings.Split(path, Separator) {
		switch seg {
		case "":
			return &PathError{Path: path, Reason: "empty segment", Err: ErrInvalidPath}
		case ".", "..":
			return &PathError{Path: path, Reason: fmt.Sprintf("%q segment", seg), Err: ErrInvalidPath}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
