package command

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// fields lists the keys accepted for each command type, besides "type".
var fields = map[Kind][]string{
	KindCommit: {"id", "message", "parents", "tree", "branches", "tags"},
	KindMerge:  {"id", "commits", "message", "tree", "branches", "tags", "no_ff"},
	KindBranch: {"name", "on"},
	KindTag:    {"name", "on", "lightweight", "message"},
	KindConfig: {
		"all_name", "all_email",
		"author_name", "author_email",
		"committer_name", "committer_email",
		"tagger_name", "tagger_email",
		"tree",
	},
}

// Decode reads a list of commands encoded as a JSON array or a YAML sequence
// and validates it. Every problem found is reported in the returned error,
// which matches ErrMalformed.
func Decode(r io.Reader) ([]Command, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	return Parse(data)
}

// Parse is Decode for an in-memory document. An empty document is an empty
// command list.
func Parse(data []byte) ([]Command, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Index: -1, Reason: err.Error()}
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &Error{Index: -1, Reason: fmt.Sprintf("line %d: expected a list of commands", root.Line)}
	}

	var errs error
	cmds := make([]Command, 0, len(root.Content))
	for i, item := range root.Content {
		cmd, err := decodeOne(i, item)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		errs = multierr.Append(errs, validateOne(i, cmd))
		cmds = append(cmds, cmd)
	}
	if errs != nil {
		return nil, errs
	}
	return cmds, nil
}

func decodeOne(index int, node *yaml.Node) (Command, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &Error{Index: index, Reason: fmt.Sprintf("line %d: expected a mapping", node.Line)}
	}

	var (
		kind    Kind
		hasType bool
		keys    []string
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key == "type" {
			kind = Kind(node.Content[i+1].Value)
			hasType = true
			continue
		}
		keys = append(keys, key)
	}
	if !hasType {
		return nil, &Error{Index: index, Field: "type", Reason: "required field missing"}
	}

	allowed, ok := fields[kind]
	if !ok {
		return nil, &Error{Index: index, Field: "type", Reason: fmt.Sprintf("unknown command type %q, want one of %v", kind, Kinds())}
	}

	var errs error
	for _, key := range keys {
		if !contains(allowed, key) {
			errs = multierr.Append(errs, &Error{Index: index, Kind: kind, Field: key, Reason: "unknown field"})
		}
	}
	if errs != nil {
		return nil, errs
	}

	var (
		cmd Command
		err error
	)
	switch kind {
	case KindCommit:
		var c Commit
		err = node.Decode(&c)
		cmd = c
	case KindMerge:
		var m Merge
		err = node.Decode(&m)
		cmd = m
	case KindBranch:
		var b Branch
		err = node.Decode(&b)
		cmd = b
	case KindTag:
		var t Tag
		err = node.Decode(&t)
		cmd = t
	case KindConfig:
		var c Config
		err = node.Decode(&c)
		cmd = c
	}
	if err != nil {
		return nil, &Error{Index: index, Kind: kind, Reason: err.Error()}
	}
	return cmd, nil
}

// Kinds returns every known command type, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func contains(ss []string, s string) bool {
	for _, item := range ss {
		if item == s {
			return true
		}
	}
	return false
}
