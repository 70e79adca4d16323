package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/MyCarrier-DevOps/go-genrepo/internal/tree"
)

// ErrMalformed matches every schema-level problem found before
// interpretation begins.
var ErrMalformed = errors.New("malformed command")

// Error describes one schema problem. Index is the position of the command in
// the input list, or -1 for problems with the document as a whole.
type Error struct {
	Index  int
	Kind   Kind
	Field  string
	Reason string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(ErrMalformed.Error())
	if e.Index >= 0 {
		fmt.Fprintf(&b, " #%d", e.Index)
	}
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	return b.String()
}

func (e *Error) Unwrap() error {
	return ErrMalformed
}

// Validate checks required fields and declared tree paths of every command.
// All problems are combined into the returned error.
func Validate(cmds []Command) error {
	var errs error
	for i, cmd := range cmds {
		errs = multierr.Append(errs, validateOne(i, cmd))
	}
	return errs
}

func validateOne(index int, cmd Command) error {
	v := &validator{index: index, kind: cmd.Kind()}

	switch c := cmd.(type) {
	case Commit:
		v.required("id", c.ID)
		v.names("parents", c.Parents)
		v.names("branches", c.Branches)
		v.names("tags", c.Tags)
		v.paths("tree", c.Tree)
	case Merge:
		v.required("id", c.ID)
		if len(c.Commits) == 0 {
			v.fail("commits", "at least one commit is required")
		}
		v.names("commits", c.Commits)
		v.names("branches", c.Branches)
		v.names("tags", c.Tags)
		v.paths("tree", c.Tree)
	case Branch:
		v.required("name", c.Name)
		v.required("on", c.On)
	case Tag:
		v.required("name", c.Name)
		v.required("on", c.On)
		if c.Lightweight && c.Message != nil {
			v.fail("message", "lightweight tags carry no message")
		}
	case Config:
		v.paths("tree", c.Tree)
	default:
		v.fail("type", fmt.Sprintf("unsupported command %T", cmd))
	}

	return v.errs
}

type validator struct {
	index int
	kind  Kind
	errs  error
}

func (v *validator) fail(field, reason string) {
	v.errs = multierr.Append(v.errs, &Error{Index: v.index, Kind: v.kind, Field: field, Reason: reason})
}

func (v *validator) required(field, value string) {
	if value == "" {
		v.fail(field, "required field missing")
	}
}

func (v *validator) names(field string, values []string) {
	for i, value := range values {
		if value == "" {
			v.fail(fmt.Sprintf("%s[%d]", field, i), "must not be empty")
		}
	}
}

func (v *validator) paths(field string, declared map[string]tree.Node) {
	keys := make([]string, 0, len(declared))
	for key := range declared {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := declared[key]
		if err := tree.ValidatePath(key); err != nil {
			v.fail(field, err.Error())
			continue
		}
		if node.IsDir {
			v.paths(field+"."+key, node.Children)
		}
	}
}
