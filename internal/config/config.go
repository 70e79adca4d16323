// Package config loads the defaults file that seeds a generation run:
// signature identities, deterministic timestamps and the annotated tag
// message. Layers are merged by Builder and resolved by NewEffective.
package config

import "time"

// Config is the root of a defaults file. All optional fields are pointers to
// support merge semantics during configuration building.
type Config struct {
	Identities IdentitiesConfig `yaml:"identities"`
	Epoch      *time.Time       `yaml:"epoch"`
	Step       *time.Duration   `yaml:"step"`
	TagMessage *string          `yaml:"tag-message"`
}

// IdentitiesConfig configures the three signature roles. All applies to every
// role; a role's own fields win over it.
type IdentitiesConfig struct {
	All       IdentityConfig `yaml:"all"`
	Author    IdentityConfig `yaml:"author"`
	Committer IdentityConfig `yaml:"committer"`
	Tagger    IdentityConfig `yaml:"tagger"`
}

// IdentityConfig is a partial name/email pair. Nil means "not set, inherit".
type IdentityConfig struct {
	Name  *string `yaml:"name"`
	Email *string `yaml:"email"`
}

// MergeTo copies non-nil fields from ic into target.
func (ic IdentityConfig) MergeTo(target *IdentityConfig) {
	if target == nil {
		return
	}
	if ic.Name != nil {
		target.Name = ic.Name
	}
	if ic.Email != nil {
		target.Email = ic.Email
	}
}

// IsZero reports whether neither field is set.
func (ic IdentityConfig) IsZero() bool {
	return ic.Name == nil && ic.Email == nil
}
