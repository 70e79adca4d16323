// Package output renders identifier → commit bindings for the CLI.
package output

import "github.com/MyCarrier-DevOps/go-genrepo/internal/git"

// Shas converts bindings to their hex SHAs. When abbrev is positive each SHA
// is shortened to that many characters.
func Shas(bindings map[string]git.ObjectRef, abbrev int) map[string]string {
	out := make(map[string]string, len(bindings))
	for id, ref := range bindings {
		if abbrev > 0 {
			out[id] = ref.ShortSha(abbrev)
			continue
		}
		out[id] = ref.Sha
	}
	return out
}
