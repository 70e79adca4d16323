// Command genrepo generates git repositories from a declarative list of
// commands.
package main

import "github.com/MyCarrier-DevOps/go-genrepo/cmd"

func main() {
	cmd.Execute()
}
