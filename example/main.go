// Example program demonstrating the genrepo library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// With a directory argument the fixture is written to disk:
//
//	go run ./example/ /tmp/fixture
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/MyCarrier-DevOps/go-genrepo/pkg/sdk"
)

const fixture = `
- type: config
  all_name: Example Bot
  all_email: bot@example.org
  tree:
    README.md: "# Example"
- type: commit
  id: init
  message: Initial commit
  branches: [main]
- type: commit
  id: feature
  parents: [init]
  tree:
    README.md: "# Example"
    src:
      main.go: "package main"
  branches: [feature/src]
- type: commit
  id: hotfix
  parents: [init]
- type: merge
  id: release
  commits: [feature, hotfix]
  message: Merge feature and hotfix
  branches: [main]
- type: tag
  name: v1.0.0
  on: release
`

func main() {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := sdk.Options{
		InMemory: true,
		Input:    []byte(fixture),
		Epoch:    &epoch,
	}
	if len(os.Args) > 1 {
		opts.InMemory = false
		opts.Path = os.Args[1]
	}

	result, err := sdk.Generate(opts)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	printBindings(result)
}

func printBindings(result *sdk.Result) {
	where := result.Path
	if where == "" {
		where = "(in memory)"
	}
	fmt.Printf("=== %s ===\n", where)

	keys := make([]string, 0, len(result.Bindings))
	for k := range result.Bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("%-10s %s\n", k, result.Bindings[k])
	}
}
