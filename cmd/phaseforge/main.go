// PhaseForge generates randomized, rule-constrained phase challenges for a
// card-matching game.
// Usage: phaseforge [--version] [--plain] [--json] [--seed <s>] [--pack <dir>]
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/phaseforge/cli"
	"github.com/nathoo/phaseforge/engine"
	"github.com/nathoo/phaseforge/engine/export"
	"github.com/nathoo/phaseforge/engine/token"
	"github.com/nathoo/phaseforge/loader"
	"github.com/nathoo/phaseforge/tui"
	"github.com/nathoo/phaseforge/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	jsonOut := false
	var seed string
	var packDir string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("phaseforge %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--json":
			jsonOut = true
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a value\n")
				os.Exit(1)
			}
			i++
			seed = args[i]
		case "--pack":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--pack requires a directory\n")
				os.Exit(1)
			}
			i++
			packDir = args[i]
		default:
			fmt.Fprintf(os.Stderr, "Usage: phaseforge [--version] [--plain] [--json] [--seed <s>] [--pack <dir>]\n")
			os.Exit(1)
		}
	}

	var pack *loader.Pack
	if packDir != "" {
		p, err := loader.Load(packDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading pack: %v\n", err)
			os.Exit(1)
		}
		pack = p
	}

	opts := []engine.Option{}
	if pack != nil {
		opts = append(opts, engine.WithCatalog(pack.Catalog))
	}
	g := engine.New(opts...)

	// One-shot JSON mode: generate (seeded or random), print, exit.
	if jsonOut {
		set := generate(g, pack, seed)
		data, err := export.Marshal(set)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	if plain || !isTerminal() {
		c := cli.New(g, pack)
		c.Seed = seed
		c.Run()
		return
	}

	if err := tui.Run(g, pack, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// generate builds the initial set, treating a malformed seed as absent.
func generate(g *engine.Generator, pack *loader.Pack, seed string) *types.PhaseSet {
	if seed != "" && !token.ValidSeed(seed) {
		fmt.Fprintf(os.Stderr, "Seed %q is not valid; generating a random set.\n", seed)
		seed = ""
	}
	var set *types.PhaseSet
	if seed != "" {
		set = g.GenerateFromSeed(seed, "", nil)
	} else {
		set = g.Generate("")
	}
	set.Name = pack.PickName(set.ID)
	return set
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
