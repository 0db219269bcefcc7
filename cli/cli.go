// Package cli provides terminal I/O, output formatting, and command dispatch
// for the PhaseForge generator.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/phaseforge/engine"
	"github.com/nathoo/phaseforge/engine/export"
	"github.com/nathoo/phaseforge/engine/token"
	"github.com/nathoo/phaseforge/loader"
	"github.com/nathoo/phaseforge/share"
	"github.com/nathoo/phaseforge/types"
)

// ShareBase is the default base address for share links.
const ShareBase = "https://phaseforge.dev/p"

// CLI handles terminal interaction with the user.
type CLI struct {
	Generator *engine.Generator
	Pack      *loader.Pack // may be nil
	In        io.Reader
	Out       io.Writer
	Seed      string // optional initial seed; malformed values fall back to random
	EchoInput bool   // echo each input line after the prompt (for script playback)

	set *types.PhaseSet
}

// New creates a CLI wired to the given generator.
func New(g *engine.Generator, pack *loader.Pack) *CLI {
	return &CLI{
		Generator: g,
		Pack:      pack,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
}

// Run starts the command loop: prompt, input, dispatch, output. It begins by
// generating a fresh set so there is always something on screen.
func (c *CLI) Run() {
	if c.Seed != "" {
		c.cmdSeed(c.Seed)
	} else {
		c.newSet()
		c.printSet()
	}

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		c.dispatch(input)
	}
}

// dispatch routes a generator command.
func (c *CLI) dispatch(input string) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "new":
		c.newSet()
		c.printSet()

	case "seed":
		if len(args) == 0 {
			c.printSystem("Usage: seed <first-second>, e.g. seed abc123-def456")
			return
		}
		c.cmdSeed(args[0])

	case "show":
		c.printSet()

	case "reroll":
		c.cmdReroll(args)

	case "share":
		base := ShareBase
		if len(args) > 0 {
			base = args[0]
		}
		c.cmdShare(base)

	case "export":
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		c.cmdExport(path)

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
}

// handleMeta dispatches meta-commands. Returns true if the loop should exit.
func (c *CLI) handleMeta(input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true
	case "/help":
		c.cmdHelp()
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}
	return false
}

func (c *CLI) newSet() {
	c.set = c.Generator.Generate("")
	c.set.Name = c.Pack.PickName(c.set.ID)
}

func (c *CLI) cmdSeed(seed string) {
	if !token.ValidSeed(seed) {
		// Malformed seeds are treated as absent: fall back to random.
		c.printSystem(fmt.Sprintf("Seed %q is not valid; generating a fresh random set instead.", seed))
		c.newSet()
		c.printSet()
		return
	}
	c.set = c.Generator.GenerateFromSeed(seed, "", nil)
	c.set.Name = c.Pack.PickName(c.set.ID)
	c.printSet()
}

func (c *CLI) cmdReroll(args []string) {
	if c.set == nil {
		c.printSystem("No set yet. Use new or seed first.")
		return
	}
	if len(args) == 0 {
		c.printSystem("Usage: reroll <position 1-10> [token]")
		return
	}
	pos, err := strconv.Atoi(args[0])
	if err != nil || pos < 1 || pos > engine.PhaseCount {
		c.printSystem(fmt.Sprintf("Position must be 1-%d.", engine.PhaseCount))
		return
	}

	var tok string
	if len(args) > 1 {
		tok = args[1]
		if !token.ValidReroll(tok) {
			// Treated as absent, same as a malformed seed.
			c.printSystem(fmt.Sprintf("Token %q is not valid; rerolling randomly instead.", tok))
			tok = ""
		}
	}

	phase, ok := c.Generator.ApplyReroll(c.set, pos, tok)
	if !ok {
		c.printSystem("Reroll failed.")
		return
	}
	c.printSystem(fmt.Sprintf("Phase %d rerolled (token %s).", pos, phase.RerollToken))
	c.printSet()
}

func (c *CLI) cmdShare(base string) {
	if c.set == nil {
		c.printSystem("No set yet. Use new or seed first.")
		return
	}
	link, err := share.URL(base, c.set)
	if err != nil {
		c.printSystem(fmt.Sprintf("Share failed: %v", err))
		return
	}
	c.printLine(link)
}

func (c *CLI) cmdExport(path string) {
	if c.set == nil {
		c.printSystem("No set yet. Use new or seed first.")
		return
	}
	if path == "" {
		path = c.set.ID + ".json"
	}
	data, err := export.Marshal(c.set)
	if err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Export failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Set written to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Commands:",
		"  new                    — Generate a fresh random set",
		"  seed <s>               — Regenerate deterministically from a seed",
		"  show                   — Print the current set",
		"  reroll <pos> [token]   — Reroll one phase (random, or from a token)",
		"  share [base]           — Print a share link for the current set",
		"  export [file]          — Write the current set as JSON",
		"  /help                  — Show this help",
		"  /quit                  — Exit",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

// printSet renders the current set, one phase per line.
func (c *CLI) printSet() {
	if c.set == nil {
		return
	}
	c.printLine(fmt.Sprintf("%s  [%s, v%s]", c.set.Name, c.set.ID, c.set.Version))
	for _, p := range c.set.Phases {
		marker := " "
		if p.RerollToken != "" {
			marker = "*"
		}
		c.printLine(fmt.Sprintf("%s%2d. %-46s %d cards  difficulty %2d",
			marker, p.Position, p.Description, p.CardCount, p.Difficulty))
	}
	if len(c.set.Rerolls) > 0 {
		c.printLine("   (* rerolled)")
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
