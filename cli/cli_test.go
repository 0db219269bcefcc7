package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/phaseforge/engine"
	"github.com/nathoo/phaseforge/engine/export"
	"github.com/nathoo/phaseforge/engine/rng"
)

// run feeds a script to a CLI with a pinned generator and returns the output.
func run(t *testing.T, script string) string {
	t.Helper()
	g := engine.New(engine.WithAmbientSource(rng.NewSeeded("cli-test")))
	c := New(g, nil)
	c.In = strings.NewReader(script)
	var out bytes.Buffer
	c.Out = &out
	c.Run()
	return out.String()
}

func TestRun_ShowsInitialSet(t *testing.T) {
	out := run(t, "/quit\n")
	if !strings.Contains(out, " 1. ") || !strings.Contains(out, "10. ") {
		t.Fatalf("expected ten numbered phases in output:\n%s", out)
	}
	if !strings.Contains(out, "difficulty") {
		t.Fatalf("expected difficulty column:\n%s", out)
	}
}

func TestSeed_Deterministic(t *testing.T) {
	a := run(t, "seed abc123-def456\n/quit\n")
	b := run(t, "seed abc123-def456\n/quit\n")

	// Everything after the seed command's output must be identical.
	ai := strings.Index(a, "abc123-def456")
	bi := strings.Index(b, "abc123-def456")
	if ai < 0 || bi < 0 {
		t.Fatalf("seed id missing from output:\n%s", a)
	}
	if a[ai:] != b[bi:] {
		t.Fatalf("seeded output differs:\n%s\n---\n%s", a[ai:], b[bi:])
	}
}

func TestSeed_MalformedFallsBackToRandom(t *testing.T) {
	out := run(t, "seed invalid-def456\n/quit\n")
	if !strings.Contains(out, "is not valid") {
		t.Fatalf("expected invalid-seed notice:\n%s", out)
	}
	if !strings.Contains(out, "10. ") {
		t.Fatalf("expected a fresh set after fallback:\n%s", out)
	}
}

func TestReroll_ByToken(t *testing.T) {
	out := run(t, "seed abc123-def456\nreroll 5 xyz789\n/quit\n")
	if !strings.Contains(out, "Phase 5 rerolled (token xyz789)") {
		t.Fatalf("expected reroll confirmation:\n%s", out)
	}
	if !strings.Contains(out, "(* rerolled)") {
		t.Fatalf("expected reroll marker legend:\n%s", out)
	}
}

func TestReroll_BadPosition(t *testing.T) {
	out := run(t, "reroll 12\n/quit\n")
	if !strings.Contains(out, "Position must be 1-10") {
		t.Fatalf("expected position error:\n%s", out)
	}
}

func TestShare_PrintsLink(t *testing.T) {
	out := run(t, "seed abc123-def456\nreroll 3 xyz789\nshare\n/quit\n")
	if !strings.Contains(out, ShareBase+"?") {
		t.Fatalf("expected share link:\n%s", out)
	}
	if !strings.Contains(out, "set=abc123-def456") || !strings.Contains(out, "r3=xyz789") {
		t.Fatalf("expected seed and reroll in link:\n%s", out)
	}
}

func TestExport_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.json")
	out := run(t, "seed abc123-def456\nexport "+path+"\n/quit\n")
	if !strings.Contains(out, "written to") {
		t.Fatalf("expected export confirmation:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	set, err := export.Unmarshal(data)
	if err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if set.ID != "abc123-def456" || len(set.Phases) != engine.PhaseCount {
		t.Fatalf("exported set malformed: %+v", set)
	}
}

func TestHelp_ListsCommands(t *testing.T) {
	out := run(t, "/help\n/quit\n")
	for _, cmd := range []string{"new", "seed", "reroll", "share", "export"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help missing %q:\n%s", cmd, out)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	out := run(t, "frobnicate\n/quit\n")
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("expected unknown-command notice:\n%s", out)
	}
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	out := run(t, "# a comment\n\n/quit\n")
	if !strings.Contains(out, "Goodbye.") {
		t.Fatalf("expected clean exit:\n%s", out)
	}
}
