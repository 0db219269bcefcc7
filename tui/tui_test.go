package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/phaseforge/engine"
	"github.com/nathoo/phaseforge/engine/rng"
)

func pinnedModel() Model {
	g := engine.New(engine.WithAmbientSource(rng.NewSeeded("tui-test")))
	return New(g, nil, "")
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestView_ListsTenPhases(t *testing.T) {
	m := pinnedModel()
	view := m.View()
	if len(m.set.Phases) != engine.PhaseCount {
		t.Fatalf("expected %d phases, got %d", engine.PhaseCount, len(m.set.Phases))
	}
	if !strings.Contains(view, "cards") {
		t.Fatalf("view missing card counts:\n%s", view)
	}
	if !strings.Contains(view, " 1. ") || !strings.Contains(view, "10. ") {
		t.Fatalf("view missing numbered phases:\n%s", view)
	}
	if !strings.Contains(view, m.set.ID) {
		t.Fatalf("view missing set id:\n%s", view)
	}
}

func TestUpdate_CursorMoves(t *testing.T) {
	m := pinnedModel()
	if m.cursor != 0 {
		t.Fatalf("initial cursor %d", m.cursor)
	}

	next, _ := m.Update(keyPress('j'))
	m = next.(Model)
	if m.cursor != 1 {
		t.Fatalf("cursor after down: %d", m.cursor)
	}

	next, _ = m.Update(keyPress('k'))
	m = next.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor after up: %d", m.cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyPress('k'))
	m = next.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp at 0, got %d", m.cursor)
	}
}

func TestUpdate_RerollChangesOnlySelection(t *testing.T) {
	m := pinnedModel()
	next, _ := m.Update(keyPress('j'))
	m = next.(Model)

	before := make([]string, len(m.set.Phases))
	for i, p := range m.set.Phases {
		before[i] = p.Description
	}

	next, _ = m.Update(keyPress('r'))
	m = next.(Model)

	for i, p := range m.set.Phases {
		if i == 1 {
			continue
		}
		if p.Description != before[i] {
			t.Fatalf("phase %d changed by reroll of phase 2", i+1)
		}
	}
	if m.set.Phases[1].RerollToken == "" {
		t.Fatal("rerolled phase missing token")
	}
	if !strings.Contains(m.status, "rerolled phase 2") {
		t.Fatalf("status: %q", m.status)
	}
}

func TestUpdate_NewGeneratesFreshSet(t *testing.T) {
	m := pinnedModel()
	oldID := m.set.ID
	next, _ := m.Update(keyPress('n'))
	m = next.(Model)
	if m.set.ID == oldID {
		t.Fatalf("new set kept id %q", oldID)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor not reset: %d", m.cursor)
	}
}

func TestUpdate_SeedEntryFlow(t *testing.T) {
	m := pinnedModel()
	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	if !m.seeding {
		t.Fatal("expected seed entry mode")
	}

	for _, r := range "abc123-def456" {
		next, _ = m.Update(keyPress(r))
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.seeding {
		t.Fatal("seed entry mode should close on enter")
	}
	if m.set.ID != "abc123-def456" {
		t.Fatalf("set id %q after seed entry", m.set.ID)
	}
}

func TestUpdate_SeedEntryEscapeKeepsSet(t *testing.T) {
	m := pinnedModel()
	oldID := m.set.ID

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	if m.seeding {
		t.Fatal("seed entry mode should close on escape")
	}
	if m.set.ID != oldID {
		t.Fatalf("set changed on cancelled seed entry")
	}
}

func TestUpdate_InvalidSeedKeepsSet(t *testing.T) {
	m := pinnedModel()
	oldID := m.set.ID

	next, _ := m.Update(keyPress('s'))
	m = next.(Model)
	for _, r := range "invalid-def456" {
		next, _ = m.Update(keyPress(r))
		m = next.(Model)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if m.set.ID != oldID {
		t.Fatal("malformed seed should keep the current set")
	}
	if !strings.Contains(m.status, "not valid") {
		t.Fatalf("status: %q", m.status)
	}
}

func TestUpdate_ShareWritesStatus(t *testing.T) {
	m := pinnedModel()
	next, _ := m.Update(keyPress('c'))
	m = next.(Model)
	if !strings.Contains(m.status, "set="+m.set.ID) {
		t.Fatalf("status should carry the share link, got %q", m.status)
	}
}

func TestUpdate_QuitSetsFlag(t *testing.T) {
	m := pinnedModel()
	next, cmd := m.Update(keyPress('q'))
	m = next.(Model)
	if !m.quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if m.View() != "" {
		t.Fatal("quitting view should be empty")
	}
}
