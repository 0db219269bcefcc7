// Package tui implements the interactive terminal front end: the ten phases
// of the current set, cursor selection, and keyboard-driven reroll, fresh
// generation, and seed entry.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/phaseforge/engine"
	"github.com/nathoo/phaseforge/engine/token"
	"github.com/nathoo/phaseforge/loader"
	"github.com/nathoo/phaseforge/share"
	"github.com/nathoo/phaseforge/types"
)

// keyMap defines the TUI key bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reroll key.Binding
	New    key.Binding
	Seed   key.Binding
	Share  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Reroll: key.NewBinding(key.WithKeys("r")),
	New:    key.NewBinding(key.WithKeys("n")),
	Seed:   key.NewBinding(key.WithKeys("s")),
	Share:  key.NewBinding(key.WithKeys("c")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Model is the Bubble Tea model for the PhaseForge TUI.
type Model struct {
	generator *engine.Generator
	pack      *loader.Pack

	set     *types.PhaseSet
	cursor  int // 0-based index into set.Phases
	status  string
	seeding bool // seed entry mode
	input   textinput.Model

	width    int
	quitting bool
}

// New creates a TUI model with a freshly generated set, or a seeded one when
// seed is non-empty and well-formed.
func New(g *engine.Generator, pack *loader.Pack, seed string) Model {
	ti := textinput.New()
	ti.Prompt = "seed> "
	ti.Placeholder = "abc123-def456"
	ti.CharLimit = 32
	ti.PromptStyle = styleInputPrompt

	m := Model{generator: g, pack: pack, input: ti}
	m.newSet()
	if seed != "" {
		m.applySeed(seed)
	}
	return m
}

// Run starts the Bubble Tea program.
func Run(g *engine.Generator, pack *loader.Pack, seed string) error {
	p := tea.NewProgram(New(g, pack, seed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) newSet() {
	m.set = m.generator.Generate("")
	m.set.Name = m.pack.PickName(m.set.ID)
	m.cursor = 0
	m.status = "generated " + m.set.ID
}

func (m *Model) applySeed(seed string) {
	if !token.ValidSeed(seed) {
		m.status = fmt.Sprintf("seed %q is not valid; kept current set", seed)
		return
	}
	m.set = m.generator.GenerateFromSeed(seed, "", nil)
	m.set.Name = m.pack.PickName(m.set.ID)
	m.cursor = 0
	m.status = "rebuilt from seed " + seed
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.seeding {
			return m.updateSeeding(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.set.Phases)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Reroll):
			pos := m.cursor + 1
			phase, ok := m.generator.ApplyReroll(m.set, pos, "")
			if ok {
				m.status = fmt.Sprintf("rerolled phase %d (token %s)", pos, phase.RerollToken)
			}

		case key.Matches(msg, keys.New):
			m.newSet()

		case key.Matches(msg, keys.Seed):
			m.seeding = true
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink

		case key.Matches(msg, keys.Share):
			link, err := share.URL(shareBase, m.set)
			if err != nil {
				m.status = "share failed: " + err.Error()
			} else {
				m.status = link
			}
		}
	}
	return m, nil
}

// updateSeeding handles keys while the seed input is open.
func (m Model) updateSeeding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.seeding = false
		m.input.Blur()
		m.applySeed(strings.TrimSpace(m.input.Value()))
		return m, nil
	case tea.KeyEsc:
		m.seeding = false
		m.input.Blur()
		m.status = "seed entry cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

const shareBase = "https://phaseforge.dev/p"

// View renders the set, the optional seed input, and the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(m.set.Name) + "\n\n")

	for i, p := range m.set.Phases {
		cursor := "  "
		if i == m.cursor {
			cursor = styleCursor.Render("> ")
		}
		desc := styleDescription.Render(fmt.Sprintf("%2d. %-46s", p.Position, p.Description))
		cards := styleCards.Render(fmt.Sprintf("%d cards", p.CardCount))
		diff := difficultyStyle(p.Difficulty).Render(fmt.Sprintf("difficulty %2d", p.Difficulty))
		line := cursor + desc + " " + cards + "  " + diff
		if p.RerollToken != "" {
			line += " " + styleRerolled.Render("(rerolled)")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.seeding {
		b.WriteString(m.input.View() + "\n")
	} else if m.status != "" {
		b.WriteString(styleSystem.Render(m.status) + "\n")
	}

	bar := fmt.Sprintf(" %s  v%s  |  r reroll  n new  s seed  c share  q quit ", m.set.ID, m.set.Version)
	b.WriteString(styleStatusBar.Render(bar) + "\n")
	return b.String()
}
