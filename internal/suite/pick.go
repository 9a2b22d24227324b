// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package suite

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// Pick lets the user choose cases interactively. It returns nil when the
// user quits without confirming.
func Pick(cases []Case, opts ...tea.ProgramOption) ([]Case, error) {
	p := tea.NewProgram(newPicker(cases), opts...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	return m.(picker).chosen(), nil
}

type picker struct {
	cases     []Case
	cursor    int
	selected  map[int]bool
	confirmed bool
}

func newPicker(cases []Case) picker {
	return picker{cases: cases, selected: make(map[int]bool)}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = map[int]bool{}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.cases)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) < len(m.cases)
		for i := range m.cases {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) == 0 && len(m.cases) > 0 {
			m.selected[m.cursor] = true
		}
		m.confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m picker) View() string {
	var sb strings.Builder
	sb.WriteString("Select cases to run:\n\n")
	for i, c := range m.cases {
		cursor := "  "
		if m.cursor == i {
			cursor = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		name := c.Name
		if m.selected[i] {
			mark = selectedStyle.Render("[x]")
			name = selectedStyle.Render(name)
		}
		kind := "doc"
		if c.Script != "" {
			kind = "hcl"
		}
		fmt.Fprintf(&sb, "%s%s %s %s\n", cursor, mark, kind, name)
	}
	sb.WriteString("\n" + helpStyle.Render("SPACE: toggle, A: all, ENTER: run, Q/ESC: quit") + "\n")
	return sb.String()
}

// chosen returns the selected cases in discovery order.
func (m picker) chosen() []Case {
	if m.selected == nil {
		return nil
	}
	var out []Case
	for i, c := range m.cases {
		if m.selected[i] {
			out = append(out, c)
		}
	}
	return out
}
