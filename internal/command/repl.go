// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/jcheck/jcheck/internal/driller"
	"github.com/jcheck/jcheck/internal/log"
	"github.com/jcheck/jcheck/internal/meta"
	"github.com/jcheck/jcheck/internal/script"
	"github.com/jcheck/jcheck/internal/source"
)

const (
	historyFile = ".jcheck_history"
	maxHistory  = 1000
)

func replCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Meta:      meta,
		Name:      "repl",
		Usage:     "explore a document interactively",
		UsageText: "jcheck repl [--input doc] [options]",
		Source:    true,
		ExtraFlags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "document bound to input",
			},
		},
		Action: replCommandAction,
	}).Build()
}

func replCommandAction(ctx context.Context, cmd *cli.Command) error {
	var input []byte
	if spec := cmd.String("input"); spec != "" {
		var err error
		if input, err = source.Load(ctx, spec, LoadOptions(cmd)...); err != nil {
			return err
		}
	}
	log.Debugf("repl: %d input bytes", len(input))

	p := tea.NewProgram(newReplModel(input, historyPath()), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type replModel struct {
	input    textinput.Model
	history  []string // includes entries from earlier sessions
	session  []entry
	histIdx  int
	histPath string
	doc      []byte
	intro    []string
}

type entry struct {
	line, out string
}

func newReplModel(doc []byte, histPath string) replModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	intro := []string{"No input document; expressions only."}
	if len(doc) > 0 {
		intro = []string{fmt.Sprintf("Input document loaded, %d bytes.", len(doc))}
	}
	intro = append(intro, "Type 'help' for syntax, 'exit' or Ctrl+C to quit.")

	return replModel{
		input:    ti,
		history:  loadHistory(histPath),
		histIdx:  -1,
		histPath: histPath,
		doc:      doc,
		intro:    intro,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				return m, tea.Quit
			}

			m.history = append(m.history, line)
			m.histIdx = -1
			m.session = append(m.session, entry{line: line, out: evalLine(m.doc, line)})
			saveHistory(m.histPath, m.history)
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIdx == -1 {
				m.histIdx = len(m.history) - 1
			} else if m.histIdx > 0 {
				m.histIdx--
			}
			m.input.SetValue(m.history[m.histIdx])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if m.histIdx >= 0 && m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E86AB"))

func (m replModel) View() string {
	lines := append([]string(nil), m.intro...)
	for _, e := range m.session {
		lines = append(lines, promptStyle.Render("> ")+e.line, e.out)
	}
	lines = append(lines, promptStyle.Render("> ")+m.input.View())
	return strings.Join(lines, "\n")
}

// evalLine answers one console line. A leading "." drills into the input
// document, anything else is evaluated as an expression.
func evalLine(doc []byte, line string) string {
	switch {
	case line == "help":
		return replHelp
	case line == "functions":
		names, err := script.Names()
		if err != nil {
			return "error: " + err.Error()
		}
		return strings.Join(names, " ")
	case strings.HasPrefix(line, "."):
		if len(doc) == 0 {
			return "error: no input document"
		}
		out, err := driller.Drill(doc, strings.TrimPrefix(line, "."))
		if err != nil {
			return "error: " + err.Error()
		}
		return pretty(out)
	default:
		out, err := script.Eval(line, doc)
		if err != nil {
			return "error: " + strings.TrimSpace(err.Error())
		}
		return pretty(out)
	}
}

func pretty(raw []byte) string {
	out, err := prettyJSON(raw)
	if err != nil {
		return string(raw)
	}
	return strings.TrimSuffix(string(out), "\n")
}

const replHelp = `Console syntax:
  .path                  - input sub-document, e.g. .users[0].name or .items[]
  expression             - evaluated against input, e.g. length(input.users)
  functions              - list available functions
  help                   - this text
  exit, quit, Ctrl+C     - leave

  Navigation:
  up/down arrows         - command history`

// historyPath is ~/.jcheck_history, or the working directory when there is
// no home.
func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func loadHistory(path string) []string {
	var history []string

	f, err := os.Open(path)
	if err != nil {
		return history
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			history = append(history, line)
		}
	}
	return history
}

// saveHistory keeps the newest maxHistory lines. Failures are logged only.
func saveHistory(path string, history []string) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}

	f, err := os.Create(path)
	if err != nil {
		log.Debugf("history not saved: %v", err)
		return
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range history {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		log.Debugf("history not saved: %v", err)
	}
}
