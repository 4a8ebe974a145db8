package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"

	"github.com/veldrane/inkmark/internal/document"
)

// saveAsModal prompts for a target path on behalf of the host's
// save dialog. The answer travels back on respond; "" means cancel.
type saveAsModal struct {
	input   textinput.Model
	errText string
	respond chan string

	width  int
	height int
	box    lipglossv2.Style
}

func newSaveAsModal(suggested string, respond chan string, termW, termH int) *saveAsModal {
	m := &saveAsModal{respond: respond}
	m.input = textinput.New()
	m.input.Prompt = "save as: "
	m.input.SetValue(suggested)
	m.input.CursorEnd()
	m.input.Focus()
	m.resizeForTerm(termW, termH)
	return m
}

func (m *saveAsModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = defaultTerminalWidth, defaultTerminalHeight
	}
	w := int(float64(termW) * 0.6)
	if w < 40 {
		w = max(36, termW-4)
	}
	if w > 80 {
		w = 80
	}
	h := 8
	m.width, m.height = w, h
	m.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(1, 2).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
	m.input.Width = max(12, w-6-lipgloss.Width(m.input.Prompt))
}

func (m *saveAsModal) update(msg tea.Msg) (done bool, path string, cmd tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resizeForTerm(x.Width, x.Height)
		return false, "", nil
	case tea.KeyMsg:
		switch x.String() {
		case "esc":
			return true, "", nil
		case "enter":
			target := strings.TrimSpace(m.input.Value())
			if target == "" {
				m.errText = "a file name is required"
				return false, "", nil
			}
			if err := document.CheckSupported(target); err != nil {
				m.errText = err.Error()
				return false, "", nil
			}
			return true, target, nil
		}
	}
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.errText = ""
	}
	return false, "", cmd
}

func (m *saveAsModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Save Document As")
	help := mutedStyle.Render("enter=save • esc=cancel")
	parts := []string{header, "", m.input.View()}
	if m.errText != "" {
		parts = append(parts, "", statusErrStyle.Render(m.errText))
	}
	parts = append(parts, "", help)
	return m.box.Render(strings.Join(parts, "\n"))
}
