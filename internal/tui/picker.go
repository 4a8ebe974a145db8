package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/veldrane/inkmark/internal/document"
	"github.com/veldrane/inkmark/internal/recent"
)

// openPicker is the file-open modal: a path input over the recent
// documents list, narrowed by fuzzy matching as the user types. Typing
// something path-like (it contains a separator) bypasses the list and
// opens the literal path. Unsupported extensions are rejected here,
// before the host ever sees the request.
type openPicker struct {
	input   textinput.Model
	entries []recent.Entry
	matches []int
	cursor  int
	errText string
	// respond is non-nil when the host's open dialog drove the modal;
	// the chosen path (or "" on cancel) is answered exactly once.
	respond chan string

	width  int
	height int
	box    lipglossv2.Style
}

func newOpenPicker(respond chan string, termW, termH int) *openPicker {
	p := &openPicker{respond: respond}
	p.input = textinput.New()
	p.input.Prompt = "open: "
	p.input.Placeholder = "notes.md or fuzzy recent match"
	p.input.Focus()
	p.resizeForTerm(termW, termH)
	return p
}

func (p *openPicker) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = defaultTerminalWidth, defaultTerminalHeight
	}
	w := int(float64(termW) * 0.7)
	if w < 44 {
		w = max(40, termW-4)
	}
	if w > 96 {
		w = 96
	}
	h := pickerVisibleRows + 7
	if h > termH-2 {
		h = max(8, termH-2)
	}
	p.width, p.height = w, h
	p.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(1, 2).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("63"))
	p.input.Width = max(12, w-6-lipgloss.Width(p.input.Prompt))
}

const pickerVisibleRows = 8

// setEntries replaces the recent list once it has loaded from the store.
func (p *openPicker) setEntries(entries []recent.Entry) {
	p.entries = entries
	p.refilter()
}

// refilter narrows the recent list against the typed query. An empty
// query keeps everything in recency order.
func (p *openPicker) refilter() {
	query := strings.TrimSpace(p.input.Value())
	p.matches = p.matches[:0]
	if query == "" {
		for i := range p.entries {
			p.matches = append(p.matches, i)
		}
	} else {
		candidates := make([]string, len(p.entries))
		for i, e := range p.entries {
			candidates[i] = e.Path
		}
		for _, m := range fuzzy.Find(query, candidates) {
			p.matches = append(p.matches, m.Index)
		}
	}
	if p.cursor >= len(p.matches) {
		p.cursor = max(0, len(p.matches)-1)
	}
}

// choose resolves the enter key to a path: a typed path wins when it
// looks like one or nothing matched, otherwise the highlighted entry.
func (p *openPicker) choose() (string, bool) {
	typed := strings.TrimSpace(p.input.Value())
	if typed != "" && (strings.ContainsRune(typed, '/') || len(p.matches) == 0) {
		return typed, true
	}
	if len(p.matches) > 0 {
		return p.entries[p.matches[p.cursor]].Path, true
	}
	return "", false
}

// update handles one message. It reports the chosen path through done
// when the modal is finished; ok=false means it stays open.
func (p *openPicker) update(msg tea.Msg) (done bool, path string, cmd tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		p.resizeForTerm(x.Width, x.Height)
		return false, "", nil
	case tea.KeyMsg:
		switch x.String() {
		case "esc":
			return true, "", nil
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return false, "", nil
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return false, "", nil
		case "enter":
			chosen, ok := p.choose()
			if !ok {
				return false, "", nil
			}
			if err := document.CheckSupported(chosen); err != nil {
				p.errText = err.Error()
				return false, "", nil
			}
			return true, chosen, nil
		}
	}
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.errText = ""
		p.refilter()
	}
	return false, "", cmd
}

func (p *openPicker) View() string {
	header := lipgloss.NewStyle().Bold(true).Render("Open Document")

	var rows []string
	start := 0
	if p.cursor >= pickerVisibleRows {
		start = p.cursor - pickerVisibleRows + 1
	}
	for i := start; i < len(p.matches) && i < start+pickerVisibleRows; i++ {
		e := p.entries[p.matches[i]]
		line := e.DisplayName + "  " + mutedStyle.Render(e.Path)
		if i == p.cursor {
			line = selectedItemStyle.Render("> ") + line
		} else {
			line = normalItemStyle.Render("  ") + line
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		rows = append(rows, mutedStyle.Render("  no recent documents"))
	}

	help := mutedStyle.Render("enter=open • esc=cancel • ↑/↓=select")
	parts := []string{header, "", p.input.View(), ""}
	parts = append(parts, rows...)
	if p.errText != "" {
		parts = append(parts, "", statusErrStyle.Render(p.errText))
	}
	parts = append(parts, "", help)
	return p.box.Render(strings.Join(parts, "\n"))
}
