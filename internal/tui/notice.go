package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// noticeModal is a dismissable message box, used for host-side errors
// and the unsaved-changes quit confirmation.
type noticeModal struct {
	title   string
	message string
	confirm bool // quit confirmation: y quits, anything else stays

	width  int
	height int
	box    lipglossv2.Style
}

func newNoticeModal(title, message string, confirm bool, termW, termH int) *noticeModal {
	n := &noticeModal{title: title, message: message, confirm: confirm}
	n.resizeForTerm(termW, termH)
	return n
}

func (n *noticeModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = defaultTerminalWidth, defaultTerminalHeight
	}
	w := int(float64(termW) * 0.5)
	if w < 36 {
		w = max(32, termW-4)
	}
	if w > 72 {
		w = 72
	}
	lines := len(strings.Split(n.message, "\n"))
	h := lines + 6
	if h > termH-2 {
		h = max(6, termH-2)
	}
	n.width, n.height = w, h
	n.box = lipglossv2.NewStyle().
		Width(w).
		Height(h).
		Padding(1, 2).
		Border(lipglossv2.RoundedBorder()).
		BorderForeground(lipglossv2.Color("203"))
}

func (n *noticeModal) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorDanger).Render(n.title)
	help := mutedStyle.Render("press any key to dismiss")
	if n.confirm {
		help = mutedStyle.Render("y=quit anyway • any other key=stay")
	}
	body := strings.Join([]string{header, "", n.message, "", help}, "\n")
	return n.box.Render(body)
}
