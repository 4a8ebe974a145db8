package tui

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary  = lipgloss.Color("#7AA2F7") // ink blue
	colorAccent   = lipgloss.Color("#9ECE6A") // soft green
	colorMuted    = lipgloss.Color("#666666")
	colorDanger   = lipgloss.Color("#F7768E")
	colorBorder   = lipgloss.Color("#3B4261")
	colorModified = lipgloss.Color("#E0AF68") // amber dirty marker
)

// Layout styles
var (
	appStyle = lipgloss.NewStyle().Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	dirtyMarkStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorModified)

	editorPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	previewPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	paneLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)

// Picker / modal item styles
var (
	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C0CAF5"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Status + help
var (
	statusOKStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// helpEntry renders a single "[key] description" help item.
func helpEntry(key, desc string) string {
	return helpKeyStyle.Render("["+key+"]") + " " + helpDescStyle.Render(desc)
}

// Layout constants
const (
	defaultTerminalWidth  = 80
	defaultTerminalHeight = 24
	minPaneWidth          = 20
)
