package tui

import (
	lipglossv2 "github.com/charmbracelet/lipgloss/v2"
)

// renderOverlay composes a centered modal on top of the given base view string.
func (m Model) renderOverlay(base, fg string, overlayW, overlayH int) string {
	termW, termH := m.width, m.height
	if termW <= 0 {
		termW = defaultTerminalWidth
	}
	if termH <= 0 {
		termH = defaultTerminalHeight
	}
	x := (termW - overlayW) / 2
	y := (termH - overlayH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	dimBase := lipglossv2.NewStyle().Faint(true).Render(base)

	baseLayer := lipglossv2.NewLayer(dimBase).
		Width(termW).
		Height(termH)
	fgLayer := lipglossv2.NewLayer(fg).
		Width(overlayW).
		Height(overlayH).
		X(x).
		Y(y)

	return lipglossv2.NewCanvas(baseLayer, fgLayer).Render()
}
