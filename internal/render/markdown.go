// Package render turns markdown into styled terminal output. Failures
// never cross the package boundary: a broken renderer degrades to a
// plaintext placeholder instead of surfacing an application error.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer converts a markdown string to displayable output.
type Renderer interface {
	Render(markdown string, width int) string
}

// Glamour renders with a fixed standard style to avoid slow terminal
// background detection at startup.
type Glamour struct {
	Style string
}

func NewGlamour(style string) *Glamour {
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	return &Glamour{Style: style}
}

// Render implements Renderer. Any error or panic from the underlying
// renderer yields a placeholder around the raw text.
func (g *Glamour) Render(markdown string, width int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = placeholder(markdown, fmt.Sprintf("renderer panic: %v", r))
		}
	}()
	if markdown == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.Style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return placeholder(markdown, err.Error())
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return placeholder(markdown, err.Error())
	}
	return strings.TrimRight(rendered, "\n")
}

// placeholder is the inline fragment shown when rendering fails.
func placeholder(markdown, reason string) string {
	return "(preview unavailable: " + reason + ")\n\n" + markdown
}

// Func adapts a plain function to Renderer, mostly for tests.
type Func func(markdown string, width int) string

func (f Func) Render(markdown string, width int) string { return f(markdown, width) }

