package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages into a running program. *tea.Program
// satisfies it; tests substitute a recorder.
type Sender interface {
	Send(tea.Msg)
}

// Bridge adapts the host controller's dialog and affordance hooks onto
// the running program. The host goroutine blocks inside OpenFile and
// SaveFile until the user answers the modal (or ctx is cancelled);
// everything else is fire-and-forget. SetProgram must run before the
// host loop starts.
type Bridge struct {
	p Sender
}

func (b *Bridge) SetProgram(p Sender) { b.p = p }

// Messages the bridge posts into the program.
type (
	openFileRequestMsg struct {
		resp chan string
	}
	saveFileRequestMsg struct {
		suggested string
		resp      chan string
	}
	errorNoticeMsg struct {
		title   string
		message string
	}
	dirtyAffordanceMsg struct {
		dirty bool
	}
	representedFileMsg struct {
		path string
	}
)

// OpenFile shows the file picker and waits for the chosen path. An
// empty path means the user cancelled.
func (b *Bridge) OpenFile(ctx context.Context) (string, error) {
	resp := make(chan string, 1)
	b.p.Send(openFileRequestMsg{resp: resp})
	select {
	case path := <-resp:
		return path, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SaveFile shows the save-as prompt seeded with a suggested file name.
func (b *Bridge) SaveFile(ctx context.Context, suggested string) (string, error) {
	resp := make(chan string, 1)
	b.p.Send(saveFileRequestMsg{suggested: suggested, resp: resp})
	select {
	case path := <-resp:
		return path, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Error surfaces a host-side failure as a dismissable notice.
func (b *Bridge) Error(title, message string) {
	b.p.Send(errorNoticeMsg{title: title, message: message})
}

// SetDirty mirrors the buffer's dirty flag onto the window chrome.
func (b *Bridge) SetDirty(dirty bool) {
	b.p.Send(dirtyAffordanceMsg{dirty: dirty})
}

// SetRepresentedFile records the window's on-disk document.
func (b *Bridge) SetRepresentedFile(path string) {
	b.p.Send(representedFileMsg{path: path})
}
