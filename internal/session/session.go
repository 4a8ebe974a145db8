// Package session owns the live document buffer and its derived view
// state. It never performs disk I/O; every transition returns the
// messages that must be forwarded to the host controller, so the state
// machine stays testable without a running UI.
package session

import (
	"github.com/veldrane/inkmark/internal/document"
	"github.com/veldrane/inkmark/internal/msgbus"
)

// ViewMode selects the pane layout.
type ViewMode int

const (
	ModeEdit ViewMode = iota
	ModePreview
	ModeSplit
)

func (m ViewMode) String() string {
	switch m {
	case ModePreview:
		return "preview"
	case ModeSplit:
		return "split"
	default:
		return "edit"
	}
}

// Effect is the outcome of a transition: messages to emit toward the
// host, and whether the preview pane must be re-rendered.
type Effect struct {
	Emit     []msgbus.UIMsg
	Rerender bool
}

// Session is the sandboxed side of the document. The authoritative path
// lives with the host; the session only caches display names. The
// optimistic name is set when a save-as is answered and reconciled by
// the confirmed name on acknowledgement.
type Session struct {
	content        string
	dirty          bool
	mode           ViewMode
	confirmedName  string
	optimisticName string
}

func New() *Session {
	return &Session{confirmedName: document.UntitledName}
}

func (s *Session) Content() string { return s.content }
func (s *Session) Dirty() bool     { return s.dirty }
func (s *Session) Mode() ViewMode  { return s.mode }

// DisplayName prefers the optimistic name until the host confirms.
func (s *Session) DisplayName() string {
	if s.optimisticName != "" {
		return s.optimisticName
	}
	return s.confirmedName
}

func (s *Session) ConfirmedDisplayName() string  { return s.confirmedName }
func (s *Session) OptimisticDisplayName() string { return s.optimisticName }

// ApplyEdit replaces the buffer with the edited value. DirtyChanged is
// emitted only on the clean → dirty edge, never per keystroke. The
// preview re-renders only when it is visible alongside the editor.
func (s *Session) ApplyEdit(content string) Effect {
	if content == s.content {
		return Effect{}
	}
	s.content = content
	var eff Effect
	if !s.dirty {
		s.dirty = true
		eff.Emit = append(eff.Emit, msgbus.DirtyChanged{Dirty: true})
	}
	eff.Rerender = s.mode == ModeSplit
	return eff
}

// SetViewMode switches the layout. Entering preview or split requires a
// fresh render of the current buffer; returning to edit does not.
func (s *Session) SetViewMode(m ViewMode) Effect {
	s.mode = m
	return Effect{Rerender: m == ModePreview || m == ModeSplit}
}

// RequestOpenPath validates the extension before the host is ever asked
// to read the path; rejected files produce zero read attempts.
func (s *Session) RequestOpenPath(path string) (Effect, error) {
	if err := document.CheckSupported(path); err != nil {
		return Effect{}, err
	}
	return Effect{Emit: []msgbus.UIMsg{msgbus.OpenPathRequested{Path: path}}}, nil
}

// HandleHost applies one host → UI message.
func (s *Session) HandleHost(m msgbus.HostMsg) Effect {
	switch msg := m.(type) {
	case msgbus.Opened:
		// Wholesale replacement; the user did not dirty this content.
		s.content = msg.Content
		s.confirmedName = msg.DisplayName
		s.optimisticName = ""
		s.dirty = false
		return Effect{
			Emit:     []msgbus.UIMsg{msgbus.DirtyChanged{Dirty: false}},
			Rerender: true,
		}
	case msgbus.SaveRequested:
		// Hand over the buffer; only the later Saved ack clears dirty.
		return Effect{Emit: []msgbus.UIMsg{msgbus.ContentForSave{Content: s.content}}}
	case msgbus.SaveAsRequested:
		s.optimisticName = document.DisplayName(msg.Path)
		return Effect{Emit: []msgbus.UIMsg{
			msgbus.ContentForSaveAs{Content: s.content, Path: msg.Path},
		}}
	case msgbus.Saved:
		s.confirmedName = msg.DisplayName
		s.optimisticName = ""
		s.dirty = false
		return Effect{Emit: []msgbus.UIMsg{msgbus.DirtyChanged{Dirty: false}}}
	}
	return Effect{}
}
