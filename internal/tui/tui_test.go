package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldrane/inkmark/internal/recent"
)

func TestDroppedPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"/home/me/notes.md", "/home/me/notes.md", true},
		{"  /tmp/a.md \n", "/tmp/a.md", true},
		{"~/notes/today.md", "~/notes/today.md", true},
		{"file:///home/me/doc.md", "/home/me/doc.md", true},
		{"just some pasted prose", "", false},
		{"/one.md\n/two.md", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := droppedPath(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func testEntries() []recent.Entry {
	return []recent.Entry{
		{Path: "/home/me/notes/standup.md", DisplayName: "standup.md"},
		{Path: "/home/me/notes/roadmap.md", DisplayName: "roadmap.md"},
		{Path: "/tmp/scratch.txt", DisplayName: "scratch.txt"},
	}
}

func TestPickerFuzzyNarrowsList(t *testing.T) {
	p := newOpenPicker(nil, 100, 30)
	p.setEntries(testEntries())
	require.Len(t, p.matches, 3)

	p.input.SetValue("roadmap")
	p.refilter()
	require.Len(t, p.matches, 1)
	assert.Equal(t, "/home/me/notes/roadmap.md", p.entries[p.matches[0]].Path)
}

func TestPickerChoosePrefersTypedPath(t *testing.T) {
	p := newOpenPicker(nil, 100, 30)
	p.setEntries(testEntries())

	p.input.SetValue("/elsewhere/ideas.md")
	p.refilter()
	path, ok := p.choose()
	require.True(t, ok)
	assert.Equal(t, "/elsewhere/ideas.md", path)
}

func TestPickerChooseHighlightedEntry(t *testing.T) {
	p := newOpenPicker(nil, 100, 30)
	p.setEntries(testEntries())
	p.cursor = 1

	path, ok := p.choose()
	require.True(t, ok)
	assert.Equal(t, "/home/me/notes/roadmap.md", path)
}

func TestPickerRejectsUnsupportedExtension(t *testing.T) {
	p := newOpenPicker(nil, 100, 30)
	p.setEntries(nil)
	p.input.SetValue("/tmp/archive.zip")
	p.refilter()

	done, path, _ := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, done, "picker must stay open on a rejected path")
	assert.Empty(t, path)
	assert.NotEmpty(t, p.errText)

	// A supported path still goes through afterwards.
	p.input.SetValue("/tmp/fine.md")
	p.refilter()
	done, path, _ = p.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.Equal(t, "/tmp/fine.md", path)
}

func TestSaveAsValidation(t *testing.T) {
	m := newSaveAsModal("untitled.md", nil, 100, 30)

	m.input.SetValue("   ")
	done, _, _ := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, done)
	assert.NotEmpty(t, m.errText)

	m.input.SetValue("report.pdf")
	done, _, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, done)

	m.input.SetValue("report.md")
	done, path, _ := m.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, done)
	assert.Equal(t, "report.md", path)
}

func TestSaveAsEscCancels(t *testing.T) {
	m := newSaveAsModal("untitled.md", nil, 100, 30)
	done, path, _ := m.update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, done)
	assert.Empty(t, path)
}

type recordingSender struct {
	msgs chan tea.Msg
}

func (r *recordingSender) Send(m tea.Msg) { r.msgs <- m }

func TestBridgeOpenFileRoundTrip(t *testing.T) {
	sender := &recordingSender{msgs: make(chan tea.Msg, 1)}
	b := &Bridge{}
	b.SetProgram(sender)

	type result struct {
		path string
		err  error
	}
	got := make(chan result, 1)
	go func() {
		path, err := b.OpenFile(context.Background())
		got <- result{path: path, err: err}
	}()

	select {
	case raw := <-sender.msgs:
		req, ok := raw.(openFileRequestMsg)
		require.True(t, ok)
		req.resp <- "/tmp/picked.md"
	case <-time.After(2 * time.Second):
		t.Fatal("bridge never posted the open request")
	}

	select {
	case res := <-got:
		require.NoError(t, res.err)
		assert.Equal(t, "/tmp/picked.md", res.path)
	case <-time.After(2 * time.Second):
		t.Fatal("OpenFile never returned")
	}
}

func TestBridgeSaveFileCancelledContext(t *testing.T) {
	sender := &recordingSender{msgs: make(chan tea.Msg, 1)}
	b := &Bridge{}
	b.SetProgram(sender)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.SaveFile(ctx, "untitled.md")
	assert.ErrorIs(t, err, context.Canceled)
}
