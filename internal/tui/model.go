package tui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veldrane/inkmark/internal/host"
	"github.com/veldrane/inkmark/internal/msgbus"
	"github.com/veldrane/inkmark/internal/recent"
	"github.com/veldrane/inkmark/internal/render"
	"github.com/veldrane/inkmark/internal/session"
	"github.com/veldrane/inkmark/internal/winstate"
)

// Options carries everything the editor model needs. The session owns
// buffer state, the host owns the disk; the model only translates
// terminal events into calls on the two and draws the result.
type Options struct {
	Session  *session.Session
	Bus      *msgbus.Bus
	Host     *host.Controller
	Renderer render.Renderer
	Recent   *recent.Store
	WinState *winstate.Store
	Logger   *log.Logger

	InitialPath     string
	DefaultView     session.ViewMode
	MaxPreviewWidth int
	RecentLimit     int
}

// Model is the root Bubble Tea model for inkmark.
type Model struct {
	sess     *session.Session
	bus      *msgbus.Bus
	sub      *msgbus.Subscription
	host     *host.Controller
	renderer render.Renderer
	recent   *recent.Store
	win      *winstate.Store
	log      *log.Logger

	maxPreviewWidth int
	recentLimit     int
	initialPath     string

	// Terminal dimensions
	width  int
	height int

	// Editor pane
	editor      textarea.Model
	preview     viewport.Model
	focusEditor bool

	// Host affordance mirror (window chrome only, never gates saves)
	representedPath string
	hostDirty       bool

	// Modals; at most one is active, notice wins over the rest
	picker *openPicker
	saveAs *saveAsModal
	notice *noticeModal

	// Status message (shown briefly)
	statusMsg string
	statusErr bool
}

// NewModel builds the root model and subscribes it to host messages.
func NewModel(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Start writing markdown..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()

	bounds := winstate.DefaultBounds()
	if opts.WinState != nil {
		bounds = opts.WinState.Load()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "tui ", log.LstdFlags)
	}

	m := Model{
		sess:            opts.Session,
		bus:             opts.Bus,
		sub:             opts.Bus.SubscribeUI(),
		host:            opts.Host,
		renderer:        opts.Renderer,
		recent:          opts.Recent,
		win:             opts.WinState,
		log:             logger,
		maxPreviewWidth: opts.MaxPreviewWidth,
		recentLimit:     opts.RecentLimit,
		initialPath:     opts.InitialPath,
		width:           bounds.Width,
		height:          bounds.Height,
		editor:          ta,
		focusEditor:     true,
	}
	m.sess.SetViewMode(opts.DefaultView)
	m.relayout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(m.windowTitle()),
		m.waitForHost(),
		m.editor.Cursor.BlinkCmd(),
	}
	if m.initialPath != "" {
		path := m.initialPath
		cmds = append(cmds, func() tea.Msg {
			m.host.RequestOpenPath(path)
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// --- Messages and commands ---

type hostEnvelopeMsg struct {
	msg msgbus.HostMsg
}

type recentLoadedMsg struct {
	entries []recent.Entry
	err     error
}

// waitForHost blocks on the subscription until the host speaks, then
// re-arms itself from Update.
func (m Model) waitForHost() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		return hostEnvelopeMsg{msg: <-sub.C()}
	}
}

func (m Model) loadRecent() tea.Cmd {
	store, limit := m.recent, m.recentLimit
	return func() tea.Msg {
		if store == nil {
			return recentLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		entries, err := store.List(ctx, limit)
		return recentLoadedMsg{entries: entries, err: err}
	}
}

// forwardToHost pushes session emissions onto the bus off the render
// path.
func (m Model) forwardToHost(msgs []msgbus.UIMsg) tea.Cmd {
	if len(msgs) == 0 {
		return nil
	}
	bus := m.bus
	return func() tea.Msg {
		for _, um := range msgs {
			bus.SendToHost(um)
		}
		return nil
	}
}

func (m Model) hostCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// applyEffect forwards emissions and refreshes the preview when the
// session asked for it.
func (m *Model) applyEffect(eff session.Effect) tea.Cmd {
	if eff.Rerender {
		m.refreshPreview()
	}
	return m.forwardToHost(eff.Emit)
}

// --- Layout ---

func (m *Model) relayout() {
	taWidth, vpWidth, paneHeight := m.paneLayout()
	m.editor.SetWidth(taWidth)
	m.editor.SetHeight(paneHeight)
	m.preview = viewport.New(vpWidth, paneHeight)
	if m.sess.Mode() != session.ModeEdit {
		m.refreshPreview()
	}
}

// paneLayout returns editor width, preview width, and pane height for
// the current terminal size and view mode.
func (m Model) paneLayout() (int, int, int) {
	usable := m.width - 8
	if usable < minPaneWidth {
		usable = minPaneWidth
	}
	paneHeight := m.height - 7
	if paneHeight < 5 {
		paneHeight = 5
	}
	switch m.sess.Mode() {
	case session.ModeSplit:
		left := usable / 2
		if left < minPaneWidth {
			left = minPaneWidth
		}
		right := usable - left - 2
		if right < minPaneWidth {
			right = minPaneWidth
		}
		return left, right, paneHeight
	default:
		return usable, usable, paneHeight
	}
}

func (m *Model) refreshPreview() {
	_, vpWidth, _ := m.paneLayout()
	w := vpWidth
	if m.maxPreviewWidth > 0 && w > m.maxPreviewWidth {
		w = m.maxPreviewWidth
	}
	m.preview.SetContent(m.renderer.Render(m.sess.Content(), w))
}

// --- Title and status ---

func (m Model) windowTitle() string {
	title := m.sess.DisplayName() + " — inkmark"
	if m.sess.Dirty() || m.hostDirty {
		title = "● " + title
	}
	return title
}

func (m Model) refreshTitle() tea.Cmd {
	return tea.SetWindowTitle(m.windowTitle())
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// --- Update ---

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		if m.win != nil {
			if err := m.win.Save(winstate.Bounds{Width: msg.Width, Height: msg.Height}); err != nil {
				m.log.Printf("window state save: %v", err)
			}
		}
		var cmd tea.Cmd
		switch {
		case m.notice != nil:
			m.notice.resizeForTerm(msg.Width, msg.Height)
		case m.picker != nil:
			_, _, cmd = m.picker.update(msg)
		case m.saveAs != nil:
			_, _, cmd = m.saveAs.update(msg)
		}
		return m, cmd

	case hostEnvelopeMsg:
		return m.onHostMsg(msg.msg)

	case openFileRequestMsg:
		m.picker = newOpenPicker(msg.resp, m.width, m.height)
		m.editor.Blur()
		return m, tea.Batch(m.loadRecent(), m.picker.input.Cursor.BlinkCmd())

	case saveFileRequestMsg:
		m.saveAs = newSaveAsModal(msg.suggested, msg.resp, m.width, m.height)
		m.editor.Blur()
		return m, m.saveAs.input.Cursor.BlinkCmd()

	case errorNoticeMsg:
		m.notice = newNoticeModal(msg.title, msg.message, false, m.width, m.height)
		return m, nil

	case dirtyAffordanceMsg:
		m.hostDirty = msg.dirty
		return m, m.refreshTitle()

	case representedFileMsg:
		m.representedPath = msg.path
		return m, nil

	case recentLoadedMsg:
		if msg.err != nil {
			m.log.Printf("recent list: %v", msg.err)
		}
		if m.picker != nil {
			m.picker.setEntries(msg.entries)
		}
		return m, nil
	}

	// Notice modal swallows everything until dismissed.
	if m.notice != nil {
		if key, ok := msg.(tea.KeyMsg); ok {
			if m.notice.confirm && key.String() == "y" {
				return m, tea.Quit
			}
			m.notice = nil
			m.restoreFocus()
		}
		return m, nil
	}
	if m.picker != nil {
		return m.updatePicker(msg)
	}
	if m.saveAs != nil {
		return m.updateSaveAs(msg)
	}

	return m.updateEditor(msg)
}

func (m Model) onHostMsg(hm msgbus.HostMsg) (tea.Model, tea.Cmd) {
	eff := m.sess.HandleHost(hm)
	cmds := []tea.Cmd{m.waitForHost()}

	switch x := hm.(type) {
	case msgbus.Opened:
		m.editor.SetValue(x.Content)
		m.setStatus("Opened "+x.DisplayName, false)
		cmds = append(cmds, m.refreshTitle())
	case msgbus.Saved:
		m.setStatus("Saved "+x.DisplayName+" ✓", false)
		cmds = append(cmds, m.refreshTitle())
	}

	if cmd := m.applyEffect(eff); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, path, cmd := m.picker.update(msg)
	if !done {
		return m, cmd
	}
	respond := m.picker.respond
	m.picker = nil
	m.restoreFocus()
	if respond != nil {
		respond <- path
		return m, nil
	}
	if path == "" {
		return m, nil
	}
	eff, err := m.sess.RequestOpenPath(path)
	if err != nil {
		m.notice = newNoticeModal("Cannot Open File", err.Error(), false, m.width, m.height)
		return m, nil
	}
	return m, m.applyEffect(eff)
}

func (m Model) updateSaveAs(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, path, cmd := m.saveAs.update(msg)
	if !done {
		return m, cmd
	}
	respond := m.saveAs.respond
	m.saveAs = nil
	m.restoreFocus()
	respond <- path
	return m, nil
}

func (m *Model) restoreFocus() {
	if m.sess.Mode() != session.ModePreview && m.focusEditor {
		m.editor.Focus()
	}
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		// Terminal drag-drop arrives as a pasted path.
		if key.Paste {
			if path, ok := droppedPath(string(key.Runes)); ok {
				eff, err := m.sess.RequestOpenPath(path)
				if err != nil {
					m.notice = newNoticeModal("Cannot Open File", err.Error(), false, m.width, m.height)
					return m, nil
				}
				return m, m.applyEffect(eff)
			}
		}
		switch key.String() {
		case "ctrl+c", "ctrl+q":
			if m.sess.Dirty() {
				m.notice = newNoticeModal("Unsaved Changes",
					m.sess.DisplayName()+" has unsaved changes.", true, m.width, m.height)
				return m, nil
			}
			return m, tea.Quit
		case "ctrl+s":
			return m, m.hostCmd(m.host.RequestSave)
		case "ctrl+g":
			return m, m.hostCmd(m.host.RequestSaveAs)
		case "ctrl+o":
			return m, m.hostCmd(m.host.RequestOpen)
		case "ctrl+r":
			return m.cycleViewMode()
		case "tab":
			if m.sess.Mode() == session.ModeSplit {
				m.focusEditor = !m.focusEditor
				if m.focusEditor {
					m.editor.Focus()
				} else {
					m.editor.Blur()
				}
				return m, nil
			}
		}
	}

	var cmds []tea.Cmd
	if m.sess.Mode() == session.ModePreview || (m.sess.Mode() == session.ModeSplit && !m.focusEditor) {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	if after := m.editor.Value(); after != before {
		wasDirty := m.sess.Dirty()
		if fwd := m.applyEffect(m.sess.ApplyEdit(after)); fwd != nil {
			cmds = append(cmds, fwd)
		}
		if m.sess.Dirty() != wasDirty {
			cmds = append(cmds, m.refreshTitle())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) cycleViewMode() (tea.Model, tea.Cmd) {
	var next session.ViewMode
	switch m.sess.Mode() {
	case session.ModeEdit:
		next = session.ModeSplit
	case session.ModeSplit:
		next = session.ModePreview
	default:
		next = session.ModeEdit
	}
	eff := m.sess.SetViewMode(next)
	m.relayout()
	if next == session.ModePreview {
		m.editor.Blur()
		m.focusEditor = false
	} else if !m.focusEditor || next == session.ModeEdit {
		m.focusEditor = true
		m.editor.Focus()
	}
	return m, m.applyEffect(eff)
}

// droppedPath reports whether pasted text is a lone filesystem path.
func droppedPath(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "file://")
	if s == "" || strings.ContainsAny(s, "\n\r") {
		return "", false
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "~/") {
		return s, true
	}
	return "", false
}

// --- View ---

// View implements tea.Model.
func (m Model) View() string {
	title := titleStyle.Render("inkmark") + "  " + m.docLabel() + "  " +
		mutedStyle.Render("["+m.sess.Mode().String()+"]")

	taWidth, vpWidth, paneHeight := m.paneLayout()

	var body string
	switch m.sess.Mode() {
	case session.ModeEdit:
		body = focusedPaneStyle.Width(taWidth).Height(paneHeight).Render(
			paneLabelStyle.Render("Editor") + "\n" + m.editor.View())
	case session.ModePreview:
		body = previewPaneStyle.Width(vpWidth).Height(paneHeight).Render(
			paneLabelStyle.Render("Preview") + "\n" + m.preview.View())
	case session.ModeSplit:
		left := editorPaneStyle
		right := previewPaneStyle
		if m.focusEditor {
			left = focusedPaneStyle
		} else {
			right = focusedPaneStyle
		}
		leftPane := left.Width(taWidth).Height(paneHeight).Render(
			paneLabelStyle.Render("Editor") + "\n" + m.editor.View())
		rightPane := right.Width(vpWidth).Height(paneHeight).Render(
			paneLabelStyle.Render("Preview") + "\n" + m.preview.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	}

	status := ""
	if m.statusMsg != "" {
		if m.statusErr {
			status = statusErrStyle.Render(m.statusMsg)
		} else {
			status = statusOKStyle.Render(m.statusMsg)
		}
	}

	help := helpEntry("ctrl+s", "save") + "  " +
		helpEntry("ctrl+g", "save as") + "  " +
		helpEntry("ctrl+o", "open") + "  " +
		helpEntry("ctrl+r", "view") + "  " +
		helpEntry("ctrl+q", "quit")
	if m.sess.Mode() == session.ModeSplit {
		help = helpEntry("tab", "focus") + "  " + help
	}

	base := appStyle.MaxWidth(m.width).MaxHeight(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, body, status, help))

	switch {
	case m.notice != nil:
		return m.renderOverlay(base, m.notice.View(), m.notice.width+2, m.notice.height+2)
	case m.picker != nil:
		return m.renderOverlay(base, m.picker.View(), m.picker.width+2, m.picker.height+2)
	case m.saveAs != nil:
		return m.renderOverlay(base, m.saveAs.View(), m.saveAs.width+2, m.saveAs.height+2)
	}
	return base
}

// docLabel is the in-app document indicator: name plus dirty marker,
// with the on-disk path alongside once one exists.
func (m Model) docLabel() string {
	label := m.sess.DisplayName()
	if m.sess.Dirty() {
		label = dirtyMarkStyle.Render("● ") + label
	}
	if m.representedPath != "" {
		label += "  " + mutedStyle.Render(m.representedPath)
	}
	return label
}
