// Package host is the privileged side of the editor: the only component
// that touches the filesystem, drives dialogs, and knows the
// authoritative current path. It talks to the UI session exclusively
// through the message bus and processes one message or command at a
// time, so saves against the current path are always serialized.
package host

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/veldrane/inkmark/internal/document"
	"github.com/veldrane/inkmark/internal/msgbus"
)

const savePerm os.FileMode = 0o644

// Controller owns currentPath and all disk access.
type Controller struct {
	bus        *msgbus.Bus
	dialog     Dialog
	affordance Affordance
	recent     RecentList
	log        *log.Logger

	cmds chan func(ctx context.Context)

	mu          sync.Mutex
	currentPath string
}

// New constructs a controller with injected collaborators. Nil
// affordance/recent degrade to no-ops so tests can instantiate freshly
// with only what they assert on.
func New(bus *msgbus.Bus, dialog Dialog, affordance Affordance, recent RecentList, logger *log.Logger) *Controller {
	if affordance == nil {
		affordance = NopAffordance{}
	}
	if recent == nil {
		recent = NopRecent{}
	}
	if logger == nil {
		logger = log.New(os.Stderr, "host ", log.LstdFlags)
	}
	return &Controller{
		bus:        bus,
		dialog:     dialog,
		affordance: affordance,
		recent:     recent,
		log:        logger,
		cmds:       make(chan func(ctx context.Context), 16),
	}
}

// CurrentPath is the authoritative on-disk location, empty for untitled.
func (c *Controller) CurrentPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPath
}

func (c *Controller) setCurrentPath(p string) {
	c.mu.Lock()
	c.currentPath = p
	c.mu.Unlock()
}

// Run processes commands and UI messages until ctx is done. Exactly one
// flow executes at a time; a slow disk call stalls only the host queue,
// never the UI loop.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-c.cmds:
			c.safely(ctx, fn)
		case m := <-c.bus.ToHost():
			msg := m
			c.safely(ctx, func(ctx context.Context) { c.handleUI(ctx, msg) })
		}
	}
}

// safely keeps the event loop alive: a panicking handler is logged and
// surfaced as a generic error dialog instead of killing the window.
func (c *Controller) safely(ctx context.Context, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Printf("recovered from handler panic: %v", r)
			c.dialog.Error("Unexpected Error", fmt.Sprintf("%v", r))
		}
	}()
	fn(ctx)
}

// RequestOpen triggers the open flow with a native picker.
func (c *Controller) RequestOpen() {
	c.cmds <- func(ctx context.Context) { c.openFlow(ctx, "") }
}

// RequestOpenPath opens a literal path (drag-drop, launch args, or a
// second-instance relaunch).
func (c *Controller) RequestOpenPath(path string) {
	c.cmds <- func(ctx context.Context) { c.openFlow(ctx, path) }
}

// RequestSave saves to the current path, or falls through to save-as
// when the document is untitled.
func (c *Controller) RequestSave() {
	c.cmds <- func(ctx context.Context) { c.saveFlow(ctx) }
}

// RequestSaveAs always prompts for a target path first.
func (c *Controller) RequestSaveAs() {
	c.cmds <- func(ctx context.Context) { c.saveAsFlow(ctx) }
}

func (c *Controller) handleUI(ctx context.Context, m msgbus.UIMsg) {
	switch msg := m.(type) {
	case msgbus.ContentForSave:
		c.onContentForSave(msg.Content)
	case msgbus.ContentForSaveAs:
		c.onContentForSaveAs(msg.Content, msg.Path)
	case msgbus.DirtyChanged:
		// One-way mirror for the window affordance only; never used
		// to gate save decisions.
		c.affordance.SetDirty(msg.Dirty)
	case msgbus.OpenPathRequested:
		c.openFlow(ctx, msg.Path)
	}
}

// openFlow reads a file and hands it to the UI. On any failure the
// pre-operation state is fully preserved.
func (c *Controller) openFlow(ctx context.Context, path string) {
	if path == "" {
		picked, err := c.dialog.OpenFile(ctx)
		if err != nil {
			c.log.Printf("open dialog: %v", err)
			c.dialog.Error("Open Failed", err.Error())
			return
		}
		if picked == "" {
			return // cancelled
		}
		path = picked
	}
	data, err := os.ReadFile(path)
	if err != nil {
		c.log.Printf("open %s: %v", path, err)
		c.dialog.Error("Open Failed", fmt.Sprintf("Could not open %s: %v", path, err))
		return
	}
	name := document.DisplayName(path)
	c.setCurrentPath(path)
	c.affordance.SetRepresentedFile(path)
	c.affordance.SetDirty(false)
	if err := c.recent.Touch(path, name, document.Checksum(string(data))); err != nil {
		c.log.Printf("recent touch %s: %v", path, err)
	}
	c.bus.SendToUI(msgbus.Opened{Content: string(data), DisplayName: name})
	c.log.Printf("opened %s (%d bytes)", path, len(data))
}

func (c *Controller) saveFlow(ctx context.Context) {
	if c.CurrentPath() == "" {
		c.saveAsFlow(ctx)
		return
	}
	c.bus.SendToUI(msgbus.SaveRequested{})
}

func (c *Controller) saveAsFlow(ctx context.Context) {
	suggested := document.DefaultSaveName
	if cur := c.CurrentPath(); cur != "" {
		suggested = document.DisplayName(cur)
	}
	path, err := c.dialog.SaveFile(ctx, suggested)
	if err != nil {
		c.log.Printf("save dialog: %v", err)
		c.dialog.Error("Save Failed", err.Error())
		return
	}
	if path == "" {
		return // cancelled
	}
	c.bus.SendToUI(msgbus.SaveAsRequested{Path: path})
}

// onContentForSave writes the pushed buffer to the current path. Empty
// content is a valid document; a missing path is not.
func (c *Controller) onContentForSave(content string) {
	path := c.CurrentPath()
	if path == "" {
		c.saveRejected("no file path for save")
		return
	}
	c.writeAndAck(path, content, false)
}

func (c *Controller) onContentForSaveAs(content, path string) {
	if strings.TrimSpace(path) == "" {
		c.saveRejected("save-as reply carried no target path")
		return
	}
	c.writeAndAck(path, content, true)
}

// saveRejected reports an invalid save payload: error dialog, dirty
// affordance re-asserted, no write attempted.
func (c *Controller) saveRejected(reason string) {
	c.log.Printf("save rejected: %s", reason)
	c.dialog.Error("Save Failed", reason)
	c.affordance.SetDirty(true)
}

// writeAndAck performs the durable write and, only on success, commits
// the path change and sends the Saved acknowledgement. The dirty
// affordance is always re-asserted on failure, even if it was already
// set, so the user is never told a save succeeded when it did not.
func (c *Controller) writeAndAck(path, content string, isSaveAs bool) {
	if err := WriteFileAtomic(path, []byte(content), savePerm); err != nil {
		c.log.Printf("save %s: %v", path, err)
		c.dialog.Error("Save Failed", fmt.Sprintf("Could not save %s: %v", path, err))
		c.affordance.SetDirty(true)
		return
	}
	name := document.DisplayName(path)
	if isSaveAs {
		c.setCurrentPath(path)
		if err := c.recent.Touch(path, name, document.Checksum(content)); err != nil {
			c.log.Printf("recent touch %s: %v", path, err)
		}
	}
	c.affordance.SetRepresentedFile(path)
	c.affordance.SetDirty(false)
	c.bus.SendToUI(msgbus.Saved{Path: path, DisplayName: name})
	c.log.Printf("saved %s (%d bytes)", path, len(content))
}
