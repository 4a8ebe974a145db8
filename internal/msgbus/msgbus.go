// Package msgbus is the asynchronous message channel between the host
// controller (filesystem side) and the UI session (buffer side). Each
// message is a typed value; there is no request/response correlation,
// so a request and its eventual acknowledgement are separate messages.
package msgbus

import "sync"

// HostMsg is a message travelling host → UI.
type HostMsg interface{ hostMsg() }

// UIMsg is a message travelling UI → host.
type UIMsg interface{ uiMsg() }

// Opened delivers a freshly loaded file to the UI.
type Opened struct {
	Content     string
	DisplayName string
}

// SaveRequested asks the UI to hand over its buffer for a save to the
// current path.
type SaveRequested struct{}

// SaveAsRequested asks the UI to hand over its buffer for a save at a
// new path.
type SaveAsRequested struct{ Path string }

// Saved confirms a completed write.
type Saved struct {
	Path        string
	DisplayName string
}

func (Opened) hostMsg()          {}
func (SaveRequested) hostMsg()   {}
func (SaveAsRequested) hostMsg() {}
func (Saved) hostMsg()           {}

// ContentForSave carries the buffer in response to SaveRequested.
type ContentForSave struct{ Content string }

// ContentForSaveAs carries the buffer and target path in response to
// SaveAsRequested.
type ContentForSaveAs struct {
	Content string
	Path    string
}

// DirtyChanged mirrors the unsaved-changes flag to the host. One-way;
// the host never uses it to gate save decisions.
type DirtyChanged struct{ Dirty bool }

// OpenPathRequested asks the host to open a literal path.
type OpenPathRequested struct{ Path string }

func (ContentForSave) uiMsg()    {}
func (ContentForSaveAs) uiMsg()  {}
func (DirtyChanged) uiMsg()      {}
func (OpenPathRequested) uiMsg() {}

const queueDepth = 64

// Bus connects exactly one host loop with at most one UI subscription.
// Sends are fire-and-forget: the host drains its queue continuously, and
// a UI that no longer drains has been torn down, so its messages are
// dropped rather than blocking the sender.
type Bus struct {
	mu     sync.Mutex
	toHost chan UIMsg
	uiSub  *Subscription
}

func New() *Bus {
	return &Bus{toHost: make(chan UIMsg, queueDepth)}
}

// ToHost is the host loop's receive side.
func (b *Bus) ToHost() <-chan UIMsg { return b.toHost }

// SendToHost queues a UI → host message.
func (b *Bus) SendToHost(m UIMsg) { b.toHost <- m }

// Subscription is the UI's revocable receive side. Re-creating the
// window closes the old subscription before installing a new one, so
// ownership of "who is listening" stays explicit.
type Subscription struct {
	bus  *Bus
	ch   chan HostMsg
	once sync.Once
}

// C receives host → UI messages until Close.
func (s *Subscription) C() <-chan HostMsg { return s.ch }

// Close detaches the subscription. Messages sent afterwards are dropped.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		if s.bus.uiSub == s {
			s.bus.uiSub = nil
		}
		s.bus.mu.Unlock()
	})
}

// SubscribeUI installs the UI listener, replacing any previous one.
func (b *Bus) SubscribeUI() *Subscription {
	sub := &Subscription{bus: b, ch: make(chan HostMsg, queueDepth)}
	b.mu.Lock()
	b.uiSub = sub
	b.mu.Unlock()
	return sub
}

// SendToUI queues a host → UI message for the active subscription, if any.
func (b *Bus) SendToUI(m HostMsg) {
	b.mu.Lock()
	sub := b.uiSub
	b.mu.Unlock()
	if sub == nil {
		return
	}
	select {
	case sub.ch <- m:
	default:
		// Subscriber stopped draining; treat as detached.
	}
}
