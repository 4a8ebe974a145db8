package host

import "context"

// Dialog is the user-facing picker/error surface. The controller awaits
// each call to completion on its own loop; implementations are free to
// service the prompt asynchronously elsewhere. An empty returned path
// means the user cancelled.
type Dialog interface {
	// OpenFile prompts for an existing file to open.
	OpenFile(ctx context.Context) (string, error)
	// SaveFile prompts for a target path, pre-filling suggested.
	SaveFile(ctx context.Context, suggested string) (string, error)
	// Error reports a failure to the user. Blocking from the
	// controller's point of view is not required.
	Error(title, message string)
}

// Affordance mirrors document state onto the window chrome: the
// unsaved-changes marker and the represented file. All methods are
// best-effort; failures are ignored.
type Affordance interface {
	SetDirty(dirty bool)
	SetRepresentedFile(path string)
}

// NopAffordance satisfies Affordance for headless use and tests.
type NopAffordance struct{}

func (NopAffordance) SetDirty(bool)             {}
func (NopAffordance) SetRepresentedFile(string) {}

// RecentList records opened and saved documents. Best-effort.
type RecentList interface {
	Touch(path, displayName, checksum string) error
}

// NopRecent satisfies RecentList when no store is configured.
type NopRecent struct{}

func (NopRecent) Touch(string, string, string) error { return nil }
