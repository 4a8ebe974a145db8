package document

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// UntitledName is shown while a buffer has no backing file.
const UntitledName = "Untitled"

// DefaultSaveName is the suggested filename for untitled documents.
const DefaultSaveName = "untitled.md"

// supportedExtensions is the set of file extensions the editor opens.
// Checked in the UI before the host is ever asked to read the path.
var supportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mkd":      true,
	".txt":      true,
}

// ErrUnsupported reports a rejected extension by name.
type ErrUnsupported struct{ Ext string }

func (e ErrUnsupported) Error() string {
	if e.Ext == "" {
		return "unsupported file type: no extension"
	}
	return fmt.Sprintf("unsupported file type: %s", e.Ext)
}

// CheckSupported rejects paths whose extension is outside the supported set.
func CheckSupported(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return ErrUnsupported{Ext: ext}
	}
	return nil
}

// DisplayName derives the name shown in the title bar from a path.
// An empty path means an unsaved buffer.
func DisplayName(path string) string {
	if strings.TrimSpace(path) == "" {
		return UntitledName
	}
	return filepath.Base(path)
}

// Checksum returns a BLAKE3 hex digest of the document content.
// Recorded alongside recent-document entries so a reopened file can be
// flagged when it changed on disk since the last session.
func Checksum(content string) string {
	h := blake3.New()
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}
