package document

import (
	"errors"
	"strings"
	"testing"
)

func TestDisplayName(t *testing.T) {
	if got := DisplayName(""); got != UntitledName {
		t.Fatalf("DisplayName(\"\")=%q", got)
	}
	if got := DisplayName("   "); got != UntitledName {
		t.Fatalf("DisplayName(blank)=%q", got)
	}
	if got := DisplayName("/tmp/notes/readme.md"); got != "readme.md" {
		t.Fatalf("DisplayName=%q", got)
	}
}

func TestCheckSupported(t *testing.T) {
	for _, p := range []string{"a.md", "b.markdown", "c.MDOWN", "d.mkd", "plain.txt"} {
		if err := CheckSupported(p); err != nil {
			t.Fatalf("CheckSupported(%q)=%v", p, err)
		}
	}
	err := CheckSupported("image.png")
	if err == nil {
		t.Fatal("expected rejection for .png")
	}
	var ue ErrUnsupported
	if !errors.As(err, &ue) || ue.Ext != ".png" {
		t.Fatalf("err=%v", err)
	}
	if !strings.Contains(err.Error(), ".png") {
		t.Fatalf("message should name the extension: %q", err.Error())
	}
	if err := CheckSupported("noext"); err == nil {
		t.Fatal("expected rejection for missing extension")
	}
}

func TestChecksumDeterministic(t *testing.T) {
	a := Checksum("# Hi")
	b := Checksum("# Hi")
	if a != b {
		t.Fatalf("checksum not deterministic: %s vs %s", a, b)
	}
	if a == Checksum("# Hi!") {
		t.Fatal("distinct content must hash differently")
	}
	if len(a) != 64 {
		t.Fatalf("hex digest length=%d", len(a))
	}
}
