package winstate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "bounds.json"))
	if got := s.Load(); got != DefaultBounds() {
		t.Fatalf("Load=%+v", got)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "state", "bounds.json"))
	want := Bounds{Width: 132, Height: 43, X: 10, Y: 5}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := s.Load(); got != want {
		t.Fatalf("Load=%+v want %+v", got, want)
	}
}

func TestCorruptRecordFallsBackSilently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounds.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := New(path).Load(); got != DefaultBounds() {
		t.Fatalf("Load=%+v", got)
	}
}

func TestNonsensicalGeometryFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounds.json")
	if err := os.WriteFile(path, []byte(`{"width":0,"height":-3}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := New(path).Load(); got != DefaultBounds() {
		t.Fatalf("Load=%+v", got)
	}
}
