package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

// fakeBackend records decode and play calls; files whose base name starts
// with "corrupt" fail to decode.
type fakeBackend struct {
	mu      sync.Mutex
	decoded []string
	plays   []playCall
	playErr error
}

type playCall struct {
	sample Sample
	volume float64
}

type fakeSample struct {
	path string
}

func (f *fakeBackend) Decode(path string) (Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decoded = append(f.decoded, path)
	if strings.HasPrefix(filepath.Base(path), "corrupt") {
		return nil, fmt.Errorf("bad header")
	}
	return &fakeSample{path: path}, nil
}

func (f *fakeBackend) Play(sample Sample, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays = append(f.plays, playCall{sample: sample, volume: volume})
	return f.playErr
}

func (f *fakeBackend) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.plays)
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func newTestLibrary(t *testing.T, dir string) (*Library, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	return NewLibrary(dir, backend, zap.NewNop()), backend
}

func TestReloadLoadsRecognizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click.wav")
	writeFile(t, dir, "typewriter.mp3")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "pack.keyclsound")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}

	lib, _ := newTestLibrary(t, dir)
	count, errs := lib.Reload()
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if count != 2 {
		t.Errorf("Expected 2 samples, got %d", count)
	}

	names := lib.List()
	if len(names) != 2 || names[0] != "click" || names[1] != "typewriter" {
		t.Errorf("Unexpected sample names: %v", names)
	}
}

func TestReloadSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "corrupt.wav")
	writeFile(t, dir, "good.wav")

	lib, _ := newTestLibrary(t, dir)
	count, errs := lib.Reload()

	if count != 1 {
		t.Errorf("Expected exactly 1 loaded sample, got %d", count)
	}
	if len(errs) != 1 {
		t.Fatalf("Expected exactly 1 decode error, got %d", len(errs))
	}

	var decodeErr *DecodeError
	if !errors.As(errs[0], &decodeErr) {
		t.Fatalf("Expected a DecodeError, got %T", errs[0])
	}
	if filepath.Base(decodeErr.Path) != "corrupt.wav" {
		t.Errorf("DecodeError should name the corrupt file, got %s", decodeErr.Path)
	}

	if !lib.Has("good") {
		t.Error("Valid sample should still be loaded")
	}
	if lib.Has("corrupt") {
		t.Error("Corrupt sample should not be loaded")
	}
}

func TestReloadMissingDirectory(t *testing.T) {
	lib, _ := newTestLibrary(t, filepath.Join(t.TempDir(), "absent"))
	count, errs := lib.Reload()
	if count != 0 || len(errs) != 0 {
		t.Errorf("Missing directory should load an empty set, got %d samples, %v", count, errs)
	}
}

func TestReloadNameCollisionLastWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click.mp3")
	writeFile(t, dir, "click.wav")

	lib, backend := newTestLibrary(t, dir)
	count, errs := lib.Reload()
	if len(errs) != 0 {
		t.Fatalf("Expected no errors, got %v", errs)
	}
	if count != 1 {
		t.Fatalf("Colliding names should collapse to 1 sample, got %d", count)
	}
	if len(backend.decoded) != 2 {
		t.Errorf("Both files should be decoded, got %d", len(backend.decoded))
	}

	// Directory entries scan in lexical order, so click.wav decodes after
	// click.mp3 and wins the name.
	if err := lib.Play("click", 0.5); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	sample := backend.plays[0].sample.(*fakeSample)
	if filepath.Base(sample.path) != "click.wav" {
		t.Errorf("Expected last-loaded click.wav to win, got %s", sample.path)
	}
}

func TestReloadReplacesSetAtomically(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "old.wav")

	lib, _ := newTestLibrary(t, dir)
	lib.Reload()
	if !lib.Has("old") {
		t.Fatal("Expected old sample to load")
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	writeFile(t, dir, "new.wav")
	lib.Reload()

	if lib.Has("old") {
		t.Error("Old sample should be discarded after reload")
	}
	if !lib.Has("new") {
		t.Error("New sample should be present after reload")
	}
}

func TestPlayAbsentNameIsNoOp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click.wav")

	lib, backend := newTestLibrary(t, dir)
	lib.Reload()

	if err := lib.Play("missing", 0.5); err != nil {
		t.Errorf("Play of an absent name should be a no-op, got %v", err)
	}
	if err := lib.Play("", 0.5); err != nil {
		t.Errorf("Play of an empty name should be a no-op, got %v", err)
	}
	if backend.playCount() != 0 {
		t.Errorf("Backend should not be invoked, got %d plays", backend.playCount())
	}
}

func TestPlayPassesVolume(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click.wav")

	lib, backend := newTestLibrary(t, dir)
	lib.Reload()

	if err := lib.Play("click", 0.3); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if backend.playCount() != 1 {
		t.Fatalf("Expected 1 play, got %d", backend.playCount())
	}
	if backend.plays[0].volume != 0.3 {
		t.Errorf("Expected volume 0.3, got %v", backend.plays[0].volume)
	}
}

func TestPlayReportsBackendError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "click.wav")

	lib, backend := newTestLibrary(t, dir)
	backend.playErr = fmt.Errorf("device gone")
	lib.Reload()

	if err := lib.Play("click", 0.5); err == nil {
		t.Error("Expected backend error to surface from Play")
	}
}

func TestRecognizedExtension(t *testing.T) {
	for _, ext := range []string{".wav", ".mp3", ".ogg", ".m4a"} {
		if !RecognizedExtension(ext) {
			t.Errorf("Expected %s to be recognized", ext)
		}
	}
	for _, ext := range []string{".txt", ".keyclsound", ".flac", ""} {
		if RecognizedExtension(ext) {
			t.Errorf("Expected %s to be rejected", ext)
		}
	}
}

func TestNopBackend(t *testing.T) {
	backend := NewNopBackend()
	sample, err := backend.Decode("whatever.wav")
	if err != nil {
		t.Fatalf("Nop decode should not fail: %v", err)
	}
	if err := backend.Play(sample, 0.5); err != nil {
		t.Errorf("Nop play should not fail: %v", err)
	}
}
