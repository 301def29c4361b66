package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBrowserFileSelectionReturnsMessage(t *testing.T) {
	dir := tempDirWith(t, map[string]string{
		"song.mp3": "data",
	})

	m := NewBrowser(dir)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected selection command")
	}

	selected, ok := cmd().(BrowserSelectedMsg)
	if !ok {
		t.Fatalf("expected BrowserSelectedMsg, got %T", cmd())
	}
	if selected.Path != filepath.Join(dir, "song.mp3") {
		t.Fatalf("expected song.mp3 in %s, got %q", dir, selected.Path)
	}
}

func TestBrowserCancelReturnsMessage(t *testing.T) {
	m := NewBrowser(tempDirWith(t, nil))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(BrowserCancelledMsg); !ok {
		t.Fatalf("expected BrowserCancelledMsg, got %T", cmd())
	}
}

func TestBrowserListsEveryFileAudioFirst(t *testing.T) {
	dir := tempDirWith(t, map[string]string{
		"a-notes.txt": "hello",
		"b-track.ogg": "data",
		".hidden":     "x",
	})

	m := NewBrowser(dir)
	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected two visible files, got %d", len(items))
	}
	if first := items[0].(fileItem); first.name != "b-track.ogg" {
		t.Fatalf("expected audio file first, got %q", first.name)
	}
	if second := items[1].(fileItem); second.name != "a-notes.txt" {
		t.Fatalf("expected non-audio file to stay selectable, got %q", second.name)
	}
}

func TestBrowserMissingDirectory(t *testing.T) {
	m := NewBrowser(filepath.Join(t.TempDir(), "missing"))
	if m.Error() == nil {
		t.Fatal("expected error for missing directory")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected any key to close a broken picker")
	}
	if _, ok := cmd().(BrowserCancelledMsg); !ok {
		t.Fatal("expected BrowserCancelledMsg")
	}
}

func tempDirWith(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestBrowserTitleListsSupportedFormats(t *testing.T) {
	m := NewBrowser(t.TempDir())
	for _, ext := range []string{".mp3", ".wav", ".flac", ".ogg"} {
		if !strings.Contains(m.list.Title, ext) {
			t.Fatalf("expected picker title to mention %s, got %q", ext, m.list.Title)
		}
	}
}
