package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/ripple/internal/media"
)

// BrowserSelectedMsg is sent when a file is picked.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg is sent when the picker is closed without a choice.
type BrowserCancelledMsg struct{}

type fileItem struct {
	dir  string
	name string
	ext  string
}

func (i fileItem) Title() string { return i.name }

func (i fileItem) Description() string {
	if media.IsSupportedExt(i.ext) {
		return i.ext
	}
	return i.ext + " (not audio?)"
}

func (i fileItem) FilterValue() string { return i.name }

func (i fileItem) path() string { return filepath.Join(i.dir, i.name) }

// BrowserModel lists the files of one directory. Every regular file is
// offered; whether it is really audio is decided when it is loaded.
type BrowserModel struct {
	list list.Model
	dir  string
	err  error
}

// NewBrowser scans dir for files.
func NewBrowser(dir string) BrowserModel {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BrowserModel{dir: dir, err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var items []list.Item
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		items = append(items, fileItem{
			dir:  dir,
			name: e.Name(),
			ext:  strings.ToLower(filepath.Ext(e.Name())),
		})
	}
	sort.SliceStable(items, func(a, b int) bool {
		return audioRank(items[a]) < audioRank(items[b])
	})

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(accentColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(accentColor)

	l := list.New(items, delegate, 80, 20)
	l.Title = "open file (" + media.SupportedExtsList() + ")"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	return BrowserModel{list: l, dir: dir}
}

// audio files first, everything else after, each group in directory order
func audioRank(it list.Item) int {
	if f, ok := it.(fileItem); ok && media.IsSupportedExt(f.ext) {
		return 0
	}
	return 1
}

func (m BrowserModel) Error() error {
	return m.err
}

func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.err != nil {
			return m, cancelBrowser
		}
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			item, ok := m.list.SelectedItem().(fileItem)
			if !ok {
				return m, nil
			}
			path := item.path()
			return m, func() tea.Msg { return BrowserSelectedMsg{Path: path} }
		case "q", "esc", "ctrl+c":
			return m, cancelBrowser
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func cancelBrowser() tea.Msg { return BrowserCancelledMsg{} }

func (m BrowserModel) View() string {
	if m.err != nil {
		s := "\n"
		s += "  " + headerStyle.Render("open file") + "\n\n"
		s += "  " + statusStyle.Render(m.err.Error()) + "\n\n"
		s += "  " + helpStyle.Render("any key to go back") + "\n"
		return s
	}
	return m.list.View()
}
