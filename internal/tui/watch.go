// Package tui provides the live tree view shown while a human edits
// task documents between the decompose and solve phases.
package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/jmhart/agenttree/internal/tree"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// treeMsg carries a freshly rendered tree after a filesystem event.
type treeMsg struct {
	rendered string
}

// watchErrMsg carries a watcher failure.
type watchErrMsg struct {
	err error
}

// WatchModel is the bubbletea model for the live tree view.
type WatchModel struct {
	root      string
	current   string
	watcher   *fsnotify.Watcher
	spinner   spinner.Model
	rendered  string
	updatedAt time.Time
	err       error
	quitting  bool
}

// NewWatch creates a model watching every directory under root.
func NewWatch(root, current string) (*WatchModel, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addRecursive(watcher, root); err != nil {
		watcher.Close()
		return nil, err
	}

	rendered, err := tree.Render(root, current)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &WatchModel{
		root:      root,
		current:   current,
		watcher:   watcher,
		spinner:   sp,
		rendered:  rendered,
		updatedAt: time.Now(),
	}, nil
}

// addRecursive watches dir and every subdirectory except hidden ones.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// Init implements tea.Model.
func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

// waitForEvent blocks on the next filesystem event and re-renders.
func (m *WatchModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}
				// New children directories must be watched as they appear.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = addRecursive(m.watcher, event.Name)
					}
				}
				rendered, err := tree.Render(m.root, m.current)
				if err != nil {
					return watchErrMsg{err: err}
				}
				return treeMsg{rendered: rendered}

			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// Update implements tea.Model.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.watcher.Close()
			return m, tea.Quit
		}

	case treeMsg:
		m.rendered = msg.rendered
		m.updatedAt = time.Now()
		return m, m.waitForEvent()

	case watchErrMsg:
		m.err = msg.err
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("agenttree watch") + " " + m.spinner.View() + "\n")
	b.WriteString(dimStyle.Render("watching "+m.root+" (last update "+m.updatedAt.Format("15:04:05")+")") + "\n\n")
	b.WriteString(m.rendered)
	b.WriteString("\n\n" + dimStyle.Render("edit task files freely; press q to quit"))
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render("watch error: "+m.err.Error()))
	}
	return b.String()
}
