// Package tui provides the Bubble Tea progress display for artifact
// downloads. The display is an observer over the fetch progress port;
// the pipeline itself never depends on it.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type progressMsg struct {
	transferred int64
	total       int64
}

type doneMsg struct {
	err error
}

type downloadModel struct {
	title       string
	bar         progress.Model
	transferred int64
	total       int64
	err         error
	quitting    bool
}

// Init implements tea.Model.
func (m downloadModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.transferred = msg.transferred
		m.total = msg.total
		return m, nil
	case doneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The transfer itself has no cancellation; quitting the
			// display only hides it.
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m downloadModel) View() string {
	if m.quitting {
		return ""
	}
	header := titleStyle.Render(m.title)
	if m.total > 0 {
		ratio := float64(m.transferred) / float64(m.total)
		counts := countStyle.Render(fmt.Sprintf("%d / %d bytes", m.transferred, m.total))
		return fmt.Sprintf("%s\n%s %s\n", header, m.bar.ViewAs(ratio), counts)
	}
	// Unknown length: counts only.
	return fmt.Sprintf("%s\n%s\n", header, countStyle.Render(fmt.Sprintf("%d bytes", m.transferred)))
}

// DownloadUI drives the progress display while a download runs. It
// doubles as the fetch progress sink.
type DownloadUI struct {
	program *tea.Program
}

// NewDownloadUI creates the display with the given title line.
func NewDownloadUI(title string) *DownloadUI {
	m := downloadModel{
		title: title,
		bar:   progress.New(progress.WithDefaultGradient()),
	}
	return &DownloadUI{program: tea.NewProgram(m)}
}

// Update implements the fetch progress port. Safe to call from the
// transfer goroutine.
func (u *DownloadUI) Update(transferred, total int64) {
	u.program.Send(progressMsg{transferred: transferred, total: total})
}

// Run displays the progress UI while fn executes, then returns fn's
// error. A display failure does not fail the work: fn still runs to
// completion and its error wins.
func (u *DownloadUI) Run(fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		err := fn()
		errCh <- err
		u.program.Send(doneMsg{err: err})
	}()

	if _, err := u.program.Run(); err != nil {
		// No usable terminal; wait for the work itself.
		return <-errCh
	}
	return <-errCh
}
