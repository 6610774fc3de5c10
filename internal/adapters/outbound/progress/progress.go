// Package progress draws scan progress bars on an interactive stderr.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/grammarops/grammarops/internal/domain"
)

// Manager implements domain.Progress with progressbar.
type Manager struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// New returns a bar-drawing manager when enabled and stderr is a terminal,
// and a no-op otherwise.
func New(enabled bool) domain.Progress {
	if enabled && IsInteractive(os.Stderr) {
		return NewWithWriter(os.Stderr)
	}
	return domain.NoopProgress{}
}

// NewWithWriter draws bars on w unconditionally.
func NewWithWriter(w io.Writer) *Manager {
	return &Manager{writer: w}
}

// IsInteractive reports whether f is attached to a terminal and CI is unset.
func IsInteractive(f *os.File) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (m *Manager) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(m.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	m.tasks = append(m.tasks, bar)
	return &task{bar: bar}
}

func (m *Manager) Close() {
	for _, bar := range m.tasks {
		_ = bar.Finish()
	}
	m.tasks = nil
}

type task struct {
	bar *progressbar.ProgressBar
}

func (t *task) Increment(n int) {
	_ = t.bar.Add(n)
}

func (t *task) Complete() {
	_ = t.bar.Finish()
}
