// Package cliui provides reusable terminal UI helpers (spinners, step indicators,
// rank colouring, markdown rendering) for pixelo CLI commands.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	KeyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	NameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

	hotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	warmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	coldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// spinnerFrames matches bubbletea's spinner.Dot pattern used in the play TUI.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Rank bands for RankStyle.
const (
	HotRank  = 300
	WarmRank = 1500
)

// Step prints an animated spinner while fn runs, then replaces it with
// a ✓ or ✗ checkmark and elapsed time.
func Step(w io.Writer, msg string, fn func() error) error {
	return StepProgress(w, msg, func(func(done, total int)) error { return fn() })
}

// StepProgress is Step for long running work that reports progress. The
// callback handed to fn may be called from any goroutine; the latest
// done/total pair is shown next to msg.
func StepProgress(w io.Writer, msg string, fn func(progress func(done, total int)) error) error {
	done := make(chan struct{})
	stopped := make(chan struct{})
	var mu sync.Mutex
	var counts atomic.Value
	counts.Store("")

	progress := func(d, t int) {
		counts.Store(fmt.Sprintf(" %s", StepStyle.Render(fmt.Sprintf("%d/%d", d, t))))
	}

	go func() {
		defer close(stopped)
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s%s",
				spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]),
				msg,
				counts.Load().(string),
			)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
				frame++
			}
		}
	}()

	start := time.Now()
	err := fn(progress)
	elapsed := time.Since(start)

	close(done)
	<-stopped

	mu.Lock()
	fmt.Fprintf(w, "\r\033[K  %s %s %s\n",
		Mark(err),
		msg,
		StepStyle.Render(fmt.Sprintf("(%s)", FormatDuration(elapsed))),
	)
	mu.Unlock()

	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// RankStyle colours a rank by how close it is to the target.
func RankStyle(rank int) lipgloss.Style {
	switch {
	case rank < HotRank:
		return hotStyle
	case rank < WarmRank:
		return warmStyle
	default:
		return coldStyle
	}
}

// RenderMarkdown renders markdown content for terminal display using glamour.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return rendered, nil
}
