package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	warnColor    = lipgloss.Color("#F59E0B")
	mutedColor   = lipgloss.Color("#6B7280")
)

// palette holds the styles used for reports. The zero styles render text
// unchanged.
type palette struct {
	header lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	warn   lipgloss.Style
	muted  lipgloss.Style
	param  lipgloss.Style
}

func newPalette(color bool) palette {
	if !color {
		plain := lipgloss.NewStyle()
		return palette{header: plain, pass: plain, fail: plain, warn: plain, muted: plain, param: plain}
	}
	return palette{
		header: lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		pass:   lipgloss.NewStyle().Foreground(successColor),
		fail:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(warnColor),
		muted:  lipgloss.NewStyle().Foreground(mutedColor),
		param:  lipgloss.NewStyle().Foreground(warnColor).Bold(true),
	}
}

// isTerminal reports whether w is a terminal that should get colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
