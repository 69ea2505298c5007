// Package ui styles zhistdb's terminal output. Styling is dropped when the
// stream is not a terminal, NO_COLOR is set, or TERM=dumb.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type UI struct {
	enabled bool

	dim   lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	error lipgloss.Style
	label lipgloss.Style
}

func New(out *os.File) UI {
	enabled := shouldStyle(out)
	r := lipgloss.NewRenderer(out)

	return UI{
		enabled: enabled,

		dim:   r.NewStyle().Faint(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		error: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		label: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#559db6", Dark: "#a3ddef"}).Bold(true),
	}
}

func shouldStyle(out *os.File) bool {
	if out == nil {
		return false
	}
	if !term.IsTerminal(int(out.Fd())) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	return true
}

func (u UI) Dim(s string) string   { return u.render(u.dim, s) }
func (u UI) OK(s string) string    { return u.render(u.ok, s) }
func (u UI) Warn(s string) string  { return u.render(u.warn, s) }
func (u UI) Error(s string) string { return u.render(u.error, s) }
func (u UI) Label(s string) string { return u.render(u.label, s) }

// Done prefixes msg with a success mark.
func (u UI) Done(msg string) string { return u.OK("✓") + " " + msg }

// Failed prefixes msg with a failure mark.
func (u UI) Failed(msg string) string { return u.Error("✗") + " " + msg }

// Field renders a "name: value" line with an aligned, styled name.
func (u UI) Field(name, value string) string {
	return u.Label(padRight(name+":", 8)) + " " + value
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func (u UI) render(style lipgloss.Style, s string) string {
	if !u.enabled {
		return s
	}
	return style.Render(s)
}
