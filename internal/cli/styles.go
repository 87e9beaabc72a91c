package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	// Accent style for query names and highlights
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for ids, revisions, hints
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for headings
	boldStyle = lipgloss.NewStyle().Bold(true)
)

// painter styles text only when writing to a terminal, so piped output and
// test buffers stay plain.
type painter struct {
	enabled bool
}

func newPainter(w io.Writer) painter {
	f, ok := w.(*os.File)
	if !ok {
		return painter{}
	}
	return painter{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

func (p painter) render(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}

func (p painter) accent(s string) string { return p.render(accentStyle, s) }
func (p painter) muted(s string) string  { return p.render(mutedStyle, s) }
func (p painter) bold(s string) string   { return p.render(boldStyle, s) }
