// Package ui renders journal views for the terminal.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Accent  = lipgloss.Color("#FF69B4")
	Muted   = lipgloss.Color("#8A8A8A")
	Success = lipgloss.Color("#8BC34A")
	Warning = lipgloss.Color("#FFC107")
	Danger  = lipgloss.Color("#E53935")
)

// Styles holds the text styles shared by every view.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the styles for a renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(Accent),
		Header:  r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(Muted),
		Success: r.NewStyle().Foreground(Success),
		Warning: r.NewStyle().Foreground(Warning),
		Error:   r.NewStyle().Foreground(Danger).Bold(true),
	}
}

// Renderer turns summaries into terminal text. Color support is detected
// from the output it was created for; a non-terminal writer gets plain text.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles Styles
}

func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{lg: lg, styles: NewStyles(lg)}
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() Styles {
	return r.styles
}

func (r *Renderer) Title(s string) string   { return r.styles.Title.Render(s) }
func (r *Renderer) Success(s string) string { return r.styles.Success.Render(s) }
func (r *Renderer) Warning(s string) string { return r.styles.Warning.Render(s) }
func (r *Renderer) Error(s string) string   { return r.styles.Error.Render(s) }
func (r *Renderer) Muted(s string) string   { return r.styles.Muted.Render(s) }

// swatch renders text on a background of the given hex color.
func (r *Renderer) swatch(color, text string) string {
	return r.lg.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#101F38")).
		Render(text)
}

// dot renders a colored block marker.
func (r *Renderer) dot(color string) string {
	return r.lg.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}
