// Package styles holds the lipgloss palette and styles used by the CLI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/stevedore/internal/domain"
)

// Palette.
var (
	ColorPrimary   = lipgloss.Color("#00ccff")
	ColorSuccess   = lipgloss.Color("#00ff88")
	ColorWarning   = lipgloss.Color("#fbbf24")
	ColorError     = lipgloss.Color("#ff4444")
	ColorInfo      = lipgloss.Color("#a78bfa")
	ColorText      = lipgloss.Color("#e5e5e5")
	ColorTextMuted = lipgloss.Color("#737373")
	ColorBorder    = lipgloss.Color("#404040")
)

// Status glyphs. Plain unicode so they render without a patched font.
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "i"
	IconSkipped = "-"
	IconBullet  = "▸"
	IconUp      = "●"
	IconAbsent  = "○"
	IconMoving  = "◐"
)

// Theme groups the composed styles.
var Theme = struct {
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableBorder lipgloss.Style

	ListItem   lipgloss.Style
	ListBullet lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Body:    lipgloss.NewStyle().Foreground(ColorText),
	Muted:   lipgloss.NewStyle().Foreground(ColorTextMuted),
	Bold:    lipgloss.NewStyle().Bold(true).Foreground(ColorText),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Info:    lipgloss.NewStyle().Foreground(ColorInfo),

	TableHeader: lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1),
	TableCell:   lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1),
	TableBorder: lipgloss.NewStyle().Foreground(ColorBorder),

	ListItem:   lipgloss.NewStyle().Foreground(ColorText).PaddingLeft(1),
	ListBullet: lipgloss.NewStyle().Foreground(ColorPrimary),
}

// RenderState returns a colored glyph and label for an image state.
func RenderState(state domain.ImageState) string {
	switch state {
	case domain.ImageStateUp:
		return Theme.Success.Render(IconUp + " " + string(state))
	case domain.ImageStateTransitioning:
		return Theme.Warning.Render(IconMoving + " " + string(state))
	default:
		return Theme.Muted.Render(IconAbsent + " " + string(state))
	}
}

// RenderListItem returns a bulleted line.
func RenderListItem(item string) string {
	return Theme.ListBullet.Render(IconBullet) + Theme.ListItem.Render(item)
}

// RenderError returns a styled error message.
func RenderError(msg string) string {
	return Theme.Error.Render(IconError + " " + msg)
}

// RenderSuccess returns a styled success message.
func RenderSuccess(msg string) string {
	return Theme.Success.Render(IconSuccess + " " + msg)
}

// RenderWarning returns a styled warning message.
func RenderWarning(msg string) string {
	return Theme.Warning.Render(IconWarning + " " + msg)
}

// RenderInfo returns a styled info message.
func RenderInfo(msg string) string {
	return Theme.Info.Render(IconInfo + " " + msg)
}

// RenderSkipped returns a muted message for work that never started.
func RenderSkipped(msg string) string {
	return Theme.Muted.Render(IconSkipped + " " + msg)
}
