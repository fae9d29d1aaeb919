package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/deckhand/internal/tui/theme"
)

const (
	railWidth   = 9 // "09:00 AM" plus a gap
	minColWidth = 14
	maxColWidth = 28
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorFg     lipgloss.Color
	colorMuted  lipgloss.Color
	colorAccent lipgloss.Color

	TitleStyle lipgloss.Style

	// Column headers
	HeaderStyle       lipgloss.Style
	HeaderActiveStyle lipgloss.Style // column under the cursor
	HeaderTargetStyle lipgloss.Style // drop target while dragging

	TimeRailStyle lipgloss.Style

	// Course blocks
	CourseStyle    lipgloss.Style
	CourseAltStyle lipgloss.Style // alternate shade for neighbours in a column
	CursorStyle    lipgloss.Style
	DragStyle      lipgloss.Style // course that is picked up
	EmptyCellStyle lipgloss.Style

	StatusInfoStyle    lipgloss.Style
	StatusSuccessStyle lipgloss.Style
	StatusWarningStyle lipgloss.Style
	HelpStyle          lipgloss.Style
	DirtyStyle         lipgloss.Style
}

// NewStyles creates styles from the given theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	return &Styles{
		colorBg:     p.Bg,
		colorFg:     p.Fg,
		colorMuted:  p.FgMuted,
		colorAccent: p.Accent,

		TitleStyle: base.Foreground(p.Accent).Bold(true),

		HeaderStyle:       base.Background(p.BgHighlight).Foreground(p.FgMuted).Bold(true),
		HeaderActiveStyle: base.Background(p.BgHighlight).Foreground(p.Accent).Bold(true),
		HeaderTargetStyle: base.Background(p.Drag).Foreground(p.TextOnDrag).Bold(true),

		TimeRailStyle: base.Foreground(p.FgMuted),

		CourseStyle:    base.Background(p.CourseBg).Foreground(p.TextOnCourse),
		CourseAltStyle: base.Background(p.CourseBgAlt).Foreground(p.TextOnCourse),
		CursorStyle:    base.Background(p.BgSelection).Foreground(p.Fg).Bold(true),
		DragStyle:      base.Background(p.DragBg).Foreground(p.TextOnDrag).Bold(true),
		EmptyCellStyle: base.Foreground(p.BgHighlight),

		StatusInfoStyle:    base.Foreground(p.Fg),
		StatusSuccessStyle: base.Foreground(p.Success),
		StatusWarningStyle: base.Foreground(p.Warning).Bold(true),
		HelpStyle:          base.Foreground(p.FgMuted),
		DirtyStyle:         base.Foreground(p.Warning),
	}
}
