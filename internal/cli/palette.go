package cli

import (
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/domain"
)

// Palette is the colour scheme for one theme. Colours are ANSI 256 codes.
type Palette struct {
	Text    lipgloss.Color
	Faint   lipgloss.Color
	Header  lipgloss.Color
	Accent  lipgloss.Color
	Done    lipgloss.Color
	Running lipgloss.Color
	Overdue lipgloss.Color

	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}

// DarkPalette suits dark terminal backgrounds.
var DarkPalette = Palette{
	Text:    lipgloss.Color("252"),
	Faint:   lipgloss.Color("245"),
	Header:  lipgloss.Color("255"),
	Accent:  lipgloss.Color("75"),
	Done:    lipgloss.Color("114"),
	Running: lipgloss.Color("220"),
	Overdue: lipgloss.Color("196"),

	High:   lipgloss.Color("208"),
	Medium: lipgloss.Color("75"),
	Low:    lipgloss.Color("245"),
}

// LightPalette suits light terminal backgrounds.
var LightPalette = Palette{
	Text:    lipgloss.Color("235"),
	Faint:   lipgloss.Color("243"),
	Header:  lipgloss.Color("16"),
	Accent:  lipgloss.Color("25"),
	Done:    lipgloss.Color("28"),
	Running: lipgloss.Color("130"),
	Overdue: lipgloss.Color("160"),

	High:   lipgloss.Color("166"),
	Medium: lipgloss.Color("25"),
	Low:    lipgloss.Color("243"),
}

// PaletteFor picks the palette for theme. Unknown themes get the dark one.
func PaletteFor(theme domain.Theme) Palette {
	if theme == domain.ThemeLight {
		return LightPalette
	}
	return DarkPalette
}

// PriorityColor returns the colour for p, or Text for unknown priorities.
func (p Palette) PriorityColor(priority domain.Priority) lipgloss.Color {
	switch priority {
	case domain.PriorityHigh:
		return p.High
	case domain.PriorityMedium:
		return p.Medium
	case domain.PriorityLow:
		return p.Low
	default:
		return p.Text
	}
}
