package view

import "github.com/charmbracelet/lipgloss"

// FooterViewState holds the strings needed to render the footer section.
type FooterViewState struct {
	InnerW     int
	FooterH    int
	PromptLine string
	StatusLine string
	HelpLine   string
	Bg         lipgloss.Color
}

// RenderFooter renders the prompt, status and help lines. When the footer
// has fewer than three rows the prompt line is dropped first.
func RenderFooter(state FooterViewState) string {
	if state.FooterH <= 0 {
		return ""
	}

	s := state.StatusLine + "\n" + state.HelpLine
	if state.FooterH >= 3 {
		s = state.PromptLine + "\n" + s
	}
	return PlaceBox(state.InnerW, state.FooterH, lipgloss.Bottom, s, state.Bg)
}
