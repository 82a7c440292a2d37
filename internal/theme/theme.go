package theme

import "github.com/charmbracelet/lipgloss"

// Palette entries (ANSI 256).
const (
	colorAccent = lipgloss.Color("33")
	colorOK     = lipgloss.Color("34")
	colorText   = lipgloss.Color("249")
	colorDim    = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("241")
	colorIndex  = lipgloss.Color("238")
	colorError  = lipgloss.Color("196")
)

// Styles groups the Lip Gloss styles of the gallery view.
type Styles struct {
	Header *lipgloss.Style
	Footer *lipgloss.Style

	Loading *lipgloss.Style
	Status  *lipgloss.Style
	Info    *lipgloss.Style
	Error   *lipgloss.Style

	Item      *lipgloss.Style
	ItemIndex *lipgloss.Style
	Pager     *lipgloss.Style

	Input       *lipgloss.Style
	Prompt      *lipgloss.Style
	Placeholder *lipgloss.Style
	Cursor      *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(lipgloss.NewStyle().Foreground(colorDim).Bold(true)),
	Footer: ptr(lipgloss.NewStyle().Foreground(colorFaint)),

	Loading: ptr(lipgloss.NewStyle().Foreground(colorAccent).Italic(true)),
	Status:  ptr(lipgloss.NewStyle().Foreground(colorOK)),
	Info:    ptr(lipgloss.NewStyle().Foreground(colorText)),
	Error:   ptr(lipgloss.NewStyle().Foreground(colorError).Bold(true)),

	Item:      ptr(lipgloss.NewStyle().Foreground(colorText)),
	ItemIndex: ptr(lipgloss.NewStyle().Foreground(colorIndex)),
	Pager:     ptr(lipgloss.NewStyle().Foreground(colorDim)),

	Input:       ptr(lipgloss.NewStyle().Foreground(colorText)),
	Prompt:      ptr(lipgloss.NewStyle().Foreground(colorOK).Bold(true)),
	Placeholder: ptr(lipgloss.NewStyle().Foreground(colorFaint)),
	Cursor:      ptr(lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(colorAccent)),
}

// Default returns the shared style set.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
