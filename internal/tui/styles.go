package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, trimmed to what the screen uses.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent = colorBlue
	colorError  = colorRed
	colorLink   = colorSapphire
	colorMuted  = colorOverlay1
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorSubtext0).Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface0).
			Padding(0, 2)

	rowStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(0, 1)
	rowTitleStyle   = lipgloss.NewStyle().Foreground(colorLavender).Bold(true)
	rowDescStyle    = lipgloss.NewStyle().Foreground(colorText)
	rowImageStyle   = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	rowNoImageStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
