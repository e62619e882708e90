package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorPrimary = lipgloss.Color("39")  // Cyan/blue
	ColorMuted   = lipgloss.Color("241") // Gray
	ColorTitle   = lipgloss.Color("228") // Bright yellow
	ColorGreen   = lipgloss.Color("82")  // Green for balances
	ColorWarning = lipgloss.Color("220") // Yellow for notices
)

// Shared styles
var (
	LabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().Foreground(ColorTitle)

	MoneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// field renders a "Label: value" pair, padding the label to width.
func field(label string, width int, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-*s", width, label+":")) + " " + value
}
