package log

import (
	"fmt"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight is the number of log lines shown for a terminal of height h:
// never fewer than 5, at most a third of the screen or 15.
func PanelHeight(h int) int {
	available := helpers.Max(5, h-10)
	return helpers.Min(available, helpers.Min(h/3, 15))
}

// Render draws the developer log panel
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	panelHeight := PanelHeight(height)
	vp.Height = panelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(panelHeight + 2)

	if !ready {
		return border.Render(title + "\n\n" + "initializing...\n" + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += styles.SubtitleStyle.Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}
	return border.Render(title + "\n\n" + vp.View())
}
