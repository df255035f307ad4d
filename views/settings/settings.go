package settings

import (
	"strings"

	"cellar-transfer-tui/config"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the key hints for the provider list
func Nav(adding bool) string {
	if adding {
		return strings.Join([]string{
			styles.Key("Enter") + " next/save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	}
	return strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " use",
		styles.Key("a") + " add",
		styles.Key("d") + " delete",
		styles.Key("Esc") + " back",
	}, "   ")
}

// Render renders the saved wallet provider endpoints. current is the URL in
// use, which may come from the environment or a flag rather than the list.
func Render(entries []config.ProviderEntry, current string, selectedIdx int) string {
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)
	lines := []string{styles.TitleStyle.Render("Wallet Providers"), ""}

	if current != "" {
		lines = append(lines, muted.Render("In use: ")+lipgloss.NewStyle().Foreground(styles.CText).Render(current), "")
	}

	if len(entries) == 0 {
		lines = append(lines, muted.Render("No wallet providers saved."))
		lines = append(lines, "")
		lines = append(lines, muted.Render("Press ")+styles.Key("a")+muted.Render(" to add a websocket, http or IPC endpoint."))
		return strings.Join(lines, "\n")
	}

	for i, p := range entries {
		marker := muted.Render("○ ")
		if p.URL == current {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := muted
		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		lines = append(lines, marker+nameStyle.Render(p.Name))
		lines = append(lines, "  "+urlStyle.Render(p.URL))
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
