package accounts

import (
	"fmt"
	"strings"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// RenderList renders the connected accounts, marking the active one
func RenderList(addrs []common.Address, active common.Address, cursor int) string {
	if len(addrs) == 0 {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("No accounts exposed by the wallet.")
	}

	items := make([]string, 0, len(addrs))
	for i, addr := range addrs {
		hex := addr.Hex()
		var marker, shortAddr, fullAddr string
		var itemStyle lipgloss.Style

		if i == cursor {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			shortAddr = helpers.ShortenAddr(hex)
			fullAddr = lipgloss.NewStyle().Foreground(styles.CText).Render(hex)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			shortAddr = helpers.FadeString(helpers.ShortenAddr(hex), "#F25D94", "#EDFF82")
			fullAddr = helpers.FadeString(hex, "#7D5AFC", "#FF87D7")
		}
		if addr == active {
			shortAddr = "✓ " + shortAddr
		}
		items = append(items, marker+itemStyle.Render(shortAddr)+"\n  "+fullAddr)
	}
	return strings.Join(items, "\n\n")
}

// Render renders the account switcher popup body
func Render(addrs []common.Address, active common.Address, cursor int) string {
	header := styles.TitleStyle.Render("Accounts")
	subtitle := styles.SubtitleStyle.Render("Choose the account to display")
	status := styles.SubtitleStyle.Render(fmt.Sprintf("%d accounts", len(addrs)))
	help := styles.Key("↑/↓") + " move  " + styles.Key("Enter") + " select  " + styles.Key("Esc") + " close"

	return header + "\n" + subtitle + "\n\n" + RenderList(addrs, active, cursor) + "\n\n" + status + "\n" + help
}
