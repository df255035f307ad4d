package badge

import (
	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// State is everything the account badge displays
type State struct {
	Connected  bool
	Connecting bool
	Address    common.Address
	ENSName    string
	Network    string
}

// Render returns the badge: a connect prompt, or the connected account
func Render(s State) string {
	if !s.Connected {
		label := "Connect Wallet"
		if s.Connecting {
			label = "Connecting…"
		}
		return styles.PrimaryButtonStyle.Render(label) + " " + styles.HotkeyStyle.Render("(") + styles.Key("c") + styles.HotkeyStyle.Render(")")
	}

	name := helpers.ShortenAddr(s.Address.Hex())
	if s.ENSName != "" {
		name = s.ENSName
	}
	dot := lipgloss.NewStyle().Foreground(styles.CAccent).Render("●")
	out := dot + " " + lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(name)
	if s.Network != "" {
		out += " " + styles.SubtitleStyle.Render("· "+s.Network)
	}
	return out
}

// Help lists the badge actions for the current state
func Help(s State) string {
	if !s.Connected {
		return styles.Key("c") + " connect"
	}
	return styles.Key("a") + " accounts  " + styles.Key("y") + " copy address  " + styles.Key("x") + " disconnect"
}
