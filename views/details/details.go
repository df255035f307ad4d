package details

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// OpenSeaURL is the marketplace page of one token
func OpenSeaURL(contract, tokenID string) string {
	return fmt.Sprintf("https://opensea.io/assets/ethereum/%s/%s", strings.ToLower(contract), tokenID)
}

// Nav returns the navigation bar for the details view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("←/→") + " previous/next",
		styles.Key("y") + " copy token id",
		styles.Key("o") + " copy OpenSea link",
		styles.Key("Esc") + " back",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Render renders the token details view. art is the rendered image, empty when
// none is available.
func Render(t indexer.OwnedToken, art string, copiedMsg string) string {
	h := styles.TitleStyle.Render(t.Name())

	// OSC 8 link to the marketplace page
	linkStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := helpers.Hyperlink(OpenSeaURL(t.ContractAddress, t.TokenID), linkStyle.Render("View on OpenSea"))
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	label := lipgloss.NewStyle().Foreground(styles.CMuted).Width(12)
	value := lipgloss.NewStyle().Foreground(styles.CText)
	row := func(k, v string) string {
		return label.Render(k) + value.Render(v)
	}

	facts := []string{
		row("Token ID", t.TokenID),
		row("Contract", helpers.ShortenAddr(t.ContractAddress)),
		row("Quantity", fmt.Sprintf("%d", t.Balance)),
		row("Vintage", t.Vintage()),
		row("Revealed", yesNo(t.Revealed)),
		row("Redeemed", yesNo(t.Redeemed)),
	}
	if t.HasLabel {
		facts = append(facts, row("Label", t.Attributes[indexer.TraitLabel]))
	}

	top := strings.Join(facts, "\n")
	if art != "" {
		top = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(top), art)
	}

	lines := []string{h, sub, "", top, ""}

	if len(t.Attributes) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No attributes in token metadata."))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("Attributes"))
		for _, k := range slices.Sorted(maps.Keys(t.Attributes)) {
			lines = append(lines, fmt.Sprintf("%s  %s",
				lipgloss.NewStyle().Foreground(styles.CAccent).Render(k),
				value.Render(t.Attributes[k]),
			))
		}
	}

	if t.ImageURL != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CMuted).Render("Image ")+helpers.Hyperlink(t.ImageURL, linkStyle.Render(truncate(t.ImageURL, 60))))
	}

	for _, b := range t.Banners() {
		lines = append(lines, "", styles.WarnBannerStyle.Render(b.String()))
	}

	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
