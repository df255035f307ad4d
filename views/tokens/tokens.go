package tokens

import (
	"fmt"
	"strings"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// SkeletonRows is the number of placeholder rows shown while loading
const SkeletonRows = 3

// Options carries what the list needs beyond the tokens themselves
type Options struct {
	Width         int
	CollectionURL string
	// Thumbs maps token id to rendered image art
	Thumbs map[string]string
	// ImageFailed marks tokens whose image could not be shown
	ImageFailed map[string]bool
	// Cursor highlights one token; -1 for none
	Cursor int
	// Selectable marks the label selector as editable
	Selectable bool
}

// Render draws the token list for (tokens, loading, connected). Tokens that
// need a label come first.
func Render(toks []indexer.OwnedToken, loading, connected bool, opts Options) string {
	width := helpers.Max(30, opts.Width)

	if loading {
		rows := make([]string, 0, SkeletonRows)
		for i := 0; i < SkeletonRows; i++ {
			rows = append(rows, skeletonRow(width))
		}
		return strings.Join(rows, "\n")
	}

	if !connected {
		title := styles.TitleStyle.Render("Connect your wallet")
		sub := styles.SubtitleStyle.Render("Connect your wallet to see all your WineBottleClub NFTs.")
		return lipgloss.JoinVertical(lipgloss.Center, title, sub)
	}

	if len(toks) == 0 {
		link := lipgloss.NewStyle().Foreground(styles.CAccent2).Underline(true).Render("WineBottleClub")
		title := styles.TitleStyle.Render("No NFTs Found")
		sub := styles.SubtitleStyle.Render("We couldn't find any NFTs from the ") +
			helpers.Hyperlink(opts.CollectionURL, link) +
			styles.SubtitleStyle.Render(" in this wallet.")
		return lipgloss.JoinVertical(lipgloss.Center, title, sub)
	}

	toks = indexer.SortForDisplay(toks)
	cards := make([]string, 0, len(toks))
	for i, t := range toks {
		cards = append(cards, Card(t, i == opts.Cursor, width, opts))
	}
	return strings.Join(cards, "\n")
}

// Card renders a single token
func Card(t indexer.OwnedToken, focused bool, width int, opts Options) string {
	name := lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(t.Name())
	muted := styles.SubtitleStyle

	info := strings.Join([]string{
		name,
		muted.Render("Vintage: " + t.Vintage()),
		muted.Render(fmt.Sprintf("Quantity: %d", t.Balance)),
		muted.Render("Token ID: " + t.TokenID),
	}, "\n")

	image := placeholder()
	if art, ok := opts.Thumbs[t.TokenID]; ok && t.ImageURL != "" && !opts.ImageFailed[t.TokenID] {
		image = art
	}

	infoWidth := helpers.Max(10, width-lipgloss.Width(image)-8)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(infoWidth).Render(info),
		image,
	)

	parts := []string{top}
	if t.NeedsLabel {
		parts = append(parts, labelSelector(t.SelectedLabel, focused && opts.Selectable))
	}
	for _, b := range t.Banners() {
		parts = append(parts, styles.WarnBannerStyle.Render(b.String()))
	}

	style := styles.CardStyle
	if focused {
		style = styles.SelectedCardStyle
	}
	return style.Width(helpers.Max(0, width-2)).Render(strings.Join(parts, "\n"))
}

func labelSelector(selected string, focused bool) string {
	label := styles.FieldLabelStyle.Render("Select Wine Label")
	value := selected
	if value == "" {
		value = "Select a wine label"
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.CMuted).
		Padding(0, 1).
		Render(value + " ▾")
	if focused {
		box += "  " + styles.HotkeyStyle.Render("press ") + styles.Key("s") + styles.HotkeyStyle.Render(" to choose")
	}
	return label + "\n" + box
}

func placeholder() string {
	return lipgloss.NewStyle().
		Width(14).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Background(styles.CPanel).
		Foreground(styles.CMuted).
		Render("No Image")
}

func skeletonRow(width int) string {
	bar := func(n int) string {
		return styles.SkeletonStyle.Render(strings.Repeat("█", helpers.Max(1, n)))
	}
	body := strings.Join([]string{
		bar(width / 3),
		bar(width / 4),
		bar(width / 5),
	}, "\n")
	return styles.CardStyle.Width(helpers.Max(0, width-2)).Render(body)
}

// Nav returns the navigation bar for the gallery
func Nav(width int, connected bool) string {
	items := []string{
		styles.Key("↑/↓") + " select",
		styles.Key("t") + " transfer bottles",
	}
	if connected {
		items = append(items, styles.Key("enter")+" details", styles.Key("r")+" refresh")
	}
	items = append(items, styles.Key("p")+" providers")
	items = append(items, []string{
		styles.Key("l") + " debug log",
		styles.Key("?") + " more keys",
		styles.Key("q") + " quit",
	}...)
	return styles.NavStyle.Width(width).Render(strings.Join(items, "   "))
}
