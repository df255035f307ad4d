package main

import (
	"strings"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/rpc"
	"cellar-transfer-tui/styles"
	"cellar-transfer-tui/views/accounts"
	"cellar-transfer-tui/views/badge"
	"cellar-transfer-tui/views/details"
	logview "cellar-transfer-tui/views/log"
	"cellar-transfer-tui/views/toast"
	"cellar-transfer-tui/views/tokens"
	"cellar-transfer-tui/views/transfer"
	"cellar-transfer-tui/wizard"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

// badgeState collects what the account badge shows
func (m *model) badgeState() badge.State {
	s := badge.State{Connecting: m.connecting}
	if addr, ok := m.session.Selected(); ok {
		s.Connected = true
		s.Address = addr
		s.ENSName = m.session.ENSName()
		if id := m.session.ChainID(); id != nil {
			s.Network = rpc.NetworkName(id)
		}
	}
	return s
}

// globalHeader renders badge | title | provider status
func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	st := m.badgeState()
	left := badge.Render(st)

	var statusIcon, statusText string
	statusColor := lipgloss.Color("#c01c28")
	switch {
	case m.provider == nil:
		statusIcon, statusText = "○", "No wallet provider"
	case m.connecting:
		statusIcon, statusText = "○", "Connecting..."
	case m.session.Err() != nil:
		statusIcon, statusText = "○", "Connection Failed"
	case m.session.Connected():
		statusIcon, statusText = "●", "Connected"
		statusColor = cAccent
	default:
		statusIcon, statusText = "○", "Not connected"
		statusColor = cMuted
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	title := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("WineBottleClub → InterCellar", "#B3446C", "#79C0FF"))

	totalOtherWidth := lipgloss.Width(left) + lipgloss.Width(right) + lipgloss.Width(title)

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = left + "\n" + title + "\n" + right
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = left + strings.Repeat(" ", max(1, leftPadding)) + title + strings.Repeat(" ", max(1, rightPadding)) + right
	}

	sub := badge.Help(st)
	if m.copiedMsg != "" {
		sub += "   " + lipgloss.NewStyle().Foreground(cAccent).Render("✓ "+m.copiedMsg)
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + sub + "\n" + separator
}

// refreshGallery re-renders the gallery into its viewport
func (m *model) refreshGallery() {
	opts := tokens.Options{
		Width:         m.galleryView.Width,
		CollectionURL: m.settings.CollectionURL,
		Thumbs:        m.thumbs,
		ImageFailed:   m.imageFailed,
		Cursor:        -1,
	}
	m.cardOffsets = m.cardOffsets[:0]

	if m.galleryLoading || !m.session.Connected() || len(m.gallery) == 0 {
		content := tokens.Render(m.gallery, m.galleryLoading, m.session.Connected(), opts)
		if !m.galleryLoading {
			content = lipgloss.Place(max(0, m.galleryView.Width), max(1, m.galleryView.Height), lipgloss.Center, lipgloss.Center, content)
		}
		m.galleryView.SetContent(content)
		return
	}

	m.galleryCursor = max(0, min(m.galleryCursor, len(m.gallery)-1))
	width := max(30, opts.Width)
	cards := make([]string, 0, len(m.gallery))
	line := 0
	for i, t := range m.gallery {
		card := tokens.Card(t, i == m.galleryCursor, width, opts)
		m.cardOffsets = append(m.cardOffsets, line)
		line += lipgloss.Height(card)
		cards = append(cards, card)
	}
	m.galleryView.SetContent(strings.Join(cards, "\n"))
}

// scrollToCursor keeps the selected card inside the gallery viewport
func (m *model) scrollToCursor() {
	if m.galleryCursor >= len(m.cardOffsets) {
		return
	}
	top := m.cardOffsets[m.galleryCursor]
	bottom := m.galleryView.TotalLineCount()
	if m.galleryCursor+1 < len(m.cardOffsets) {
		bottom = m.cardOffsets[m.galleryCursor+1]
	}
	switch {
	case top < m.galleryView.YOffset:
		m.galleryView.SetYOffset(top)
	case bottom > m.galleryView.YOffset+m.galleryView.Height:
		m.galleryView.SetYOffset(min(top, bottom-m.galleryView.Height))
	}
}

func (m *model) renderDetails() string {
	t := m.gallery[m.galleryCursor]
	art := ""
	if a, ok := m.thumbs[t.TokenID]; ok && !m.imageFailed[t.TokenID] {
		art = a
	}
	copied := ""
	if m.copiedMsg != "" {
		copied = "✓ " + m.copiedMsg
	}
	width := min(max(40, m.w-10), 90)
	body := details.Render(t, art, copied) + "\n\n" + details.Nav(width)
	dialog := dialogStyle.Width(width + 6).Render(body)
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *model) renderWizard() string {
	width := min(max(40, m.w-10), 96)
	inputs := make(map[wizard.Field]string, len(m.inputs))
	for i := range m.inputs {
		inputs[wizard.Field(i)] = m.inputs[i].View()
	}
	body := transfer.Render(transfer.Params{
		Wizard:         m.wiz,
		Inputs:         inputs,
		Focus:          m.focus,
		Cursor:         m.tokenCursor,
		MaxCards:       max(1, (m.h-16)/11),
		Thumbs:         m.thumbs,
		ImageFailed:    m.imageFailed,
		Spinner:        m.spin.View(),
		CollectionURL:  m.settings.CollectionURL,
		DestinationURL: m.settings.DestinationURL,
		QR:             m.qr,
		Width:          width,
	})
	if t := toast.Render(m.toast); t != "" {
		body += "\n\n" + t
	}
	if m.copiedMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(cAccent).Render("✓ "+m.copiedMsg)
	}
	dialog := dialogStyle.Width(width + 6).Render(body)
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *model) renderAccountListPopup() string {
	addr, _ := m.session.Selected()
	dialog := dialogStyle.Render(accounts.Render(m.session.Addresses(), addr, m.accountCursor))
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *model) renderLabelForm() string {
	dialog := dialogStyle.Width(min(max(40, m.w-10), 60)).Render(m.labelForm.View())
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialog)
}

// View implements tea.Model interface and renders the UI
func (m *model) View() string {
	if m.labelForm != nil {
		return m.renderLabelForm()
	}
	if m.showWizard {
		return m.renderWizard()
	}
	if m.showAccounts {
		return m.renderAccountListPopup()
	}
	if m.showProviders {
		return m.renderProvidersPopup()
	}
	if m.showDetails && m.galleryCursor < len(m.gallery) {
		return m.renderDetails()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var nav string
	if m.showHelp {
		nav = styles.NavStyle.Width(max(0, m.w-2)).Render(m.help.View(keys))
	} else {
		nav = tokens.Nav(max(0, m.w-2), m.session.Connected())
	}

	toastLine := toast.Render(m.toast)

	used := lipgloss.Height(headerPanel) + lipgloss.Height(nav) + 4 // page panel border and padding
	if toastLine != "" {
		used += lipgloss.Height(toastLine)
	}
	if m.logEnabled {
		used += logview.PanelHeight(m.h) + 4
	}
	if h := max(3, m.h-used); h != m.galleryView.Height {
		m.galleryView.Height = h
		m.refreshGallery()
		m.scrollToCursor()
	}

	pageContent := panelStyle.Width(max(0, m.w-2)).Render(m.galleryView.View())

	sections := []string{headerPanel, pageContent}
	if toastLine != "" {
		sections = append(sections, toastLine)
	}
	sections = append(sections, nav)

	if m.logEnabled {
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.h, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
