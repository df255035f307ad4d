package main

import (
	"fmt"
	"net/url"
	"strings"

	"cellar-transfer-tui/config"
	"cellar-transfer-tui/views/settings"
	"cellar-transfer-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// -------------------- WALLET PROVIDERS --------------------

// Temporary variables for the add provider form
var (
	tempProviderName string
	tempProviderURL  string
)

func (m *model) createAddProviderForm() tea.Cmd {
	tempProviderName = ""
	tempProviderURL = ""

	m.providerForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider Name").
				Description("A friendly name for this wallet endpoint").
				Value(&tempProviderName).
				Placeholder("Frame"),

			huh.NewInput().
				Title("Provider URL").
				Description("Websocket, http or IPC endpoint of the wallet").
				Value(&tempProviderURL).
				Placeholder("ws://127.0.0.1:1248").
				Validate(config.ValidateProviderURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return m.providerForm.Init()
}

// saveProviderForm stores the submitted endpoint without switching to it
func (m *model) saveProviderForm() {
	u := strings.TrimSpace(tempProviderURL)
	name := strings.TrimSpace(tempProviderName)
	if name == "" {
		name = u
		if parsed, err := url.Parse(u); err == nil && parsed.Host != "" {
			name = parsed.Host
		}
	}
	m.settings.Providers = append(m.settings.Providers, config.ProviderEntry{Name: name, URL: u})
	m.providerCursor = len(m.settings.Providers) - 1
	m.saveConfig()
	m.addLog("success", fmt.Sprintf("Added wallet provider `%s`", name))
}

func (m *model) handleProvidersKey(msg tea.KeyMsg) tea.Cmd {
	entries := m.settings.Providers
	switch msg.String() {
	case "esc", "p":
		m.showProviders = false
	case "up", "k":
		if m.providerCursor > 0 {
			m.providerCursor--
		}
	case "down", "j":
		if m.providerCursor < len(entries)-1 {
			m.providerCursor++
		}
	case "a":
		return m.createAddProviderForm()
	case "d":
		if m.providerCursor >= len(entries) {
			return nil
		}
		removed := entries[m.providerCursor]
		m.settings.Providers = config.Remove(entries, m.providerCursor)
		m.providerCursor = max(0, min(m.providerCursor, len(m.settings.Providers)-1))
		m.saveConfig()
		m.addLog("warning", fmt.Sprintf("Removed wallet provider `%s`", removed.Name))
	case "enter":
		if m.providerCursor >= len(entries) {
			return nil
		}
		m.settings.Providers = config.Activate(entries, m.providerCursor)
		m.saveConfig()
		m.showProviders = false
		chosen := entries[m.providerCursor]
		if chosen.URL == m.settings.ProviderURL && m.provider != nil {
			return nil
		}
		m.addLog("info", fmt.Sprintf("Switching wallet provider to `%s`", chosen.Name))
		return m.switchProvider(chosen.URL)
	}
	return nil
}

// switchProvider drops the current wallet connection and starts over on u
func (m *model) switchProvider(u string) tea.Cmd {
	if m.session.Connected() {
		m.session.Disconnect()
		m.onDisconnect()
	}
	m.shutdown()
	m.accountCh = nil
	m.connecting = false

	m.settings.ProviderURL = u
	m.provider = m.dial(u)
	m.session = wallet.NewSession(m.provider)
	m.refreshGallery()

	if m.provider == nil {
		return nil
	}
	return tea.Batch(probeWallet(m.provider), subscribeAccounts(m.provider))
}

func (m *model) renderProvidersPopup() string {
	var body string
	if m.providerForm != nil {
		body = m.providerForm.View() + "\n\n" + settings.Nav(true)
	} else {
		body = settings.Render(m.settings.Providers, m.settings.ProviderURL, m.providerCursor) + "\n\n" + settings.Nav(false)
	}
	dialog := dialogStyle.Width(min(max(40, m.w-10), 72)).Render(body)
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialog)
}
