package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/thumbnail"
	"cellar-transfer-tui/views/toast"
	"cellar-transfer-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mdp/qrterminal/v3"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

const (
	providerTimeout = 10 * time.Second
	// the wallet may show a prompt; give the user time to answer it
	requestTimeout = 2 * time.Minute
	toastDuration  = 4 * time.Second
)

// probeWallet asks for already-authorized accounts without prompting
func probeWallet(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
		defer cancel()
		accts, err := wallet.Probe(ctx, p)
		return walletProbedMsg{accounts: accts, err: err}
	}
}

// requestWallet runs the wallet's connect flow
func requestWallet(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		accts, err := wallet.Request(ctx, p)
		return walletConnectedMsg{accounts: accts, err: err}
	}
}

// subscribeAccounts acquires the accountsChanged subscription
func subscribeAccounts(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan []common.Address, 1)
		sub, err := p.SubscribeAccounts(context.Background(), ch)
		return accountsSubscribedMsg{sub: sub, ch: ch, err: err}
	}
}

// waitForAccounts blocks until the next notification or the end of the subscription
func waitForAccounts(sub ethereum.Subscription, ch <-chan []common.Address) tea.Cmd {
	return func() tea.Msg {
		select {
		case accts := <-ch:
			return accountsChangedMsg{sub: sub, accounts: accts}
		case err := <-sub.Err():
			return accountsSubClosedMsg{sub: sub, err: err}
		}
	}
}

func loadChainID(p wallet.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
		defer cancel()
		id, err := p.ChainID(ctx)
		return chainIDMsg{id: id, err: err}
	}
}

// lookupENS performs reverse ENS lookup (address -> name)
func lookupENS(r wallet.NameResolver, addr common.Address) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), providerTimeout)
		defer cancel()
		name, err := r.ReverseResolve(ctx, addr)
		return ensNameMsg{address: addr, name: name, err: err}
	}
}

// fetchGallery loads the connected address's tokens for the gallery
func fetchGallery(f indexer.Fetcher, owner common.Address) tea.Cmd {
	return func() tea.Msg {
		tokens, err := f.FetchOwnedTokens(context.Background(), owner.Hex())
		return galleryLoadedMsg{owner: owner, tokens: tokens, err: err}
	}
}

// fetchWizardTokens runs the step 1 fetch for the wizard
func fetchWizardTokens(f indexer.Fetcher, owner string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		tokens, err := f.FetchOwnedTokens(context.Background(), owner)
		return wizardTokensMsg{generation: gen, tokens: tokens, err: err}
	}
}

// loadThumbnails renders the images of tokens not requested before
func (m *model) loadThumbnails(tokens []indexer.OwnedToken) tea.Cmd {
	if m.loader == nil {
		return nil
	}
	var reqs []thumbnail.Request
	for _, t := range tokens {
		if t.ImageURL == "" || m.thumbsRequested[t.TokenID] {
			continue
		}
		m.thumbsRequested[t.TokenID] = true
		reqs = append(reqs, thumbnail.Request{TokenID: t.TokenID, URL: t.ImageURL})
	}
	if len(reqs) == 0 {
		return nil
	}
	loader := m.loader
	return func() tea.Msg {
		return thumbnailsLoadedMsg{results: loader.LoadAll(context.Background(), reqs)}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{what: what}
		}
		return nil
	}
}

// clearClipboardMsg waits 2 seconds then sends a message to clear clipboard feedback
func clearClipboardMsg() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return struct{ clearClipboard bool }{true}
	})
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// showToast replaces the current toast and schedules its expiry
func (m *model) showToast(kind toast.Kind, title, desc string) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast.Toast{ID: id, Kind: kind, Title: title, Description: desc}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// connectErrorToast maps a connect failure to its notification
func (m *model) connectErrorToast(err error) tea.Cmd {
	switch {
	case errors.Is(err, wallet.ErrProviderMissing):
		return m.showToast(toast.Error, "Wallet provider not found", "Add an endpoint with p or set WALLET_PROVIDER_URL.")
	case errors.Is(err, wallet.ErrUserRejected):
		return m.showToast(toast.Error, "Connection Failed", "The request was rejected in the wallet.")
	}
	return m.showToast(toast.Error, "Connection Failed", err.Error())
}

// renderQR draws the destination link as a half-block QR code
func renderQR(url string) string {
	var sb strings.Builder
	qrterminal.GenerateHalfBlock(url, qrterminal.L, &sb)
	return strings.TrimRight(sb.String(), "\n")
}

// addLog adds a message to the log using charmbracelet/log
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}
