package main

import (
	"errors"
	"fmt"

	"cellar-transfer-tui/config"
	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/rpc"
	"cellar-transfer-tui/views/details"
	"cellar-transfer-tui/views/toast"
	"cellar-transfer-tui/wallet"
	"cellar-transfer-tui/wizard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- UPDATE --------------------

// Update implements tea.Model interface and handles all state transitions
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		// Create logger that writes to our buffer
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		m.addLog("debug", fmt.Sprintf("Collection `%s`", m.settings.ContractAddress.Hex()))
		return m, nil

	case walletProbedMsg:
		if msg.err != nil {
			m.addLog("debug", "Wallet probe failed: "+msg.err.Error())
			return m, nil
		}
		if len(msg.accounts) == 0 {
			m.addLog("debug", "No previously authorized accounts")
			return m, nil
		}
		m.addLog("success", fmt.Sprintf("Restored %d authorized account(s)", len(msg.accounts)))
		return m, m.applyAccounts(msg.accounts)

	case walletConnectedMsg:
		m.connecting = false
		if msg.err != nil {
			m.session.Fail(msg.err)
			m.addLog("error", "Wallet connection failed: "+msg.err.Error())
			return m, m.connectErrorToast(msg.err)
		}
		cmd := m.applyAccounts(msg.accounts)
		addr, _ := m.session.Selected()
		m.addLog("success", fmt.Sprintf("Wallet connected `%s`", addr.Hex()))
		return m, tea.Batch(cmd, m.showToast(toast.Success, "Wallet Connected", helpers.ShortenAddr(addr.Hex())))

	case accountsSubscribedMsg:
		if msg.err != nil {
			m.addLog("warning", "Account change notifications unavailable: "+msg.err.Error())
			return m, nil
		}
		m.accountSub = msg.sub
		m.accountCh = msg.ch
		m.addLog("debug", "Listening for account changes")
		return m, waitForAccounts(m.accountSub, m.accountCh)

	case accountsChangedMsg:
		if m.accountSub == nil || msg.sub != m.accountSub {
			// left over from a provider that was replaced
			return m, nil
		}
		next := waitForAccounts(m.accountSub, m.accountCh)
		if !m.session.Connected() {
			// only an active connection follows the wallet
			m.addLog("debug", "Ignoring account change while disconnected")
			return m, next
		}
		m.addLog("info", fmt.Sprintf("Accounts changed (%d)", len(msg.accounts)))
		return m, tea.Batch(m.applyAccounts(msg.accounts), next)

	case accountsSubClosedMsg:
		if msg.sub != m.accountSub {
			return m, nil
		}
		m.accountSub = nil
		if msg.err != nil {
			m.addLog("warning", "Account subscription closed: "+msg.err.Error())
		}
		return m, nil

	case chainIDMsg:
		if msg.err != nil {
			m.addLog("debug", "Chain id unavailable: "+msg.err.Error())
			return m, nil
		}
		m.session.SetChainID(msg.id)
		m.addLog("info", "Wallet network: "+rpc.NetworkName(msg.id))
		if addr, ok := m.session.Selected(); ok {
			return m, m.ensCmd(addr)
		}
		return m, nil

	case ensNameMsg:
		if msg.err != nil {
			m.addLog("debug", fmt.Sprintf("No ENS name for `%s`", helpers.ShortenAddr(msg.address.Hex())))
			return m, nil
		}
		if addr, ok := m.session.Selected(); ok && addr == msg.address {
			m.session.SetENSName(msg.name)
			m.addLog("success", fmt.Sprintf("Resolved `%s` to `%s`", helpers.ShortenAddr(msg.address.Hex()), msg.name))
		}
		return m, nil

	case galleryLoadedMsg:
		if addr, ok := m.session.Selected(); !ok || addr != msg.owner {
			m.addLog("debug", fmt.Sprintf("Dropped tokens for `%s`", helpers.ShortenAddr(msg.owner.Hex())))
			return m, nil
		}
		m.galleryLoading = false
		if msg.err != nil {
			m.gallery = nil
			m.refreshGallery()
			m.addLog("error", msg.err.Error())
			return m, m.showToast(toast.Error, "Failed to fetch NFTs", "Please try again later.")
		}
		m.gallery = indexer.SortForDisplay(msg.tokens)
		m.refreshGallery()
		m.addLog("success", fmt.Sprintf("Loaded %d token(s) for `%s`", len(msg.tokens), helpers.ShortenAddr(msg.owner.Hex())))
		return m, m.loadThumbnails(msg.tokens)

	case wizardTokensMsg:
		if msg.err != nil {
			if !m.wiz.FetchFailed(msg.generation) {
				m.addLog("debug", "Dropped failed fetch for a closed transfer")
				return m, nil
			}
			m.addLog("error", msg.err.Error())
			return m, m.showToast(toast.Error, "Failed to fetch NFTs", "Check the wallet address and try again.")
		}
		if !m.wiz.FetchSucceeded(msg.generation, msg.tokens) {
			m.addLog("debug", "Dropped tokens for a closed transfer")
			return m, nil
		}
		m.addLog("success", fmt.Sprintf("Found %d bottle(s) to transfer", len(msg.tokens)))
		return m, tea.Batch(m.enterStep(), m.loadThumbnails(msg.tokens))

	case thumbnailsLoadedMsg:
		for _, r := range msg.results {
			if r.Err != nil {
				m.imageFailed[r.TokenID] = true
				m.addLog("debug", fmt.Sprintf("Image for token #%s: %s", r.TokenID, r.Err.Error()))
				continue
			}
			m.thumbs[r.TokenID] = r.Art
			delete(m.imageFailed, r.TokenID)
		}
		m.refreshGallery()
		return m, nil

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied " + msg.what
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return m, clearClipboardMsg()

	case struct{ clearClipboard bool }:
		m.copiedMsg = ""
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && m.toast.ID == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.logEnabled {
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		m.galleryView.Width = max(0, msg.Width-8)
		m.refreshGallery()
		if m.labelForm != nil || m.providerForm != nil {
			break
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.showWizard || m.showAccounts || m.showProviders || m.showDetails || m.labelForm != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.galleryView, cmd = m.galleryView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// huh and textinput internal messages
	return m, m.forward(msg)
}

// forward hands msg to whatever component currently owns input
func (m *model) forward(msg tea.Msg) tea.Cmd {
	if m.labelForm != nil {
		form, cmd := m.labelForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.labelForm = f
			switch m.labelForm.State {
			case huh.StateCompleted:
				if err := m.wiz.SelectLabel(m.labelTokenID, m.labelChoice); err != nil {
					m.addLog("error", err.Error())
				} else if m.labelChoice == "" {
					m.addLog("info", fmt.Sprintf("Cleared label for token #%s", m.labelTokenID))
				} else {
					m.addLog("success", fmt.Sprintf("Token #%s labelled `%s`", m.labelTokenID, m.labelChoice))
				}
				m.labelForm = nil
				return nil
			case huh.StateAborted:
				m.labelForm = nil
				return nil
			}
		}
		return cmd
	}
	if m.providerForm != nil {
		form, cmd := m.providerForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.providerForm = f
			switch m.providerForm.State {
			case huh.StateCompleted:
				m.saveProviderForm()
				m.providerForm = nil
				return nil
			case huh.StateAborted:
				m.providerForm = nil
				return nil
			}
		}
		return cmd
	}
	if m.showWizard && m.focusable() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return cmd
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	// Intercept ESC key to cancel form
	if m.labelForm != nil {
		if msg.String() == "esc" {
			m.labelForm = nil
			return nil
		}
		return m.forward(msg)
	}
	if m.providerForm != nil {
		if msg.String() == "esc" {
			m.providerForm = nil
			return nil
		}
		return m.forward(msg)
	}
	if m.showWizard {
		return m.handleWizardKey(msg)
	}
	if m.showAccounts {
		return m.handleAccountsKey(msg)
	}
	if m.showProviders {
		return m.handleProvidersKey(msg)
	}
	if m.showDetails {
		return m.handleDetailsKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit

	case key.Matches(msg, keys.Log):
		// Toggle logger
		m.logEnabled = !m.logEnabled
		m.settings.Logger = m.logEnabled
		m.saveConfig()
		if m.logEnabled {
			if m.w > 0 {
				m.logViewport.Width = m.w - 6
			}
			m.logReady = false
			return tea.Batch(initLogViewport(), m.logSpinner.Tick)
		}
		// Clear logs and de-initialize when disabling
		if m.logBuffer != nil {
			m.logBuffer.Reset()
		}
		m.logger = nil
		m.logReady = false
		return nil

	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil

	case key.Matches(msg, keys.Connect):
		if m.session.Connected() || m.connecting {
			return nil
		}
		m.connecting = true
		m.addLog("info", "Requesting wallet accounts")
		return requestWallet(m.provider)

	case key.Matches(msg, keys.Disconnect):
		if !m.session.Connected() {
			return nil
		}
		m.session.Disconnect()
		m.onDisconnect()
		m.addLog("warning", "Wallet disconnected")
		return nil

	case key.Matches(msg, keys.Copy):
		if addr, ok := m.session.Selected(); ok {
			return copyToClipboard(addr.Hex(), "address")
		}
		return nil

	case key.Matches(msg, keys.Accounts):
		if !m.session.Connected() {
			return nil
		}
		m.showAccounts = true
		m.accountCursor = 0
		addr, _ := m.session.Selected()
		for i, a := range m.session.Addresses() {
			if a == addr {
				m.accountCursor = i
			}
		}
		return nil

	case key.Matches(msg, keys.Transfer):
		return m.openWizard()

	case key.Matches(msg, keys.Providers):
		m.showProviders = true
		m.providerCursor = 0
		for i, p := range m.settings.Providers {
			if p.URL == m.settings.ProviderURL {
				m.providerCursor = i
			}
		}
		return nil

	case key.Matches(msg, keys.Refresh):
		addr, ok := m.session.Selected()
		if !ok || m.galleryLoading {
			return nil
		}
		if c, ok := m.fetcher.(*indexer.CachedFetcher); ok {
			c.Invalidate(addr.Hex())
		}
		m.addLog("info", "Refreshing tokens")
		return m.onConnect(addr)

	case key.Matches(msg, keys.Details):
		if len(m.cardOffsets) > 0 {
			m.showDetails = true
		}

	case key.Matches(msg, keys.Up):
		if len(m.cardOffsets) == 0 {
			m.galleryView.ScrollUp(1)
			return nil
		}
		m.moveGalleryCursor(-1)
	case key.Matches(msg, keys.Down):
		if len(m.cardOffsets) == 0 {
			m.galleryView.ScrollDown(1)
			return nil
		}
		m.moveGalleryCursor(1)
	case key.Matches(msg, keys.PageUp):
		m.galleryView.HalfPageUp()
	case key.Matches(msg, keys.PageDown):
		m.galleryView.HalfPageDown()
	}
	return nil
}

func (m *model) handleAccountsKey(msg tea.KeyMsg) tea.Cmd {
	addrs := m.session.Addresses()
	switch msg.String() {
	case "esc", "a":
		m.showAccounts = false
	case "up", "k":
		if m.accountCursor > 0 {
			m.accountCursor--
		}
	case "down", "j":
		if m.accountCursor < len(addrs)-1 {
			m.accountCursor++
		}
	case "enter":
		m.showAccounts = false
		if m.accountCursor >= len(addrs) {
			return nil
		}
		prev, _ := m.session.Selected()
		next := addrs[m.accountCursor]
		if err := m.session.Select(next); err != nil {
			m.addLog("error", err.Error())
			return nil
		}
		if next == prev {
			return nil
		}
		m.addLog("success", fmt.Sprintf("Switched to `%s`", helpers.ShortenAddr(next.Hex())))
		return m.onConnect(next)
	}
	return nil
}

// moveGalleryCursor selects the neighbouring card and scrolls it into view
func (m *model) moveGalleryCursor(dir int) {
	next := max(0, min(m.galleryCursor+dir, len(m.gallery)-1))
	if next == m.galleryCursor {
		return
	}
	m.galleryCursor = next
	m.refreshGallery()
	m.scrollToCursor()
}

func (m *model) handleDetailsKey(msg tea.KeyMsg) tea.Cmd {
	if m.galleryCursor >= len(m.gallery) {
		m.showDetails = false
		return nil
	}
	t := m.gallery[m.galleryCursor]
	switch msg.String() {
	case "esc", "enter", "q":
		m.showDetails = false
	case "left", "h":
		m.moveGalleryCursor(-1)
	case "right", "l":
		m.moveGalleryCursor(1)
	case "y":
		return copyToClipboard(t.TokenID, "token id")
	case "o":
		return copyToClipboard(details.OpenSeaURL(t.ContractAddress, t.TokenID), "OpenSea link")
	}
	return nil
}

// -------------------- TRANSFER WIZARD --------------------

func (m *model) openWizard() tea.Cmd {
	m.showWizard = true
	if addr, ok := m.session.Selected(); ok && m.wiz.SyncWallet(addr.Hex()) {
		m.inputs[wizard.FieldEthereumWallet].SetValue(addr.Hex())
	}
	m.addLog("info", "Transfer opened")
	return m.enterStep()
}

// closeWizard discards every piece of wizard state
func (m *model) closeWizard() {
	m.wiz.Reset()
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.showWizard = false
	m.tokenCursor = 0
	m.qr = ""
	m.addLog("info", "Transfer closed")
}

// focusable reports whether the current step has text inputs
func (m *model) focusable() bool {
	s := m.wiz.Step()
	return s == wizard.StepIdentity || s == wizard.StepDestination
}

func (m *model) setFocus(f wizard.Field) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	return m.inputs[f].Focus()
}

// enterStep puts focus where the current step expects it
func (m *model) enterStep() tea.Cmd {
	switch m.wiz.Step() {
	case wizard.StepIdentity:
		return m.setFocus(wizard.FieldFirstName)
	case wizard.StepSelectTokens:
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
		m.tokenCursor = 0
	case wizard.StepDestination:
		return m.setFocus(wizard.FieldPolygonWallet)
	case wizard.StepConfirmation:
		for i := range m.inputs {
			m.inputs[i].Blur()
		}
	}
	return nil
}

func (m *model) handleWizardKey(msg tea.KeyMsg) tea.Cmd {
	step := m.wiz.Step()

	if key.Matches(msg, wizardKeys.Cancel) {
		m.closeWizard()
		return nil
	}

	if step == wizard.StepConfirmation {
		switch {
		case key.Matches(msg, wizardKeys.Continue):
			m.closeWizard()
		case key.Matches(msg, wizardKeys.Visit):
			return copyToClipboard(m.settings.DestinationURL, "InterCellar link")
		}
		return nil
	}

	switch {
	case key.Matches(msg, wizardKeys.Continue):
		return m.continueWizard()

	case key.Matches(msg, wizardKeys.Previous):
		if m.wiz.Previous() {
			return m.enterStep()
		}
		return nil
	}

	switch step {
	case wizard.StepIdentity:
		switch {
		case key.Matches(msg, wizardKeys.NextField):
			return m.setFocus(m.nextIdentityField(1))
		case key.Matches(msg, wizardKeys.PrevField):
			return m.setFocus(m.nextIdentityField(-1))
		}
		return m.updateInput(msg)

	case wizard.StepSelectTokens:
		n := len(m.wiz.Tokens())
		switch {
		case key.Matches(msg, wizardKeys.Up):
			if m.tokenCursor > 0 {
				m.tokenCursor--
			}
		case key.Matches(msg, wizardKeys.Down):
			if m.tokenCursor < n-1 {
				m.tokenCursor++
			}
		case key.Matches(msg, wizardKeys.Label):
			return m.openLabelForm()
		}
		return nil

	case wizard.StepDestination:
		return m.updateInput(msg)
	}
	return nil
}

func (m *model) nextIdentityField(dir int) wizard.Field {
	fields := []wizard.Field{wizard.FieldFirstName, wizard.FieldLastName, wizard.FieldEthereumWallet}
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + dir + len(fields)) % len(fields)
	return fields[idx]
}

// updateInput sends a key to the focused input and mirrors its value into the wizard
func (m *model) updateInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.wiz.Field(m.focus) != m.inputs[m.focus].Value() {
		m.wiz.SetField(m.focus, m.inputs[m.focus].Value())
	}
	return cmd
}

func (m *model) continueWizard() tea.Cmd {
	before := m.wiz.Step()
	req, err := m.wiz.Continue()

	var verr *wizard.ValidationError
	switch {
	case errors.Is(err, wizard.ErrBusy):
		return nil
	case errors.As(err, &verr):
		m.addLog("warning", err.Error())
		for _, f := range []wizard.Field{wizard.FieldFirstName, wizard.FieldLastName, wizard.FieldEthereumWallet, wizard.FieldPolygonWallet} {
			if _, bad := verr.Fields[f]; bad {
				return m.setFocus(f)
			}
		}
		return nil
	case err != nil:
		m.addLog("warning", err.Error())
		return nil
	}

	if req != nil {
		m.addLog("info", fmt.Sprintf("Fetching bottles owned by `%s`", req.Owner))
		return fetchWizardTokens(m.fetcher, req.Owner, req.Generation)
	}

	if m.wiz.Step() == before {
		return nil
	}
	if m.wiz.Step() == wizard.StepConfirmation {
		m.qr = renderQR(m.settings.DestinationURL)
		m.addLog("success", fmt.Sprintf("Transfer request `%s` recorded for `%s`", m.wiz.RequestID(), m.wiz.Form().PolygonWallet))
	}
	return m.enterStep()
}

func (m *model) openLabelForm() tea.Cmd {
	toks := m.wiz.Tokens()
	if m.tokenCursor >= len(toks) || !toks[m.tokenCursor].NeedsLabel {
		return nil
	}
	tok := toks[m.tokenCursor]
	m.labelTokenID = tok.TokenID
	m.labelChoice = tok.SelectedLabel

	opts := []huh.Option[string]{huh.NewOption("Select a wine label", "")}
	for _, l := range indexer.WineLabels {
		opts = append(opts, huh.NewOption(l, l))
	}
	m.labelForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Wine Label").
				Description(tok.Name()).
				Options(opts...).
				Value(&m.labelChoice),
		),
	).WithTheme(huh.ThemeCatppuccin())
	return m.labelForm.Init()
}

// -------------------- SESSION EVENTS --------------------

// applyAccounts updates the session and fires connect/disconnect side effects
func (m *model) applyAccounts(accts []common.Address) tea.Cmd {
	wasConnected := m.session.Connected()
	addr, changed := m.session.SetAccounts(accts)
	if !m.session.Connected() {
		if wasConnected {
			m.onDisconnect()
			m.addLog("warning", "Wallet exposed no accounts; disconnected")
		}
		return nil
	}
	if !changed {
		return nil
	}
	return m.onConnect(addr)
}

// onConnect loads everything shown for addr
func (m *model) onConnect(addr common.Address) tea.Cmd {
	m.gallery = nil
	m.galleryLoading = true
	m.galleryOwner = addr
	m.galleryCursor = 0
	m.showDetails = false
	m.galleryView.GotoTop()
	m.refreshGallery()

	if m.wiz.SyncWallet(addr.Hex()) {
		m.inputs[wizard.FieldEthereumWallet].SetValue(addr.Hex())
	}

	cmds := []tea.Cmd{fetchGallery(m.fetcher, addr)}
	if m.provider != nil {
		if m.session.ChainID() == nil {
			cmds = append(cmds, loadChainID(m.provider))
		} else {
			cmds = append(cmds, m.ensCmd(addr))
		}
	}
	return tea.Batch(cmds...)
}

// onDisconnect drops everything tied to the previous address
func (m *model) onDisconnect() {
	m.gallery = nil
	m.galleryLoading = false
	m.galleryOwner = common.Address{}
	m.galleryCursor = 0
	m.showDetails = false
	m.showAccounts = false
	m.toast = nil
	m.refreshGallery()
}

// ensCmd reverse resolves addr when the wallet is on mainnet
func (m *model) ensCmd(addr common.Address) tea.Cmd {
	id := m.session.ChainID()
	r, ok := m.provider.(wallet.NameResolver)
	if !ok || id == nil || id.Int64() != 1 {
		return nil
	}
	return lookupENS(r, addr)
}

func (m *model) saveConfig() {
	if m.settings.ConfigPath == "" {
		return
	}
	if err := config.Save(m.settings.ConfigPath, m.settings.Persisted()); err != nil {
		m.addLog("error", err.Error())
	}
}
