package main

import (
	"strings"

	"cellar-transfer-tui/config"
	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/styles"
	"cellar-transfer-tui/thumbnail"
	"cellar-transfer-tui/views/toast"
	"cellar-transfer-tui/wallet"
	"cellar-transfer-tui/wizard"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	settings config.Settings

	// wallet session
	dial       func(url string) wallet.Provider
	provider   wallet.Provider
	session    *wallet.Session
	connecting bool
	accountSub ethereum.Subscription
	accountCh  chan []common.Address

	// gallery of the connected address
	fetcher        indexer.Fetcher
	gallery        []indexer.OwnedToken
	galleryLoading bool
	galleryOwner   common.Address
	galleryView    viewport.Model
	galleryCursor  int
	cardOffsets    []int // first line of each card in galleryView
	showDetails    bool

	// token images, keyed by token id
	loader          *thumbnail.Loader
	thumbs          map[string]string
	imageFailed     map[string]bool
	thumbsRequested map[string]bool

	// transfer wizard
	wiz         *wizard.Wizard
	showWizard  bool
	inputs      [4]textinput.Model // indexed by wizard.Field
	focus       wizard.Field
	tokenCursor int
	qr          string

	// wine label picker
	labelForm    *huh.Form
	labelTokenID string
	labelChoice  string

	// accounts popup
	showAccounts  bool
	accountCursor int

	// wallet provider endpoints
	showProviders  bool
	providerCursor int
	providerForm   *huh.Form

	// notifications
	toast     *toast.Toast
	toastSeq  int
	copiedMsg string

	spin     spinner.Model
	help     help.Model
	showHelp bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel wires the application state; nothing is dialed until Init runs
func newModel(s config.Settings, p wallet.Provider, f indexer.Fetcher, l *thumbnail.Loader) model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	h := help.New()
	h.Styles.ShortKey = styles.HotkeyKeyStyle
	h.Styles.FullKey = styles.HotkeyKeyStyle
	h.Styles.ShortDesc = styles.HotkeyStyle
	h.Styles.FullDesc = styles.HotkeyStyle

	m := model{
		settings:        s,
		dial:            newProvider,
		provider:        p,
		session:         wallet.NewSession(p),
		fetcher:         f,
		galleryView:     viewport.New(0, 10),
		loader:          l,
		thumbs:          make(map[string]string),
		imageFailed:     make(map[string]bool),
		thumbsRequested: make(map[string]bool),
		wiz:             wizard.New(s.StrictChecksum),
		spin:            sp,
		help:            h,
		logEnabled:      s.Logger,
		logViewport:     vp,
		logBuffer:       &strings.Builder{},
		logSpinner:      logSpin,
	}
	for _, fld := range []wizard.Field{wizard.FieldFirstName, wizard.FieldLastName, wizard.FieldEthereumWallet, wizard.FieldPolygonWallet} {
		m.inputs[fld] = newInput(fld)
	}
	m.refreshGallery()
	return m
}

func newInput(f wizard.Field) textinput.Model {
	in := textinput.New()
	in.Placeholder = f.Placeholder()
	in.Prompt = "› "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = 128
	in.Width = 48
	return in
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, probeWallet(m.provider)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if m.provider != nil {
		cmds = append(cmds, subscribeAccounts(m.provider))
	}
	return tea.Batch(cmds...)
}

// shutdown releases the account subscription and the provider connection
func (m *model) shutdown() {
	if m.accountSub != nil {
		m.accountSub.Unsubscribe()
		m.accountSub = nil
	}
	if c, ok := m.provider.(interface{ Close() }); ok {
		c.Close()
	}
}
