package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F14") // near-black
	CPanel   = lipgloss.Color("#0F1720") // slightly lighter
	CBorder  = lipgloss.Color("#874BFD")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#7EE787") // green-ish
	CAccent2 = lipgloss.Color("#79C0FF") // blue-ish
	CWarn    = lipgloss.Color("#FFA657") // orange
	CError   = lipgloss.Color("#FF7B72")
	CWine    = lipgloss.Color("#B3446C")
	CSkel    = lipgloss.Color("#1C2733")
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	DialogStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 3)

	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CMuted).
			Padding(0, 1)

	SelectedCardStyle = CardStyle.
				BorderForeground(CAccent2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	HelpRightStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(CText).
			Bold(true)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(CError)

	WarnBannerStyle = lipgloss.NewStyle().
			Foreground(CWarn).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(CWarn).
			PaddingLeft(1)

	InfoBannerStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(CAccent2).
			PaddingLeft(1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(CText).
			Background(CSkel).
			Padding(0, 2)

	PrimaryButtonStyle = lipgloss.NewStyle().
				Foreground(CBg).
				Background(CAccent2).
				Bold(true).
				Padding(0, 2)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(CMuted).
				Background(CPanel).
				Padding(0, 2)

	SkeletonStyle = lipgloss.NewStyle().
			Foreground(CSkel)

	ToastStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}
