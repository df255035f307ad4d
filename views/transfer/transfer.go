package transfer

import (
	"fmt"
	"strings"

	"cellar-transfer-tui/helpers"
	"cellar-transfer-tui/styles"
	"cellar-transfer-tui/views/tokens"
	"cellar-transfer-tui/wizard"

	"github.com/charmbracelet/lipgloss"
)

// Params is what the dialog needs from the running program
type Params struct {
	Wizard *wizard.Wizard
	// Inputs holds the rendered text input for each field
	Inputs map[wizard.Field]string
	Focus  wizard.Field
	// Cursor is the focused token on the selection step
	Cursor int
	// MaxCards limits how many tokens are drawn at once; 0 draws all
	MaxCards       int
	Thumbs         map[string]string
	ImageFailed    map[string]bool
	Spinner        string
	CollectionURL  string
	DestinationURL string
	QR             string
	Width          int
}

// IdentityFields are the inputs of the first step, in focus order
var IdentityFields = []wizard.Field{wizard.FieldFirstName, wizard.FieldLastName, wizard.FieldEthereumWallet}

// Render draws the wizard dialog body for the current step
func Render(p Params) string {
	w := p.Wizard
	step := w.Step()
	width := helpers.Max(40, p.Width)

	progress := styles.SubtitleStyle.Render(fmt.Sprintf("Step %d of 4", int(step)))
	head := lipgloss.JoinVertical(lipgloss.Left,
		progress,
		styles.TitleStyle.Render(step.Title()),
		lipgloss.NewStyle().Foreground(styles.CMuted).Width(width).Render(step.Description()),
	)

	var body string
	switch step {
	case wizard.StepIdentity:
		body = renderFields(p, IdentityFields)
	case wizard.StepSelectTokens:
		toks := w.Tokens()
		start, end := Window(len(toks), p.Cursor, p.MaxCards)
		body = tokens.Render(toks[start:end], false, true, tokens.Options{
			Width:         width,
			CollectionURL: p.CollectionURL,
			Thumbs:        p.Thumbs,
			ImageFailed:   p.ImageFailed,
			Cursor:        p.Cursor - start,
			Selectable:    true,
		})
		if end-start < len(toks) {
			body += "\n" + styles.SubtitleStyle.Render(fmt.Sprintf("%d–%d of %d bottles", start+1, end, len(toks)))
		}
	case wizard.StepDestination:
		body = renderFields(p, []wizard.Field{wizard.FieldPolygonWallet})
	case wizard.StepConfirmation:
		body = renderConfirmation(p)
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, "", body, "", Buttons(w, p.Spinner), Help(w))
}

// Window returns the [start, end) range of n items that keeps cursor visible
// while showing at most size items.
func Window(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > n {
		start = n - size
	}
	return start, start + size
}

func renderFields(p Params, fields []wizard.Field) string {
	rows := make([]string, 0, len(fields))
	for _, f := range fields {
		label := styles.FieldLabelStyle.Render(f.Label())
		if f == p.Focus {
			label = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ " + f.Label())
		}
		row := label + "\n" + p.Inputs[f]
		if msg := p.Wizard.FieldError(f); msg != "" {
			row += "\n" + styles.FieldErrorStyle.Render(msg)
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n\n")
}

func renderConfirmation(p Params) string {
	w := p.Wizard
	link := helpers.Hyperlink(p.DestinationURL,
		lipgloss.NewStyle().Foreground(styles.CAccent2).Underline(true).Render(p.DestinationURL))

	lines := []string{
		styles.SubtitleStyle.Render("Request reference: ") + lipgloss.NewStyle().Foreground(styles.CText).Render(w.RequestID()),
		styles.SubtitleStyle.Render("Destination: ") + lipgloss.NewStyle().Foreground(styles.CText).Render(w.Form().PolygonWallet),
		styles.SubtitleStyle.Render("Bottles: ") + lipgloss.NewStyle().Foreground(styles.CText).Render(fmt.Sprint(len(w.Tokens()))),
		"",
		styles.InfoBannerStyle.Render("Continue on " + link),
	}
	if p.QR != "" {
		lines = append(lines, "", p.QR)
	}
	return strings.Join(lines, "\n")
}

// Buttons renders the step's action row
func Buttons(w *wizard.Wizard, spinner string) string {
	primary := func(label string, enabled bool) string {
		if !enabled {
			return styles.DisabledButtonStyle.Render(label)
		}
		return styles.PrimaryButtonStyle.Render(label)
	}

	var left, right string
	switch w.Step() {
	case wizard.StepIdentity:
		left = styles.ButtonStyle.Render("Cancel")
		if w.Loading() {
			right = primary(spinner+" Loading…", false)
		} else {
			right = primary("Continue", true)
		}
	case wizard.StepSelectTokens, wizard.StepDestination:
		left = styles.ButtonStyle.Render("Previous")
		right = primary("Continue", w.CanContinue())
	case wizard.StepConfirmation:
		left = styles.ButtonStyle.Render("Close")
		right = primary("Visit InterCellar.io", true)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// Help lists the keys active on the current step
func Help(w *wizard.Wizard) string {
	var keys []string
	switch w.Step() {
	case wizard.StepIdentity:
		keys = []string{styles.Key("Tab") + " next field", styles.Key("Enter") + " continue", styles.Key("Esc") + " cancel"}
	case wizard.StepSelectTokens:
		keys = []string{styles.Key("↑/↓") + " move", styles.Key("s") + " wine label", styles.Key("Enter") + " continue", styles.Key("Ctrl+B") + " previous", styles.Key("Esc") + " cancel"}
	case wizard.StepDestination:
		keys = []string{styles.Key("Ctrl+V") + " paste", styles.Key("Enter") + " continue", styles.Key("Ctrl+B") + " previous", styles.Key("Esc") + " cancel"}
	case wizard.StepConfirmation:
		keys = []string{styles.Key("v") + " copy InterCellar link", styles.Key("Enter/Esc") + " close"}
	}
	return styles.HotkeyStyle.Render(strings.Join(keys, "   "))
}
