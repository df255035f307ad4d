package toast

import (
	"cellar-transfer-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	Info Kind = iota
	Success
	Error
)

// Toast is a short-lived notification
type Toast struct {
	ID          int
	Kind        Kind
	Title       string
	Description string
}

func (k Kind) color() lipgloss.Color {
	switch k {
	case Success:
		return styles.CAccent
	case Error:
		return styles.CError
	}
	return styles.CAccent2
}

// Render draws t, or nothing for a nil toast
func Render(t *Toast) string {
	if t == nil {
		return ""
	}
	c := t.Kind.color()
	body := lipgloss.NewStyle().Foreground(c).Bold(true).Render(t.Title)
	if t.Description != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(styles.CText).Render(t.Description)
	}
	return styles.ToastStyle.BorderForeground(c).Render(body)
}
