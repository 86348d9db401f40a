package output

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used for terminal output.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
}

// DefaultStyles returns the colored terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Subheader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:      lipgloss.NewStyle().Bold(true),
	}
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:    plain,
		Subheader: plain,
		Success:   plain,
		Warning:   plain,
		Error:     plain,
		Muted:     plain,
		Bold:      plain,
	}
}
