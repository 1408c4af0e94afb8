package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the record screens.
type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Focused   lipgloss.Style
	Button    lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Border    lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	Selected    lipgloss.Style
	Editing     lipgloss.Style

	PageActive lipgloss.Style
	Page       lipgloss.Style

	HelpKey   lipgloss.Style
	HelpValue lipgloss.Style
}

// Default returns the palette for the form, the record table and its pager.
func Default() Theme {
	cell := lipgloss.NewStyle().PaddingRight(1)
	return Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Underline(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("81")).Bold(true).Padding(0, 1),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		TableHeader: cell.Copy().Foreground(lipgloss.Color("117")).Bold(true),
		TableCell:   cell.Copy().Foreground(lipgloss.Color("252")),
		Selected:    cell.Copy().Foreground(lipgloss.Color("205")).Bold(true),
		Editing:     cell.Copy().Foreground(lipgloss.Color("227")).Bold(true),

		PageActive: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("213")).Padding(0, 1),
		Page:       lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),

		HelpKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		HelpValue: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	}
}
