package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recordterm/internal/records"
)

type column struct {
	title string
	width int
}

var tableColumns = []column{
	{title: "S.No.", width: 7},
	{title: records.FieldFirstName.Label(), width: 16},
	{title: records.FieldLastName.Label(), width: 16},
	{title: records.FieldEmail.Label(), width: 26},
	{title: records.FieldPhone.Label(), width: 16},
}

func (m *model) renderTable(view records.View) []string {
	header := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		header[i] = cell(m.theme.TableHeader, col.title, col.width)
	}
	lines := []string{"  " + strings.Join(header, "")}

	editIdx, editing := m.records.EditIndex()
	for offset, row := range view.Rows {
		style := m.theme.TableCell
		marker := "  "
		if editing && row.Index == editIdx {
			style = m.theme.Editing
			marker = "✎ "
		}
		if m.focus == focusTable && offset == m.selected {
			style = m.theme.Selected
			marker = "> "
		}
		values := []string{fmt.Sprint(row.Number)}
		for _, f := range records.Fields {
			values = append(values, row.Record.Get(f))
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cell(style, v, tableColumns[i].width)
		}
		lines = append(lines, marker+strings.Join(cells, ""))
	}
	if m.focus == focusTable {
		lines = append(lines, m.theme.Faint.Render("↑/↓ select  e edit  d delete  ←/→ page"))
	}
	return lines
}

func (m *model) renderPages(view records.View) string {
	buttons := make([]string, 0, len(view.PageNumbers))
	for _, n := range view.PageNumbers {
		style := m.theme.Page
		if n == view.CurrentPage {
			style = m.theme.PageActive
		}
		buttons = append(buttons, style.Render(fmt.Sprint(n)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func cell(style lipgloss.Style, value string, width int) string {
	return style.Copy().Width(width).MaxWidth(width).Render(truncate(value, width-1))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
