package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type settingsMode int

const (
	settingsViewing settingsMode = iota
	settingsEditingTitle
	settingsEditingLevel
)

type settingsModel struct {
	mode  settingsMode
	input textinput.Model
	err   string
}

func newSettingsModel() settingsModel {
	input := textinput.New()
	input.Prompt = ""
	return settingsModel{mode: settingsViewing, input: input}
}

func (m *model) leaveSettings() tea.Cmd {
	m.settings = newSettingsModel()
	m.state = stateRecords
	m.command = newCommandInput(commandPlaceholder)
	return m.setFocus(focusCommand)
}

func (m *model) editSetting(mode settingsMode, value string) tea.Cmd {
	m.settings.mode = mode
	m.settings.input = textinput.New()
	m.settings.input.Prompt = ""
	m.settings.input.SetValue(value)
	return m.settings.input.Focus()
}

func (m *model) saveSettings(message string) {
	if err := m.cfg.Save(); err != nil {
		m.settings.err = err.Error()
		m.log.WithError(err).Warn("save settings")
		return
	}
	m.settings.err = ""
	m.infoMessage = message
	m.settings.mode = settingsViewing
	m.log.WithField("path", m.cfg.Path()).Debug("settings saved")
}

// SETTINGS
func (m *model) updateSettings(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch m.settings.mode {
	case settingsViewing:
		if !m.command.Focused() {
			if focus := m.command.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		var cmd tea.Cmd
		m.command, cmd = m.command.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(strings.ToLower(m.command.Value()))
			m.command.SetValue("")
			switch value {
			case "1", "title":
				cmds = append(cmds, m.editSetting(settingsEditingTitle, m.cfg.Config.Title))
			case "2", "strict":
				m.cfg.SetStrict(!m.cfg.Config.StrictValidation)
				m.records.Strict = m.cfg.Config.StrictValidation
				state := "off"
				if m.records.Strict {
					state = "on"
				}
				m.saveSettings(fmt.Sprintf("Strict validation %s", state))
			case "3", "level", "log":
				cmds = append(cmds, m.editSetting(settingsEditingLevel, m.cfg.Config.LogLevel))
			case "4", "back", "/", "exit.":
				cmds = append(cmds, m.leaveSettings())
			default:
				m.settings.err = "Choose 1, 2 or 3 to edit settings, or 4 to go back"
			}
		} else if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			cmds = append(cmds, m.leaveSettings())
		}
	case settingsEditingTitle, settingsEditingLevel:
		var cmd tea.Cmd
		m.settings.input, cmd = m.settings.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		key, ok := msg.(tea.KeyMsg)
		if !ok {
			break
		}
		if key.Type == tea.KeyEsc {
			m.settings.mode = settingsViewing
			break
		}
		if key.Type != tea.KeyEnter {
			break
		}
		value := strings.TrimSpace(m.settings.input.Value())
		switch {
		case isBackCommand(value):
			m.settings.mode = settingsViewing
		case value == "":
			m.settings.err = "Value cannot be empty"
		case m.settings.mode == settingsEditingTitle:
			m.cfg.Config.Title = value
			m.saveSettings("Title updated")
		default:
			if err := m.cfg.SetLevel(value); err != nil {
				m.settings.err = "Invalid log level"
				break
			}
			m.log.SetLevel(m.cfg.Level())
			m.saveSettings("Log level updated")
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewSettings() string {
	lines := []string{m.theme.Title.Render("Settings & Help")}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, esc returns to the records."))
	lines = append(lines, "")
	lines = append(lines, m.theme.Secondary.Render("Title: "+m.cfg.Config.Title))
	strict := "off"
	if m.cfg.Config.StrictValidation {
		strict = "on"
	}
	lines = append(lines, m.theme.Secondary.Render("Strict validation: "+strict))
	lines = append(lines, m.theme.Secondary.Render("Log level: "+m.cfg.Config.LogLevel))
	lines = append(lines, m.theme.Secondary.Render("Log file: "+m.cfg.Config.LogFile))
	lines = append(lines, "")
	lines = append(lines, m.theme.Label.Render("Commands"))
	lines = append(lines, m.theme.HelpKey.Render("edit N")+" → "+m.theme.HelpValue.Render("Edit row N of the current page"))
	lines = append(lines, m.theme.HelpKey.Render("delete N")+" → "+m.theme.HelpValue.Render("Delete row N of the current page"))
	lines = append(lines, m.theme.HelpKey.Render("page N")+" → "+m.theme.HelpValue.Render("Jump to page N"))
	lines = append(lines, m.theme.HelpKey.Render("search TEXT")+" → "+m.theme.HelpValue.Render("Filter by first or last name"))
	lines = append(lines, m.theme.HelpKey.Render("import PATH")+" → "+m.theme.HelpValue.Render("Load records from CSV"))
	lines = append(lines, m.theme.HelpKey.Render("Ctrl+C")+" → "+m.theme.HelpValue.Render("Quit"))
	lines = append(lines, "")

	switch m.settings.mode {
	case settingsViewing:
		lines = append(lines, m.theme.Secondary.Render("1. Update title"))
		lines = append(lines, m.theme.Secondary.Render("2. Toggle strict validation"))
		lines = append(lines, m.theme.Secondary.Render("3. Update log level"))
		lines = append(lines, m.theme.Faint.Render("4. Back"))
		lines = append(lines, "")
		lines = append(lines, m.theme.Focused.Render("> ")+m.command.View())
	case settingsEditingTitle:
		lines = append(lines, m.theme.Secondary.Render("Enter new title:"))
		lines = append(lines, m.settings.input.View())
	case settingsEditingLevel:
		lines = append(lines, m.theme.Secondary.Render("Enter log level (trace, debug, info, warn, error):"))
		lines = append(lines, m.settings.input.View())
	}
	if m.settings.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.settings.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}
