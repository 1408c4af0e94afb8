package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"recordterm/internal/config"
	"recordterm/internal/importer"
	"recordterm/internal/records"
	"recordterm/internal/theme"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive record session over state.
func NewProgram(state *records.State, cfg *config.Store, logger *log.Logger) *Program {
	m := newModel(state, cfg, logger)
	return &Program{program: tea.NewProgram(m, tea.WithAltScreen())}
}

// Start launches the Bubble Tea program and blocks until it exits.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	_, err := p.program.Run()
	return err
}

type viewState int

const (
	stateRecords viewState = iota
	stateSettings
)

type focusArea int

const (
	focusFirstName focusArea = iota
	focusLastName
	focusEmail
	focusPhone
	focusSearch
	focusTable
	focusCommand
	focusCount
)

const commandPlaceholder = "edit N, delete N, page N, search TEXT, import PATH, settings, quit"

type model struct {
	state   viewState
	records *records.State
	cfg     *config.Store
	theme   theme.Theme
	log     *log.Logger
	width   int
	height  int

	infoMessage string
	errMessage  string

	focus    focusArea
	fields   []textinput.Model
	search   textinput.Model
	command  textinput.Model
	selected int

	settings settingsModel
}

func newModel(state *records.State, cfg *config.Store, logger *log.Logger) *model {
	if state == nil {
		state = records.New()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	state.Strict = cfg.Config.StrictValidation

	fields := make([]textinput.Model, len(records.Fields))
	for i, f := range records.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "Enter your " + f.Label()
		fields[i] = ti
	}

	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Search by name"

	m := model{
		state:    stateRecords,
		records:  state,
		cfg:      cfg,
		theme:    theme.Default(),
		log:      logger,
		fields:   fields,
		search:   search,
		settings: newSettingsModel(),
	}
	m.command = newCommandInput(commandPlaceholder)
	m.setFocus(focusFirstName)
	m.syncForm()
	m.syncSearch()
	return &m
}

func newCommandInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	return input
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSettings:
		cmd = m.updateSettings(msg)
	default:
		m.state = stateRecords
		cmd = m.updateRecords(msg)
	}
	return m, cmd
}

func (m *model) View() string {
	switch m.state {
	case stateSettings:
		return m.viewSettings()
	default:
		return m.viewRecords()
	}
}

// Focus helpers
func (m *model) setFocus(next focusArea) tea.Cmd {
	for i := range m.fields {
		m.fields[i].Blur()
	}
	m.search.Blur()
	m.command.Blur()
	m.focus = next
	switch {
	case next <= focusPhone:
		return m.fields[next].Focus()
	case next == focusSearch:
		return m.search.Focus()
	case next == focusCommand:
		return m.command.Focus()
	}
	return nil
}

func (m *model) cycleFocus(step int) tea.Cmd {
	next := (int(m.focus) + step + int(focusCount)) % int(focusCount)
	return m.setFocus(focusArea(next))
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
}

// syncForm copies the draft or the record under edit into the form inputs.
func (m *model) syncForm() {
	rec := m.records.FormRecord()
	for i, f := range records.Fields {
		if value := rec.Get(f); m.fields[i].Value() != value {
			m.fields[i].SetValue(value)
			m.fields[i].CursorEnd()
		}
	}
}

func (m *model) syncSearch() {
	if m.search.Value() != m.records.SearchTerm {
		m.search.SetValue(m.records.SearchTerm)
	}
}

func (m *model) clampSelection() {
	rows := m.records.View().Rows
	if m.selected >= len(rows) {
		m.selected = len(rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}

// global command helpers
func isExitCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "exit." || v == "quit" || v == "q"
}

func isBackCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "/" || v == "back"
}

// RECORDS
func (m *model) updateRecords(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab:
			return m.cycleFocus(1)
		case tea.KeyShiftTab:
			return m.cycleFocus(-1)
		case tea.KeyEsc:
			return m.setFocus(focusCommand)
		}
	}

	switch {
	case m.focus <= focusPhone:
		cmds = append(cmds, m.updateFormField(msg))
	case m.focus == focusSearch:
		cmds = append(cmds, m.updateSearch(msg))
	case m.focus == focusTable:
		cmds = append(cmds, m.updateTable(msg))
	case m.focus == focusCommand:
		cmds = append(cmds, m.updateCommand(msg))
	}
	return batchCmds(cmds)
}

func (m *model) updateFormField(msg tea.Msg) tea.Cmd {
	idx := int(m.focus)
	field := records.Fields[idx]
	before := m.fields[idx].Value()
	var cmd tea.Cmd
	m.fields[idx], cmd = m.fields[idx].Update(msg)
	if value := m.fields[idx].Value(); value != before {
		m.records.ChangeField(field, value)
		m.log.WithFields(log.Fields{"field": field.Name(), "editing": m.records.Editing()}).Trace("field changed")
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		m.submit()
	}
	return cmd
}

func (m *model) submit() {
	m.resetMessages()
	idx, editing := m.records.EditIndex()
	if err := m.records.Submit(); err != nil {
		m.errMessage = err.Error()
		m.log.WithError(err).Warn("submit rejected")
		return
	}
	if editing {
		m.infoMessage = fmt.Sprintf("Record %d updated", idx+1)
		m.log.WithField("index", idx).Debug("edit closed")
	} else {
		m.infoMessage = "Record added"
		m.log.WithFields(log.Fields{"count": len(m.records.Records), "page": m.records.CurrentPage}).Debug("record added")
	}
	m.syncForm()
	m.clampSelection()
}

func (m *model) updateSearch(msg tea.Msg) tea.Cmd {
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.records.ChangeSearch(value)
		m.clampSelection()
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		m.records.Search()
		m.selected = 0
		m.log.WithField("term", m.records.SearchTerm).Debug("search")
	}
	return cmd
}

func (m *model) updateTable(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	rows := m.records.View().Rows
	switch key.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(rows)-1 {
			m.selected++
		}
	case "e", "enter":
		if m.selected < len(rows) {
			return m.editRow(rows[m.selected])
		}
	case "d", "delete", "x":
		if m.selected < len(rows) {
			m.deleteRow(rows[m.selected])
		}
	case "left", "pgup", "h":
		m.stepPage(-1)
	case "right", "pgdown", "l":
		m.stepPage(1)
	}
	return nil
}

func (m *model) editRow(row records.Row) tea.Cmd {
	m.resetMessages()
	if err := m.records.Edit(row.Index); err != nil {
		m.errMessage = err.Error()
		return nil
	}
	m.log.WithField("index", row.Index).Debug("edit started")
	m.infoMessage = fmt.Sprintf("Editing record %d. Enter saves.", row.Index+1)
	m.syncForm()
	return m.setFocus(focusFirstName)
}

func (m *model) deleteRow(row records.Row) {
	m.resetMessages()
	if err := m.records.Delete(row.Index); err != nil {
		m.errMessage = err.Error()
		return
	}
	m.log.WithFields(log.Fields{"index": row.Index, "page": m.records.CurrentPage}).Debug("record deleted")
	m.infoMessage = fmt.Sprintf("Row %d deleted", row.Number)
	m.syncForm()
	m.syncSearch()
	m.clampSelection()
}

func (m *model) stepPage(step int) {
	if m.records.SearchTerm != "" {
		return
	}
	m.changePage(m.records.CurrentPage + step)
}

func (m *model) changePage(page int) {
	if err := m.records.ChangePage(page); err != nil {
		if !errors.Is(err, records.ErrPageOutOfRange) {
			m.errMessage = err.Error()
		}
		return
	}
	m.selected = 0
	m.log.WithField("page", page).Trace("page changed")
}

func (m *model) rowByNumber(arg string) (records.Row, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		return records.Row{}, false
	}
	for _, row := range m.records.View().Rows {
		if row.Number == n {
			return row, true
		}
	}
	return records.Row{}, false
}

func (m *model) updateCommand(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.command.Value())
		m.command.SetValue("")
		cmds = append(cmds, m.runCommand(value))
	}
	return batchCmds(cmds)
}

func (m *model) runCommand(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	if isExitCommand(input) {
		m.log.Info("quit requested")
		return tea.Quit
	}
	verb, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	m.resetMessages()
	switch strings.ToLower(verb) {
	case "edit", "e":
		row, ok := m.rowByNumber(arg)
		if !ok {
			m.errMessage = "Usage: edit <row shown in S.No.>"
			return nil
		}
		return m.editRow(row)
	case "delete", "del", "d":
		row, ok := m.rowByNumber(arg)
		if !ok {
			m.errMessage = "Usage: delete <row shown in S.No.>"
			return nil
		}
		m.deleteRow(row)
	case "page", "p":
		if m.records.SearchTerm != "" {
			m.errMessage = "Clear the search to change pages"
			return nil
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			m.errMessage = "Usage: page <number>"
			return nil
		}
		if err := m.records.ChangePage(n); err != nil {
			m.errMessage = fmt.Sprintf("No page %d", n)
			return nil
		}
		m.selected = 0
	case "next", "n":
		m.stepPage(1)
	case "prev", "previous":
		m.stepPage(-1)
	case "search", "find":
		m.records.ChangeSearch(arg)
		m.records.Search()
		m.syncSearch()
		m.selected = 0
	case "clear":
		m.records.ChangeSearch("")
		m.syncSearch()
		m.clampSelection()
	case "save", "add", "submit":
		m.submit()
	case "import":
		m.handleImport(arg)
	case "settings", "s":
		m.resetMessages()
		m.settings = newSettingsModel()
		m.state = stateSettings
		m.command = newCommandInput("1=Title  2=Strict  3=Log level  4=Back")
		return m.command.Focus()
	default:
		m.errMessage = "Unknown command"
	}
	return nil
}

func (m *model) handleImport(path string) {
	if strings.TrimSpace(path) == "" {
		m.errMessage = "Provide a CSV path"
		return
	}
	result, err := importer.ReadFile(path)
	if err != nil {
		m.errMessage = fmt.Sprintf("import csv: %v", err)
		m.log.WithError(err).WithField("path", path).Warn("import failed")
		return
	}
	result.Reject(m.records.AppendAll(result.Records))
	m.clampSelection()
	m.infoMessage = result.Summary()
	if len(result.Errors) > 0 {
		m.errMessage = strings.Join(result.Errors, "; ")
	}
	m.log.WithFields(log.Fields{"path": path, "created": result.Created, "skipped": result.Skipped}).Info("csv imported")
}

func (m *model) viewRecords() string {
	lines := []string{m.theme.Title.Render(m.cfg.Config.Title)}
	lines = append(lines, m.theme.Faint.Render("Tab moves focus. Enter submits. Esc jumps to the command line. Ctrl+C quits."))
	lines = append(lines, "")

	for i, f := range records.Fields {
		label := m.theme.Label
		if m.focus == focusArea(i) {
			label = m.theme.Focused
		}
		lines = append(lines, label.Render(fmt.Sprintf("%-15s", f.Label()+":"))+" "+m.fields[i].View())
	}
	button := "ADD"
	if idx, ok := m.records.EditIndex(); ok {
		button = "UPDATE"
		lines = append(lines, m.theme.Faint.Render(fmt.Sprintf("Editing record %d", idx+1)))
	}
	lines = append(lines, m.theme.Button.Render(button))
	if m.records.Strict {
		lines = append(lines, m.theme.Faint.Render("Strict validation on"))
	}
	lines = append(lines, "")

	searchLabel := m.theme.Label
	if m.focus == focusSearch {
		searchLabel = m.theme.Focused
	}
	lines = append(lines, searchLabel.Render("search> ")+m.search.View())
	lines = append(lines, "")

	view := m.records.View()
	if view.ShowTable {
		lines = append(lines, m.renderTable(view)...)
		if view.ShowPagination {
			lines = append(lines, "", m.renderPages(view))
		}
	} else if m.records.SearchTerm != "" {
		lines = append(lines, m.theme.Faint.Render("No records match your search."))
	} else {
		lines = append(lines, m.theme.Faint.Render("No records yet."))
	}

	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, m.theme.Border.Render(strings.Repeat("─", 40)))
	prompt := m.theme.Label
	if m.focus == focusCommand {
		prompt = m.theme.Focused
	}
	lines = append(lines, prompt.Render("cmd> ")+m.command.View())
	return strings.Join(lines, "\n") + "\n"
}
