package ui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordterm/internal/config"
	"recordterm/internal/records"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	store, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	logger := log.New()
	logger.SetOutput(io.Discard)
	return newModel(records.New(), store, logger)
}

func typeText(m *model, s string) {
	if s == "" {
		return
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

func addViaForm(m *model, r records.Record) {
	for i, f := range records.Fields {
		m.setFocus(focusArea(i))
		typeText(m, r.Get(f))
	}
	press(m, tea.KeyEnter)
}

func runCommand(m *model, input string) tea.Cmd {
	m.setFocus(focusCommand)
	typeText(m, input)
	return press(m, tea.KeyEnter)
}

func TestFormAddsRecord(t *testing.T) {
	m := newTestModel(t)

	typeText(m, "Ann")
	press(m, tea.KeyTab)
	typeText(m, "Lee")
	press(m, tea.KeyTab)
	typeText(m, "ann@example.com")
	press(m, tea.KeyTab)
	typeText(m, "555-0101")
	press(m, tea.KeyEnter)

	require.Len(t, m.records.Records, 1)
	assert.Equal(t, records.Record{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "555-0101"}, m.records.Records[0])
	for i := range m.fields {
		assert.Equal(t, "", m.fields[i].Value())
	}
	view := m.View()
	assert.Contains(t, view, "Record added")
	assert.Contains(t, view, "ann@example.com")
	assert.Contains(t, view, "Student Form")
}

func TestSixthRecordLandsOnSecondPage(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 6; i++ {
		addViaForm(m, records.Record{FirstName: "A", LastName: "B", Email: "a@b.com", Phone: "123"})
	}
	assert.Equal(t, 2, m.records.CurrentPage)

	m.setFocus(focusTable)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.records.CurrentPage)
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, m.records.CurrentPage)
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, m.records.CurrentPage)
}

func TestEditCommandBindsFormToRecord(t *testing.T) {
	m := newTestModel(t)
	addViaForm(m, records.Record{FirstName: "Ann"})
	addViaForm(m, records.Record{FirstName: "Bob"})
	addViaForm(m, records.Record{FirstName: "Cy"})
	m.setFocus(focusFirstName)
	typeText(m, "draft")

	runCommand(m, "edit 2")

	idx, ok := m.records.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, focusFirstName, m.focus)
	assert.Equal(t, "Bob", m.fields[0].Value())
	assert.Contains(t, m.View(), "UPDATE")

	typeText(m, "by")
	assert.Equal(t, "Bobby", m.records.Records[1].FirstName)
	assert.Equal(t, "draft", m.records.Draft.FirstName)

	press(m, tea.KeyEnter)
	assert.False(t, m.records.Editing())
	assert.Len(t, m.records.Records, 3)
	assert.Equal(t, "draft", m.fields[0].Value())
}

func TestTableDeleteStepsBackAPage(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 6; i++ {
		addViaForm(m, records.Record{FirstName: "A"})
	}
	require.Equal(t, 2, m.records.CurrentPage)

	m.setFocus(focusTable)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})

	assert.Len(t, m.records.Records, 5)
	assert.Equal(t, 1, m.records.CurrentPage)
	assert.Contains(t, m.infoMessage, "Row 6 deleted")
}

func TestTableEditKey(t *testing.T) {
	m := newTestModel(t)
	addViaForm(m, records.Record{FirstName: "Ann"})
	addViaForm(m, records.Record{FirstName: "Bob"})

	m.setFocus(focusTable)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	idx, ok := m.records.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestSearchFiltersRows(t *testing.T) {
	m := newTestModel(t)
	addViaForm(m, records.Record{FirstName: "Ann"})
	addViaForm(m, records.Record{FirstName: "anna"})
	addViaForm(m, records.Record{FirstName: "Bob"})

	m.setFocus(focusSearch)
	typeText(m, "ANN")
	press(m, tea.KeyEnter)

	assert.Equal(t, "ANN", m.records.SearchTerm)
	view := m.View()
	assert.Contains(t, view, "anna")
	assert.NotContains(t, view, "Bob")

	runCommand(m, "delete 2")
	require.Len(t, m.records.Records, 2)
	assert.Equal(t, "Bob", m.records.Records[1].FirstName)
}

func TestDeletingLastRecordClearsSearchInput(t *testing.T) {
	m := newTestModel(t)
	addViaForm(m, records.Record{FirstName: "Ann"})
	runCommand(m, "search an")
	require.Equal(t, "an", m.search.Value())

	runCommand(m, "delete 1")

	assert.Empty(t, m.records.Records)
	assert.Equal(t, "", m.search.Value())
	assert.Contains(t, m.View(), "No records yet.")
}

func TestPageCommand(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 7; i++ {
		addViaForm(m, records.Record{FirstName: "A"})
	}

	runCommand(m, "page 1")
	assert.Equal(t, 1, m.records.CurrentPage)
	assert.Empty(t, m.errMessage)

	runCommand(m, "page 9")
	assert.Equal(t, "No page 9", m.errMessage)
	assert.Equal(t, 1, m.records.CurrentPage)

	runCommand(m, "search a")
	runCommand(m, "page 2")
	assert.Equal(t, "Clear the search to change pages", m.errMessage)
}

func TestUnknownCommand(t *testing.T) {
	m := newTestModel(t)
	runCommand(m, "frobnicate")
	assert.Equal(t, "Unknown command", m.errMessage)
	runCommand(m, "edit x")
	assert.Contains(t, m.errMessage, "Usage: edit")
}

func TestStrictModeRejectsBlankSubmit(t *testing.T) {
	m := newTestModel(t)
	m.records.Strict = true

	press(m, tea.KeyEnter)

	assert.Empty(t, m.records.Records)
	assert.Contains(t, m.errMessage, "First Name is required")
}

func TestImportCommand(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("fname,lname\nAnn,Lee\n,\nBob,Ray\n"), 0o644))

	runCommand(m, "import "+path)

	assert.Len(t, m.records.Records, 2)
	assert.Equal(t, "Imported 2 record(s), skipped 1", m.infoMessage)
	assert.Contains(t, m.errMessage, "name required")

	runCommand(m, "import")
	assert.Equal(t, "Provide a CSV path", m.errMessage)
}

func TestLongImportedFieldSurvivesEdit(t *testing.T) {
	m := newTestModel(t)
	email := strings.Repeat("a", 120) + "@example.com"
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("fname,email\nAnn,"+email+"\n"), 0o644))
	runCommand(m, "import "+path)
	require.Len(t, m.records.Records, 1)

	runCommand(m, "edit 1")
	assert.Equal(t, email, m.fields[focusEmail].Value())

	m.setFocus(focusEmail)
	press(m, tea.KeyBackspace)
	assert.Equal(t, email[:len(email)-1], m.records.Records[0].Email)
}

func TestLongSearchTermKept(t *testing.T) {
	m := newTestModel(t)
	term := strings.Repeat("x", 100)
	runCommand(m, "search "+term)
	assert.Equal(t, term, m.search.Value())
	assert.Equal(t, term, m.records.SearchTerm)
}

func TestStrictImportReportsRejectedRows(t *testing.T) {
	m := newTestModel(t)
	m.records.Strict = true
	path := filepath.Join(t.TempDir(), "people.csv")
	require.NoError(t, os.WriteFile(path, []byte("fname,lname\nAnn,Lee\nBob,\n"), 0o644))

	runCommand(m, "import "+path)

	require.Len(t, m.records.Records, 1)
	assert.Equal(t, "Imported 1 record(s), skipped 1", m.infoMessage)
	assert.Equal(t, "row 3: Last Name is required", m.errMessage)
}

func TestEditDuringSearchUsesRecordNumber(t *testing.T) {
	m := newTestModel(t)
	addViaForm(m, records.Record{FirstName: "Bob"})
	addViaForm(m, records.Record{FirstName: "Ann"})
	runCommand(m, "search ann")

	runCommand(m, "edit 1")

	idx, ok := m.records.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "Editing record 2. Enter saves.", m.infoMessage)
	view := m.View()
	assert.Contains(t, view, "Editing record 2")
	assert.NotContains(t, view, "record 1")
}

func TestSettingsToggleStrict(t *testing.T) {
	m := newTestModel(t)
	runCommand(m, "settings")
	require.Equal(t, stateSettings, m.state)
	assert.Contains(t, m.View(), "Settings & Help")

	typeText(m, "2")
	press(m, tea.KeyEnter)
	assert.True(t, m.cfg.Config.StrictValidation)
	assert.True(t, m.records.Strict)

	reloaded, err := config.LoadFrom(m.cfg.Path())
	require.NoError(t, err)
	assert.True(t, reloaded.Config.StrictValidation)

	press(m, tea.KeyEsc)
	assert.Equal(t, stateRecords, m.state)
	assert.Equal(t, focusCommand, m.focus)
}

func TestSettingsEditTitle(t *testing.T) {
	m := newTestModel(t)
	runCommand(m, "settings")
	typeText(m, "1")
	press(m, tea.KeyEnter)
	require.Equal(t, settingsEditingTitle, m.settings.mode)

	m.settings.input.SetValue("")
	typeText(m, "Roster")
	press(m, tea.KeyEnter)

	assert.Equal(t, "Roster", m.cfg.Config.Title)
	press(m, tea.KeyEsc)
	assert.Contains(t, m.View(), "Roster")
	assert.NotContains(t, m.View(), "Student Form")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestQuitCommand(t *testing.T) {
	m := newTestModel(t)
	cmd := runCommand(m, "quit")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestFocusCycles(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyShiftTab)
	assert.Equal(t, focusCommand, m.focus)
	press(m, tea.KeyTab)
	assert.Equal(t, focusFirstName, m.focus)
}

func TestSettingsUnknownOption(t *testing.T) {
	m := newTestModel(t)
	runCommand(m, "settings")
	typeText(m, "9")
	press(m, tea.KeyEnter)
	assert.Equal(t, "Choose 1, 2 or 3 to edit settings, or 4 to go back", m.settings.err)

	typeText(m, "4")
	press(m, tea.KeyEnter)
	assert.Equal(t, stateRecords, m.state)
}
