package tui

import (
	"fmt"
	"strconv"

	"github.com/Bryan21B/freelancer-cli/internal/app"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

const (
	setFieldName = iota
	setFieldEmail
	setFieldAddress
	setFieldPhone
	setFieldPrefix
	setFieldDueDays
	setFieldCount
)

// SettingsModel shows and edits user details and invoice defaults
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	statusMsg string
	err       error

	fields     []textinput.Model
	fieldFocus int
}

type settingsSavedMsg struct {
	err error
}

// NewSettingsModel creates a new settings screen model
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	cfg := m.app.Config
	m.fields = make([]textinput.Model, setFieldCount)

	m.fields[setFieldName] = textinput.New()
	m.fields[setFieldName].Placeholder = "Your name"
	m.fields[setFieldName].CharLimit = 100
	m.fields[setFieldName].Width = 40
	m.fields[setFieldName].SetValue(cfg.User.Name)

	m.fields[setFieldEmail] = textinput.New()
	m.fields[setFieldEmail].Placeholder = "you@example.com"
	m.fields[setFieldEmail].CharLimit = 100
	m.fields[setFieldEmail].Width = 40
	m.fields[setFieldEmail].SetValue(cfg.User.Email)

	m.fields[setFieldAddress] = textinput.New()
	m.fields[setFieldAddress].Placeholder = "Billing address"
	m.fields[setFieldAddress].CharLimit = 200
	m.fields[setFieldAddress].Width = 50
	m.fields[setFieldAddress].SetValue(cfg.User.Address)

	m.fields[setFieldPhone] = textinput.New()
	m.fields[setFieldPhone].Placeholder = "+1 555 000 0000"
	m.fields[setFieldPhone].CharLimit = 30
	m.fields[setFieldPhone].Width = 20
	m.fields[setFieldPhone].SetValue(cfg.User.Phone)

	m.fields[setFieldPrefix] = textinput.New()
	m.fields[setFieldPrefix].Placeholder = "Invoice number prefix, e.g. INV-"
	m.fields[setFieldPrefix].CharLimit = 10
	m.fields[setFieldPrefix].Width = 10
	m.fields[setFieldPrefix].SetValue(cfg.Invoice.NumberPrefix)

	m.fields[setFieldDueDays] = textinput.New()
	m.fields[setFieldDueDays].Placeholder = "Default payment terms in days"
	m.fields[setFieldDueDays].CharLimit = 4
	m.fields[setFieldDueDays].Width = 6
	m.fields[setFieldDueDays].SetValue(strconv.Itoa(cfg.Invoice.DefaultDueDays))

	m.fieldFocus = setFieldName
	m.fields[setFieldName].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		dueDays, err := strconv.Atoi(m.fields[setFieldDueDays].Value())
		if err != nil || dueDays < 1 {
			return settingsSavedMsg{err: fmt.Errorf("due days must be a positive number")}
		}

		cfg := m.app.Config
		cfg.User.Name = m.fields[setFieldName].Value()
		cfg.User.Email = m.fields[setFieldEmail].Value()
		cfg.User.Address = m.fields[setFieldAddress].Value()
		cfg.User.Phone = m.fields[setFieldPhone].Value()
		cfg.Invoice.NumberPrefix = m.fields[setFieldPrefix].Value()
		cfg.Invoice.DefaultDueDays = dueDays

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: err}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		if msg.String() == "e" {
			m.mode = settingsModeEdit
			m.initForm()
			return m, m.fields[setFieldName].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % setFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + setFieldCount) % setFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == setFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewForm() string {
	s := titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Name:", "Email:", "Address:", "Phone:", "Invoice prefix:", "Due days:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *SettingsModel) viewSettings() string {
	cfg := m.app.Config

	labelStyle := subtitleStyle
	valueStyle := lipgloss.NewStyle()

	orUnset := func(v string) string {
		if v == "" {
			return subtitleStyle.Render("(not set)")
		}
		return valueStyle.Render(v)
	}

	s := titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	s += "  " + labelStyle.Render("Your details") + "\n"
	s += fmt.Sprintf("  Name:     %s\n", orUnset(cfg.User.Name))
	s += fmt.Sprintf("  Email:    %s\n", orUnset(cfg.User.Email))
	s += fmt.Sprintf("  Address:  %s\n", orUnset(cfg.User.Address))
	s += fmt.Sprintf("  Phone:    %s\n", orUnset(cfg.User.Phone))

	s += "\n  " + labelStyle.Render("Invoice defaults") + "\n"
	s += fmt.Sprintf("  Prefix:     %s\n", orUnset(cfg.Invoice.NumberPrefix))
	s += fmt.Sprintf("  Due days:   %d\n", cfg.Invoice.DefaultDueDays)
	s += fmt.Sprintf("  Numbering starts at:  %d\n", cfg.Invoice.StartingNumber)

	s += "\n  " + labelStyle.Render("Storage") + "\n"
	s += fmt.Sprintf("  Database:  %s\n", cfg.Database.Path)

	s += "\n" + helpStyle.Render("  e: edit settings")

	return s
}
