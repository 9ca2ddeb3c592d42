package tui

import (
	"context"
	"fmt"

	"github.com/Bryan21B/freelancer-cli/internal/app"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	fieldFirstName = iota
	fieldLastName
	fieldCompany
	fieldEmail
	fieldCity
	fieldCount
)

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app          *app.App
	clients      []*domain.Client
	cursor       int
	showArchived bool
	projectCount map[int64]int
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editingID     int64 // 0 for new client
	autoNewClient bool  // open new client form after data loads
}

type clientsDataMsg struct {
	clients      []*domain.Client
	projectCount map[int64]int
	err          error
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:          a,
		projectCount: make(map[int64]int),
		loading:      true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientService.GetAll(ctx, m.showArchived)
		if err != nil {
			if domain.IsNotFound(err) {
				return clientsDataMsg{projectCount: make(map[int64]int)}
			}
			return clientsDataMsg{err: err}
		}

		// Count projects per client
		counts := make(map[int64]int)
		for _, client := range clients {
			projects, err := m.app.ProjectRepo.ListByClient(ctx, client.ID, false, m.showArchived)
			if err != nil {
				continue
			}
			counts[client.ID] = len(projects)
		}

		return clientsDataMsg{
			clients:      clients,
			projectCount: counts,
		}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldFirstName] = textinput.New()
	m.fields[fieldFirstName].Placeholder = "First name"
	m.fields[fieldFirstName].CharLimit = 100
	m.fields[fieldFirstName].Width = 30

	m.fields[fieldLastName] = textinput.New()
	m.fields[fieldLastName].Placeholder = "Last name"
	m.fields[fieldLastName].CharLimit = 100
	m.fields[fieldLastName].Width = 30

	m.fields[fieldCompany] = textinput.New()
	m.fields[fieldCompany].Placeholder = "Company name"
	m.fields[fieldCompany].CharLimit = 100
	m.fields[fieldCompany].Width = 40

	m.fields[fieldEmail] = textinput.New()
	m.fields[fieldEmail].Placeholder = "email@example.com"
	m.fields[fieldEmail].CharLimit = 100
	m.fields[fieldEmail].Width = 40

	m.fields[fieldCity] = textinput.New()
	m.fields[fieldCity].Placeholder = "City (optional)"
	m.fields[fieldCity].CharLimit = 100
	m.fields[fieldCity].Width = 30

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldFirstName].SetValue(editing.FirstName)
		m.fields[fieldLastName].SetValue(editing.LastName)
		m.fields[fieldCompany].SetValue(editing.CompanyName)
		m.fields[fieldEmail].SetValue(editing.Email)
		if editing.AddressCity != nil {
			m.fields[fieldCity].SetValue(*editing.AddressCity)
		}
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = fieldFirstName
	m.fields[fieldFirstName].Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		firstName := m.fields[fieldFirstName].Value()
		lastName := m.fields[fieldLastName].Value()
		company := m.fields[fieldCompany].Value()
		email := m.fields[fieldEmail].Value()
		city := m.fields[fieldCity].Value()

		var cityPtr *string
		if city != "" {
			cityPtr = &city
		}

		if m.editingID > 0 {
			patch := domain.ClientPatch{
				FirstName:   &firstName,
				LastName:    &lastName,
				CompanyName: &company,
				Email:       &email,
				AddressCity: cityPtr,
			}
			client, err := m.app.ClientService.UpdateByID(ctx, m.editingID, patch)
			if err != nil {
				return clientSavedMsg{err: err}
			}
			return clientSavedMsg{name: client.FullName()}
		}

		client, err := m.app.ClientService.Create(ctx, domain.NewClient{
			FirstName:   firstName,
			LastName:    lastName,
			CompanyName: company,
			Email:       email,
			AddressCity: cityPtr,
		})
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.FullName()}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		m.mode = clientModeNew
		m.initForm(nil)
		return m, m.fields[fieldFirstName].Focus()
	}

	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.projectCount = msg.projectCount
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldFirstName].Focus()
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case msg.String() == "n":
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldFirstName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, m.fields[fieldFirstName].Focus()
			}
		case msg.String() == "a":
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				return m, m.toggleArchive()
			}
		case msg.String() == "h":
			m.showArchived = !m.showArchived
			m.cursor = 0
			m.loading = true
			return m, m.loadClients()
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field or explicit submit, save
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) toggleArchive() tea.Cmd {
	client := m.clients[m.cursor]
	return func() tea.Msg {
		ctx := context.Background()

		var err error
		if client.IsArchived {
			_, err = m.app.ClientService.UnarchiveByID(ctx, client.ID)
		} else {
			_, err = m.app.ClientService.ArchiveByID(ctx, client.ID)
		}
		if err != nil {
			return clientsDataMsg{err: err}
		}

		// Reload
		return m.loadClients()()
	}
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome to freelancer!") + "\n"
			s += subtitleStyle.Render("  Let's set up your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"First name:", "Last name:", "Company:", "Email:", "City:"}
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

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	// Header
	header := "Clients"
	if m.showArchived {
		header += subtitleStyle.Render("  (showing archived)")
	}
	s += titleStyle.Render(header) + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'h' to toggle archived clients") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  a: archive/unarchive  h: toggle archived")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	// Name
	name := client.FullName()
	if client.IsArchived {
		name += " (archived)"
	}

	// Project count
	projects := fmt.Sprintf("%d project(s)", m.projectCount[client.ID])

	// Build row
	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, name)
	line2 := fmt.Sprintf("    %s  |  %s", client.CompanyName, projects)
	line3 := fmt.Sprintf("    %s", client.Email)

	// Apply styling
	nameStyle := lipgloss.NewStyle()
	detailStyle := subtitleStyle
	if client.IsArchived {
		nameStyle = nameStyle.Foreground(mutedColor)
		detailStyle = lipgloss.NewStyle().Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + detailStyle.Render(line2) + "\n" + detailStyle.Render(line3)
}
