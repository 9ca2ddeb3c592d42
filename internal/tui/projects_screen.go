package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/app"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type projectMode int

const (
	projectModeList projectMode = iota
	projectModeNew
	projectModeEdit
)

const (
	projFieldName = iota
	projFieldClient
	projFieldDescription
	projFieldStart
	projFieldEnd
	projFieldCount
)

// ProjectsModel displays a navigable list of projects with create/edit forms
type ProjectsModel struct {
	app          *app.App
	projects     []*domain.Project
	cursor       int
	showArchived bool
	clientNames  map[int64]string
	loading      bool
	err          error
	statusMsg    string

	mode       projectMode
	fields     []textinput.Model
	fieldFocus int
	editingID  int64
}

type projectsDataMsg struct {
	projects    []*domain.Project
	clientNames map[int64]string
	err         error
}

type projectSavedMsg struct {
	name string
	err  error
}

type projectActionMsg struct {
	action string
	name   string
	err    error
}

// NewProjectsModel creates a new projects screen model
func NewProjectsModel(a *app.App) tea.Model {
	return &ProjectsModel{
		app:         a,
		clientNames: make(map[int64]string),
		loading:     true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ProjectsModel) IsCapturingInput() bool {
	return m.mode == projectModeNew || m.mode == projectModeEdit
}

func (m *ProjectsModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m *ProjectsModel) loadProjects() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		projects, err := m.app.ProjectService.GetAll(ctx, m.showArchived)
		if err != nil {
			if domain.IsNotFound(err) {
				return projectsDataMsg{clientNames: make(map[int64]string)}
			}
			return projectsDataMsg{err: err}
		}

		names := make(map[int64]string)
		for _, project := range projects {
			if _, ok := names[project.ClientID]; ok {
				continue
			}
			client, err := m.app.ClientService.GetByID(ctx, project.ClientID, true)
			if err != nil {
				continue
			}
			names[project.ClientID] = client.FullName()
		}

		return projectsDataMsg{
			projects:    projects,
			clientNames: names,
		}
	}
}

func (m *ProjectsModel) initForm(editing *domain.Project) {
	m.fields = make([]textinput.Model, projFieldCount)

	m.fields[projFieldName] = textinput.New()
	m.fields[projFieldName].Placeholder = "Project name"
	m.fields[projFieldName].CharLimit = 100
	m.fields[projFieldName].Width = 40

	m.fields[projFieldClient] = textinput.New()
	m.fields[projFieldClient].Placeholder = "Client ID"
	m.fields[projFieldClient].CharLimit = 10
	m.fields[projFieldClient].Width = 10

	m.fields[projFieldDescription] = textinput.New()
	m.fields[projFieldDescription].Placeholder = "Description (optional)"
	m.fields[projFieldDescription].CharLimit = 200
	m.fields[projFieldDescription].Width = 50

	m.fields[projFieldStart] = textinput.New()
	m.fields[projFieldStart].Placeholder = "YYYY-MM-DD (default today)"
	m.fields[projFieldStart].CharLimit = 10
	m.fields[projFieldStart].Width = 15

	m.fields[projFieldEnd] = textinput.New()
	m.fields[projFieldEnd].Placeholder = "YYYY-MM-DD (optional)"
	m.fields[projFieldEnd].CharLimit = 10
	m.fields[projFieldEnd].Width = 15

	if editing != nil {
		m.fields[projFieldName].SetValue(editing.Name)
		m.fields[projFieldClient].SetValue(strconv.FormatInt(editing.ClientID, 10))
		if editing.Description != nil {
			m.fields[projFieldDescription].SetValue(*editing.Description)
		}
		m.fields[projFieldStart].SetValue(editing.StartDate.Format("2006-01-02"))
		if editing.EndDate != nil {
			m.fields[projFieldEnd].SetValue(editing.EndDate.Format("2006-01-02"))
		}
		m.editingID = editing.ID
	} else {
		m.editingID = 0
	}

	m.fieldFocus = projFieldName
	m.fields[projFieldName].Focus()
}

func (m *ProjectsModel) saveProject() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		name := m.fields[projFieldName].Value()
		description := m.fields[projFieldDescription].Value()

		var descPtr *string
		if description != "" {
			descPtr = &description
		}

		startDate := time.Now()
		if v := m.fields[projFieldStart].Value(); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				return projectSavedMsg{err: fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", v)}
			}
			startDate = parsed
		}

		var endDate *time.Time
		if v := m.fields[projFieldEnd].Value(); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				return projectSavedMsg{err: fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", v)}
			}
			endDate = &parsed
		}

		if m.editingID > 0 {
			patch := domain.ProjectPatch{
				Name:        &name,
				Description: descPtr,
				StartDate:   &startDate,
				EndDate:     endDate,
			}
			project, err := m.app.ProjectService.UpdateByID(ctx, m.editingID, patch)
			if err != nil {
				return projectSavedMsg{err: err}
			}
			return projectSavedMsg{name: project.Name}
		}

		clientID, err := strconv.ParseInt(m.fields[projFieldClient].Value(), 10, 64)
		if err != nil {
			return projectSavedMsg{err: fmt.Errorf("invalid client ID %q", m.fields[projFieldClient].Value())}
		}

		project, err := m.app.ProjectService.Create(ctx, domain.NewProject{
			Name:        name,
			Description: descPtr,
			StartDate:   startDate,
			EndDate:     endDate,
			ClientID:    clientID,
		})
		if err != nil {
			return projectSavedMsg{err: err}
		}
		return projectSavedMsg{name: project.Name}
	}
}

func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == projectModeNew || m.mode == projectModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadProjects()

	case projectsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.projects = msg.projects
			m.clientNames = msg.clientNames
			if m.cursor >= len(m.projects) {
				m.cursor = max(0, len(m.projects)-1)
			}
		}
		return m, nil

	case projectActionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s: %s", msg.action, msg.name)
		m.loading = true
		return m, m.loadProjects()

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
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case msg.String() == "n":
			m.mode = projectModeNew
			m.initForm(nil)
			return m, m.fields[projFieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.projects) > 0 && m.cursor < len(m.projects) {
				m.mode = projectModeEdit
				m.initForm(m.projects[m.cursor])
				return m, m.fields[projFieldName].Focus()
			}
		case msg.String() == "x":
			// End the selected project
			if len(m.projects) > 0 && m.cursor < len(m.projects) {
				return m, m.endProject()
			}
		case msg.String() == "a":
			if len(m.projects) > 0 && m.cursor < len(m.projects) {
				return m, m.archiveProject()
			}
		case msg.String() == "h":
			m.showArchived = !m.showArchived
			m.cursor = 0
			m.loading = true
			return m, m.loadProjects()
		}
	}

	return m, nil
}

func (m *ProjectsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = projectModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadProjects()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = projectModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % projFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + projFieldCount) % projFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == projFieldCount-1 {
				return m, m.saveProject()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveProject()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ProjectsModel) endProject() tea.Cmd {
	project := m.projects[m.cursor]
	return func() tea.Msg {
		ended, err := m.app.ProjectService.EndByID(context.Background(), project.ID)
		if err != nil {
			return projectActionMsg{err: err}
		}
		return projectActionMsg{action: "Ended", name: ended.Name}
	}
}

func (m *ProjectsModel) archiveProject() tea.Cmd {
	project := m.projects[m.cursor]
	return func() tea.Msg {
		archived, err := m.app.ProjectService.ArchiveByID(context.Background(), project.ID)
		if err != nil {
			return projectActionMsg{err: err}
		}
		return projectActionMsg{action: "Archived", name: archived.Name}
	}
}

func (m *ProjectsModel) View() string {
	if m.mode == projectModeNew || m.mode == projectModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ProjectsModel) viewForm() string {
	var s string

	if m.mode == projectModeNew {
		s += titleStyle.Render("New Project") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Project") + "\n\n"
	}

	labels := []string{"Name:", "Client ID:", "Description:", "Start date:", "End date:"}
	for i, label := range labels {
		if m.mode == projectModeEdit && i == projFieldClient {
			// Projects cannot move between clients
			s += fmt.Sprintf("  %s\n  %s\n\n", subtitleStyle.Render(label), m.fields[i].Value())
			continue
		}
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

func (m *ProjectsModel) viewList() string {
	if m.loading {
		return "Loading projects..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	header := "Projects"
	if m.showArchived {
		header += subtitleStyle.Render("  (showing archived)")
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.projects) == 0 {
		s += subtitleStyle.Render("  No projects yet. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'h' to toggle archived projects") + "\n"
		return s
	}

	for i, project := range m.projects {
		s += m.renderProject(i, project) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: end  a: archive  h: toggle archived")

	return s
}

func (m *ProjectsModel) renderProject(index int, project *domain.Project) string {
	selected := index == m.cursor

	name := project.Name
	switch {
	case project.IsArchived:
		name += " (archived)"
	case !project.IsActive():
		name += " (ended)"
	}

	clientName := m.clientNames[project.ClientID]
	if clientName == "" {
		clientName = fmt.Sprintf("Client #%d", project.ClientID)
	}

	dates := "started " + project.StartDate.Format("Jan 2, 2006")
	if project.EndDate != nil {
		dates += ", ended " + project.EndDate.Format("Jan 2, 2006")
	}

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%s", indicator, name)
	line2 := fmt.Sprintf("    %s  |  %s", clientName, dates)

	nameStyle := lipgloss.NewStyle()
	detailStyle := subtitleStyle
	if project.IsArchived || !project.IsActive() {
		nameStyle = nameStyle.Foreground(mutedColor)
		detailStyle = lipgloss.NewStyle().Foreground(mutedColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + detailStyle.Render(line2)
}
