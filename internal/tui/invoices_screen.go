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
	"github.com/shopspring/decimal"
)

type invoiceMode int

const (
	invoiceModeList invoiceMode = iota
	invoiceModeDetail
	invoiceModeNew
)

const (
	invFieldNumber = iota
	invFieldTotal
	invFieldDue
	invFieldClient
	invFieldProject
	invFieldCount
)

// InvoicesModel displays invoices as a list with a detail view and a
// new-invoice form
type InvoicesModel struct {
	app          *app.App
	invoices     []*domain.Invoice
	cursor       int
	showArchived bool
	statusFilter *domain.InvoiceStatus
	clientNames  map[int64]string
	loading      bool
	err          error
	statusMsg    string

	mode invoiceMode

	// Detail state
	detail        *domain.Invoice
	detailClient  *domain.Client
	detailProject *domain.Project

	// Form state
	fields     []textinput.Model
	fieldFocus int
}

type invoicesDataMsg struct {
	invoices    []*domain.Invoice
	clientNames map[int64]string
	err         error
}

type invoiceDetailMsg struct {
	invoice *domain.Invoice
	client  *domain.Client
	project *domain.Project
	err     error
}

type invoiceSavedMsg struct {
	number int64
	err    error
}

type invoiceActionMsg struct {
	action string
	number int64
	err    error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	return &InvoicesModel{
		app:         a,
		clientNames: make(map[int64]string),
		loading:     true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode == invoiceModeNew
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		invoices, err := m.app.InvoiceService.GetAll(ctx, m.showArchived, m.statusFilter)
		if err != nil {
			if domain.IsNotFound(err) {
				return invoicesDataMsg{clientNames: make(map[int64]string)}
			}
			return invoicesDataMsg{err: err}
		}

		names := make(map[int64]string)
		for _, invoice := range invoices {
			if _, ok := names[invoice.ClientID]; ok {
				continue
			}
			client, err := m.app.ClientService.GetByID(ctx, invoice.ClientID, true)
			if err != nil {
				continue
			}
			names[invoice.ClientID] = client.FullName()
		}

		return invoicesDataMsg{
			invoices:    invoices,
			clientNames: names,
		}
	}
}

func (m *InvoicesModel) loadDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		invoice, err := m.app.InvoiceService.GetByID(ctx, id, true)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}

		msg := invoiceDetailMsg{invoice: invoice}
		if client, err := m.app.ClientService.GetByID(ctx, invoice.ClientID, true); err == nil {
			msg.client = client
		}
		if project, err := m.app.ProjectService.GetByInvoiceID(ctx, invoice.ID); err == nil {
			msg.project = project
		}
		return msg
	}
}

func (m *InvoicesModel) initForm() {
	m.fields = make([]textinput.Model, invFieldCount)

	m.fields[invFieldNumber] = textinput.New()
	m.fields[invFieldNumber].Placeholder = "Invoice number"
	m.fields[invFieldNumber].CharLimit = 12
	m.fields[invFieldNumber].Width = 15

	m.fields[invFieldTotal] = textinput.New()
	m.fields[invFieldTotal].Placeholder = "Total amount, e.g. 1234.56"
	m.fields[invFieldTotal].CharLimit = 15
	m.fields[invFieldTotal].Width = 15

	dueDays := m.app.Config.Invoice.DefaultDueDays
	m.fields[invFieldDue] = textinput.New()
	m.fields[invFieldDue].Placeholder = fmt.Sprintf("YYYY-MM-DD (default +%d days)", dueDays)
	m.fields[invFieldDue].CharLimit = 10
	m.fields[invFieldDue].Width = 15

	m.fields[invFieldClient] = textinput.New()
	m.fields[invFieldClient].Placeholder = "Client ID"
	m.fields[invFieldClient].CharLimit = 10
	m.fields[invFieldClient].Width = 10

	m.fields[invFieldProject] = textinput.New()
	m.fields[invFieldProject].Placeholder = "Project ID"
	m.fields[invFieldProject].CharLimit = 10
	m.fields[invFieldProject].Width = 10

	m.fieldFocus = invFieldNumber
	m.fields[invFieldNumber].Focus()
}

func (m *InvoicesModel) saveInvoice() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		number, err := strconv.ParseInt(m.fields[invFieldNumber].Value(), 10, 64)
		if err != nil {
			return invoiceSavedMsg{err: fmt.Errorf("invalid invoice number %q", m.fields[invFieldNumber].Value())}
		}

		total, err := decimal.NewFromString(m.fields[invFieldTotal].Value())
		if err != nil {
			return invoiceSavedMsg{err: fmt.Errorf("invalid amount %q", m.fields[invFieldTotal].Value())}
		}

		dueDate := time.Now().AddDate(0, 0, m.app.Config.Invoice.DefaultDueDays)
		if v := m.fields[invFieldDue].Value(); v != "" {
			parsed, err := time.Parse("2006-01-02", v)
			if err != nil {
				return invoiceSavedMsg{err: fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", v)}
			}
			dueDate = parsed
		}

		clientID, err := strconv.ParseInt(m.fields[invFieldClient].Value(), 10, 64)
		if err != nil {
			return invoiceSavedMsg{err: fmt.Errorf("invalid client ID %q", m.fields[invFieldClient].Value())}
		}

		projectID, err := strconv.ParseInt(m.fields[invFieldProject].Value(), 10, 64)
		if err != nil {
			return invoiceSavedMsg{err: fmt.Errorf("invalid project ID %q", m.fields[invFieldProject].Value())}
		}

		invoice, err := m.app.InvoiceService.Create(ctx, domain.NewInvoice{
			InvoiceNumber: number,
			TotalCost:     total,
			DueDate:       dueDate,
			ClientID:      clientID,
			ProjectID:     projectID,
		})
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{number: invoice.InvoiceNumber}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == invoiceModeNew {
		return m.updateForm(msg)
	}
	if m.mode == invoiceModeDetail {
		return m.updateDetail(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			m.clientNames = msg.clientNames
			if m.cursor >= len(m.invoices) {
				m.cursor = max(0, len(m.invoices)-1)
			}
		}
		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s invoice #%d", msg.action, msg.number)
		m.loading = true
		return m, m.loadInvoices()

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
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case msg.String() == "n":
			m.mode = invoiceModeNew
			m.initForm()
			return m, m.fields[invFieldNumber].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.invoices) > 0 && m.cursor < len(m.invoices) {
				m.mode = invoiceModeDetail
				m.detail = nil
				return m, m.loadDetail(m.invoices[m.cursor].ID)
			}
		case msg.String() == "a":
			if len(m.invoices) > 0 && m.cursor < len(m.invoices) {
				return m, m.archiveInvoice(m.invoices[m.cursor].ID)
			}
		case msg.String() == "f":
			m.cycleStatusFilter()
			m.cursor = 0
			m.loading = true
			return m, m.loadInvoices()
		case msg.String() == "h":
			m.showArchived = !m.showArchived
			m.cursor = 0
			m.loading = true
			return m, m.loadInvoices()
		}
	}

	return m, nil
}

// cycleStatusFilter advances the filter through nil, DRAFT, VALIDATED,
// PAID, OVERDUE, CANCELLED and back to nil
func (m *InvoicesModel) cycleStatusFilter() {
	if m.statusFilter == nil {
		first := domain.InvoiceStatuses[0]
		m.statusFilter = &first
		return
	}
	for i, status := range domain.InvoiceStatuses {
		if status == *m.statusFilter {
			if i == len(domain.InvoiceStatuses)-1 {
				m.statusFilter = nil
			} else {
				next := domain.InvoiceStatuses[i+1]
				m.statusFilter = &next
			}
			return
		}
	}
	m.statusFilter = nil
}

func (m *InvoicesModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceDetailMsg:
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceModeList
			return m, nil
		}
		m.detail = msg.invoice
		m.detailClient = msg.client
		m.detailProject = msg.project
		return m, nil

	case invoiceActionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s invoice #%d", msg.action, msg.number)
		if m.detail != nil {
			return m, m.loadDetail(m.detail.ID)
		}
		return m, nil

	case tea.KeyMsg:
		if m.detail == nil {
			return m, nil
		}

		switch msg.String() {
		case "esc", "backspace":
			m.mode = invoiceModeList
			m.detail = nil
			m.loading = true
			return m, m.loadInvoices()
		case "1", "2", "3", "4", "5":
			idx := int(msg.String()[0] - '1')
			return m, m.setStatus(m.detail.ID, domain.InvoiceStatuses[idx])
		case "a":
			return m, m.archiveInvoice(m.detail.ID)
		}
	}

	return m, nil
}

func (m *InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = invoiceModeList
		m.statusMsg = fmt.Sprintf("Saved invoice #%d", msg.number)
		m.loading = true
		return m, m.loadInvoices()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = invoiceModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % invFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + invFieldCount) % invFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == invFieldCount-1 {
				return m, m.saveInvoice()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveInvoice()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *InvoicesModel) setStatus(id int64, status domain.InvoiceStatus) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.app.InvoiceService.UpdateStatusByID(context.Background(), id, status)
		if err != nil {
			return invoiceActionMsg{err: err}
		}
		return invoiceActionMsg{action: string(status), number: invoice.InvoiceNumber}
	}
}

func (m *InvoicesModel) archiveInvoice(id int64) tea.Cmd {
	return func() tea.Msg {
		invoice, err := m.app.InvoiceService.ArchiveByID(context.Background(), id)
		if err != nil {
			return invoiceActionMsg{err: err}
		}
		return invoiceActionMsg{action: "Archived", number: invoice.InvoiceNumber}
	}
}

func (m *InvoicesModel) View() string {
	switch m.mode {
	case invoiceModeNew:
		return m.viewForm()
	case invoiceModeDetail:
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *InvoicesModel) viewForm() string {
	s := titleStyle.Render("New Invoice") + "\n\n"

	labels := []string{"Number:", "Total:", "Due date:", "Client ID:", "Project ID:"}
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

func (m *InvoicesModel) viewDetail() string {
	if m.detail == nil {
		return "Loading invoice..."
	}

	invoice := m.detail
	prefix := m.app.Config.Invoice.NumberPrefix

	s := titleStyle.Render(fmt.Sprintf("Invoice %s%d", prefix, invoice.InvoiceNumber)) + "\n\n"

	s += fmt.Sprintf("  Status:  %s\n", statusBadge(invoice.Status))
	s += fmt.Sprintf("  Total:   %s\n", amountStyle.Render(formatMoney(invoice.TotalCost)))
	s += fmt.Sprintf("  Due:     %s\n", invoice.DueDate.Format("Jan 2, 2006"))
	if invoice.ValidatedAt != nil {
		s += fmt.Sprintf("  Validated: %s\n", invoice.ValidatedAt.Format("Jan 2, 2006"))
	}

	s += "\n"
	if m.detailClient != nil {
		s += fmt.Sprintf("  Client:  %s (%s)\n", m.detailClient.FullName(), m.detailClient.CompanyName)
	} else {
		s += fmt.Sprintf("  Client:  #%d\n", invoice.ClientID)
	}
	if m.detailProject != nil {
		s += fmt.Sprintf("  Project: %s\n", m.detailProject.Name)
	} else {
		s += fmt.Sprintf("  Project: #%d\n", invoice.ProjectID)
	}

	if invoice.IsArchived {
		s += "\n" + subtitleStyle.Render("  Archived") + "\n"
	}

	if m.statusMsg != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  1: draft  2: validated  3: paid  4: overdue  5: cancelled  a: archive  esc: back")

	return s
}

func (m *InvoicesModel) viewList() string {
	if m.loading {
		return "Loading invoices..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	header := "Invoices"
	if m.statusFilter != nil {
		header += subtitleStyle.Render(fmt.Sprintf("  (%s only)", *m.statusFilter))
	}
	if m.showArchived {
		header += subtitleStyle.Render("  (showing archived)")
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices match. Press 'n' to add one.") + "\n"
		s += subtitleStyle.Render("  Press 'f' to cycle the status filter, 'h' to toggle archived") + "\n"
		return s
	}

	for i, invoice := range m.invoices {
		s += m.renderInvoice(i, invoice) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: detail  a: archive  f: filter status  h: toggle archived")

	return s
}

func (m *InvoicesModel) renderInvoice(index int, invoice *domain.Invoice) string {
	selected := index == m.cursor

	clientName := m.clientNames[invoice.ClientID]
	if clientName == "" {
		clientName = fmt.Sprintf("Client #%d", invoice.ClientID)
	}

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line := fmt.Sprintf("%s#%-6d %-20s %10s  due %-12s %s",
		indicator,
		invoice.InvoiceNumber,
		truncateStr(clientName, 20),
		formatMoney(invoice.TotalCost),
		invoice.DueDate.Format("Jan 2, 2006"),
		statusBadge(invoice.Status),
	)
	if invoice.IsArchived {
		line += subtitleStyle.Render("  (archived)")
	}

	if selected {
		return selectedStyle.Render(line)
	}
	return line
}

// statusBadge renders a colored status label
func statusBadge(status domain.InvoiceStatus) string {
	var style lipgloss.Style
	switch status {
	case domain.InvoiceStatusDraft:
		style = lipgloss.NewStyle().Foreground(mutedColor)
	case domain.InvoiceStatusValidated:
		style = lipgloss.NewStyle().Foreground(primaryColor)
	case domain.InvoiceStatusPaid:
		style = lipgloss.NewStyle().Foreground(successColor)
	case domain.InvoiceStatusOverdue:
		style = lipgloss.NewStyle().Foreground(errorColor)
	case domain.InvoiceStatusCancelled:
		style = lipgloss.NewStyle().Foreground(warningColor)
	default:
		style = lipgloss.NewStyle()
	}
	return style.Render(string(status))
}
