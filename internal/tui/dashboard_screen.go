package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/app"
	"github.com/Bryan21B/freelancer-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	activeClients  int
	activeProjects int
	openInvoices   int
	overdueCount   int
	outstanding    decimal.Decimal
	recentInvoices []*domain.Invoice
	clientCache    map[int64]*domain.Client

	loading bool
	err     error
}

type dashboardDataMsg struct {
	activeClients  int
	activeProjects int
	openInvoices   int
	overdueCount   int
	outstanding    decimal.Decimal
	recentInvoices []*domain.Invoice
	clientCache    map[int64]*domain.Client
	err            error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:         a,
		loading:     true,
		clientCache: make(map[int64]*domain.Client),
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := dashboardDataMsg{
			outstanding: decimal.Zero,
			clientCache: make(map[int64]*domain.Client),
		}

		clients, err := m.app.ClientService.GetAll(ctx, false)
		if err != nil && !domain.IsNotFound(err) {
			msg.err = fmt.Errorf("load clients: %w", err)
			return msg
		}
		msg.activeClients = len(clients)
		for _, client := range clients {
			msg.clientCache[client.ID] = client
		}

		projects, err := m.app.ProjectService.GetAll(ctx, false)
		if err != nil && !domain.IsNotFound(err) {
			msg.err = fmt.Errorf("load projects: %w", err)
			return msg
		}
		for _, project := range projects {
			if project.IsActive() {
				msg.activeProjects++
			}
		}

		invoices, err := m.app.InvoiceService.GetAll(ctx, false, nil)
		if err != nil && !domain.IsNotFound(err) {
			msg.err = fmt.Errorf("load invoices: %w", err)
			return msg
		}

		now := time.Now()
		for _, invoice := range invoices {
			switch invoice.Status {
			case domain.InvoiceStatusPaid, domain.InvoiceStatusCancelled:
				continue
			}
			msg.openInvoices++
			msg.outstanding = msg.outstanding.Add(invoice.TotalCost)
			if invoice.DueDate.Before(now) {
				msg.overdueCount++
			}
		}
		msg.recentInvoices = invoices

		return msg
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.activeClients = msg.activeClients
		m.activeProjects = msg.activeProjects
		m.openInvoices = msg.openInvoices
		m.overdueCount = msg.overdueCount
		m.outstanding = msg.outstanding
		m.recentInvoices = msg.recentInvoices
		m.clientCache = msg.clientCache
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += fmt.Sprintf(
		"  Clients:   %-6d  Open Invoices:  %d\n  Projects:  %-6d  Outstanding:    %s\n",
		m.activeClients,
		m.openInvoices,
		m.activeProjects,
		amountStyle.Render(formatMoney(m.outstanding)),
	)

	if m.overdueCount > 0 {
		s += "\n" + lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  %d invoice(s) past due", m.overdueCount)) + "\n"
	}

	s += "\n" + m.renderRecentInvoices()

	return s
}

func (m *DashboardModel) renderRecentInvoices() string {
	header := "  Recent Invoices\n"
	if len(m.recentInvoices) == 0 {
		return header + subtitleStyle.Render("  No invoices yet") + "\n"
	}

	// Sort most recent first
	sorted := make([]*domain.Invoice, len(m.recentInvoices))
	copy(sorted, m.recentInvoices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	s := header
	limit := 8
	if len(sorted) < limit {
		limit = len(sorted)
	}

	for i := 0; i < limit; i++ {
		invoice := sorted[i]
		clientName := fmt.Sprintf("Client #%d", invoice.ClientID)
		if c, ok := m.clientCache[invoice.ClientID]; ok {
			clientName = c.FullName()
		}

		s += fmt.Sprintf("  #%-6d %-20s %10s  due %-10s %s\n",
			invoice.InvoiceNumber,
			truncateStr(clientName, 20),
			formatMoney(invoice.TotalCost),
			invoice.DueDate.Format("Jan 2"),
			statusBadge(invoice.Status),
		)
	}

	return s
}
