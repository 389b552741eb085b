package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/client"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

type dashboardMsg struct {
	summary   asset.PortfolioSummary
	dayChange asset.DayChangeTotals
	top       []asset.Asset
	flows     transaction.FlowTotals
	err       error
}

type DashboardModel struct {
	CommonModel
	api *client.Client

	loading bool
	spinner spinner.Model

	summary   asset.PortfolioSummary
	dayChange asset.DayChangeTotals
	top       []asset.Asset
	flows     transaction.FlowTotals
	err       error
}

func NewDashboardModel(api *client.Client) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{api: api, spinner: s, loading: true}
}

func (m DashboardModel) Title() string { return "Portfolio Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FetchCtx()
		defer cancel()

		summary, err := m.api.PortfolioSummary(ctx, asset.Params{})
		if err != nil {
			return dashboardMsg{err: err}
		}

		dayChange, err := m.api.DayChange(ctx, asset.Params{})
		if err != nil {
			return dashboardMsg{err: err}
		}

		top, err := m.api.TopPerformers(ctx, asset.Params{}, 5)
		if err != nil {
			return dashboardMsg{err: err}
		}

		flows, err := m.api.TransactionFlows(ctx, transaction.Params{})
		if err != nil {
			return dashboardMsg{err: err}
		}

		return dashboardMsg{summary: summary, dayChange: dayChange, top: top, flows: flows}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.summary = msg.summary
			m.dayChange = msg.dayChange
			m.top = msg.top
			m.flows = msg.flows
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.err = nil

			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading portfolio...\n", m.spinner.View())
	}

	if m.err != nil {
		return lossStyle.Render(fmt.Sprintf("\n Error: %v\n", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Portfolio") + "\n\n")
	b.WriteString(fmt.Sprintf("  Total Value       %s\n", FormatMoney(m.summary.TotalValue)))
	b.WriteString(fmt.Sprintf("  Cost Basis        %s\n", FormatMoney(m.summary.TotalCostBasis)))
	b.WriteString(fmt.Sprintf("  Unrealized Gain   %s (%s)\n",
		FormatMoney(m.summary.TotalUnrealizedGain), ColorPercent(m.summary.TotalUnrealizedGainPercent)))
	b.WriteString(fmt.Sprintf("  Today             %s (%s)\n\n",
		FormatMoney(m.dayChange.Change), ColorPercent(m.dayChange.ChangePercent)))

	if len(m.summary.AssetAllocation) > 0 {
		b.WriteString(titleStyle.Render("Allocation") + "\n\n")
		for _, a := range m.summary.AssetAllocation {
			b.WriteString(fmt.Sprintf("  %-12s %10s  %6.2f%%\n", a.Category, FormatMoney(a.Value), a.Percentage))
		}
		b.WriteString("\n")
	}

	if len(m.top) > 0 {
		b.WriteString(titleStyle.Render("Top Performers (today)") + "\n\n")
		for _, a := range m.top {
			b.WriteString(fmt.Sprintf("  %-8s %-24s %s\n", a.Symbol, a.Name, ColorPercent(a.Performance.Day)))
		}
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Cash Flows") + "\n\n")
	b.WriteString(fmt.Sprintf("  Inflow   %s (%d)\n", FormatMoney(m.flows.Inflow), m.flows.InflowCount))
	b.WriteString(fmt.Sprintf("  Outflow  %s (%d)\n", FormatMoney(m.flows.Outflow), m.flows.OutflowCount))
	b.WriteString(fmt.Sprintf("  Net      %s\n", FormatMoney(m.flows.NetFlow)))

	return b.String()
}
