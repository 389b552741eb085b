package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/advisordesk/advisordesk/cmd/tui/internal/view"
	"github.com/advisordesk/advisordesk/internal/client"
	"github.com/advisordesk/advisordesk/internal/config"
	"github.com/advisordesk/advisordesk/internal/retry"
)

type model struct {
	api *client.Client

	currentView View

	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	leadsView        view.LeadsModel
	marketView       view.MarketModel
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewTransactions View = 2
	ViewLeads        View = 3
	ViewMarket       View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.APIBaseURL(), cfg.Fetch.Timeout, retry.Config{
		MaxAttempts: cfg.Fetch.MaxAttempts,
		BaseDelay:   cfg.Fetch.BaseDelay,
	})

	return model{
		api:              api,
		currentView:      ViewMenu,
		dashboardView:    view.NewDashboardModel(api),
		transactionsView: view.NewTransactionsModel(api),
		leadsView:        view.NewLeadsModel(api),
		marketView:       view.NewMarketModel(api),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.api)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.api)

				return m, m.transactionsView.Init()
			case "3":
				m.currentView = ViewLeads
				m.leadsView = view.NewLeadsModel(m.api)

				return m, m.leadsView.Init()
			case "4":
				m.currentView = ViewMarket
				m.marketView = view.NewMarketModel(m.api)

				return m, m.marketView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewLeads:
		var newModel tea.Model
		newModel, cmd = m.leadsView.Update(msg)
		m.leadsView = newModel.(view.LeadsModel)
	case ViewMarket:
		var newModel tea.Model
		newModel, cmd = m.marketView.Update(msg)
		m.marketView = newModel.(view.MarketModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"AdvisorDesk TUI\n\n" +
				"1. Portfolio Dashboard\n" +
				"2. Transactions\n" +
				"3. Lead Pipeline\n" +
				"4. Market Overview\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewLeads:
		return m.leadsView.View()
	case ViewMarket:
		return m.marketView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
