package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/advisordesk/advisordesk/internal/client"
	"github.com/advisordesk/advisordesk/internal/market"
)

type marketMsg struct {
	summary market.Summary
	breadth market.BreadthMetrics
	err     error
}

type MarketModel struct {
	CommonModel
	api *client.Client

	loading bool
	spinner spinner.Model

	summary market.Summary
	breadth market.BreadthMetrics
	err     error
}

func NewMarketModel(api *client.Client) MarketModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return MarketModel{api: api, spinner: s, loading: true}
}

func (m MarketModel) Title() string { return "Market Overview" }

func (m MarketModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m MarketModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m MarketModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := FetchCtx()
		defer cancel()

		summary, err := m.api.MarketSummary(ctx, market.Params{})
		if err != nil {
			return marketMsg{err: err}
		}

		breadth, err := m.api.MarketBreadth(ctx, market.Params{})

		return marketMsg{summary: summary, breadth: breadth, err: err}
	}
}

func (m MarketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case marketMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.summary = msg.summary
			m.breadth = msg.breadth
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

func regionLabel(r market.Region) string {
	switch r {
	case market.RegionIndian:
		return "India"
	case market.RegionUS:
		return "US"
	default:
		return "Global"
	}
}

func (m MarketModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s Loading market data...\n", m.spinner.View())
	}

	if m.err != nil {
		return lossStyle.Render(fmt.Sprintf("\n Error: %v\n", m.err))
	}

	var b strings.Builder

	if len(m.summary.Indices) > 0 {
		b.WriteString(titleStyle.Render("Indices") + "\n\n")

		byRegion := market.ByRegion(m.summary.Indices)
		for _, region := range []market.Region{market.RegionIndian, market.RegionUS, market.RegionGlobal} {
			indices := byRegion[region]
			if len(indices) == 0 {
				continue
			}

			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", regionLabel(region))) + "\n")
			for _, idx := range indices {
				b.WriteString(fmt.Sprintf("  %-10s %-24s %12s  %s\n",
					idx.Symbol, idx.Name, FormatMoney(idx.Value), ColorPercent(idx.ChangePercent)))
			}
		}
		b.WriteString("\n")
	}

	if len(m.summary.TopMovers) > 0 {
		b.WriteString(titleStyle.Render("Top Movers") + "\n\n")
		for _, mv := range m.summary.TopMovers {
			b.WriteString(fmt.Sprintf("  %-10s %-24s %12s  %s\n",
				mv.Symbol, mv.Name, FormatMoney(mv.Value), ColorPercent(mv.ChangePercent)))
		}
		b.WriteString("\n")
	}

	if len(m.summary.SectorPerformance) > 0 {
		b.WriteString(titleStyle.Render("Sectors") + "\n\n")
		for _, s := range m.summary.SectorPerformance {
			b.WriteString(fmt.Sprintf("  %-24s %s\n", s.Sector, ColorPercent(s.ChangePercent)))
		}
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("Breadth") + "\n\n")
	b.WriteString(fmt.Sprintf("  Advancing  %d\n", m.breadth.PositiveCount))
	b.WriteString(fmt.Sprintf("  Declining  %d\n", m.breadth.NegativeCount))
	b.WriteString(fmt.Sprintf("  Unchanged  %d\n", m.breadth.NeutralCount))
	b.WriteString(fmt.Sprintf("  Avg Change %s\n", ColorPercent(m.breadth.AverageChange)))

	return b.String()
}
