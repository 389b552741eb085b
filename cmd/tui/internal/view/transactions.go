package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/advisordesk/advisordesk/internal/client"
	"github.com/advisordesk/advisordesk/internal/query"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

type transactionsMsg struct {
	page query.Page[transaction.Transaction]
	err  error
}

type TransactionsModel struct {
	CommonModel
	api *client.Client

	table table.Model
	page  query.Page[transaction.Transaction]

	// Filter cycling
	kindFilterIdx   int
	statusFilterIdx int
	pageNum         int

	loading bool
	err     error
}

// Cycled by the t and s keys; the empty entry clears the filter.
var (
	kindFilters   = []string{"", "Buy", "Sell", "Deposit", "Withdrawal"}
	statusFilters = []string{"", "Completed", "Pending", "Cancelled", "Failed"}
)

func NewTransactionsModel(api *client.Client) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 11},
		{Title: "Symbol", Width: 8},
		{Title: "Company", Width: 28},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{api: api, table: t, pageNum: 1, loading: true}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	return "Esc: back | t: type filter | s: status filter | n/p: page | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TransactionsModel) params() transaction.Params {
	return transaction.Params{
		Kind:   kindFilters[m.kindFilterIdx],
		Status: statusFilters[m.statusFilterIdx],
		Page:   strconv.Itoa(m.pageNum),
	}
}

func (m TransactionsModel) loadCmd() tea.Cmd {
	p := m.params()

	return func() tea.Msg {
		ctx, cancel := FetchCtx()
		defer cancel()

		page, err := m.api.Transactions(ctx, p)

		return transactionsMsg{page: page, err: err}
	}
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transactionsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.page = msg.page
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "t":
			m.kindFilterIdx = (m.kindFilterIdx + 1) % len(kindFilters)
			m.pageNum = 1
			m.loading = true

			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(statusFilters)
			m.pageNum = 1
			m.loading = true

			return m, m.loadCmd()
		case "n":
			if m.pageNum < m.page.TotalPages {
				m.pageNum++
				m.loading = true

				return m, m.loadCmd()
			}
		case "p":
			if m.pageNum > 1 {
				m.pageNum--
				m.loading = true

				return m, m.loadCmd()
			}
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Items))

	for _, tx := range m.page.Items {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Kind),
			tx.Symbol,
			tx.Company,
			FormatMoney(tx.Total),
			string(tx.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m TransactionsModel) View() string {
	if m.loading {
		return "\n Loading transactions...\n"
	}

	if m.err != nil {
		return lossStyle.Render(fmt.Sprintf("\n Error: %v\n", m.err))
	}

	filters := ""
	if k := kindFilters[m.kindFilterIdx]; k != "" {
		filters += " type=" + k
	}

	if s := statusFilters[m.statusFilterIdx]; s != "" {
		filters += " status=" + s
	}

	if filters == "" {
		filters = " none"
	}

	header := dimStyle.Render(fmt.Sprintf("Filters:%s | Page %d/%d (%d total)",
		filters, m.page.Page, m.page.TotalPages, m.page.Total))

	return header + "\n\n" + m.table.View() + "\n"
}
