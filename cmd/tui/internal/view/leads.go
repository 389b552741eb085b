package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/advisordesk/advisordesk/internal/client"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/query"
)

type leadsState int

const (
	leadsStateBrowse leadsState = iota
	leadsStateFilter
	leadsStateAnalytics
)

type leadsMsg struct {
	page query.Page[lead.Lead]
	err  error
}

type leadAnalyticsMsg struct {
	analytics lead.Analytics
	channels  []lead.ChannelStat
	err       error
}

type LeadsModel struct {
	CommonModel
	api *client.Client

	state leadsState
	table table.Model
	page  query.Page[lead.Lead]
	form  *huh.Form

	analytics lead.Analytics
	channels  []lead.ChannelStat

	// Form bindings
	formStatus string
	formSource string
	formScheme string
	formSearch string

	filter  lead.Params
	loading bool
	err     error
}

func NewLeadsModel(api *client.Client) LeadsModel {
	columns := []table.Column{
		{Title: "Company", Width: 26},
		{Title: "Contact", Width: 18},
		{Title: "Status", Width: 14},
		{Title: "Source", Width: 16},
		{Title: "Value", Width: 12},
		{Title: "Assigned", Width: 14},
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

	return LeadsModel{api: api, table: t, loading: true}
}

func (m LeadsModel) Title() string { return "Lead Pipeline" }

func (m LeadsModel) ShortHelp() string {
	switch m.state {
	case leadsStateFilter:
		return "Navigate form | Esc: cancel"
	case leadsStateAnalytics:
		return "Esc: back to list"
	}

	return "Esc: back | f: filter | a: analytics | r: refresh"
}

func (m LeadsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LeadsModel) loadCmd() tea.Cmd {
	p := m.filter

	return func() tea.Msg {
		ctx, cancel := FetchCtx()
		defer cancel()

		page, err := m.api.Leads(ctx, p)

		return leadsMsg{page: page, err: err}
	}
}

func (m LeadsModel) loadAnalyticsCmd() tea.Cmd {
	p := m.filter

	return func() tea.Msg {
		ctx, cancel := FetchCtx()
		defer cancel()

		analytics, err := m.api.LeadAnalytics(ctx, p)
		if err != nil {
			return leadAnalyticsMsg{err: err}
		}

		channels, err := m.api.ChannelBreakdown(ctx, p)

		return leadAnalyticsMsg{analytics: analytics, channels: channels, err: err}
	}
}

func statusOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Any", "")}
	for _, s := range lead.Statuses() {
		opts = append(opts, huh.NewOption(string(s), string(s)))
	}

	return opts
}

func channelOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Any", "")}
	for _, c := range lead.Channels() {
		opts = append(opts, huh.NewOption(string(c), string(c)))
	}

	return opts
}

func (m *LeadsModel) buildFilterForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions()...).
				Value(&m.formStatus),
			huh.NewSelect[string]().
				Title("Source").
				Options(channelOptions()...).
				Value(&m.formSource),
			huh.NewInput().
				Title("Scheme").
				Placeholder("e.g. bluechip").
				Value(&m.formScheme),
			huh.NewInput().
				Title("Search").
				Placeholder("company, contact or email").
				Value(&m.formSearch),
		),
	)
}

func (m LeadsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case leadsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.page = msg.page
			m.refreshTable()
		}

		return m, nil

	case leadAnalyticsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.analytics = msg.analytics
			m.channels = msg.channels
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case leadsStateBrowse:
		return m.updateBrowse(msg)
	case leadsStateFilter:
		return m.updateFilter(msg)
	case leadsStateAnalytics:
		return m.updateAnalytics(msg)
	}

	return m, nil
}

func (m LeadsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "f":
			m.state = leadsStateFilter
			m.form = m.buildFilterForm()

			return m, m.form.Init()
		case "a":
			m.state = leadsStateAnalytics
			m.loading = true

			return m, m.loadAnalyticsCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LeadsModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = leadsStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.filter = lead.Params{
			Status: m.formStatus,
			Source: m.formSource,
			Scheme: m.formScheme,
			Search: m.formSearch,
		}
		m.state = leadsStateBrowse
		m.form = nil
		m.loading = true

		return m, m.loadCmd()
	}

	return m, cmd
}

func (m LeadsModel) updateAnalytics(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = leadsStateBrowse
		return m, nil
	}

	return m, nil
}

func (m *LeadsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.page.Items))

	for _, l := range m.page.Items {
		rows = append(rows, table.Row{
			l.Company,
			l.ContactName,
			string(l.Status),
			string(l.Source),
			FormatMoney(l.PotentialValue),
			l.AssignedTo,
		})
	}

	m.table.SetRows(rows)
}

func (m LeadsModel) View() string {
	if m.loading {
		return "\n Loading leads...\n"
	}

	if m.err != nil {
		return lossStyle.Render(fmt.Sprintf("\n Error: %v\n", m.err))
	}

	switch m.state {
	case leadsStateFilter:
		return m.form.View()
	case leadsStateAnalytics:
		return m.analyticsView()
	}

	header := dimStyle.Render(fmt.Sprintf("Page %d/%d (%d leads)",
		m.page.Page, m.page.TotalPages, m.page.Total))

	return header + "\n\n" + m.table.View() + "\n"
}

func (m LeadsModel) analyticsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pipeline Analytics") + "\n\n")
	b.WriteString(fmt.Sprintf("  Total Leads        %d\n", m.analytics.TotalLeads))
	b.WriteString(fmt.Sprintf("  Pipeline Value     %s\n", FormatMoney(m.analytics.TotalPotentialValue)))
	b.WriteString(fmt.Sprintf("  Avg Lead Value     %s\n", FormatMoney(m.analytics.AveragePotentialValue)))
	b.WriteString(fmt.Sprintf("  Conversion Rate    %.2f%%\n\n", m.analytics.ConversionRate))

	if len(m.analytics.StatusBreakdown) > 0 {
		b.WriteString(titleStyle.Render("By Status") + "\n\n")
		for _, s := range m.analytics.StatusBreakdown {
			b.WriteString(fmt.Sprintf("  %-18s %d\n", s.Status, s.Count))
		}
		b.WriteString("\n")
	}

	if len(m.channels) > 0 {
		b.WriteString(titleStyle.Render("By Channel") + "\n\n")
		for _, c := range m.channels {
			b.WriteString(fmt.Sprintf("  %-18s %3d  %6.2f%%  %s\n",
				c.Source, c.Count, c.Percentage, FormatMoney(c.TotalValue)))
		}
	}

	return b.String()
}
