package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/lngnet/pkg/ranking"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0087FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

var metricTabs = []string{
	ranking.MetricInDegree,
	ranking.MetricOutDegree,
	ranking.MetricBetweenness,
	ranking.MetricConstraint,
	ranking.MetricEffectiveSize,
	ranking.MetricEfficiency,
	ranking.MetricHierarchy,
}

type viewKind int

const (
	overallView viewKind = iota
	yearlyView
)

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Toggle   key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next metric"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev metric"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("enter", "overall/yearly"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Toggle},
		{k.Up, k.Down, k.Quit},
	}
}

// metricTables holds the pre-parsed result files for one metric.
type metricTables struct {
	overall [][]string
	yearly  [][]string
}

type model struct {
	resultsDir string
	tables     map[string]metricTables
	metricIdx  int
	view       viewKind
	table      table.Model
	help       help.Model
	keys       keyMap
	width      int
}

func initialModel(resultsDir string, tables map[string]metricTables) model {
	m := model{
		resultsDir: resultsDir,
		tables:     tables,
		table:      newTable(overallView),
		help:       help.New(),
		keys:       keys,
	}
	m.refresh()
	return m
}

func newTable(view viewKind) table.Model {
	var columns []table.Column
	if view == overallView {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Country", Width: 30},
			{Title: "Years in top", Width: 14},
		}
	} else {
		columns = []table.Column{
			{Title: "Year", Width: 6},
			{Title: "Rank", Width: 6},
			{Title: "Country", Width: 30},
			{Title: "Value", Width: 14},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(18),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#0087FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// refresh swaps the table contents to the current metric and view.
func (m *model) refresh() {
	metric := metricTabs[m.metricIdx]
	data := m.tables[metric]

	rows := data.overall
	if m.view == yearlyView {
		rows = data.yearly
	}

	m.table = newTable(m.view)
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row(row))
	}
	m.table.SetRows(tableRows)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.metricIdx = (m.metricIdx + 1) % len(metricTabs)
			m.refresh()

		case key.Matches(msg, m.keys.ShiftTab):
			m.metricIdx--
			if m.metricIdx < 0 {
				m.metricIdx = len(metricTabs) - 1
			}
			m.refresh()

		case key.Matches(msg, m.keys.Toggle):
			if m.view == overallView {
				m.view = yearlyView
			} else {
				m.view = overallView
			}
			m.refresh()
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var tabs string
	for i, metric := range metricTabs {
		style := inactiveTabStyle
		if i == m.metricIdx {
			style = activeTabStyle
		}
		tabs += style.Render(metric)
	}

	viewName := "overall"
	if m.view == yearlyView {
		viewName = "yearly"
	}

	return titleStyle.Render("LNG Trade Network Rankings") + "\n" +
		contentStyle.Render(tabs) + "\n" +
		contentStyle.Render(fmt.Sprintf("view: %s", viewName)) + "\n" +
		contentStyle.Render(m.table.View()) + "\n" +
		helpStyle.Render(m.help.View(m.keys))
}

// loadTables reads the overall and yearly ranking files for every metric.
// Metrics whose files are missing get empty tables rather than an error so
// partial runs can still be browsed.
func loadTables(resultsDir string) (map[string]metricTables, error) {
	tables := make(map[string]metricTables, len(metricTabs))
	found := 0
	for _, metric := range metricTabs {
		overall, errA := readCSV(filepath.Join(resultsDir, metric+"_overall.csv"))
		yearly, errB := readCSV(filepath.Join(resultsDir, metric+"_yearly_top.csv"))
		if errA == nil || errB == nil {
			found++
		}
		tables[metric] = metricTables{overall: overall, yearly: yearly}
	}
	if found == 0 {
		return nil, fmt.Errorf("no ranking files found in %s", resultsDir)
	}
	return tables, nil
}

// readCSV returns the data rows of a ranking file, header stripped.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func main() {
	resultsDir := flag.String("results", "./results", "Directory holding a finished run's outputs")
	flag.Parse()

	tables, err := loadTables(*resultsDir)
	if err != nil {
		log.Fatalf("Failed to load rankings: %v", err)
	}

	if _, err := tea.NewProgram(initialModel(*resultsDir, tables), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
