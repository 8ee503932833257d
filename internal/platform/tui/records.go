package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/biome-survival/internal/registry"
	"github.com/vovakirdan/biome-survival/internal/storage"
)

// Records screen layout constants
const (
	minWidthForStats = 90  // Minimum width to show the stats panel
	statsWidth       = 28  // Width of the stats panel
	maxRecords       = 100 // Max runs to load
)

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	Order       key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.Order, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextVariant, k.PrevVariant},
		{k.Order, k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the run records screen.
type RecordsModel struct {
	variants []registry.GameInfo
	cursor   int
	store    *storage.Store
	recent   bool // newest first instead of longest survival

	runs   []storage.RunRecord
	stats  *storage.GameStats
	biomes []storage.BiomeStats
	err    error

	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates a records screen over every registered variant.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	m := RecordsModel{
		variants: registry.List(),
		store:    store,
		keys:     DefaultRecordsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

func (m RecordsModel) showStats() bool {
	return m.width >= minWidthForStats
}

// createTable sizes the columns to the space left by the stats panel.
func (m *RecordsModel) createTable() table.Model {
	tableWidth := m.width - 6
	if m.showStats() {
		tableWidth -= statsWidth + 4
	}

	biomeWidth := tableWidth - (6 + 10 + 7 + 14)
	if biomeWidth < 10 {
		biomeWidth = 10
	}
	if biomeWidth > 26 {
		biomeWidth = 26
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Biome", Width: biomeWidth},
		{Title: "Survived", Width: 10},
		{Title: "Items", Width: 7},
		{Title: "Date", Width: 14},
	}

	height := m.height - 9
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the runs and stats of the selected variant.
func (m *RecordsModel) load() {
	m.runs, m.stats, m.biomes, m.err = nil, nil, nil, nil
	if m.store == nil || len(m.variants) == 0 {
		m.updateRows()
		return
	}

	id := m.variants[m.cursor].ID
	if m.recent {
		m.runs, m.err = m.store.RecentRuns(id, maxRecords)
	} else {
		m.runs, m.err = m.store.TopRuns(id, maxRecords)
	}
	if m.err == nil {
		m.stats, m.err = m.store.GetGameStats(id)
	}
	if m.err == nil {
		m.biomes, m.err = m.store.GetBiomeStats(id)
	}
	m.updateRows()
}

func (m *RecordsModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Biome,
			FormatSurvived(r.Survived),
			fmt.Sprintf("%d", r.Total),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatSurvived renders seconds as m:ss.t.
func FormatSurvived(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	tenths := int(secs*10 + 0.5)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextVariant):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor - 1 + len(m.variants)) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RUN RECORDS"
	if len(m.variants) > 0 {
		order := "longest"
		if m.recent {
			order = "latest"
		}
		title = fmt.Sprintf("RUN RECORDS - %s (%s)", m.variants[m.cursor].Title, order)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := boxStyle.Render(m.renderTableContent())
	if m.showStats() {
		stats := boxStyle.Width(statsWidth).Render(m.renderStats())
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", stats)
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs lists the variants with the selected one highlighted.
func (m RecordsModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Padding(0, 1)

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(v.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + v.Title + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.variants) > 0 {
		line = fmt.Sprintf("< %s >", m.variants[m.cursor].Title)
	}
	return line
}

// renderTableContent renders the table or an explanatory message.
func (m RecordsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Run records are unavailable.\nThe database could not be opened.")
	case m.err != nil:
		return emptyStyle.Render("Could not load runs:\n" + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nSurvive a biome to set the first record!")
	}
	return m.table.View()
}

// renderStats summarizes the variant and its biomes.
func (m RecordsModel) renderStats() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "No stats yet"
	}

	var b strings.Builder
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	fmt.Fprintf(&b, "%s %d\n", label.Render("Runs"), m.stats.Runs)
	fmt.Fprintf(&b, "%s %s\n", label.Render("Best"), FormatSurvived(m.stats.BestSurvived))
	fmt.Fprintf(&b, "%s %s\n", label.Render("Average"), FormatSurvived(m.stats.AvgSurvived))
	fmt.Fprintf(&b, "%s %d\n", label.Render("Items"), m.stats.TotalItems)
	if !m.stats.LastPlayed.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", label.Render("Last"), m.stats.LastPlayed.Format("Jan 02 15:04"))
	}

	b.WriteString("\nBiomes\n")
	for _, bs := range m.biomes {
		name := bs.Biome
		if i := strings.IndexByte(name, ','); i > 0 {
			name = name[:i]
		}
		fmt.Fprintf(&b, "%-11s %3d %s\n", truncateRunes(name, 11), bs.Runs, FormatSurvived(bs.BestSurvived))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// RunRecords runs the records screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRecords(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRecordsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
