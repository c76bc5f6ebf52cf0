package matrixconsole

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tracematrix/internal/bootstrap/logging"
	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/usecase/evaluation"
)

const maxShownInsights = 6
const maxDrilldownItems = 5

type Options struct {
	ProjectID       string
	Profile         *evaluation.Profile
	RefreshInterval time.Duration
}

type consoleModel struct {
	ctx             context.Context
	service         *evaluation.Service
	projectID       string
	profile         *evaluation.Profile
	refreshInterval time.Duration

	result    evaluation.MatrixResult
	hasMatrix bool
	// rowIndex walks requirement rows only; category header rows are
	// rendered but never selected.
	rowIndex      int
	vendorIndex   int
	drill         matrix.Drilldown
	hasDrill      bool
	showDrill     bool
	insights      []matrix.Insight
	showInsights  bool
	status        string
}

type matrixLoadedMsg struct {
	result evaluation.MatrixResult
	err    error
}

type insightsLoadedMsg struct {
	insights []matrix.Insight
	batchID  string
	saved    bool
	err      error
}

type drilldownLoadedMsg struct {
	requirementID string
	vendorID      string
	drill         matrix.Drilldown
	err           error
}

type tickMsg struct{}

func NewConsoleModel(ctx context.Context, service *evaluation.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &consoleModel{
		ctx:             ctx,
		service:         service,
		projectID:       strings.TrimSpace(options.ProjectID),
		profile:         options.Profile,
		refreshInterval: interval,
		status:          "loading",
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return tea.Batch(m.loadMatrixCmd(), m.tickCmd())
}

func (m *consoleModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadMatrixCmd(), m.tickCmd())
	case matrixLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.result = msg.result
		m.hasMatrix = true
		m.clampSelection()
		m.status = fmt.Sprintf("refreshed: %d requirements, %d vendors",
			m.result.Matrix.RequirementCount, len(m.result.Matrix.Vendors))
		if m.showDrill {
			return m, m.loadDrilldownCmd()
		}
		return m, nil
	case insightsLoadedMsg:
		if msg.err != nil {
			m.status = "insight generation failed: " + msg.err.Error()
			return m, nil
		}
		m.insights = msg.insights
		m.showInsights = true
		saved := "saved"
		if !msg.saved {
			saved = "not saved"
		}
		m.status = fmt.Sprintf("generated %d insights (batch %s, %s)", len(msg.insights), msg.batchID, saved)
		return m, nil
	case drilldownLoadedMsg:
		req, vendor, ok := m.selectedCell()
		if !ok || req.ID != msg.requirementID || vendor.ID != msg.vendorID {
			return m, nil
		}
		if msg.err != nil {
			m.hasDrill = false
			m.status = "drilldown failed: " + msg.err.Error()
			return m, nil
		}
		m.drill = msg.drill
		m.hasDrill = true
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.status = "refreshing"
			return m, m.loadMatrixCmd()
		case "up", "k":
			if m.rowIndex > 0 {
				m.rowIndex--
				return m, m.maybeReloadDrill()
			}
			return m, nil
		case "down", "j":
			if m.rowIndex < m.requirementRowCount()-1 {
				m.rowIndex++
				return m, m.maybeReloadDrill()
			}
			return m, nil
		case "left", "h":
			if m.vendorIndex > 0 {
				m.vendorIndex--
				return m, m.maybeReloadDrill()
			}
			return m, nil
		case "right", "l":
			if m.vendorIndex < len(m.result.Matrix.Vendors)-1 {
				m.vendorIndex++
				return m, m.maybeReloadDrill()
			}
			return m, nil
		case "d":
			m.showDrill = !m.showDrill
			if m.showDrill {
				return m, m.loadDrilldownCmd()
			}
			m.hasDrill = false
			return m, nil
		case "i":
			m.status = "generating insights"
			return m, m.generateInsightsCmd()
		case "x":
			m.showInsights = false
			return m, nil
		}
	}
	return m, nil
}

func ragStyle(rag matrix.RAG) lipgloss.Style {
	switch rag {
	case matrix.RAGGreen:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	case matrix.RAGAmber:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case matrix.RAGRed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}
}

func (m *consoleModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Evaluation Console"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf(
		"project=%s refresh=%s", m.projectID, m.refreshInterval)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Ranking"))
	builder.WriteString("\n")
	if !m.hasMatrix || len(m.result.Summary.Vendors) == 0 {
		builder.WriteString(dimStyle.Render("- no vendors"))
		builder.WriteString("\n")
	} else {
		for _, vs := range m.result.Summary.Vendors {
			line := fmt.Sprintf("#%d %-24s avg=%.2f weighted=%.2f progress=%.0f%% %s",
				vs.Rank, vs.VendorName, vs.AverageScore, vs.WeightedScore, vs.Progress,
				ragStyle(vs.Overall).Render(string(vs.Overall)))
			builder.WriteString("  " + line + "\n")
		}
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Matrix"))
	builder.WriteString("\n")
	m.renderMatrix(&builder, dimStyle, selectedStyle)
	builder.WriteString("\n")

	if m.showDrill {
		builder.WriteString(sectionStyle.Render("Drilldown"))
		builder.WriteString("\n")
		m.renderDrilldown(&builder, dimStyle)
		builder.WriteString("\n")
	}

	if m.showInsights {
		builder.WriteString(sectionStyle.Render("Insights"))
		builder.WriteString("\n")
		m.renderInsights(&builder, dimStyle)
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + m.status)
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j rows  ←/h →/l vendors  d drilldown  i insights  x hide insights  g refresh  q quit"))
	return builder.String()
}

func (m *consoleModel) renderMatrix(builder *strings.Builder, dimStyle, selectedStyle lipgloss.Style) {
	if !m.hasMatrix || m.result.Matrix.RequirementCount == 0 {
		builder.WriteString(dimStyle.Render("- no requirements"))
		builder.WriteString("\n")
		return
	}

	reqIndex := 0
	for _, row := range m.result.Matrix.Rows {
		if row.Kind == matrix.RowCategory {
			builder.WriteString(dimStyle.Render(fmt.Sprintf("%s (weight %.0f)", row.CategoryName, m.categoryWeight(row.CategoryID))))
			builder.WriteString("\n")
			continue
		}

		var cells []string
		for vi, cell := range row.Cells {
			label := "-"
			if cell.Value != nil {
				label = fmt.Sprintf("%.1f", *cell.Value)
			}
			rendered := ragStyle(cell.RAG).Render(fmt.Sprintf("%s %s", label, cell.RAG))
			if reqIndex == m.rowIndex && vi == m.vendorIndex {
				rendered = selectedStyle.Render(fmt.Sprintf("[%s %s]", label, cell.RAG))
			}
			cells = append(cells, rendered)
		}

		prefix := "  "
		if reqIndex == m.rowIndex {
			prefix = "> "
		}
		builder.WriteString(fmt.Sprintf("%s%s %-32s %s\n",
			prefix, row.Requirement.Code, truncate(row.Requirement.Title, 32), strings.Join(cells, "  ")))
		reqIndex++
	}
}

func (m *consoleModel) renderDrilldown(builder *strings.Builder, dimStyle lipgloss.Style) {
	if !m.hasDrill {
		builder.WriteString(dimStyle.Render("- loading"))
		builder.WriteString("\n")
		return
	}

	for _, level := range m.drill.Levels {
		builder.WriteString(level.Label + ":\n")
		items := level.Items
		if len(items) > maxDrilldownItems {
			items = items[:maxDrilldownItems]
		}
		for _, item := range items {
			line := "- " + item.Label
			if item.Detail != "" {
				line += " | " + item.Detail
			}
			builder.WriteString(line + "\n")
		}
	}
}

func (m *consoleModel) renderInsights(builder *strings.Builder, dimStyle lipgloss.Style) {
	if len(m.insights) == 0 {
		builder.WriteString(dimStyle.Render("- none"))
		builder.WriteString("\n")
		return
	}

	shown := m.insights
	if len(shown) > maxShownInsights {
		shown = shown[:maxShownInsights]
	}
	for _, insight := range shown {
		builder.WriteString(fmt.Sprintf("- [%s/%s] %s\n", insight.Type, insight.Priority, insight.Title))
	}
	if len(m.insights) > maxShownInsights {
		builder.WriteString(dimStyle.Render(fmt.Sprintf("- and %d more", len(m.insights)-maxShownInsights)))
		builder.WriteString("\n")
	}
}

func (m *consoleModel) categoryWeight(categoryID string) float64 {
	for _, row := range m.result.Matrix.Rows {
		if row.Kind == matrix.RowCategory && row.CategoryID == categoryID {
			return row.CategoryWeight
		}
	}
	return 0
}

func (m *consoleModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *consoleModel) loadMatrixCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.service.BuildMatrix(m.ctx, evaluation.BuildMatrixInput{
			ProjectID: m.projectID,
			Profile:   m.profile,
		})
		if err != nil {
			return matrixLoadedMsg{err: err}
		}
		return matrixLoadedMsg{result: result}
	}
}

func (m *consoleModel) generateInsightsCmd() tea.Cmd {
	return func() tea.Msg {
		batch, err := m.service.GenerateInsights(m.ctx, evaluation.GenerateInsightsInput{
			ProjectID: m.projectID,
			Profile:   m.profile,
		})
		if err != nil {
			return insightsLoadedMsg{err: err}
		}
		logging.Info(m.ctx, "console insight generation",
			slog.String("project_id", m.projectID),
			slog.String("batch_id", batch.BatchID),
			slog.Int("count", len(batch.Insights)))
		return insightsLoadedMsg{insights: batch.Insights, batchID: batch.BatchID, saved: batch.Persisted}
	}
}

func (m *consoleModel) loadDrilldownCmd() tea.Cmd {
	req, vendor, ok := m.selectedCell()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		drill, err := m.service.Drilldown(m.ctx, m.projectID, req.ID, vendor.ID)
		if err != nil {
			return drilldownLoadedMsg{requirementID: req.ID, vendorID: vendor.ID, err: err}
		}
		return drilldownLoadedMsg{requirementID: req.ID, vendorID: vendor.ID, drill: drill}
	}
}

func (m *consoleModel) maybeReloadDrill() tea.Cmd {
	if !m.showDrill {
		return nil
	}
	return m.loadDrilldownCmd()
}

// selectedCell resolves the current (requirement, vendor) selection.
func (m *consoleModel) selectedCell() (matrix.Requirement, matrix.Vendor, bool) {
	if !m.hasMatrix {
		return matrix.Requirement{}, matrix.Vendor{}, false
	}
	if m.vendorIndex < 0 || m.vendorIndex >= len(m.result.Matrix.Vendors) {
		return matrix.Requirement{}, matrix.Vendor{}, false
	}

	reqIndex := 0
	for _, row := range m.result.Matrix.Rows {
		if row.Kind != matrix.RowRequirement {
			continue
		}
		if reqIndex == m.rowIndex {
			return *row.Requirement, m.result.Matrix.Vendors[m.vendorIndex], true
		}
		reqIndex++
	}
	return matrix.Requirement{}, matrix.Vendor{}, false
}

func (m *consoleModel) requirementRowCount() int {
	count := 0
	for _, row := range m.result.Matrix.Rows {
		if row.Kind == matrix.RowRequirement {
			count++
		}
	}
	return count
}

func (m *consoleModel) clampSelection() {
	if count := m.requirementRowCount(); m.rowIndex >= count {
		m.rowIndex = count - 1
	}
	if m.rowIndex < 0 {
		m.rowIndex = 0
	}
	if m.vendorIndex >= len(m.result.Matrix.Vendors) {
		m.vendorIndex = len(m.result.Matrix.Vendors) - 1
	}
	if m.vendorIndex < 0 {
		m.vendorIndex = 0
	}
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
