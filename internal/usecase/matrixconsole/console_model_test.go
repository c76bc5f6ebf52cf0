package matrixconsole

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tracematrix/internal/domain/matrix"
	"tracematrix/internal/usecase/evaluation"
)

func score(v float64) *float64 { return &v }

func loadedModel(t *testing.T) *consoleModel {
	t.Helper()

	model := NewConsoleModel(context.Background(), nil, Options{
		ProjectID:       "p1",
		RefreshInterval: time.Second,
	})
	consoleM, ok := model.(*consoleModel)
	if !ok {
		t.Fatalf("NewConsoleModel() returned %T", model)
	}

	reqA := matrix.Requirement{ID: "req-a", Code: "REQ-001", Title: "Federated login", Priority: 2}
	reqB := matrix.Requirement{ID: "req-b", Code: "REQ-002", Title: "Uptime guarantee", Priority: 1}
	m := matrix.Matrix{
		ProjectID: "p1",
		Vendors: []matrix.Vendor{
			{ID: "v-acme", Name: "Acme Corp"},
			{ID: "v-zeta", Name: "Zeta Systems"},
		},
		Rows: []matrix.Row{
			{Kind: matrix.RowCategory, CategoryID: "cat-sec", CategoryName: "Security", CategoryWeight: 60},
			{Kind: matrix.RowRequirement, CategoryID: "cat-sec", CategoryName: "Security", Requirement: &reqA, Cells: []matrix.Cell{
				{RequirementID: "req-a", VendorID: "v-acme", Kind: matrix.CellScored, Value: score(4), RAG: matrix.RAGGreen},
				{RequirementID: "req-a", VendorID: "v-zeta", Kind: matrix.CellNoScore, RAG: matrix.RAGNone},
			}},
			{Kind: matrix.RowCategory, CategoryID: "cat-ops", CategoryName: "Operations", CategoryWeight: 40},
			{Kind: matrix.RowRequirement, CategoryID: "cat-ops", CategoryName: "Operations", Requirement: &reqB, Cells: []matrix.Cell{
				{RequirementID: "req-b", VendorID: "v-acme", Kind: matrix.CellScored, Value: score(2), RAG: matrix.RAGRed},
				{RequirementID: "req-b", VendorID: "v-zeta", Kind: matrix.CellNoScore, RAG: matrix.RAGNone},
			}},
		},
		RequirementCount: 2,
	}

	updated, _ := consoleM.Update(matrixLoadedMsg{result: evaluation.MatrixResult{
		Matrix: m,
		Summary: matrix.Summary{
			Vendors: []matrix.VendorSummary{
				{VendorID: "v-acme", VendorName: "Acme Corp", AverageScore: 3, WeightedScore: 3, Overall: matrix.RAGAmber, Rank: 1, Progress: 100},
				{VendorID: "v-zeta", VendorName: "Zeta Systems", Overall: matrix.RAGNone, Rank: 2},
			},
		},
	}})
	return updated.(*consoleModel)
}

func TestConsoleNavigationBounds(t *testing.T) {
	m := loadedModel(t)

	if m.rowIndex != 0 || m.vendorIndex != 0 {
		t.Fatalf("initial selection = %d,%d", m.rowIndex, m.vendorIndex)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(*consoleModel)
	if m.rowIndex != 1 {
		t.Fatalf("rowIndex after down = %d", m.rowIndex)
	}

	// Already at the last requirement row; stays put.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m = updated.(*consoleModel)
	if m.rowIndex != 1 {
		t.Fatalf("rowIndex past end = %d", m.rowIndex)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = updated.(*consoleModel)
	if m.vendorIndex != 1 {
		t.Fatalf("vendorIndex after right = %d", m.vendorIndex)
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = updated.(*consoleModel)
	if m.vendorIndex != 1 {
		t.Fatalf("vendorIndex past end = %d", m.vendorIndex)
	}
}

func TestConsoleSelectedCell(t *testing.T) {
	m := loadedModel(t)
	m.rowIndex = 1
	m.vendorIndex = 1

	req, vendor, ok := m.selectedCell()
	if !ok {
		t.Fatalf("selectedCell() not ok")
	}
	if req.ID != "req-b" || vendor.ID != "v-zeta" {
		t.Fatalf("selectedCell() = %s, %s", req.ID, vendor.ID)
	}
}

func TestConsoleViewRendersSections(t *testing.T) {
	m := loadedModel(t)

	view := m.View()
	for _, want := range []string{"Ranking", "Matrix", "Security", "REQ-001", "Acme Corp"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Insights") {
		t.Fatalf("insights pane shown before generation")
	}
}

func TestConsoleClampAfterShrink(t *testing.T) {
	m := loadedModel(t)
	m.rowIndex = 5
	m.vendorIndex = 7
	m.clampSelection()

	if m.rowIndex != 1 || m.vendorIndex != 1 {
		t.Fatalf("clamped selection = %d,%d", m.rowIndex, m.vendorIndex)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short) = %q", got)
	}
	if got := truncate("a very long requirement title", 10); got != "a very ..." {
		t.Fatalf("truncate(long) = %q", got)
	}
}
