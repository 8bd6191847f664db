package domain

import (
	"testing"
	"time"
)

func TestNewDashboard_Rates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := NewDashboard(DashboardCounts{
		ActiveProjects:    1,
		TotalProjects:     3,
		ActiveMaterials:   8,
		LowStockMaterials: 2,
		AvailableTools:    3,
		TotalTools:        4,
	}, now)

	if d.Projects.CompletionRate != 66.67 {
		t.Fatalf("completion rate = %v, want 66.67", d.Projects.CompletionRate)
	}
	if d.Materials.StockAlertPercentage != 25 {
		t.Fatalf("stock alert = %v, want 25", d.Materials.StockAlertPercentage)
	}
	if d.Tools.UtilizationRate != 25 {
		t.Fatalf("utilization = %v, want 25", d.Tools.UtilizationRate)
	}
	if !d.Timestamp.Equal(now) {
		t.Fatalf("unexpected timestamp %v", d.Timestamp)
	}
}

func TestNewDashboard_EmptyTotals(t *testing.T) {
	d := NewDashboard(DashboardCounts{}, time.Now())
	if d.Projects.CompletionRate != 0 || d.Materials.StockAlertPercentage != 0 || d.Tools.UtilizationRate != 0 {
		t.Fatalf("expected zero rates for empty store, got %+v", d)
	}
}
