package service

import (
	"testing"
	"time"

	"github.com/immersionlog/internal/stats"
)

func testDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		t.Fatalf("failed to parse date %s: %v", value, err)
	}
	return parsed
}

func TestBuildDashboard(t *testing.T) {
	data := &ProgressData{
		Series: stats.Series{
			Days: []stats.DailyRecord{
				{Date: testDate(t, "2024-06-01"), Seconds: 3600, GoalReached: true},
				{Date: testDate(t, "2024-06-02"), Seconds: 1800},
				{Date: testDate(t, "2024-06-03"), Seconds: 2700, GoalReached: true},
			},
			InitialTimeSeconds: 7200,
		},
		DailyGoalSeconds: 1800,
		FetchedAt:        time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC),
	}
	now := testDate(t, "2024-06-03")

	dash := BuildDashboard(data, now)

	if dash.GeneratedAt != "2024-06-03T00:00:00Z" {
		t.Fatalf("generated at = %s", dash.GeneratedAt)
	}
	if dash.FetchedAt != "2024-06-03T12:00:00Z" {
		t.Fatalf("fetched at = %s", dash.FetchedAt)
	}
	if dash.Stale {
		t.Fatal("fresh dashboard should not be stale")
	}
	if dash.RangeStart != "2024-06-01" || dash.RangeEnd != "2024-06-03" {
		t.Fatalf("range = %s..%s", dash.RangeStart, dash.RangeEnd)
	}

	if len(dash.BasicStats) != 4 {
		t.Fatalf("expected 4 basic stats, got %d", len(dash.BasicStats))
	}
	// 2024-06-03 当天看了 45 分钟，目标 30 分钟
	if dash.BasicStats[0].Value != "45.0" {
		t.Fatalf("minutes today = %q", dash.BasicStats[0].Value)
	}
	if dash.DailyGoal.Fraction != 1.0 {
		t.Fatalf("daily goal fraction = %f, want 1.0 (capped)", dash.DailyGoal.Fraction)
	}

	if len(dash.MovingAverages) != 4 {
		t.Fatalf("expected 4 moving average traces, got %d", len(dash.MovingAverages))
	}
	if len(dash.MonthlyBreakdown) != 3 {
		t.Fatalf("expected 3 monthly traces, got %d", len(dash.MonthlyBreakdown))
	}
	if len(dash.DayOfWeek.X) != 7 {
		t.Fatalf("expected 7 weekday entries, got %d", len(dash.DayOfWeek.X))
	}
	if dash.Heatmap.Year != 2024 || len(dash.Heatmap.Dates) != 366 {
		t.Fatalf("heatmap year=%d cells=%d", dash.Heatmap.Year, len(dash.Heatmap.Dates))
	}

	if len(dash.Milestones) != 6 {
		t.Fatalf("expected 6 milestone rows, got %d", len(dash.Milestones))
	}
	// 4.25 小时离第一个里程碑还远，所有行都未达成
	for _, row := range dash.Milestones {
		if row.Achieved {
			t.Fatalf("milestone %s should not be achieved", row.Milestone)
		}
	}
	if len(dash.ProgressOverview) != 6 {
		t.Fatalf("expected 6 progress bars, got %d", len(dash.ProgressOverview))
	}

	// 预测曲线存在且推演到第三个未达成里程碑
	if len(dash.Projection.Predicted) != 3 {
		t.Fatalf("expected 3 predicted traces, got %d", len(dash.Projection.Predicted))
	}
	overall := dash.Projection.Predicted[0]
	if len(overall.X) == 0 {
		t.Fatal("overall predicted curve should not be empty")
	}
	if last := overall.Y[len(overall.Y)-1]; last < 300 {
		t.Fatalf("curve should reach 300 hours, stops at %f", last)
	}

	if len(dash.BestDays) != 3 {
		t.Fatalf("expected 3 best days, got %d", len(dash.BestDays))
	}
	if dash.BestDays[0].Day != "2024-06-01" {
		t.Fatalf("best day = %s, want 2024-06-01", dash.BestDays[0].Day)
	}
	if len(dash.Insights) != 6 {
		t.Fatalf("expected 6 insight cards, got %d", len(dash.Insights))
	}
	if len(dash.Averaged.AllTime) != 2 {
		t.Fatalf("expected 2 all-time cards, got %d", len(dash.Averaged.AllTime))
	}
}

func TestBuildDashboardEmptySeries(t *testing.T) {
	data := &ProgressData{
		FetchedAt: time.Date(2024, time.June, 3, 12, 0, 0, 0, time.UTC),
		Stale:     true,
	}

	dash := BuildDashboard(data, testDate(t, "2024-06-03"))

	if !dash.Stale {
		t.Fatal("stale flag should pass through")
	}
	if dash.RangeStart != "" || dash.RangeEnd != "" {
		t.Fatalf("empty series should not report a range, got %s..%s", dash.RangeStart, dash.RangeEnd)
	}
	// 空序列不产生预测曲线，但里程碑表仍然齐全
	for _, trace := range dash.Projection.Predicted {
		if len(trace.X) != 0 {
			t.Fatalf("expected empty predicted curve, got %d points", len(trace.X))
		}
	}
	if len(dash.Milestones) != 6 {
		t.Fatalf("expected 6 milestone rows, got %d", len(dash.Milestones))
	}
	for _, row := range dash.Milestones {
		if row.Overall != "never" {
			t.Fatalf("zero-rate estimate = %q, want never", row.Overall)
		}
	}
	if len(dash.BestDays) != 0 {
		t.Fatalf("expected no best days, got %d", len(dash.BestDays))
	}
	if len(dash.Heatmap.Dates) != 366 {
		t.Fatalf("heatmap should still cover the year, got %d cells", len(dash.Heatmap.Dates))
	}
}
