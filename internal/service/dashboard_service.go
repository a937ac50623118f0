package service

import (
	"time"

	"github.com/immersionlog/internal/chart"
	"github.com/immersionlog/internal/forecast"
	"github.com/immersionlog/internal/stats"
)

const monthlyBreakdownMonths = 12

// Dashboard 是一次渲染所需的全部数据，交给外部渲染方直接消费。
type Dashboard struct {
	GeneratedAt string `json:"generated_at"`
	FetchedAt   string `json:"fetched_at"`
	Stale       bool   `json:"stale"`
	RangeStart  string `json:"range_start,omitempty"`
	RangeEnd    string `json:"range_end,omitempty"`

	BasicStats       []chart.Scorecard       `json:"basic_stats"`
	DailyGoal        chart.ProgressBar       `json:"daily_goal"`
	Projection       chart.ProjectionPayload `json:"projection"`
	MovingAverages   []chart.Trace           `json:"moving_averages"`
	DailyBreakdown   []chart.Trace           `json:"daily_breakdown"`
	MonthlyBreakdown []chart.Trace           `json:"monthly_breakdown"`
	DayOfWeek        chart.Trace             `json:"day_of_week"`
	Heatmap          chart.HeatmapPayload    `json:"heatmap"`
	Milestones       []chart.MilestoneRow    `json:"milestones"`
	ProgressOverview []chart.ProgressBar     `json:"progress_overview"`
	Insights         []chart.Scorecard       `json:"insights"`
	BestDays         []chart.BestDayRow      `json:"best_days"`
	Averaged         chart.AveragedInsights  `json:"averaged_insights"`
}

// BuildDashboard 对一次加载结果做全量派生计算并组装视图模型。
// 计算全部是纯函数，不在请求之间保留任何中间状态。
func BuildDashboard(data *ProgressData, now time.Time) *Dashboard {
	derived := stats.Derive(data.Series)
	rates := derived.Rates()
	currentHours := derived.CurrentHours()
	lastDate := derived.LastDate()
	target := forecast.TargetMilestone(currentHours)

	overallCurve := forecast.FutureCurve(lastDate, currentHours, rates.Overall, target)
	sevenDayCurve := forecast.FutureCurve(lastDate, currentHours, rates.SevenDay, target)
	thirtyDayCurve := forecast.FutureCurve(lastDate, currentHours, rates.ThirtyDay, target)

	projections := forecast.ProjectMilestones(currentHours, lastDate, forecast.Rates{
		Overall:   rates.Overall,
		SevenDay:  rates.SevenDay,
		ThirtyDay: rates.ThirtyDay,
	})

	dash := &Dashboard{
		GeneratedAt:      now.UTC().Format(time.RFC3339),
		FetchedAt:        data.FetchedAt.UTC().Format(time.RFC3339),
		Stale:            data.Stale,
		BasicStats:       chart.BasicStats(derived, now),
		DailyGoal:        chart.DailyGoalProgress(derived, now, data.DailyGoalSeconds),
		Projection:       chart.ProjectionTraces(derived, overallCurve, sevenDayCurve, thirtyDayCurve),
		MovingAverages:   chart.MovingAverageTraces(derived),
		DailyBreakdown:   chart.DailyBreakdownTraces(derived),
		MonthlyBreakdown: chart.MonthlyBreakdownTraces(derived.MonthlyBreakdown(monthlyBreakdownMonths, now)),
		DayOfWeek:        chart.DayOfWeekTrace(derived.DayOfWeekAverages()),
		Heatmap:          chart.HeatmapGrid(now.Year(), derived.YearHeatmap(now.Year())),
		Milestones:       chart.MilestoneTable(projections),
		ProgressOverview: chart.ProgressOverviewBars(forecast.ProgressOverview(currentHours)),
		Insights:         chart.Insights(derived),
		BestDays:         chart.BestDayRows(derived.BestDays(5)),
		Averaged:         chart.BuildAveragedInsights(derived),
	}

	if derived.Len() > 0 {
		dash.RangeStart = derived.FirstDate().Format("2006-01-02")
		dash.RangeEnd = derived.LastDate().Format("2006-01-02")
	}

	return dash
}
