package chart

import (
	"fmt"
	"math"
	"time"

	"github.com/immersionlog/internal/forecast"
	"github.com/immersionlog/internal/stats"
)

// Scorecard 对应一块指标卡：主数值加一行补充说明。
type Scorecard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// ProgressBar 描述一条进度条。Fraction 已截断到 [0,1]，Text 保留真实比例。
type ProgressBar struct {
	Label    string  `json:"label"`
	Fraction float64 `json:"fraction"`
	Text     string  `json:"text"`
}

// BasicStats 构造页首的四块基础指标卡。
func BasicStats(d *stats.Derived, today time.Time) []Scorecard {
	minutesToday := float64(d.SecondsOn(today)) / 60
	streaks := d.Streaks()

	totalHours := Scorecard{
		Label: "Total Hours Watched",
		Value: fmt.Sprintf("%.1f", d.CurrentHours()),
	}
	if d.InitialTimeSeconds > 0 {
		totalHours.Delta = fmt.Sprintf("including %.0f min initial time", float64(d.InitialTimeSeconds)/60)
	}

	return []Scorecard{
		{Label: "Minutes Watched Today", Value: fmt.Sprintf("%.1f", minutesToday)},
		{Label: "Current Streak", Value: fmt.Sprintf("%d days", streaks.Current)},
		totalHours,
		{Label: "Average Minutes/Day", Value: fmt.Sprintf("%.1f", d.Rates().Overall/60)},
	}
}

// DailyGoalProgress 构造当日目标进度条。目标为 0 时进度记 0，不做除法。
func DailyGoalProgress(d *stats.Derived, today time.Time, dailyGoalSeconds int) ProgressBar {
	secondsToday := d.SecondsOn(today)
	var fraction float64
	if dailyGoalSeconds > 0 {
		fraction = float64(secondsToday) / float64(dailyGoalSeconds)
	}

	bar := ProgressBar{
		Label: "Daily Goal Progress",
		Text: fmt.Sprintf("%.0f / %.0f mins (%.2f%%)",
			math.Floor(float64(secondsToday)/60),
			math.Floor(float64(dailyGoalSeconds)/60),
			fraction*100),
		Fraction: math.Min(fraction, 1.0),
	}
	return bar
}

// Insights 构造“洞察”区块的六块指标卡，全部由派生序列推出。
func Insights(d *stats.Derived) []Scorecard {
	streaks := d.Streaks()
	goals := d.GoalStats()

	return []Scorecard{
		{Label: "Longest Streak", Value: fmt.Sprintf("%d days", streaks.Longest)},
		{
			Label: "Consistency",
			Value: fmt.Sprintf("%.1f%%", d.Consistency()),
			Delta: fmt.Sprintf("%d of %d days", d.ActiveDays(), d.Len()),
		},
		{Label: "Current Streak", Value: fmt.Sprintf("%d days", streaks.Current)},
		{
			Label: "Goal Streak",
			Value: fmt.Sprintf("%d days", goals.Current),
			Delta: fmt.Sprintf("Best: %d days", goals.Longest),
		},
		{
			Label: "Average Streak",
			Value: fmt.Sprintf("%.1f days", streaks.Average),
			Delta: fmt.Sprintf("Best: %d days", streaks.Longest),
		},
		{
			Label: "Goal Achievement",
			Value: fmt.Sprintf("%d days", goals.GoalsReached),
			Delta: fmt.Sprintf("%.1f%% of days", goals.GoalRate()),
		},
	}
}

// AveragedInsights 对应 7 天 / 30 天 / 全部时间三个页签的指标卡。
type AveragedInsights struct {
	SevenDays []Scorecard `json:"seven_days"`
	ThirtyDay []Scorecard `json:"thirty_days"`
	AllTime   []Scorecard `json:"all_time"`
}

func windowCards(d *stats.Derived, n int, label, versus string) []Scorecard {
	total := d.LastNTotal(n)
	change := total - d.PreviousNTotal(n)
	avg := d.LastNAverage(n)
	overall := d.Rates().Overall

	return []Scorecard{
		{
			Label: fmt.Sprintf("Last %d Days Total", n),
			Value: fmt.Sprintf("%.0f min", float64(total)/60),
			Delta: fmt.Sprintf("%+.0f min vs %s", float64(change)/60, versus),
		},
		{
			Label: label,
			Value: fmt.Sprintf("%.1f min/day", avg/60),
			Delta: fmt.Sprintf("%+.1f vs overall", (avg-overall)/60),
		},
	}
}

// BuildAveragedInsights 构造三个页签的全部指标卡。
func BuildAveragedInsights(d *stats.Derived) AveragedInsights {
	overall := d.Rates().Overall
	return AveragedInsights{
		SevenDays: windowCards(d, 7, "7-Day Average", "previous week"),
		ThirtyDay: windowCards(d, 30, "30-Day Average", "previous 30 days"),
		AllTime: []Scorecard{
			{
				Label: "All Time Total",
				Value: fmt.Sprintf("%.0f min", float64(d.TotalSeconds())/60),
				Delta: fmt.Sprintf("%d milestones reached", forecast.AchievedCount(d.CurrentHours())),
			},
			{
				Label: "All Time Average",
				Value: fmt.Sprintf("%.1f min/day", overall/60),
			},
		},
	}
}

// MilestoneRow 是“预计里程碑日期”表格中的一行。
type MilestoneRow struct {
	Milestone string `json:"milestone"`
	Achieved  bool   `json:"achieved"`
	Overall   string `json:"overall,omitempty"`
	SevenDay  string `json:"seven_day,omitempty"`
	ThirtyDay string `json:"thirty_day,omitempty"`
}

func formatEstimate(est forecast.Estimate) string {
	if !est.Reachable {
		return "never"
	}
	if est.Date.IsZero() {
		return fmt.Sprintf("%.0fd", est.Days)
	}
	return fmt.Sprintf("%s (%.0fd)", est.Date.Format(dateFormat), est.Days)
}

// MilestoneTable 把投影结果转成表格行，已达成的行只打标记。
func MilestoneTable(projections []forecast.MilestoneProjection) []MilestoneRow {
	rows := make([]MilestoneRow, 0, len(projections))
	for _, p := range projections {
		row := MilestoneRow{
			Milestone: fmt.Sprintf("%.0fh", p.Milestone),
			Achieved:  p.Achieved,
		}
		if !p.Achieved {
			row.Overall = formatEstimate(p.Overall)
			row.SevenDay = formatEstimate(p.SevenDay)
			row.ThirtyDay = formatEstimate(p.ThirtyDay)
		}
		rows = append(rows, row)
	}
	return rows
}

// ProgressOverviewBars 把未达成里程碑的进度转成进度条列表。
func ProgressOverviewBars(entries []forecast.ProgressEntry) []ProgressBar {
	bars := make([]ProgressBar, 0, len(entries))
	for _, entry := range entries {
		bars = append(bars, ProgressBar{
			Label:    fmt.Sprintf("Progress to %.0f hours", entry.Milestone),
			Fraction: math.Min(entry.Percent/100, 1.0),
			Text:     fmt.Sprintf("%.1f%%", entry.Percent),
		})
	}
	return bars
}

// BestDayRow 是“最佳日”表格中的一行。
type BestDayRow struct {
	Day       string  `json:"day"`
	TimeSpent string  `json:"time_spent"`
	Minutes   float64 `json:"minutes"`
}

// BestDayRows 把最佳日记录格式化为表格行。
func BestDayRows(days []stats.DailyRecord) []BestDayRow {
	rows := make([]BestDayRow, 0, len(days))
	for _, day := range days {
		hours := day.Seconds / 3600
		minutes := day.Seconds % 3600 / 60
		seconds := day.Seconds % 60
		rows = append(rows, BestDayRow{
			Day:       day.Date.Format(dateFormat),
			TimeSpent: fmt.Sprintf("%02d hours %02d minutes %02d seconds", hours, minutes, seconds),
			Minutes:   math.Round(float64(day.Seconds)/60*100) / 100,
		})
	}
	return rows
}
