package stats

import (
	"fmt"
	"time"
)

// weekdayNames 按周一优先的惯例排列。
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayAverage 表示某个星期几的平均观看时长。
type WeekdayAverage struct {
	Weekday    string
	AvgSeconds float64
	Days       int
}

// isoWeekday 把 time.Weekday 换算成 ISO 习惯：周一为 1，周日为 7。
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DayOfWeekAverages 按周一到周日的顺序返回各星期几的平均观看秒数。
// 只统计序列中实际存在的日期，某个星期几没有记录时均值为 0。
func (d *Derived) DayOfWeekAverages() []WeekdayAverage {
	var sums [7]int64
	var counts [7]int
	for _, day := range d.Days {
		idx := isoWeekday(day.Date) - 1
		sums[idx] += int64(day.Seconds)
		counts[idx]++
	}

	result := make([]WeekdayAverage, 7)
	for i := range result {
		result[i] = WeekdayAverage{Weekday: weekdayNames[i], Days: counts[i]}
		if counts[i] > 0 {
			result[i].AvgSeconds = float64(sums[i]) / float64(counts[i])
		}
	}
	return result
}

// MonthPeriod 表示某个自然月内的练习情况。
type MonthPeriod struct {
	Month         string
	DaysPracticed int
	DaysGoalMet   int
	DaysInPeriod  int
}

// MonthlyBreakdown 返回数据中最近 lastN 个自然月的逐月统计。
// DaysInPeriod 取该月的自然天数；对照 today 判定的进行中月份例外，
// 取序列中该月实际出现的日期数，避免把未来的日子算进分母。
func (d *Derived) MonthlyBreakdown(lastN int, today time.Time) []MonthPeriod {
	if lastN <= 0 || len(d.Days) == 0 {
		return nil
	}

	type bucket struct {
		year      int
		month     time.Month
		practiced int
		goalMet   int
		present   int
	}

	// 序列已按日期升序，月份按出现顺序累积即可
	var buckets []*bucket
	var last *bucket
	for _, day := range d.Days {
		y, m, _ := day.Date.Date()
		if last == nil || last.year != y || last.month != m {
			last = &bucket{year: y, month: m}
			buckets = append(buckets, last)
		}
		last.present++
		if day.Seconds > 0 {
			last.practiced++
		}
		if day.GoalReached {
			last.goalMet++
		}
	}

	if len(buckets) > lastN {
		buckets = buckets[len(buckets)-lastN:]
	}

	todayYear, todayMonth, _ := NormalizeDate(today).Date()
	result := make([]MonthPeriod, 0, len(buckets))
	for _, b := range buckets {
		daysInPeriod := daysInMonth(b.year, b.month)
		if b.year == todayYear && b.month == todayMonth {
			daysInPeriod = b.present
		}
		result = append(result, MonthPeriod{
			Month:         fmt.Sprintf("%04d-%02d", b.year, int(b.month)),
			DaysPracticed: b.practiced,
			DaysGoalMet:   b.goalMet,
			DaysInPeriod:  daysInPeriod,
		})
	}
	return result
}

// daysInMonth 返回某月的自然天数。
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// HeatmapCell 表示年度热力图中的一格。
type HeatmapCell struct {
	Date    time.Time
	Seconds int
	Week    int
	Weekday int
}

// YearHeatmap 返回指定年份 1 月 1 日到 12 月 31 日每天的观看秒数。
// 序列中不存在的日期记 0。周序号在 ISO 周的基础上做了拉直处理：
// 12 月落入次年第 1 周的日子加 52，1 月落入上年第 52+ 周的日子减 52，
// 保证整年共用一条连续的周坐标轴。
func (d *Derived) YearHeatmap(year int) []HeatmapCell {
	secondsByDate := make(map[string]int, len(d.Days))
	for _, day := range d.Days {
		secondsByDate[day.Date.Format(dateFormat)] = day.Seconds
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var cells []HeatmapCell
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		_, week := date.ISOWeek()
		switch {
		case date.Month() == time.December && week <= 1:
			week += 52
		case date.Month() == time.January && week >= 52:
			week -= 52
		}

		cells = append(cells, HeatmapCell{
			Date:    date,
			Seconds: secondsByDate[date.Format(dateFormat)],
			Week:    week,
			Weekday: isoWeekday(date),
		})
	}
	return cells
}
