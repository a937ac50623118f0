package stats

import (
	"sort"
	"time"
)

const dateFormat = "2006-01-02"

// DailyRecord 表示某一天的观看记录。
type DailyRecord struct {
	Date        time.Time
	Seconds     int
	GoalReached bool
}

// Series 是按天排列的原始观看数据，外加一段不在逐日记录中的初始时长。
type Series struct {
	Days               []DailyRecord
	InitialTimeSeconds int
}

// Derived 保存与 Series 对齐的派生列，所有列都由 Derive 一次性算出。
type Derived struct {
	Days               []DailyRecord
	InitialTimeSeconds int

	CumulativeSeconds []int64
	CumulativeMinutes []float64
	CumulativeHours   []float64
	Active            []bool
	StreakRun         []int
	Rolling7          []float64
	Rolling30         []float64
	CumulativeAvg     []float64
}

// NormalizeDate 将时间截断到当天零点，时区保持不变。
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Derive 对序列做一次全量派生计算。
// 输入允许乱序，内部先按日期升序排序；空序列返回各列均为空的结果，而不是错误。
func Derive(series Series) *Derived {
	days := make([]DailyRecord, len(series.Days))
	copy(days, series.Days)
	for i := range days {
		days[i].Date = NormalizeDate(days[i].Date)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	n := len(days)
	d := &Derived{
		Days:               days,
		InitialTimeSeconds: series.InitialTimeSeconds,
		CumulativeSeconds:  make([]int64, n),
		CumulativeMinutes:  make([]float64, n),
		CumulativeHours:    make([]float64, n),
		Active:             make([]bool, n),
		StreakRun:          make([]int, n),
		Rolling7:           make([]float64, n),
		Rolling30:          make([]float64, n),
		CumulativeAvg:      make([]float64, n),
	}

	running := int64(series.InitialTimeSeconds)
	var total int64
	for i, day := range days {
		running += int64(day.Seconds)
		total += int64(day.Seconds)

		d.CumulativeSeconds[i] = running
		d.CumulativeMinutes[i] = float64(running) / 60
		d.CumulativeHours[i] = float64(running) / 3600
		d.Active[i] = day.Seconds > 0
		d.Rolling7[i] = trailingMean(days, i, 7)
		d.Rolling30[i] = trailingMean(days, i, 30)
		d.CumulativeAvg[i] = float64(total) / float64(i+1)
	}

	d.StreakRun = runLengths(d.Active)

	return d
}

// trailingMean 计算以 i 为终点、最多 window 天的滑动平均。
// 序列开头窗口不足时按实际天数取均值，绝不会把不存在的数据计入分母。
func trailingMean(days []DailyRecord, i, window int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	var sum int64
	for j := start; j <= i; j++ {
		sum += int64(days[j].Seconds)
	}
	return float64(sum) / float64(i-start+1)
}

// Len 返回序列天数。
func (d *Derived) Len() int {
	return len(d.Days)
}

// LastDate 返回序列中最后一天的日期；空序列返回零值。
func (d *Derived) LastDate() time.Time {
	if len(d.Days) == 0 {
		return time.Time{}
	}
	return d.Days[len(d.Days)-1].Date
}

// FirstDate 返回序列中第一天的日期；空序列返回零值。
func (d *Derived) FirstDate() time.Time {
	if len(d.Days) == 0 {
		return time.Time{}
	}
	return d.Days[0].Date
}

// CurrentHours 返回截至最后一天的累计小时数。
// 空序列时只剩初始时长。
func (d *Derived) CurrentHours() float64 {
	if len(d.CumulativeHours) == 0 {
		return float64(d.InitialTimeSeconds) / 3600
	}
	return d.CumulativeHours[len(d.CumulativeHours)-1]
}

// RateSet 汇总三种日均速率（秒/天），供预测引擎使用。
type RateSet struct {
	Overall   float64
	SevenDay  float64
	ThirtyDay float64
}

// Rates 返回整体均值与最近 7 天、30 天滑动均值；空序列全部为 0。
func (d *Derived) Rates() RateSet {
	n := len(d.Days)
	if n == 0 {
		return RateSet{}
	}
	return RateSet{
		Overall:   d.CumulativeAvg[n-1],
		SevenDay:  d.Rolling7[n-1],
		ThirtyDay: d.Rolling30[n-1],
	}
}
