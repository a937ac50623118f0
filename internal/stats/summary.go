package stats

import (
	"sort"
	"time"
)

// ActiveDays 返回观看秒数大于 0 的天数。
func (d *Derived) ActiveDays() int {
	count := 0
	for _, on := range d.Active {
		if on {
			count++
		}
	}
	return count
}

// Consistency 返回活跃天数占全部记录天数的百分比。
// 分母是序列中的全部记录（含显式的 0 秒日），不含序列中根本不存在的日期。
func (d *Derived) Consistency() float64 {
	if len(d.Days) == 0 {
		return 0
	}
	return float64(d.ActiveDays()) / float64(len(d.Days)) * 100
}

// TotalSeconds 返回全部记录的观看秒数之和，不含初始时长。
func (d *Derived) TotalSeconds() int64 {
	var sum int64
	for _, day := range d.Days {
		sum += int64(day.Seconds)
	}
	return sum
}

// LastNTotal 返回最近 n 条记录的秒数之和。
func (d *Derived) LastNTotal(n int) int64 {
	if n <= 0 {
		return 0
	}
	start := len(d.Days) - n
	if start < 0 {
		start = 0
	}
	var sum int64
	for _, day := range d.Days[start:] {
		sum += int64(day.Seconds)
	}
	return sum
}

// PreviousNTotal 返回倒数第 2n 到第 n 条记录的秒数之和。
// 记录不足 2n 条时返回 0，与仪表盘的同比口径一致。
func (d *Derived) PreviousNTotal(n int) int64 {
	if n <= 0 || len(d.Days) < 2*n {
		return 0
	}
	var sum int64
	for _, day := range d.Days[len(d.Days)-2*n : len(d.Days)-n] {
		sum += int64(day.Seconds)
	}
	return sum
}

// LastNAverage 返回最近 n 条记录的日均秒数，窗口不足时按实际条数取均值。
func (d *Derived) LastNAverage(n int) float64 {
	if n <= 0 || len(d.Days) == 0 {
		return 0
	}
	count := n
	if count > len(d.Days) {
		count = len(d.Days)
	}
	return float64(d.LastNTotal(n)) / float64(count)
}

// SecondsOn 返回指定日期的观看秒数，序列中没有该日期时为 0。
func (d *Derived) SecondsOn(date time.Time) int {
	target := NormalizeDate(date)
	for _, day := range d.Days {
		if day.Date.Equal(target) {
			return day.Seconds
		}
	}
	return 0
}

// BestDays 返回观看时长最高的前 n 天，时长相同按日期先后排序。
// 记录不足 n 条时返回现有的全部记录。
func (d *Derived) BestDays(n int) []DailyRecord {
	if n <= 0 || len(d.Days) == 0 {
		return nil
	}

	ranked := make([]DailyRecord, len(d.Days))
	copy(ranked, d.Days)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Seconds > ranked[j].Seconds
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
