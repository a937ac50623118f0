package stats

// StreakStats 汇总连续打卡情况。
type StreakStats struct {
	Current int
	Longest int
	Average float64
	Runs    int
}

// runLengths 对布尔序列做游程切分。
// 返回值中第 i 位是该日在所属 true 游程内的 1-based 位置，false 的日子为 0。
func runLengths(active []bool) []int {
	runs := make([]int, len(active))
	current := 0
	for i, on := range active {
		if !on {
			current = 0
			continue
		}
		current++
		runs[i] = current
	}
	return runs
}

// segmentStats 从游程切分结果推出当前/最长/平均连胜。
// 当前连胜只在最后一天处于活跃状态时计数，最后一天中断则归零。
func segmentStats(active []bool) StreakStats {
	var stats StreakStats
	if len(active) == 0 {
		return stats
	}

	runs := runLengths(active)
	var total int
	for i, length := range runs {
		// 游程终点：序列末尾，或下一天不再活跃
		if length == 0 {
			continue
		}
		if i == len(runs)-1 || runs[i+1] == 0 {
			stats.Runs++
			total += length
			if length > stats.Longest {
				stats.Longest = length
			}
		}
	}

	if stats.Runs > 0 {
		stats.Average = float64(total) / float64(stats.Runs)
	}
	if active[len(active)-1] {
		stats.Current = runs[len(runs)-1]
	}

	return stats
}

// Streaks 返回观看连胜统计（以当日秒数大于 0 为活跃判定）。
func (d *Derived) Streaks() StreakStats {
	return segmentStats(d.Active)
}

// GoalSummary 汇总每日目标的达成情况，完全由原始序列推出，
// 不依赖上游接口附带的统计字段。
type GoalSummary struct {
	StreakStats
	GoalsReached int
	TotalDays    int
}

// GoalStats 对 goalReached 列做与 Streaks 相同的游程统计。
func (d *Derived) GoalStats() GoalSummary {
	reached := make([]bool, len(d.Days))
	count := 0
	for i, day := range d.Days {
		reached[i] = day.GoalReached
		if day.GoalReached {
			count++
		}
	}

	return GoalSummary{
		StreakStats:  segmentStats(reached),
		GoalsReached: count,
		TotalDays:    len(d.Days),
	}
}

// GoalRate 返回目标达成天数占比（百分数），无数据时为 0。
func (g GoalSummary) GoalRate() float64 {
	if g.TotalDays == 0 {
		return 0
	}
	return float64(g.GoalsReached) / float64(g.TotalDays) * 100
}
