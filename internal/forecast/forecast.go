// Package forecast 依据当前累计时长与日均速率推算里程碑达成时间。
package forecast

import (
	"math"
	"time"
)

// Milestones 是追踪的累计小时里程碑，升序排列。
var Milestones = []float64{50, 150, 300, 600, 1000, 1500}

// UpcomingMilestonesCap 限制一次最多展示的未达成里程碑数量。
const UpcomingMilestonesCap = 3

const (
	// maxCurveDays 限制预测曲线最多推演的天数，防止速率过低时无限迭代。
	maxCurveDays = 7300
	// maxDateHorizonDays 之外的预计日期不再换算成具体日历日。
	maxDateHorizonDays = 365 * 1000
)

// Rates 表示三种日均速率（秒/天）。
type Rates struct {
	Overall   float64
	SevenDay  float64
	ThirtyDay float64
}

// Estimate 表示按某一速率推算出的单个里程碑结果。
// 速率不为正时 Reachable 为 false，Days 为正无穷，Date 为零值。
type Estimate struct {
	Days      float64
	Date      time.Time
	Reachable bool
}

// MilestoneProjection 汇总一个里程碑在三种速率下的推算结果。
// Achieved 为 true 时不再计算任何日期。
type MilestoneProjection struct {
	Milestone float64
	Achieved  bool
	Overall   Estimate
	SevenDay  Estimate
	ThirtyDay Estimate
}

// DaysToReach 返回以 ratePerDay（秒/天）的速度从 currentHours 到 targetHours
// 还需要的天数。速率不为正时返回正无穷，表示永远无法达到。
func DaysToReach(currentHours, targetHours, ratePerDay float64) float64 {
	if ratePerDay <= 0 {
		return math.Inf(1)
	}
	return (targetHours - currentHours) * 3600 / ratePerDay
}

func estimate(currentHours, milestone float64, lastDate time.Time, rate float64) Estimate {
	days := DaysToReach(currentHours, milestone, rate)
	est := Estimate{Days: days, Reachable: rate > 0}
	if est.Reachable && days <= maxDateHorizonDays {
		est.Date = dateAfter(lastDate, days)
	}
	return est
}

// dateAfter 在 lastDate 上加一段以天为单位的小数时长。
// 整天部分走 AddDate，避免大天数换算纳秒时溢出 time.Duration。
func dateAfter(lastDate time.Time, days float64) time.Time {
	whole := math.Floor(days)
	frac := days - whole
	return lastDate.AddDate(0, 0, int(whole)).Add(time.Duration(frac * 24 * float64(time.Hour)))
}

// ProjectMilestones 为每个里程碑给出推算结果。
// 已达成的里程碑只做标记；未达成的按三种速率分别推算，
// 两类合起来恰好覆盖全部里程碑且互不重叠。
func ProjectMilestones(currentHours float64, lastDate time.Time, rates Rates) []MilestoneProjection {
	projections := make([]MilestoneProjection, 0, len(Milestones))
	for _, milestone := range Milestones {
		p := MilestoneProjection{Milestone: milestone}
		if currentHours >= milestone {
			p.Achieved = true
		} else {
			p.Overall = estimate(currentHours, milestone, lastDate, rates.Overall)
			p.SevenDay = estimate(currentHours, milestone, lastDate, rates.SevenDay)
			p.ThirtyDay = estimate(currentHours, milestone, lastDate, rates.ThirtyDay)
		}
		projections = append(projections, p)
	}
	return projections
}

// Upcoming 返回严格大于当前进度的前几个里程碑，升序，最多 UpcomingMilestonesCap 个。
func Upcoming(currentHours float64) []float64 {
	var upcoming []float64
	for _, milestone := range Milestones {
		if milestone > currentHours {
			upcoming = append(upcoming, milestone)
			if len(upcoming) == UpcomingMilestonesCap {
				break
			}
		}
	}
	return upcoming
}

// TargetMilestone 返回预测曲线的推演终点：
// 未达成里程碑足够多时取第三个，否则退回最后一个里程碑。
func TargetMilestone(currentHours float64) float64 {
	upcoming := Upcoming(currentHours)
	if len(upcoming) >= UpcomingMilestonesCap {
		return upcoming[UpcomingMilestonesCap-1]
	}
	return Milestones[len(Milestones)-1]
}

// AchievedCount 返回已达成的里程碑数量。
func AchievedCount(currentHours float64) int {
	count := 0
	for _, milestone := range Milestones {
		if currentHours >= milestone {
			count++
		}
	}
	return count
}

// CurvePoint 是预测曲线上的一个点。
type CurvePoint struct {
	Date  time.Time
	Hours float64
}

// FutureCurve 从 lastDate 的次日起按日推演累计小时数，每天增加
// ratePerDay/3600，直到首次达到 targetHours（含该天）。
// 速率不为正时返回空曲线；迭代天数受 maxCurveDays 硬性封顶。
func FutureCurve(lastDate time.Time, lastHours, ratePerDay, targetHours float64) []CurvePoint {
	if ratePerDay <= 0 || lastHours >= targetHours {
		return nil
	}

	perDay := ratePerDay / 3600
	hours := lastHours
	date := lastDate

	var curve []CurvePoint
	for i := 0; i < maxCurveDays; i++ {
		date = date.AddDate(0, 0, 1)
		hours += perDay
		curve = append(curve, CurvePoint{Date: date, Hours: hours})
		if hours >= targetHours {
			break
		}
	}
	return curve
}

// ProgressEntry 表示某个未达成里程碑的完成度。
type ProgressEntry struct {
	Milestone float64
	Percent   float64
}

// ProgressOverview 返回每个未达成里程碑的进度百分比，升序排列。
func ProgressOverview(currentHours float64) []ProgressEntry {
	var entries []ProgressEntry
	for _, milestone := range Milestones {
		if currentHours < milestone {
			entries = append(entries, ProgressEntry{
				Milestone: milestone,
				Percent:   currentHours / milestone * 100,
			})
		}
	}
	return entries
}

// MilestoneDate 返回首次越过某里程碑的日期：优先在历史数据中找，
// 找不到再查预测曲线。两边都没有时返回 false。
func MilestoneDate(dates []time.Time, hours []float64, curve []CurvePoint, milestone float64) (time.Time, bool) {
	for i, h := range hours {
		if h >= milestone {
			return dates[i], true
		}
	}
	for _, point := range curve {
		if point.Hours >= milestone {
			return point.Date, true
		}
	}
	return time.Time{}, false
}
