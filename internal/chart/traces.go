package chart

import (
	"strconv"
	"time"

	"github.com/immersionlog/internal/forecast"
	"github.com/immersionlog/internal/stats"
)

const dateFormat = "2006-01-02"

// Trace 是一条可直接交给前端图表库的序列数据。
type Trace struct {
	Name  string    `json:"name"`
	Mode  string    `json:"mode,omitempty"`
	Color string    `json:"color,omitempty"`
	Dash  string    `json:"dash,omitempty"`
	X     []string  `json:"x"`
	Y     []float64 `json:"y"`
}

func dateAxis(days []stats.DailyRecord) []string {
	x := make([]string, len(days))
	for i, day := range days {
		x[i] = day.Date.Format(dateFormat)
	}
	return x
}

func toMinutes(seconds []stats.DailyRecord) []float64 {
	y := make([]float64, len(seconds))
	for i, day := range seconds {
		y[i] = float64(day.Seconds) / 60
	}
	return y
}

func scaled(values []float64, divisor float64) []float64 {
	y := make([]float64, len(values))
	for i, v := range values {
		y[i] = v / divisor
	}
	return y
}

// MovingAverageTraces 构造“滑动平均”页签的四条曲线（单位：分钟/天）。
func MovingAverageTraces(d *stats.Derived) []Trace {
	x := dateAxis(d.Days)
	return []Trace{
		{Name: "Daily Minutes", Mode: "markers", X: x, Y: toMinutes(d.Days)},
		{Name: "7-day Average", Color: Color("7day_avg"), X: x, Y: scaled(d.Rolling7, 60)},
		{Name: "30-day Average", Color: Color("30day_avg"), X: x, Y: scaled(d.Rolling30, 60)},
		{Name: "Overall Average", Color: Color("primary"), Dash: "dash", X: x, Y: scaled(d.CumulativeAvg, 60)},
	}
}

// DailyBreakdownTraces 构造逐日柱状图及整体均值参考线。
func DailyBreakdownTraces(d *stats.Derived) []Trace {
	x := dateAxis(d.Days)
	avg := d.Rates().Overall / 60
	avgLine := make([]float64, len(x))
	for i := range avgLine {
		avgLine[i] = avg
	}
	return []Trace{
		{Name: "Daily Minutes", X: x, Y: toMinutes(d.Days)},
		{Name: "Overall Average", Color: Color("primary"), Dash: "dash", X: x, Y: avgLine},
	}
}

// MonthlyBreakdownTraces 构造逐月对比的三组柱状数据。
func MonthlyBreakdownTraces(months []stats.MonthPeriod) []Trace {
	x := make([]string, len(months))
	goalMet := make([]float64, len(months))
	practiced := make([]float64, len(months))
	inPeriod := make([]float64, len(months))
	for i, m := range months {
		x[i] = m.Month
		goalMet[i] = float64(m.DaysGoalMet)
		practiced[i] = float64(m.DaysPracticed)
		inPeriod[i] = float64(m.DaysInPeriod)
	}
	return []Trace{
		{Name: "Days Target Met", Color: Color("7day_avg"), X: x, Y: goalMet},
		{Name: "Days Practiced", Color: Color("primary"), X: x, Y: practiced},
		{Name: "Tracked Days in Month", Color: Color("30day_avg"), X: x, Y: inPeriod},
	}
}

// DayOfWeekTrace 构造“星期几平均观看分钟数”的柱状数据，周一在前。
func DayOfWeekTrace(averages []stats.WeekdayAverage) Trace {
	x := make([]string, len(averages))
	y := make([]float64, len(averages))
	for i, avg := range averages {
		x[i] = avg.Weekday
		y[i] = avg.AvgSeconds / 60
	}
	return Trace{Name: "Average Minutes Watched", Color: Color("primary"), X: x, Y: y}
}

// HeatmapPayload 是年度热力图的展开形式，四个切片逐格对齐。
type HeatmapPayload struct {
	Year     int       `json:"year"`
	Weeks    []int     `json:"weeks"`
	Weekdays []int     `json:"weekdays"`
	Minutes  []float64 `json:"minutes"`
	Dates    []string  `json:"dates"`
}

// HeatmapGrid 把热力图单元格转成按格对齐的载荷。
func HeatmapGrid(year int, cells []stats.HeatmapCell) HeatmapPayload {
	payload := HeatmapPayload{
		Year:     year,
		Weeks:    make([]int, len(cells)),
		Weekdays: make([]int, len(cells)),
		Minutes:  make([]float64, len(cells)),
		Dates:    make([]string, len(cells)),
	}
	for i, cell := range cells {
		payload.Weeks[i] = cell.Week
		payload.Weekdays[i] = cell.Weekday
		payload.Minutes[i] = float64(cell.Seconds) / 60
		payload.Dates[i] = cell.Date.Format(dateFormat)
	}
	return payload
}

// MilestoneMarker 是投影图上某条里程碑线的标注。
type MilestoneMarker struct {
	Milestone float64 `json:"milestone"`
	Date      string  `json:"date"`
	Color     string  `json:"color"`
}

// ProjectionPayload 汇总“预计增长”图的全部数据。
type ProjectionPayload struct {
	Historical Trace             `json:"historical"`
	Predicted  []Trace           `json:"predicted"`
	Milestones []MilestoneMarker `json:"milestones"`
}

func curveTrace(name, colorKey, dash string, curve []forecast.CurvePoint) Trace {
	t := Trace{
		Name:  name,
		Mode:  "lines",
		Color: Color(colorKey),
		Dash:  dash,
		X:     make([]string, len(curve)),
		Y:     make([]float64, len(curve)),
	}
	for i, point := range curve {
		t.X[i] = point.Date.Format(dateFormat)
		t.Y[i] = point.Hours
	}
	return t
}

// ProjectionTraces 构造历史累计曲线、三条预测曲线及里程碑标注。
func ProjectionTraces(d *stats.Derived, overall, sevenDay, thirtyDay []forecast.CurvePoint) ProjectionPayload {
	payload := ProjectionPayload{
		Historical: Trace{
			Name:  "Historical Data",
			Mode:  "lines+markers",
			Color: Color("primary"),
			X:     dateAxis(d.Days),
			Y:     append([]float64(nil), d.CumulativeHours...),
		},
		Predicted: []Trace{
			curveTrace("Predicted (Overall Avg)", "primary", "dash", overall),
			curveTrace("Predicted (7-Day Avg)", "7day_avg", "dot", sevenDay),
			curveTrace("Predicted (30-Day Avg)", "30day_avg", "dot", thirtyDay),
		},
		Milestones: []MilestoneMarker{},
	}

	dates := make([]time.Time, len(d.Days))
	for i, day := range d.Days {
		dates[i] = day.Date
	}
	for _, milestone := range forecast.Milestones {
		date, ok := forecast.MilestoneDate(dates, d.CumulativeHours, overall, milestone)
		if !ok {
			continue
		}
		key := strconv.FormatFloat(milestone, 'f', -1, 64)
		payload.Milestones = append(payload.Milestones, MilestoneMarker{
			Milestone: milestone,
			Date:      date.Format(dateFormat),
			Color:     Color(key),
		})
	}

	return payload
}
