package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/immersionlog/internal/stats"
)

// csvHeader 列出导出文件的全部派生列，一行对应序列中的一天。
var csvHeader = []string{
	"date",
	"seconds",
	"goal_reached",
	"cumulative_seconds",
	"cumulative_minutes",
	"cumulative_hours",
	"active",
	"streak_run",
	"avg_7day",
	"avg_30day",
	"cumulative_avg",
}

// WriteCSV 把完整的派生序列写成带表头的 CSV。
func WriteCSV(w io.Writer, d *stats.Derived) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, day := range d.Days {
		record := []string{
			day.Date.Format(dateFormat),
			strconv.Itoa(day.Seconds),
			strconv.FormatBool(day.GoalReached),
			strconv.FormatInt(d.CumulativeSeconds[i], 10),
			formatFloat(d.CumulativeMinutes[i]),
			formatFloat(d.CumulativeHours[i]),
			strconv.FormatBool(d.Active[i]),
			strconv.Itoa(d.StreakRun[i]),
			formatFloat(d.Rolling7[i]),
			formatFloat(d.Rolling30[i]),
			formatFloat(d.CumulativeAvg[i]),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
