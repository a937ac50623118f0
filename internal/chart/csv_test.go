package chart

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/immersionlog/internal/stats"
)

func TestWriteCSV(t *testing.T) {
	d := stats.Derive(stats.Series{
		Days: []stats.DailyRecord{
			{Date: day(t, "2024-01-01"), Seconds: 3600, GoalReached: true},
			{Date: day(t, "2024-01-02"), Seconds: 0},
		},
		InitialTimeSeconds: 1800,
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, d); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		t.Fatalf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "2024-01-01" || first[1] != "3600" || first[2] != "true" {
		t.Fatalf("first row = %v", first)
	}
	// 累计秒数包含初始时长
	if first[3] != "5400" {
		t.Fatalf("cumulative seconds = %q, want 5400", first[3])
	}
	if first[5] != "1.5000" {
		t.Fatalf("cumulative hours = %q, want 1.5000", first[5])
	}

	second := rows[2]
	if second[6] != "false" || second[7] != "0" {
		t.Fatalf("second row active/streak = %v", second)
	}
	if second[8] != "1800.0000" {
		t.Fatalf("avg_7day = %q, want 1800.0000", second[8])
	}
}

func TestWriteCSVEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, stats.Derive(stats.Series{})); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines", len(lines))
	}
}
