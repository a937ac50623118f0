package stats

import "testing"

func boolSeries(t *testing.T, start string, seconds ...int) *Derived {
	t.Helper()
	base := day(t, start)
	days := make([]DailyRecord, len(seconds))
	for i, s := range seconds {
		days[i] = DailyRecord{Date: base.AddDate(0, 0, i), Seconds: s}
	}
	return Derive(Series{Days: days})
}

func TestRunLengths(t *testing.T) {
	runs := runLengths([]bool{true, true, false, true, false, true, true, true})
	want := []int{1, 2, 0, 1, 0, 1, 2, 3}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("runs[%d] = %d, want %d", i, runs[i], want[i])
		}
	}
}

func TestStreaksCurrentAndLongest(t *testing.T) {
	d := boolSeries(t, "2024-01-01", 60, 60, 0, 60, 60, 60)

	streaks := d.Streaks()
	if streaks.Current != 3 {
		t.Fatalf("current streak = %d, want 3", streaks.Current)
	}
	if streaks.Longest != 3 {
		t.Fatalf("longest streak = %d, want 3", streaks.Longest)
	}
	if streaks.Runs != 2 {
		t.Fatalf("runs = %d, want 2", streaks.Runs)
	}
	if streaks.Average != 2.5 {
		t.Fatalf("average streak = %f, want 2.5", streaks.Average)
	}
}

func TestStreaksBrokenByZeroFinalDay(t *testing.T) {
	// 最后一天补了 0 秒记录，当前连胜必须归零
	d := boolSeries(t, "2024-01-01", 60, 60, 60, 0)

	streaks := d.Streaks()
	if streaks.Current != 0 {
		t.Fatalf("current streak = %d, want 0", streaks.Current)
	}
	if streaks.Longest != 3 {
		t.Fatalf("longest streak = %d, want 3", streaks.Longest)
	}
}

func TestStreaksEmptySeries(t *testing.T) {
	d := Derive(Series{})

	streaks := d.Streaks()
	if streaks.Current != 0 || streaks.Longest != 0 || streaks.Average != 0 || streaks.Runs != 0 {
		t.Fatalf("expected all-zero streak stats, got %+v", streaks)
	}

	goals := d.GoalStats()
	if goals.GoalsReached != 0 || goals.TotalDays != 0 || goals.GoalRate() != 0 {
		t.Fatalf("expected all-zero goal stats, got %+v", goals)
	}
}

func TestGoalStatsSegmentation(t *testing.T) {
	base := day(t, "2024-02-01")
	d := Derive(Series{Days: []DailyRecord{
		{Date: base, Seconds: 600, GoalReached: true},
		{Date: base.AddDate(0, 0, 1), Seconds: 600, GoalReached: true},
		{Date: base.AddDate(0, 0, 2), Seconds: 600, GoalReached: false},
		{Date: base.AddDate(0, 0, 3), Seconds: 600, GoalReached: true},
	}})

	goals := d.GoalStats()
	if goals.Current != 1 {
		t.Fatalf("current goal streak = %d, want 1", goals.Current)
	}
	if goals.Longest != 2 {
		t.Fatalf("longest goal streak = %d, want 2", goals.Longest)
	}
	if goals.GoalsReached != 3 {
		t.Fatalf("goals reached = %d, want 3", goals.GoalsReached)
	}
	if goals.TotalDays != 4 {
		t.Fatalf("total days = %d, want 4", goals.TotalDays)
	}
	if goals.GoalRate() != 75 {
		t.Fatalf("goal rate = %f, want 75", goals.GoalRate())
	}
}

func TestConsistencyScenario(t *testing.T) {
	base := day(t, "2024-05-01")
	d := Derive(Series{Days: []DailyRecord{
		{Date: base, Seconds: 0},
		{Date: base.AddDate(0, 0, 1), Seconds: 1800, GoalReached: true},
	}})

	if got := d.Streaks().Current; got != 1 {
		t.Fatalf("current streak = %d, want 1", got)
	}
	if got := d.Streaks().Longest; got != 1 {
		t.Fatalf("longest streak = %d, want 1", got)
	}
	if got := d.Consistency(); got != 50 {
		t.Fatalf("consistency = %f, want 50", got)
	}
}
