package derived

import (
	"testing"
	"time"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

func TestRankAbsenceRisk(t *testing.T) {
	grades := []models.GradeRecord{
		{Subject: "Folgada", Absences: 2, Limit: 20},
		{Subject: "Crítica", Absences: 18, Limit: 20},
		{Subject: "Limite", Absences: 11, Limit: 15},
	}
	got := RankAbsenceRisk(grades)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Subject != "Crítica" || got[0].Remaining != 2 || !got[0].IsRisk {
		t.Errorf("most urgent = %+v", got[0])
	}
	if got[1].Subject != "Limite" || !got[1].IsRisk {
		t.Errorf("remaining=4 must flag as risk: %+v", got[1])
	}
	if got[2].Subject != "Folgada" || got[2].IsRisk {
		t.Errorf("remaining=18 must not flag: %+v", got[2])
	}
	if got[0].Percentage != 90 {
		t.Errorf("percentage = %v, want 90", got[0].Percentage)
	}
}

func TestRankAbsenceRisk_ZeroLimit(t *testing.T) {
	got := RankAbsenceRisk([]models.GradeRecord{{Subject: "Seminário", Absences: 0, Limit: 0}})
	if got[0].Percentage != 0 {
		t.Errorf("zero-limit percentage = %v", got[0].Percentage)
	}
	if !got[0].IsRisk { // 0 remaining is as urgent as it gets
		t.Error("zero remaining must flag as risk")
	}
}

func TestNextClass(t *testing.T) {
	schedule := []models.ScheduleEntry{
		{Day: "Segunda", DayInt: 2, StartTime: "07:00", Name: "POO"},
		{Day: "Segunda", DayInt: 2, StartTime: "13:00", Name: "BD"},
		{Day: "Quarta", DayInt: 4, StartTime: "07:00", Name: "Redes"},
	}

	// 2025-06-02 is a Monday
	monday10 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	if got := NextClass(schedule, monday10); got == nil || got.Name != "BD" {
		t.Errorf("monday 10:00 next = %+v, want BD", got)
	}

	monday15 := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	if got := NextClass(schedule, monday15); got == nil || got.Name != "Redes" {
		t.Errorf("monday 15:00 next = %+v, want Redes", got)
	}

	// friday evening wraps to the first class of next week
	friday := time.Date(2025, 6, 6, 20, 0, 0, 0, time.UTC)
	if got := NextClass(schedule, friday); got == nil || got.Name != "POO" {
		t.Errorf("friday wrap = %+v, want POO", got)
	}

	if got := NextClass(nil, monday10); got != nil {
		t.Errorf("empty schedule = %+v, want nil", got)
	}
}

func TestNextClass_SkipsUnknownWeekdays(t *testing.T) {
	schedule := []models.ScheduleEntry{
		{Day: "Segunda", DayInt: 2, StartTime: "07:00", Name: "POO"},
		{Day: "???", DayInt: 8, StartTime: "23:00", Name: "Fantasma"},
	}

	// monday evening: the ordinal-8 entry would compare as "later this week"
	// but must not win; the week wraps to POO instead
	monday20 := time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)
	if got := NextClass(schedule, monday20); got == nil || got.Name != "POO" {
		t.Errorf("next = %+v, want wrap to POO", got)
	}

	onlyUnknown := []models.ScheduleEntry{{Day: "???", DayInt: 8, StartTime: "07:00"}}
	if got := NextClass(onlyUnknown, monday20); got != nil {
		t.Errorf("all-unknown schedule = %+v, want nil", got)
	}
}

func TestNextHoliday(t *testing.T) {
	holidays := []models.Holiday{
		{Date: "2025-01-01", Name: "Confraternização Universal"},
		{Date: "2025-06-19", Name: "Corpus Christi"},
		{Date: "2025-09-07", Name: "Independência"},
		{Date: "not-a-date", Name: "Lixo"},
	}

	now := time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC)
	got := NextHoliday(holidays, now)
	if got == nil || got.Name != "Corpus Christi" || got.DaysUntil != 3 {
		t.Fatalf("next holiday = %+v", got)
	}

	// the holiday itself counts as zero days away
	onTheDay := time.Date(2025, 6, 19, 23, 0, 0, 0, time.UTC)
	got = NextHoliday(holidays, onTheDay)
	if got == nil || got.Name != "Corpus Christi" || got.DaysUntil != 0 {
		t.Fatalf("on the day = %+v", got)
	}

	afterAll := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	if got := NextHoliday(holidays, afterAll); got != nil {
		t.Fatalf("past the last holiday = %+v, want nil", got)
	}
}

func TestNextCoursework(t *testing.T) {
	if got := NextCoursework(nil); got != nil {
		t.Fatal("empty list must yield nil")
	}
	items := []models.CourseworkItem{
		{ID: "head", Title: "Lista 1"},
		{ID: "tail", Title: "Lista 2"},
	}
	if got := NextCoursework(items); got == nil || got.ID != "head" {
		t.Fatalf("head = %+v", got)
	}
}
