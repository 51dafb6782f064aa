// Package derived holds the pure view calculators the dashboard recomputes
// whenever a record set changes. Nothing here mutates or fetches.
package derived

import (
	"sort"
	"time"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// riskThreshold: a subject is flagged once 4 or fewer allowed absences
// remain.
const riskThreshold = 4

type AbsenceRisk struct {
	Subject    string  `json:"subject"`
	Absences   int     `json:"absences"`
	Limit      int     `json:"limit"`
	Remaining  int     `json:"remaining"`
	Percentage float64 `json:"percentage"`
	IsRisk     bool    `json:"isRisk"`
}

// RankAbsenceRisk orders subjects most-urgent-first (fewest remaining
// allowed absences).
func RankAbsenceRisk(grades []models.GradeRecord) []AbsenceRisk {
	out := make([]AbsenceRisk, 0, len(grades))
	for _, g := range grades {
		remaining := g.Limit - g.Absences
		var pct float64
		if g.Limit > 0 {
			pct = float64(g.Absences) / float64(g.Limit) * 100
		}
		out = append(out, AbsenceRisk{
			Subject:    g.Subject,
			Absences:   g.Absences,
			Limit:      g.Limit,
			Remaining:  remaining,
			Percentage: pct,
			IsRisk:     remaining <= riskThreshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Remaining < out[j].Remaining })
	return out
}

// NextClass finds the first schedule entry strictly after now, wrapping to
// the next week when today is done. Entries must already be sorted, which
// the normalizer guarantees.
func NextClass(schedule []models.ScheduleEntry, now time.Time) *models.ScheduleEntry {
	if len(schedule) == 0 {
		return nil
	}
	today := int(now.Weekday()) + 1 // SUAP ordinals: Domingo=1 ... Sábado=7
	clock := now.Format("15:04")

	var first, upcoming *models.ScheduleEntry
	for i := range schedule {
		e := &schedule[i]
		if e.DayInt < 1 || e.DayInt > 7 {
			// unrecognized weekday: sorts last in the grid but can never be
			// "the next class"
			continue
		}
		if first == nil || e.DayInt < first.DayInt || (e.DayInt == first.DayInt && e.StartTime < first.StartTime) {
			first = e
		}
		after := e.DayInt > today || (e.DayInt == today && e.StartTime > clock)
		if after && (upcoming == nil || e.DayInt < upcoming.DayInt || (e.DayInt == upcoming.DayInt && e.StartTime < upcoming.StartTime)) {
			upcoming = e
		}
	}
	if upcoming != nil {
		return upcoming
	}
	return first // week wrapped
}

type UpcomingHoliday struct {
	models.Holiday
	DaysUntil int `json:"daysUntil"`
}

// NextHoliday returns the nearest holiday at or after today, with today
// itself counting as zero days away.
func NextHoliday(holidays []models.Holiday, now time.Time) *UpcomingHoliday {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var best *UpcomingHoliday
	for _, h := range holidays {
		d, err := time.ParseInLocation("2006-01-02", h.Date, now.Location())
		if err != nil {
			continue
		}
		if d.Before(today) {
			continue
		}
		days := int(d.Sub(today).Hours() / 24)
		if best == nil || days < best.DaysUntil {
			best = &UpcomingHoliday{Holiday: h, DaysUntil: days}
		}
	}
	return best
}

// NextCoursework returns the head of the upcoming-sorted coursework list.
func NextCoursework(items []models.CourseworkItem) *models.CourseworkItem {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
