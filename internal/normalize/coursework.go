package normalize

import (
	"sort"
	"time"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// Coursework joins merged Classroom assignments with their course names,
// resolves the due instant and keeps only items still due at or after now,
// ascending. Items without a due date never count as upcoming.
func Coursework(work []models.ClassroomWork, courseNames map[string]string, now time.Time, loc *time.Location) []models.CourseworkItem {
	if loc == nil {
		loc = time.Local
	}
	out := make([]models.CourseworkItem, 0, len(work))
	for _, w := range work {
		if w.DueDate == nil {
			continue
		}
		due := dueInstant(*w.DueDate, w.DueTime, loc)
		if due.Before(now) {
			continue
		}
		out = append(out, models.CourseworkItem{
			ID:         w.ID,
			Title:      w.Title,
			CourseID:   w.CourseID,
			CourseName: courseNames[w.CourseID],
			Due:        due,
			Link:       w.AlternateLink,
			State:      w.State,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Due.Before(out[j].Due) })
	return out
}

// dueInstant composes the date-only and optional time-of-day fields; an
// assignment with no time is due at the end of its day.
func dueInstant(d models.ClassroomDate, t *models.ClassroomTime, loc *time.Location) time.Time {
	hour, minute, sec := 23, 59, 59
	if t != nil {
		hour, minute, sec = t.Hours, t.Minutes, 0
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, hour, minute, sec, 0, loc)
}
