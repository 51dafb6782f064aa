package models

import "time"

// NoGrade is the placeholder for stages that have no published score yet.
// It is distinct from a real 0.0.
const NoGrade = "-"

// GradeRecord is the UI-ready boletim row. Score fields hold either a
// formatted number or NoGrade.
type GradeRecord struct {
	Subject    string  `json:"subject"`
	Code       string  `json:"code"`
	Status     string  `json:"status"`
	N1         string  `json:"n1"`
	N2         string  `json:"n2"`
	N3         string  `json:"n3"`
	N4         string  `json:"n4"`
	FinalGrade string  `json:"finalGrade"`
	Average    string  `json:"average"`
	Frequency  float64 `json:"frequency"`
	Absences   int     `json:"absences"`
	TotalHours int     `json:"totalHours"`
	// Limit = floor(TotalHours * 0.25): absences above it fail the subject.
	Limit int `json:"limit"`
}

// ScheduleEntry is one weekly meeting slot. DayInt follows the SUAP
// convention: Domingo=1, Segunda=2 ... Sábado=7; unknown day names get 8 so
// they sort after everything recognized.
type ScheduleEntry struct {
	Day        string   `json:"day"`
	DayInt     int      `json:"dayInt"`
	StartTime  string   `json:"startTime"` // "13:00"
	EndTime    string   `json:"endTime"`
	TimeLabel  string   `json:"timeLabel"` // "13:00 - 13:45"
	Name       string   `json:"name"`
	ShortName  string   `json:"shortName"`
	Room       string   `json:"room"` // truncated label for the grid
	FullRoom   string   `json:"fullRoom"`
	Professors []string `json:"professors"`
	Type       string   `json:"type"`
}

// Holiday is one brasilapi feriados entry, immutable for the calendar year.
type Holiday struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
	Type string `json:"type"`
}

// CourseworkItem is a normalized Classroom assignment with the course name
// joined in and the due instant resolved to local time.
type CourseworkItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CourseID   string    `json:"courseId"`
	CourseName string    `json:"courseName"`
	Due        time.Time `json:"due"`
	Link       string    `json:"link"`
	State      string    `json:"state"`
}
