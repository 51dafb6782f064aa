package models

// Google Classroom payloads (courses.list / courseWork.list).

type ClassroomCourse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Section       string `json:"section,omitempty"`
	AlternateLink string `json:"alternateLink"`
	CourseState   string `json:"courseState,omitempty"`
}

type ClassroomDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

type ClassroomTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type ClassroomWork struct {
	ID            string         `json:"id"`
	CourseID      string         `json:"courseId"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	State         string         `json:"state"`
	AlternateLink string         `json:"alternateLink"`
	CreationTime  string         `json:"creationTime"`
	UpdateTime    string         `json:"updateTime"`
	DueDate       *ClassroomDate `json:"dueDate,omitempty"`
	DueTime       *ClassroomTime `json:"dueTime,omitempty"`
	MaxPoints     float64        `json:"maxPoints,omitempty"`
	WorkType      string         `json:"workType"`
}

type ClassroomCourseList struct {
	Courses []ClassroomCourse `json:"courses"`
}

type ClassroomWorkList struct {
	CourseWork []ClassroomWork `json:"courseWork"`
}
