package syncer

import "github.com/kellyson71/electron-supaco-IFRN-API/internal/models"

// Read snapshots. Slices are copied so consumers can never alias the owned
// state; struct pointers are copied by value for the same reason.

func (o *Orchestrator) Profile() *models.Profile {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.profile == nil {
		return nil
	}
	p := *o.profile
	return &p
}

func (o *Orchestrator) Academic() *models.StudentDetail {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.academic == nil {
		return nil
	}
	d := *o.academic
	return &d
}

func (o *Orchestrator) Completion() *models.CompletionSummary {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.completion == nil {
		return nil
	}
	c := *o.completion
	return &c
}

func (o *Orchestrator) CurrentPeriod() *models.Period {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.currentPeriod == nil {
		return nil
	}
	p := *o.currentPeriod
	return &p
}

func (o *Orchestrator) Periods() []models.Period {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.Period(nil), o.periods...)
}

func (o *Orchestrator) Grades() []models.GradeRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.GradeRecord(nil), o.grades...)
}

func (o *Orchestrator) Schedule() []models.ScheduleEntry {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.ScheduleEntry(nil), o.schedule...)
}

func (o *Orchestrator) Holidays() []models.Holiday {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.Holiday(nil), o.holidayList...)
}

func (o *Orchestrator) Coursework() []models.CourseworkItem {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]models.CourseworkItem(nil), o.coursework...)
}
