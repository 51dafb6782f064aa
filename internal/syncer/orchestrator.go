// Package syncer owns every record set: it is the only writer to the
// in-memory state and to the persistent cache. Everything else gets
// snapshots.
package syncer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/gateway"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/metrics"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/normalize"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/session"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/store"
)

type Orchestrator struct {
	st        *store.Store
	sess      *session.Manager
	suap      *gateway.SUAP
	holidays  *gateway.Holidays
	classroom *gateway.Classroom
	log       *zap.SugaredLogger
	loc       *time.Location
	now       func() time.Time

	mu sync.RWMutex
	// gen is bumped on logout; a fetch started under an older generation
	// must not write its result back, or a slow response would resurrect
	// cleared state.
	gen uint64

	profile       *models.Profile
	academic      *models.StudentDetail
	completion    *models.CompletionSummary
	periods       []models.Period
	currentPeriod *models.Period
	grades        []models.GradeRecord
	schedule      []models.ScheduleEntry
	holidayList   []models.Holiday
	coursework    []models.CourseworkItem
}

func New(st *store.Store, sess *session.Manager, suap *gateway.SUAP, hol *gateway.Holidays, cls *gateway.Classroom, loc *time.Location, log *zap.SugaredLogger) *Orchestrator {
	o := &Orchestrator{
		st: st, sess: sess, suap: suap, holidays: hol, classroom: cls,
		loc: loc, log: log, now: time.Now,
	}
	sess.OnForcedLogout(o.resetState)
	return o
}

// LoadCache paints the last known state before any network round trip.
// Corrupt or missing entries just stay empty.
func (o *Orchestrator) LoadCache() {
	o.mu.Lock()
	defer o.mu.Unlock()

	load := func(key string, v any) {
		if o.st.GetJSON(key, v) {
			metrics.CacheLoads.WithLabelValues(key, "hit").Inc()
		} else {
			metrics.CacheLoads.WithLabelValues(key, "miss").Inc()
		}
	}
	load(store.KeyProfile, &o.profile)
	load(store.KeyAcademic, &o.academic)
	load(store.KeyCompletion, &o.completion)
	load(store.KeyPeriods, &o.periods)
	load(store.KeyCurrentPeriod, &o.currentPeriod)
	load(store.KeyGrades, &o.grades)
	load(store.KeySchedule, &o.schedule)
	load(store.KeyHolidays, &o.holidayList)
	load(store.KeyCoursework, &o.coursework)
	o.log.Infow("cache loaded",
		"grades", len(o.grades), "schedule", len(o.schedule),
		"holidays", len(o.holidayList), "coursework", len(o.coursework))
}

// Start runs the initial refresh: holidays unconditionally, the
// authenticated sequence only when a session exists. The two are
// independent and run concurrently.
func (o *Orchestrator) Start(ctx context.Context) {
	go o.RefreshHolidays(ctx)
	if o.sess.LoggedIn() {
		go o.RefreshAll(ctx)
	}
}

func (o *Orchestrator) generation() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.gen
}

// commit applies fn only if no logout happened since the fetch began.
func (o *Orchestrator) commit(gen uint64, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		o.log.Debugw("discarding stale in-flight result")
		return false
	}
	fn()
	return true
}

// RefreshHolidays updates the year's holiday list. A failed fetch keeps the
// cached list.
func (o *Orchestrator) RefreshHolidays(ctx context.Context) {
	gen := o.generation()
	hs := o.holidays.ByYear(ctx, o.now().Year())
	if hs == nil {
		return
	}
	o.commit(gen, func() {
		o.holidayList = hs
		o.persist(store.KeyHolidays, hs)
	})
}

// RefreshAll runs the full authenticated sequence. Profile, academic detail
// and completion have no mutual ordering and fan out; the period list must
// resolve before the per-period fetches because they need the slug.
func (o *Orchestrator) RefreshAll(ctx context.Context) {
	if !o.sess.LoggedIn() {
		return
	}
	gen := o.generation()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if p := o.suap.Profile(gctx); p != nil {
			o.commit(gen, func() {
				o.profile = p
				o.persist(store.KeyProfile, p)
			})
		}
		return nil
	})
	grp.Go(func() error {
		if d := o.suap.StudentDetail(gctx); d != nil {
			o.commit(gen, func() {
				o.academic = d
				o.persist(store.KeyAcademic, d)
			})
		}
		return nil
	})
	grp.Go(func() error {
		if c := o.suap.Completion(gctx); c != nil {
			o.commit(gen, func() {
				o.completion = c
				o.persist(store.KeyCompletion, c)
			})
		}
		return nil
	})
	grp.Go(func() error {
		o.refreshPeriodData(gctx, gen)
		return nil
	})
	grp.Go(func() error {
		o.RefreshCoursework(gctx)
		return nil
	})
	_ = grp.Wait()
}

func (o *Orchestrator) refreshPeriodData(ctx context.Context, gen uint64) {
	periods := o.suap.Periods(ctx)
	if len(periods) == 0 {
		return
	}
	active := ActivePeriod(periods)
	ok := o.commit(gen, func() {
		o.periods = periods
		o.currentPeriod = &active
		o.persist(store.KeyPeriods, periods)
		o.persist(store.KeyCurrentPeriod, active)
	})
	if !ok {
		return
	}

	// boletim and diários only depend on the resolved slug, not on each
	// other.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if bs := o.suap.Boletim(ctx, active.Semestre); bs != nil {
			grades := normalize.Grades(bs)
			o.commit(gen, func() {
				o.grades = grades
				o.persist(store.KeyGrades, grades)
			})
		}
	}()
	go func() {
		defer wg.Done()
		if ds := o.suap.Diarios(ctx, active.Semestre); ds != nil {
			schedule := normalize.Schedule(ds)
			o.commit(gen, func() {
				o.schedule = schedule
				o.persist(store.KeySchedule, schedule)
			})
		}
	}()
	wg.Wait()
}

// RefreshCoursework merges the per-course assignment lists and keeps only
// upcoming items. Without a Classroom token it is a no-op.
func (o *Orchestrator) RefreshCoursework(ctx context.Context) {
	if _, ok := o.sess.ClassroomToken(); !ok {
		return
	}
	gen := o.generation()
	work, names := o.classroom.AllWork(ctx)
	if work == nil {
		return
	}
	items := normalize.Coursework(work, names, o.now(), o.loc)
	o.commit(gen, func() {
		o.coursework = items
		o.persist(store.KeyCoursework, items)
	})
}

// ActivePeriod is the maximum semester by string comparison ("2025.1" beats
// "2024.2").
func ActivePeriod(periods []models.Period) models.Period {
	active := periods[0]
	for _, p := range periods[1:] {
		if p.Semestre > active.Semestre {
			active = p
		}
	}
	return active
}

// Login authenticates and, on success, kicks the full refresh in the
// background.
func (o *Orchestrator) Login(ctx context.Context, username, password string) error {
	if err := o.sess.Login(ctx, username, password); err != nil {
		return err
	}
	go o.RefreshAll(context.WithoutCancel(ctx))
	return nil
}

// Logout clears the session, the user-data cache keys and the in-memory
// record sets. Holidays and preferences survive. The generation bump must
// come before the store wipe: an in-flight commit landing in between would
// otherwise re-persist wiped keys.
func (o *Orchestrator) Logout() {
	o.resetState()
	o.sess.Logout()
}

func (o *Orchestrator) resetState() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.profile = nil
	o.academic = nil
	o.completion = nil
	o.periods = nil
	o.currentPeriod = nil
	o.grades = nil
	o.schedule = nil
	o.coursework = nil
}

func (o *Orchestrator) persist(key string, v any) {
	if err := o.st.SetJSON(key, v); err != nil {
		o.log.Errorw("persisting cache", "key", key, "err", err)
	}
}
