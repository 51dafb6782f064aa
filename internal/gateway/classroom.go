package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/metrics"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// Classroom wraps the Google Classroom REST surface with the separately
// acquired implicit-grant token. The token is read per call: the desktop
// shell can hand over a fresh one at any time.
type Classroom struct {
	base    string
	log     *zap.SugaredLogger
	tokenFn func() (string, bool)
}

func NewClassroom(baseURL string, tokenFn func() (string, bool), log *zap.SugaredLogger) *Classroom {
	return &Classroom{base: strings.TrimRight(baseURL, "/"), tokenFn: tokenFn, log: log}
}

func (g *Classroom) client(ctx context.Context) *http.Client {
	tok, ok := g.tokenFn()
	if !ok || tok == "" {
		return nil
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok, TokenType: "Bearer"})
	cl := oauth2.NewClient(ctx, src)
	cl.Timeout = 20 * time.Second
	return cl
}

func (g *Classroom) Courses(ctx context.Context) []models.ClassroomCourse {
	cl := g.client(ctx)
	if cl == nil {
		return nil
	}
	var list models.ClassroomCourseList
	if !g.getJSON(ctx, cl, g.base+"/v1/courses?courseStates=ACTIVE", &list) {
		return nil
	}
	return list.Courses
}

// Work fetches one course's assignment list. A failed course is an empty
// contribution, not an abort.
func (g *Classroom) Work(ctx context.Context, courseID string) []models.ClassroomWork {
	cl := g.client(ctx)
	if cl == nil {
		return nil
	}
	var list models.ClassroomWorkList
	url := fmt.Sprintf("%s/v1/courses/%s/courseWork", g.base, courseID)
	if !g.getJSON(ctx, cl, url, &list) {
		return nil
	}
	return list.CourseWork
}

// AllWork fans out one request per active course, joins the results and
// returns the merged assignment list plus a courseID→name map for the
// normalizer. Partial failures only shrink the merge.
func (g *Classroom) AllWork(ctx context.Context) ([]models.ClassroomWork, map[string]string) {
	courses := g.Courses(ctx)
	if len(courses) == 0 {
		return nil, nil
	}

	names := make(map[string]string, len(courses))
	for _, c := range courses {
		names[c.ID] = c.Name
	}

	var (
		mu     sync.Mutex
		merged []models.ClassroomWork
	)
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(4)
	for _, c := range courses {
		c := c
		grp.Go(func() error {
			work := g.Work(gctx, c.ID)
			if len(work) == 0 {
				return nil
			}
			mu.Lock()
			merged = append(merged, work...)
			mu.Unlock()
			return nil
		})
	}
	_ = grp.Wait() // workers never return errors; failures are empty lists
	return merged, names
}

func (g *Classroom) getJSON(ctx context.Context, cl *http.Client, url string, v any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := cl.Do(req)
	if err != nil {
		g.log.Warnw("classroom fetch failed (offline?)", "url", url, "err", err)
		metrics.ObserveRequest("classroom", false)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		g.log.Warnw("classroom: unexpected status", "url", url, "status", resp.StatusCode)
		metrics.ObserveRequest("classroom", false)
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		g.log.Warnw("classroom: bad payload", "url", url, "err", err)
		metrics.ObserveRequest("classroom", false)
		return false
	}
	metrics.ObserveRequest("classroom", true)
	return true
}
