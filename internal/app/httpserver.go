package app

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/metrics"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/session"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/store"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/syncer"
)

// Server is the local surface the desktop shell talks to: health, metrics
// and read-only snapshots of the synced record sets.
type Server struct {
	srv *http.Server
}

func StartHTTP(ctx context.Context, addr string, st *store.Store, orch *syncer.Orchestrator, sess *session.Manager, loc *time.Location, log *zap.SugaredLogger) *Server {
	h := &handlers{st: st, orch: orch, sess: sess, loc: loc, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(); err != nil {
			http.Error(w, "store not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("POST /api/login", h.login)
	mux.HandleFunc("POST /api/logout", h.logout)
	mux.HandleFunc("GET /api/session", h.session)
	mux.HandleFunc("POST /api/classroom-token", h.classroomToken)
	mux.HandleFunc("POST /api/sync", h.syncNow)

	mux.HandleFunc("GET /api/profile", h.profile)
	mux.HandleFunc("GET /api/academic", h.academic)
	mux.HandleFunc("GET /api/completion", h.completion)
	mux.HandleFunc("GET /api/period", h.period)
	mux.HandleFunc("GET /api/grades", h.grades)
	mux.HandleFunc("GET /api/schedule", h.schedule)
	mux.HandleFunc("GET /api/holidays", h.holidays)
	mux.HandleFunc("GET /api/coursework", h.coursework)
	mux.HandleFunc("GET /api/risk", h.risk)
	mux.HandleFunc("GET /api/next", h.next)

	mux.HandleFunc("GET /api/preferences", h.getPreferences)
	mux.HandleFunc("PUT /api/preferences", h.putPreferences)

	mux.HandleFunc("GET /api/export/boletim.xlsx", h.exportBoletim)

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		_ = srv.ListenAndServe() // closed via Shutdown below
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &Server{srv: srv}
}
