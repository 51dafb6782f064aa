package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/derived"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/export"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/session"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/store"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/syncer"
)

type handlers struct {
	st   *store.Store
	orch *syncer.Orchestrator
	sess *session.Manager
	loc  *time.Location
	log  *zap.SugaredLogger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username e password obrigatórios"})
		return
	}
	err := h.orch.Login(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "matrícula ou senha incorretos"})
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "erro de conexão com o SUAP"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"loggedIn": true, "username": body.Username})
	}
}

func (h *handlers) logout(w http.ResponseWriter, _ *http.Request) {
	h.orch.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) session(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"loggedIn": h.sess.LoggedIn(),
		"username": h.sess.Username(),
	})
}

// classroomToken accepts either the raw implicit-grant token or the whole
// redirect URL with the token in the fragment.
func (h *handlers) classroomToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload inválido"})
		return
	}
	token := body.Token
	if token == "" {
		token, _ = session.ParseFragmentToken(body.URL)
	}
	if token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token ausente"})
		return
	}
	if err := h.sess.SetClassroomToken(token); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "falha ao salvar token"})
		return
	}
	go h.orch.RefreshCoursework(context.WithoutCancel(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) syncNow(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	go h.orch.RefreshHolidays(ctx)
	go h.orch.RefreshAll(ctx)
	w.WriteHeader(http.StatusAccepted)
}

func (h *handlers) profile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Profile())
}

func (h *handlers) academic(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Academic())
}

func (h *handlers) completion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Completion())
}

func (h *handlers) period(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"current": h.orch.CurrentPeriod(),
		"all":     h.orch.Periods(),
	})
}

func (h *handlers) grades(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Grades())
}

func (h *handlers) schedule(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Schedule())
}

func (h *handlers) holidays(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Holidays())
}

func (h *handlers) coursework(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.orch.Coursework())
}

func (h *handlers) risk(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, derived.RankAbsenceRisk(h.orch.Grades()))
}

func (h *handlers) next(w http.ResponseWriter, _ *http.Request) {
	now := time.Now().In(h.loc)
	writeJSON(w, http.StatusOK, map[string]any{
		"class":      derived.NextClass(h.orch.Schedule(), now),
		"holiday":    derived.NextHoliday(h.orch.Holidays(), now),
		"coursework": derived.NextCoursework(h.orch.Coursework()),
	})
}

func (h *handlers) getPreferences(w http.ResponseWriter, _ *http.Request) {
	mode, _ := h.st.Get(store.KeyThemeMode)
	variant, _ := h.st.Get(store.KeyThemeVariant)
	wallpaper, _ := h.st.Get(store.KeyWallpaper)
	writeJSON(w, http.StatusOK, map[string]string{
		"themeMode":    mode,
		"themeVariant": variant,
		"wallpaper":    wallpaper,
	})
}

// putPreferences stores whichever keys the shell sends; preferences are
// plain pass-through strings, never cleared on logout.
func (h *handlers) putPreferences(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ThemeMode    *string `json:"themeMode"`
		ThemeVariant *string `json:"themeVariant"`
		Wallpaper    *string `json:"wallpaper"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload inválido"})
		return
	}
	set := func(key string, v *string) {
		if v != nil {
			if err := h.st.Set(key, *v); err != nil {
				h.log.Errorw("saving preference", "key", key, "err", err)
			}
		}
	}
	set(store.KeyThemeMode, body.ThemeMode)
	set(store.KeyThemeVariant, body.ThemeVariant)
	set(store.KeyWallpaper, body.Wallpaper)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) exportBoletim(w http.ResponseWriter, _ *http.Request) {
	semestre := ""
	if p := h.orch.CurrentPeriod(); p != nil {
		semestre = p.Semestre
	}
	f, err := export.BoletimWorkbook(semestre, h.orch.Grades(), h.orch.Schedule())
	if err != nil {
		h.log.Errorw("building boletim workbook", "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	name := "boletim.xlsx"
	if semestre != "" {
		name = fmt.Sprintf("boletim_%s.xlsx", semestre)
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		h.log.Warnw("writing workbook", "err", err)
	}
}
