package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/session"
)

// SUAP wraps the academic-records endpoints. Every method returns nil (or an
// empty slice) on any failure; the session manager already logged the cause.
type SUAP struct {
	sess *session.Manager
	base string
	log  *zap.SugaredLogger
}

func NewSUAP(sess *session.Manager, baseURL string, log *zap.SugaredLogger) *SUAP {
	return &SUAP{sess: sess, base: strings.TrimRight(baseURL, "/"), log: log}
}

func (g *SUAP) Profile(ctx context.Context) *models.Profile {
	raw := g.sess.AuthenticatedGet(ctx, g.base+"/api/v2/minhas-informacoes/meus-dados/")
	if raw == nil {
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		g.log.Warnw("profile: bad payload", "err", err)
		return nil
	}
	return &p
}

func (g *SUAP) StudentDetail(ctx context.Context) *models.StudentDetail {
	raw := g.sess.AuthenticatedGet(ctx, g.base+"/api/ensino/meus-dados-aluno/")
	if raw == nil {
		return nil
	}
	var d models.StudentDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		g.log.Warnw("student detail: bad payload", "err", err)
		return nil
	}
	return &d
}

func (g *SUAP) Completion(ctx context.Context) *models.CompletionSummary {
	raw := g.sess.AuthenticatedGet(ctx, g.base+"/api/ensino/requisitos-conclusao/")
	if raw == nil {
		return nil
	}
	var c models.CompletionSummary
	if err := json.Unmarshal(raw, &c); err != nil {
		g.log.Warnw("completion: bad payload", "err", err)
		return nil
	}
	return &c
}

func (g *SUAP) Periods(ctx context.Context) []models.Period {
	raw := g.sess.AuthenticatedGet(ctx, g.base+"/api/ensino/periodos/")
	if raw == nil {
		return nil
	}
	var ps []models.Period
	if err := json.Unmarshal(raw, &ps); err != nil {
		g.log.Warnw("periods: bad payload", "err", err)
		return nil
	}
	return ps
}

// Boletim fetches the grade report for a "YYYY.N" semester.
func (g *SUAP) Boletim(ctx context.Context, semestre string) []models.Boletim {
	ano, periodo, ok := strings.Cut(semestre, ".")
	if !ok {
		g.log.Warnw("boletim: bad semester slug", "semestre", semestre)
		return nil
	}
	url := fmt.Sprintf("%s/api/v2/minhas-informacoes/boletim/%s/%s/", g.base, ano, periodo)
	raw := g.sess.AuthenticatedGet(ctx, url)
	if raw == nil {
		return nil
	}
	var bs []models.Boletim
	if err := json.Unmarshal(raw, &bs); err != nil {
		g.log.Warnw("boletim: bad payload", "err", err)
		return nil
	}
	return bs
}

// Diarios fetches the subject offerings for a semester. The endpoint answers
// either a bare array or {"results": [...]}; both come back as a plain slice.
func (g *SUAP) Diarios(ctx context.Context, semestre string) []models.Diario {
	raw := g.sess.AuthenticatedGet(ctx, fmt.Sprintf("%s/api/ensino/diarios/%s/", g.base, semestre))
	if raw == nil {
		return nil
	}
	return decodeDiarios(raw, g.log)
}

func decodeDiarios(raw json.RawMessage, log *zap.SugaredLogger) []models.Diario {
	var list []models.Diario
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var wrapped struct {
		Results []models.Diario `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Results != nil {
		return wrapped.Results
	}
	log.Warnw("diarios: payload neither array nor results object")
	return nil
}
