package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/metrics"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// Holidays wraps the brasilapi public holiday list. Unauthenticated; a nil
// result means "keep whatever is cached".
type Holidays struct {
	http *http.Client
	base string
	log  *zap.SugaredLogger
}

func NewHolidays(baseURL string, log *zap.SugaredLogger) *Holidays {
	return &Holidays{
		http: &http.Client{Timeout: 15 * time.Second},
		base: strings.TrimRight(baseURL, "/"),
		log:  log,
	}
}

func (g *Holidays) ByYear(ctx context.Context, year int) []models.Holiday {
	url := fmt.Sprintf("%s/api/feriados/v1/%d", g.base, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warnw("holidays fetch failed (offline?)", "err", err)
		metrics.ObserveRequest("holidays", false)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		g.log.Warnw("holidays: unexpected status", "status", resp.StatusCode)
		metrics.ObserveRequest("holidays", false)
		return nil
	}

	var hs []models.Holiday
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		g.log.Warnw("holidays: bad payload", "err", err)
		metrics.ObserveRequest("holidays", false)
		return nil
	}
	metrics.ObserveRequest("holidays", true)
	return hs
}
