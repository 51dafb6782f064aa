package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/derived"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

func TestBuildDigest_Empty(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	if got := BuildDigest(nil, nil, nil, now); got != "" {
		t.Fatalf("quiet week produced a digest: %q", got)
	}

	// risks exist but none flagged
	risks := []derived.AbsenceRisk{{Subject: "POO", Remaining: 12}}
	if got := BuildDigest(risks, nil, nil, now); got != "" {
		t.Fatalf("unflagged risks produced a digest: %q", got)
	}
}

func TestBuildDigest_RiskLines(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	risks := []derived.AbsenceRisk{
		{Subject: "BD", Absences: 18, Limit: 20, Remaining: 2, IsRisk: true},
		{Subject: "Redes", Absences: 12, Limit: 15, Remaining: 3, IsRisk: true},
		{Subject: "POO", Absences: 2, Limit: 20, Remaining: 18},
	}
	got := BuildDigest(risks, nil, nil, now)
	if !strings.Contains(got, "BD: 18/20") || !strings.Contains(got, "Redes") {
		t.Errorf("digest missing risk lines: %q", got)
	}
	if strings.Contains(got, "POO") {
		t.Errorf("unflagged subject leaked into digest: %q", got)
	}
}

func TestBuildDigest_Holiday(t *testing.T) {
	now := time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC)

	tomorrow := &derived.UpcomingHoliday{
		Holiday: models.Holiday{Name: "Corpus Christi"}, DaysUntil: 1,
	}
	got := BuildDigest(nil, tomorrow, nil, now)
	if !strings.Contains(got, "Amanhã é feriado: Corpus Christi") {
		t.Errorf("digest = %q", got)
	}

	today := &derived.UpcomingHoliday{Holiday: models.Holiday{Name: "Natal"}, DaysUntil: 0}
	if got := BuildDigest(nil, today, nil, now); !strings.Contains(got, "Hoje é feriado: Natal") {
		t.Errorf("digest = %q", got)
	}

	farOff := &derived.UpcomingHoliday{Holiday: models.Holiday{Name: "Carnaval"}, DaysUntil: 40}
	if got := BuildDigest(nil, farOff, nil, now); got != "" {
		t.Errorf("distant holiday produced a digest: %q", got)
	}
}

func TestBuildDigest_CourseworkDueSoon(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	soon := &models.CourseworkItem{
		Title: "Prova final", CourseName: "Cálculo I",
		Due: now.Add(5 * time.Hour),
	}
	got := BuildDigest(nil, nil, soon, now)
	if !strings.Contains(got, "Prova final") || !strings.Contains(got, "Cálculo I") {
		t.Errorf("digest = %q", got)
	}

	later := &models.CourseworkItem{Title: "Lista 9", Due: now.Add(48 * time.Hour)}
	if got := BuildDigest(nil, nil, later, now); got != "" {
		t.Errorf("coursework two days out produced a digest: %q", got)
	}
}

func TestIsSystemErr(t *testing.T) {
	if isSystemErr(nil) {
		t.Error("nil is not systemic")
	}
	if !isSystemErr(errors.New("Too Many Requests: retry after 429")) {
		t.Error("429 is systemic")
	}
	if !isSystemErr(errors.New("Post https://api.telegram.org: net/http: timeout")) {
		t.Error("timeout is systemic")
	}
	if isSystemErr(errors.New("Bad Request: chat not found")) {
		t.Error("telegram-side validation is not systemic")
	}
}
