package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

func notaPtr(v float64) *models.FlexFloat {
	return &models.FlexFloat{Value: v, Valid: true}
}

func TestGrades_MissingStageAndLimit(t *testing.T) {
	boletim := []models.Boletim{{
		CodigoDiario:          "TEC.0012",
		Disciplina:            "Programação Orientada a Objetos (POO.2025.1)",
		CargaHoraria:          80,
		NumeroFaltas:          10,
		Situacao:              "Cursando",
		NotaEtapa1:            &models.Etapa{Nota: notaPtr(85)},
		NotaEtapa2:            &models.Etapa{Nota: notaPtr(70)},
		NotaEtapa3:            nil, // not yet graded
		MediaDisciplina:       notaPtr(77.5),
		PercentualFrequentada: 91.2,
	}}

	got := Grades(boletim)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	g := got[0]

	if g.Subject != "Programação Orientada a Objetos" {
		t.Errorf("subject not cleaned: %q", g.Subject)
	}
	if g.N3 != models.NoGrade {
		t.Errorf("n3 = %q, want sentinel %q", g.N3, models.NoGrade)
	}
	if g.Limit != 20 {
		t.Errorf("limit = %d, want 20", g.Limit)
	}
	if g.N1 != "85" || g.N2 != "70" {
		t.Errorf("stage scores = %q/%q", g.N1, g.N2)
	}
	if g.Average != "77.5" {
		t.Errorf("average = %q, want 77.5", g.Average)
	}
	// 20-10 = 10 remaining: not at risk under the "≤4 remaining" rule
	if g.Limit-g.Absences <= 4 {
		t.Errorf("record should not rank as at-risk")
	}
}

func TestAbsenceLimit(t *testing.T) {
	cases := []struct{ hours, want int }{
		{0, 0}, {1, 0}, {4, 1}, {60, 15}, {67, 16}, {80, 20}, {120, 30},
	}
	for _, c := range cases {
		if got := AbsenceLimit(c.hours); got != c.want {
			t.Errorf("AbsenceLimit(%d) = %d, want %d", c.hours, got, c.want)
		}
		if got := AbsenceLimit(c.hours); got < 0 || got > c.hours {
			t.Errorf("AbsenceLimit(%d) = %d out of [0, %d]", c.hours, got, c.hours)
		}
	}
}

func TestGrades_QuotedSentinelScoresStaySentinel(t *testing.T) {
	// SUAP sends "-" (quoted) for ungraded stages in some payloads; that must
	// render as the sentinel, never as a real 0.
	payload := `[{
		"disciplina": "Física II",
		"carga_horaria": 60,
		"nota_etapa_1": {"nota": 90},
		"nota_etapa_2": {"nota": "-"},
		"media_disciplina": "-"
	}]`
	var boletim []models.Boletim
	if err := json.Unmarshal([]byte(payload), &boletim); err != nil {
		t.Fatal(err)
	}

	got := Grades(boletim)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].N1 != "90" {
		t.Errorf("n1 = %q, want 90", got[0].N1)
	}
	if got[0].N2 != models.NoGrade {
		t.Errorf("n2 = %q, want sentinel %q", got[0].N2, models.NoGrade)
	}
	if got[0].Average != models.NoGrade {
		t.Errorf("average = %q, want sentinel %q", got[0].Average, models.NoGrade)
	}
}

func TestGrades_SentinelAverageFallsThrough(t *testing.T) {
	b := models.Boletim{
		Disciplina:           "Química",
		MediaDisciplina:      &models.FlexFloat{}, // upstream sent "-"
		MediaFinalDisciplina: notaPtr(63),
	}
	if got := Grades([]models.Boletim{b}); got[0].Average != "63" {
		t.Errorf("average = %q, want media_final fallback past the sentinel", got[0].Average)
	}
}

func TestGrades_AverageFallback(t *testing.T) {
	boletim := []models.Boletim{
		{Disciplina: "A", MediaDisciplina: notaPtr(60)},
		{Disciplina: "B", MediaFinalDisciplina: notaPtr(55)},
		{Disciplina: "C"},
	}
	got := Grades(boletim)
	if got[0].Average != "60" {
		t.Errorf("A average = %q", got[0].Average)
	}
	if got[1].Average != "55" {
		t.Errorf("B average = %q (media_final fallback)", got[1].Average)
	}
	if got[2].Average != models.NoGrade {
		t.Errorf("C average = %q, want sentinel", got[2].Average)
	}
}

func TestGrades_Idempotent(t *testing.T) {
	boletim := []models.Boletim{{
		Disciplina:   "Matemática Discreta (MAT.101)",
		CargaHoraria: 67,
		NumeroFaltas: 3,
		NotaEtapa1:   &models.Etapa{Nota: notaPtr(92)},
	}}
	a := Grades(boletim)
	b := Grades(boletim)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("normalizer is not a pure function")
	}
}
