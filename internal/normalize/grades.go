package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// SUAP appends the class code in parentheses to the subject name; the
// dashboard shows the clean name.
var parenSuffix = regexp.MustCompile(`\(.*\)`)

// Grades turns raw boletim rows into UI-ready grade records. Pure function:
// no sorting is imposed, callers keep the upstream order.
func Grades(boletim []models.Boletim) []models.GradeRecord {
	out := make([]models.GradeRecord, 0, len(boletim))
	for _, b := range boletim {
		out = append(out, models.GradeRecord{
			Subject:    cleanName(b.Disciplina),
			Code:       b.CodigoDiario,
			Status:     b.Situacao,
			N1:         etapaNota(b.NotaEtapa1),
			N2:         etapaNota(b.NotaEtapa2),
			N3:         etapaNota(b.NotaEtapa3),
			N4:         etapaNota(b.NotaEtapa4),
			FinalGrade: etapaNota(b.NotaAvaliacaoFinal),
			Average:    average(b),
			Frequency:  b.PercentualFrequentada,
			Absences:   b.NumeroFaltas,
			TotalHours: b.CargaHoraria,
			Limit:      AbsenceLimit(b.CargaHoraria),
		})
	}
	return out
}

// AbsenceLimit applies the 25% rule: a student fails upon exceeding a
// quarter of the course hours in absences.
func AbsenceLimit(totalHours int) int {
	if totalHours <= 0 {
		return 0
	}
	return int(math.Floor(float64(totalHours) * 0.25))
}

func cleanName(name string) string {
	return strings.TrimSpace(parenSuffix.ReplaceAllString(name, ""))
}

func etapaNota(e *models.Etapa) string {
	if e == nil || e.Nota == nil || !e.Nota.Valid {
		return models.NoGrade
	}
	return formatNota(e.Nota.Value)
}

// average falls through media_disciplina then media_final_disciplina; a
// sentinel "-" upstream value counts as absent, not as a score.
func average(b models.Boletim) string {
	if b.MediaDisciplina != nil && b.MediaDisciplina.Valid {
		return formatNota(b.MediaDisciplina.Value)
	}
	if b.MediaFinalDisciplina != nil && b.MediaFinalDisciplina.Valid {
		return formatNota(b.MediaFinalDisciplina.Value)
	}
	return models.NoGrade
}

func formatNota(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
