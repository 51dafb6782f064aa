package normalize

import (
	"sort"
	"strings"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

// SUAP weekday convention: week starts on Sunday, so Monday..Saturday sort
// first and Sunday leads only nominally.
var dayOrder = map[string]int{
	"Domingo": 1,
	"Segunda": 2,
	"Terça":   3,
	"Quarta":  4,
	"Quinta":  5,
	"Sexta":   6,
	"Sábado":  7,
}

// unknownDay sorts after every recognized weekday.
const unknownDay = 8

const maxRoomLen = 15

// Schedule flattens diários into one entry per weekly meeting slot, sorted
// by (weekday ordinal, start time).
func Schedule(diarios []models.Diario) []models.ScheduleEntry {
	var entries []models.ScheduleEntry

	for _, d := range diarios {
		if len(d.Horarios) == 0 {
			continue
		}

		fullName := "Disciplina"
		shortName := "---"
		if d.Disciplina != nil {
			if d.Disciplina.Descricao != "" {
				fullName = d.Disciplina.Descricao
			}
			if d.Disciplina.Sigla != "" {
				shortName = d.Disciplina.Sigla
			}
		}

		fullRoom := "Sem local definido"
		if d.Local != nil && d.Local.Sala != "" {
			fullRoom = d.Local.Sala
		}
		shortRoom := shortRoomLabel(fullRoom)

		professors := make([]string, 0, len(d.Professores))
		for _, p := range d.Professores {
			professors = append(professors, p.Nome)
		}

		for _, h := range d.Horarios {
			start, end := splitTimeRange(h.Horario)
			entries = append(entries, models.ScheduleEntry{
				Day:        h.Dia,
				DayInt:     dayOrdinal(h.Dia),
				StartTime:  start,
				EndTime:    end,
				TimeLabel:  h.Horario,
				Name:       cleanName(fullName),
				ShortName:  shortName,
				Room:       shortRoom,
				FullRoom:   fullRoom,
				Professors: professors,
				Type:       "Aula",
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DayInt != entries[j].DayInt {
			return entries[i].DayInt < entries[j].DayInt
		}
		// zero-padded HH:MM compares correctly as a string
		return entries[i].StartTime < entries[j].StartTime
	})
	return entries
}

func dayOrdinal(day string) int {
	if n, ok := dayOrder[day]; ok {
		return n
	}
	return unknownDay
}

// splitTimeRange breaks "13:00 - 13:45" into both sides, defaulting a
// missing side to "00:00".
func splitTimeRange(label string) (start, end string) {
	start, end = "00:00", "00:00"
	parts := strings.Split(label, " - ")
	if len(parts) > 0 && parts[0] != "" {
		start = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		end = parts[1]
	}
	return start, end
}

// shortRoomLabel keeps the part after the last " - " (rooms come as
// "Bloco X - Sala Y") and truncates long labels for the grid.
func shortRoomLabel(full string) string {
	short := full
	if idx := strings.LastIndex(full, " - "); idx >= 0 {
		if after := full[idx+3:]; after != "" {
			short = after
		}
	}
	if runes := []rune(short); len(runes) > maxRoomLen {
		short = string(runes[:maxRoomLen]) + "..."
	}
	return short
}
