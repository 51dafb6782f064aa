package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// BoletimWorkbook renders the current grades and schedule into a two-sheet
// spreadsheet, one row per subject / per meeting slot.
func BoletimWorkbook(semestre string, grades []models.GradeRecord, schedule []models.ScheduleEntry) (*excelize.File, error) {
	title := "Boletim"
	if semestre != "" {
		title = "Boletim " + semestre
	}

	gradeRows := make([][]string, 0, len(grades))
	for _, g := range grades {
		gradeRows = append(gradeRows, []string{
			g.Subject, g.Code, g.Status,
			g.N1, g.N2, g.N3, g.N4, g.FinalGrade, g.Average,
			fmt.Sprintf("%.1f%%", g.Frequency),
			strconv.Itoa(g.Absences),
			strconv.Itoa(g.Limit),
			strconv.Itoa(g.TotalHours),
		})
	}

	schedRows := make([][]string, 0, len(schedule))
	for _, e := range schedule {
		schedRows = append(schedRows, []string{
			e.Day, e.TimeLabel, e.Name, e.ShortName, e.FullRoom,
			strings.Join(e.Professors, ", "),
		})
	}

	return build([]SheetSpec{
		{
			Title:  title,
			Header: []string{"Disciplina", "Diário", "Situação", "N1", "N2", "N3", "N4", "Final", "Média", "Frequência", "Faltas", "Limite", "CH"},
			Rows:   gradeRows,
		},
		{
			Title:  "Horários",
			Header: []string{"Dia", "Horário", "Disciplina", "Sigla", "Local", "Professores"},
			Rows:   schedRows,
		},
	})
}

func build(sheets []SheetSpec) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// width heuristic from header and the first rows
		for c := 1; c <= len(s.Header); c++ {
			maxim := len(s.Header[c-1])
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if l := len(s.Rows[r][c-1]); l > maxim {
					maxim = l
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return f, nil
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+n%26)) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
