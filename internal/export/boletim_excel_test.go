package export

import (
	"testing"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
)

func TestBoletimWorkbook(t *testing.T) {
	grades := []models.GradeRecord{{
		Subject: "Banco de Dados", Code: "TEC.0012", Status: "Cursando",
		N1: "75", N2: "82.5", N3: "-", N4: "-", FinalGrade: "-", Average: "78.75",
		Frequency: 77.5, Absences: 18, Limit: 20, TotalHours: 80,
	}}
	schedule := []models.ScheduleEntry{{
		Day: "Terça", TimeLabel: "13:00 - 13:45", Name: "Banco de Dados",
		ShortName: "BD", FullRoom: "Bloco H - Lab 4", Professors: []string{"Fulano"},
	}}

	f, err := BoletimWorkbook("2025.1", grades, schedule)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if idx, _ := f.GetSheetIndex("Boletim 2025.1"); idx < 0 {
		t.Fatalf("sheet missing, have %v", f.GetSheetList())
	}
	if idx, _ := f.GetSheetIndex("Horários"); idx < 0 {
		t.Fatalf("schedule sheet missing, have %v", f.GetSheetList())
	}

	if v, _ := f.GetCellValue("Boletim 2025.1", "A1"); v != "Disciplina" {
		t.Errorf("A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Boletim 2025.1", "A2"); v != "Banco de Dados" {
		t.Errorf("A2 = %q", v)
	}
	if v, _ := f.GetCellValue("Boletim 2025.1", "J2"); v != "77.5%" {
		t.Errorf("frequency cell = %q", v)
	}
	if v, _ := f.GetCellValue("Horários", "F2"); v != "Fulano" {
		t.Errorf("professors cell = %q", v)
	}
}

func TestColName(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "A"}, {13, "M"}, {26, "Z"}, {27, "AA"}, {52, "AZ"}, {53, "BA"},
	}
	for _, c := range cases {
		if got := colName(c.n); got != c.want {
			t.Errorf("colName(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestBoletimWorkbook_EmptyState(t *testing.T) {
	f, err := BoletimWorkbook("", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if idx, _ := f.GetSheetIndex("Boletim"); idx < 0 {
		t.Fatalf("default title missing, have %v", f.GetSheetList())
	}
}
