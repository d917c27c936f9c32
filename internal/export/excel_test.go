package export

/*
	go test -v ./internal/export -count=1
*/

import (
	"bytes"
	"slices"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Werneck0live/painel-vagas/internal/analytics"
	"github.com/Werneck0live/painel-vagas/internal/models"
)

func ptr(f float64) *float64 { return &f }

func sample() models.Table {
	d := func(s string) time.Time { t, _ := time.Parse("02/01/2006", s); return t }
	return models.Table{Rows: []models.Requisition{
		{Code: "V1", Title: "Analista", Group: "G1", State: "SP", LifecycleStatus: "Aberta", InternalStatus: "Triagem",
			RecruitmentStart: d("01/01/2024"), DaysOpen: ptr(30), SLASituation: models.SLABreach, Reason: "Aumento de quadro"},
		{Code: "V2", Title: "Gerente", Group: "G2", State: "RJ", LifecycleStatus: "Aberta", InternalStatus: "Entrevista",
			RecruitmentStart: d("10/02/2024"), DaysOpen: ptr(50), SLASituation: "Dentro do SLA", Reason: "Substituição"},
		{Code: "V3", Title: "Auxiliar", Group: "G2", State: "RJ", LifecycleStatus: "Aberta", InternalStatus: "Triagem",
			RecruitmentStart: d("15/03/2024"), SLASituation: "Dentro do SLA", Reason: "Substituição"},
	}}
}

func open(t *testing.T, buf *bytes.Buffer) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	if err != nil {
		t.Fatalf("%s!%s: %v", sheet, ref, err)
	}
	return v
}

func TestWriteDashboard_Sheets(t *testing.T) {
	tbl := sample()
	d := analytics.Aggregate(tbl, analytics.ViewLifecycle)

	var buf bytes.Buffer
	if err := WriteDashboard(&buf, d, tbl); err != nil {
		t.Fatal(err)
	}
	f := open(t, &buf)

	want := []string{SheetSummary, SheetStatus, SheetReasons, SheetTop, SheetRows}
	if got := f.GetSheetList(); !slices.Equal(got, want) {
		t.Fatalf("sheets=%v want %v", got, want)
	}

	if got := cell(t, f, SheetSummary, "B3"); got != "3" {
		t.Fatalf("total=%q", got)
	}
	if got := cell(t, f, SheetSummary, "B4"); got != "40.0 dias" {
		t.Fatalf("média=%q", got)
	}
	if got := cell(t, f, SheetSummary, "B6"); got != "33.33%" {
		t.Fatalf("taxa=%q", got)
	}

	// Top 15: maior primeiro, V3 (sem dias) por último e com a célula vazia
	if got := cell(t, f, SheetTop, "B2"); got != "V2" {
		t.Fatalf("primeiro do top=%q", got)
	}
	if got := cell(t, f, SheetTop, "B4"); got != "V3" {
		t.Fatalf("último do top=%q", got)
	}
	if got := cell(t, f, SheetTop, "E4"); got != "" {
		t.Fatalf("dias de V3=%q want vazio", got)
	}
	if got := cell(t, f, SheetTop, "B5"); got != "" {
		t.Fatalf("top deveria ter 3 linhas, achou %q", got)
	}

	// cabeçalho do histograma é a coluna de status da visão
	if got := cell(t, f, SheetStatus, "A1"); got != models.ColLifecycleStatus {
		t.Fatalf("cabeçalho status=%q", got)
	}

	rows, err := f.GetRows(SheetRows)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[0][0] != models.ColCode {
		t.Fatalf("vagas: %v", rows)
	}
	if rows[1][6] != "01/01/2024" {
		t.Fatalf("data=%q", rows[1][6])
	}
}

func TestWriteDashboard_Empty(t *testing.T) {
	d := analytics.Empty(analytics.ViewInternal, analytics.EmptyNoSelection)

	var buf bytes.Buffer
	if err := WriteDashboard(&buf, d, models.Table{}); err != nil {
		t.Fatal(err)
	}
	f := open(t, &buf)

	if got := cell(t, f, SheetSummary, "B4"); got != analytics.NA {
		t.Fatalf("média=%q", got)
	}
	if got := cell(t, f, SheetSummary, "B9"); got != analytics.EmptyMessage {
		t.Fatalf("aviso=%q", got)
	}
	if got := cell(t, f, SheetStatus, "A1"); got != models.ColInternalStatus {
		t.Fatalf("cabeçalho status=%q", got)
	}
	rows, _ := f.GetRows(SheetStatus)
	if len(rows) != 1 {
		t.Fatalf("status deveria ter só o cabeçalho: %v", rows)
	}
}
