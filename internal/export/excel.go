// Package export gera a planilha do painel com os mesmos números da tela.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Werneck0live/painel-vagas/internal/analytics"
	"github.com/Werneck0live/painel-vagas/internal/models"
)

const (
	SheetSummary = "Resumo"
	SheetStatus  = "Status"
	SheetReasons = "Motivos"
	SheetTop     = "Top 15"
	SheetRows    = "Vagas"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteDashboard grava o workbook em w. rows são as linhas já filtradas.
func WriteDashboard(w io.Writer, d analytics.Dashboard, rows models.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, s := range []string{SheetStatus, SheetReasons, SheetTop, SheetRows} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("new sheet %s: %w", s, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{SheetSummary, func() error { return writeSummary(f, header, d, rows) }},
		{SheetStatus, func() error { return writeBuckets(f, header, SheetStatus, d.View.StatusColumn(), d.StatusHistogram) }},
		{SheetReasons, func() error { return writeBuckets(f, header, SheetReasons, "Motivo", d.ReasonHistogram) }},
		{SheetTop, func() error { return writeTop(f, header, d.TopLongestOpen) }},
		{SheetRows, func() error { return writeRows(f, header, rows) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, header int, d analytics.Dashboard, rows models.Table) error {
	_ = f.SetColWidth(SheetSummary, "A", "A", 32)
	_ = f.SetColWidth(SheetSummary, "B", "B", 40)

	lines := [][]any{
		{"Indicador", "Valor"},
		{"Visão", d.StatusChartTitle},
		{"Total de vagas", d.Display.Total},
		{"Média de dias em aberto", d.Display.MeanDaysOpen},
		{"Vagas fora do SLA", d.Display.SLABreachCount},
		{"% fora do SLA", d.Display.SLABreachRate},
		{"Linhas exportadas", rows.Len()},
		{"Gerado em", time.Now().Format("02/01/2006 15:04:05")},
	}
	if d.Empty {
		lines = append(lines, []any{"Aviso", d.Message})
	}
	if err := setRows(f, SheetSummary, lines); err != nil {
		return err
	}
	return f.SetCellStyle(SheetSummary, "A1", "B1", header)
}

func writeBuckets(f *excelize.File, header int, sheet, label string, b []analytics.Bucket) error {
	_ = f.SetColWidth(sheet, "A", "A", 40)
	lines := [][]any{{label, "Quantidade"}}
	for _, x := range b {
		lines = append(lines, []any{x.Label, x.Count})
	}
	if err := setRows(f, sheet, lines); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", "B1", header)
}

// O gráfico lista em ordem crescente; a planilha mostra o maior primeiro.
func writeTop(f *excelize.File, header int, top []analytics.TopEntry) error {
	_ = f.SetColWidth(SheetTop, "A", "A", 50)
	lines := [][]any{{"Vaga", "Código", "Cargo", "Status", "Dias em Aberto"}}
	for i := len(top) - 1; i >= 0; i-- {
		e := top[i]
		lines = append(lines, []any{e.Label, e.Code, e.Title, e.Status, daysCell(e.DaysOpen)})
	}
	if err := setRows(f, SheetTop, lines); err != nil {
		return err
	}
	return f.SetCellStyle(SheetTop, "A1", "E1", header)
}

func writeRows(f *excelize.File, header int, t models.Table) error {
	head := make([]any, len(models.RequiredColumns))
	for i, c := range models.RequiredColumns {
		head[i] = c
	}
	lines := [][]any{head}
	for _, r := range t.Rows {
		lines = append(lines, []any{
			r.Code, r.Title, r.Group, r.State, r.LifecycleStatus, r.InternalStatus,
			r.RecruitmentStart.Format("02/01/2006"), daysCell(r.DaysOpen), r.SLASituation, r.Reason,
		})
	}
	if err := setRows(f, SheetRows, lines); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(head), 1)
	return f.SetCellStyle(SheetRows, "A1", last, header)
}

// daysCell: sem número, célula vazia.
func daysCell(d *float64) any {
	if d == nil {
		return nil
	}
	return *d
}

func setRows(f *excelize.File, sheet string, lines [][]any) error {
	for i, l := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &l); err != nil {
			return err
		}
	}
	return nil
}
