// Package analytics contém o motor de filtro e de KPIs do painel de vagas.
// Tudo aqui é puro: recebe uma models.Table e devolve valores novos.
package analytics

import (
	"fmt"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

// View escolhe qual coluna de status dirige o filtro e o gráfico principal.
type View string

const (
	ViewLifecycle View = "lifecycle" // "Status da Vaga"
	ViewInternal  View = "internal"  // "STATUS"
)

func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewLifecycle:
		return ViewLifecycle, nil
	case ViewInternal:
		return ViewInternal, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

func (v View) StatusColumn() string {
	if v == ViewInternal {
		return models.ColInternalStatus
	}
	return models.ColLifecycleStatus
}

// Status devolve o valor da coluna de status da view.
func (v View) Status(r models.Requisition) string {
	if v == ViewInternal {
		return r.InternalStatus
	}
	return r.LifecycleStatus
}

func (v View) StatusChartTitle() string {
	if v == ViewInternal {
		return "Quantidade de Vagas por STATUS Interno"
	}
	return "Quantidade de Vagas por Status"
}

// Label monta o rótulo do top 15: "COD (Cargo)" ou "COD [STATUS] (Cargo)".
func (v View) Label(r models.Requisition) string {
	if v == ViewInternal {
		return fmt.Sprintf("%s [%s] (%s)", r.Code, r.InternalStatus, r.Title)
	}
	return fmt.Sprintf("%s (%s)", r.Code, r.Title)
}

// Day trunca para a data de calendário (hora ignorada).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
