package analytics

import (
	"errors"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

// ErrNoSelection: o usuário desmarcou todos os status. Não é o mesmo que "0 linhas casaram".
var ErrNoSelection = errors.New("no status selected")

// Predicates é o conjunto de filtros. Groups/States vazios = sem restrição.
// Data zero numa ponta deixa aquela ponta aberta.
type Predicates struct {
	DateStart time.Time
	DateEnd   time.Time
	Status    []string
	Groups    []string
	States    []string
}

// Filter aplica data (inclusiva nas duas pontas), status da view, grupo e UF, tudo em AND.
// A tabela de entrada não é alterada.
func Filter(t models.Table, p Predicates, v View) (models.Table, error) {
	if len(p.Status) == 0 {
		return models.Table{}, ErrNoSelection
	}

	start, end := Day(p.DateStart), Day(p.DateEnd)
	status := set(p.Status)
	groups := set(p.Groups)
	states := set(p.States)

	out := models.Table{Rows: make([]models.Requisition, 0, len(t.Rows))}
	for _, r := range t.Rows {
		d := Day(r.RecruitmentStart)
		if !p.DateStart.IsZero() && d.Before(start) {
			continue
		}
		if !p.DateEnd.IsZero() && d.After(end) {
			continue
		}
		if !status[v.Status(r)] {
			continue
		}
		if groups != nil && !groups[r.Group] {
			continue
		}
		if states != nil && !states[r.State] {
			continue
		}
		out.Rows = append(out.Rows, r)
	}
	return out, nil
}

// set devolve nil para entrada vazia, o que Filter lê como "sem restrição".
func set(vals []string) map[string]bool {
	if len(vals) == 0 {
		return nil
	}
	m := make(map[string]bool, len(vals))
	for _, v := range vals {
		m[v] = true
	}
	return m
}
