package analytics

import (
	"errors"
	"sort"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

// Build é o pipeline único das duas abas: filtra pela view e agrega.
// Seleção de status vazia vira estado vazio antes de qualquer KPI.
func Build(t models.Table, p Predicates, v View) Dashboard {
	filtered, err := Filter(t, p, v)
	if errors.Is(err, ErrNoSelection) {
		return Empty(v, EmptyNoSelection)
	}
	return Aggregate(filtered, v)
}

// Facets são as opções dos filtros e os limites do seletor de datas.
type Facets struct {
	Rows            int       `json:"rows"`
	Dropped         int       `json:"dropped"`
	MinDate         time.Time `json:"min_date"`
	MaxDate         time.Time `json:"max_date"`
	LifecycleStatus []string  `json:"lifecycle_status"`
	InternalStatus  []string  `json:"internal_status"`
	Groups          []string  `json:"groups"`
	States          []string  `json:"states"`
}

func ComputeFacets(t models.Table) Facets {
	f := Facets{Rows: t.Len(), Dropped: t.Dropped}
	f.MinDate, f.MaxDate = DateBounds(t)
	f.LifecycleStatus = StatusOptions(t, ViewLifecycle)
	f.InternalStatus = StatusOptions(t, ViewInternal)
	f.Groups = distinct(t, func(r models.Requisition) string { return r.Group })
	f.States = distinct(t, func(r models.Requisition) string { return r.State })
	return f
}

// StatusOptions: valores distintos e ordenados da coluna de status da view.
func StatusOptions(t models.Table, v View) []string {
	return distinct(t, v.Status)
}

// DateBounds devolve a menor e a maior data (zeros se a tabela estiver vazia).
func DateBounds(t models.Table) (time.Time, time.Time) {
	var lo, hi time.Time
	for i, r := range t.Rows {
		d := Day(r.RecruitmentStart)
		if i == 0 || d.Before(lo) {
			lo = d
		}
		if i == 0 || d.After(hi) {
			hi = d
		}
	}
	return lo, hi
}

func distinct(t models.Table, key func(models.Requisition) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range t.Rows {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
