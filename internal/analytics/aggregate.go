package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

// TopN é o tamanho do ranking de vagas abertas há mais tempo.
const TopN = 15

const (
	NA           = "N/A"
	EmptyMessage = "Sem dados para os filtros selecionados"

	EmptyNoSelection = "no_selection"
	EmptyNoMatch     = "no_match"
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type TopEntry struct {
	Label    string  `json:"label"`
	Code     string  `json:"codigo_vaga"`
	Title    string  `json:"titulo_cargo"`
	Status   string  `json:"status"`
	DaysOpen *float64 `json:"dias_em_aberto"` // nil = não numérico
}

// KPIs: ponteiro nil = indefinido ("N/A").
type KPIs struct {
	Total          int      `json:"total"`
	MeanDaysOpen   *float64 `json:"mean_days_open"`
	SLABreachCount int      `json:"sla_breach_count"`
	SLABreachRate  *float64 `json:"sla_breach_rate"`
}

// Display traz os textos dos cards como o painel mostra.
type Display struct {
	Total          string `json:"total"`
	MeanDaysOpen   string `json:"mean_days_open"`
	SLABreachCount string `json:"sla_breach_count"`
	SLABreachRate  string `json:"sla_breach_rate"`
}

type Dashboard struct {
	View             View       `json:"view"`
	Empty            bool       `json:"empty"`
	EmptyReason      string     `json:"empty_reason,omitempty"`
	Message          string     `json:"message,omitempty"`
	KPIs             KPIs       `json:"kpis"`
	Display          Display    `json:"display"`
	StatusChartTitle string     `json:"status_chart_title"`
	StatusHistogram  []Bucket   `json:"status_histogram"`
	ReasonHistogram  []Bucket   `json:"reason_histogram"`
	TopLongestOpen   []TopEntry `json:"top_longest_open"`
}

// Empty é a tupla do estado vazio: 0, N/A, 0, N/A e nenhum gráfico.
func Empty(v View, reason string) Dashboard {
	return Dashboard{
		View:             v,
		Empty:            true,
		EmptyReason:      reason,
		Message:          EmptyMessage,
		Display:          Display{Total: "0", MeanDaysOpen: NA, SLABreachCount: "0", SLABreachRate: NA},
		StatusChartTitle: v.StatusChartTitle(),
		StatusHistogram:  []Bucket{},
		ReasonHistogram:  []Bucket{},
		TopLongestOpen:   []TopEntry{},
	}
}

// Aggregate calcula KPIs e séries dos gráficos sobre uma tabela já filtrada.
// Tabela vazia cai no ramo explícito de Empty.
func Aggregate(t models.Table, v View) Dashboard {
	if t.Len() == 0 {
		return Empty(v, EmptyNoMatch)
	}

	k := ComputeKPIs(t)
	return Dashboard{
		View:             v,
		KPIs:             k,
		Display:          FormatKPIs(k),
		StatusChartTitle: v.StatusChartTitle(),
		StatusHistogram:  StatusHistogram(t, v),
		ReasonHistogram:  ReasonHistogram(t),
		TopLongestOpen:   TopLongestOpen(t, v, TopN),
	}
}

func ComputeKPIs(t models.Table) KPIs {
	k := KPIs{Total: t.Len()}

	var sum float64
	var n int
	for _, r := range t.Rows {
		if r.DaysOpen != nil {
			sum += *r.DaysOpen
			n++
		}
		if r.SLASituation == models.SLABreach {
			k.SLABreachCount++
		}
	}
	if n > 0 {
		mean := sum / float64(n)
		k.MeanDaysOpen = &mean
	}
	if k.Total > 0 {
		rate := round2(float64(k.SLABreachCount) / float64(k.Total) * 100)
		k.SLABreachRate = &rate
	}
	return k
}

func FormatKPIs(k KPIs) Display {
	d := Display{
		Total:          fmt.Sprintf("%d", k.Total),
		MeanDaysOpen:   NA,
		SLABreachCount: fmt.Sprintf("%d", k.SLABreachCount),
		SLABreachRate:  NA,
	}
	if k.MeanDaysOpen != nil {
		d.MeanDaysOpen = fmt.Sprintf("%.1f dias", *k.MeanDaysOpen)
	}
	if k.SLABreachRate != nil {
		d.SLABreachRate = fmt.Sprintf("%.2f%%", *k.SLABreachRate)
	}
	return d
}

// StatusHistogram conta por status da view, crescente (maior barra por último).
// Empate mantém a ordem de primeira aparição. Status em branco não vira barra.
func StatusHistogram(t models.Table, v View) []Bucket {
	b := countBy(t, v.Status)
	sort.SliceStable(b, func(i, j int) bool { return b[i].Count < b[j].Count })
	return b
}

// ReasonHistogram conta por motivo, decrescente. Motivo em branco fica fora da pizza.
func ReasonHistogram(t models.Table) []Bucket {
	b := countBy(t, func(r models.Requisition) string { return r.Reason })
	sort.SliceStable(b, func(i, j int) bool { return b[i].Count > b[j].Count })
	return b
}

// TopLongestOpen: vagas não preenchidas, por dias em aberto decrescente (estável),
// corta em n e devolve em ordem crescente para o gráfico horizontal.
// Linhas sem "Dias em Aberto" numérico vão para o fim da ordenação (DaysOpen nil).
func TopLongestOpen(t models.Table, v View, n int) []TopEntry {
	open := make([]models.Requisition, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.LifecycleStatus == models.LifecycleFilled {
			continue
		}
		open = append(open, r)
	}
	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i].DaysOpen, open[j].DaysOpen
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a > *b
	})
	if len(open) > n {
		open = open[:n]
	}

	out := make([]TopEntry, len(open))
	for i, r := range open {
		// inverte: o maior fica no fim (topo do gráfico)
		out[len(open)-1-i] = TopEntry{
			Label:    v.Label(r),
			Code:     r.Code,
			Title:    r.Title,
			Status:   v.Status(r),
			DaysOpen: r.DaysOpen,
		}
	}
	return out
}

func countBy(t models.Table, key func(models.Requisition) string) []Bucket {
	pos := map[string]int{}
	var out []Bucket
	for _, r := range t.Rows {
		k := key(r)
		if strings.TrimSpace(k) == "" {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, Bucket{Label: k})
		}
		out[i].Count++
	}
	if out == nil {
		out = []Bucket{}
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
