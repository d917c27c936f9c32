package analytics

import (
	"fmt"
	"slices"
	"time"
)

// ISODate é o formato das datas trocadas com o navegador.
const ISODate = "2006-01-02"

// State é o estado dos filtros da tela. Cada aba tem a sua própria checklist de status.
type State struct {
	View      View              `json:"view"`
	DateStart string            `json:"date_start"`
	DateEnd   string            `json:"date_end"`
	Groups    []string          `json:"groups"`
	States    []string          `json:"states"`
	Status    map[View][]string `json:"status"`
}

type EventType string

const (
	EventSetDates        EventType = "set_dates"
	EventSetGroups       EventType = "set_groups"
	EventSetStates       EventType = "set_states"
	EventSetStatus       EventType = "set_status"
	EventSelectAllStatus EventType = "select_all_status"
	EventClearAllStatus  EventType = "clear_all_status"
	EventSwitchView      EventType = "switch_view"
)

// Event é uma interação do usuário. View vazio nos eventos de status = aba atual.
type Event struct {
	Type      EventType `json:"type"`
	View      View      `json:"view,omitempty"`
	DateStart string    `json:"date_start,omitempty"`
	DateEnd   string    `json:"date_end,omitempty"`
	Values    []string  `json:"values,omitempty"`
}

// InitialState: período completo, sem grupo/UF, todos os status marcados, aba do status da vaga.
func InitialState(f Facets) State {
	s := State{
		View:   ViewLifecycle,
		Groups: []string{},
		States: []string{},
		Status: map[View][]string{
			ViewLifecycle: slices.Clone(f.LifecycleStatus),
			ViewInternal:  slices.Clone(f.InternalStatus),
		},
	}
	if !f.MinDate.IsZero() {
		s.DateStart = f.MinDate.Format(ISODate)
		s.DateEnd = f.MaxDate.Format(ISODate)
	}
	return s
}

// Apply devolve um novo State; o receptor não é alterado.
func (s State) Apply(e Event, f Facets) (State, error) {
	next := s.clone()

	target := e.View
	if target == "" {
		target = s.View
	}
	if _, err := ParseView(string(target)); err != nil {
		return s, err
	}

	switch e.Type {
	case EventSetDates:
		if _, err := parseISO(e.DateStart); err != nil {
			return s, err
		}
		if _, err := parseISO(e.DateEnd); err != nil {
			return s, err
		}
		next.DateStart, next.DateEnd = e.DateStart, e.DateEnd
	case EventSetGroups:
		next.Groups = slices.Clone(nonNil(e.Values))
	case EventSetStates:
		next.States = slices.Clone(nonNil(e.Values))
	case EventSetStatus:
		next.Status[target] = slices.Clone(nonNil(e.Values))
	case EventSelectAllStatus:
		if target == ViewInternal {
			next.Status[target] = slices.Clone(f.InternalStatus)
		} else {
			next.Status[target] = slices.Clone(f.LifecycleStatus)
		}
	case EventClearAllStatus:
		next.Status[target] = []string{}
	case EventSwitchView:
		next.View = target
	default:
		return s, fmt.Errorf("unknown event %q", e.Type)
	}
	return next, nil
}

// Predicates converte o estado da aba ativa nos filtros do motor.
func (s State) Predicates() (Predicates, error) {
	var p Predicates
	var err error
	if s.DateStart != "" {
		if p.DateStart, err = parseISO(s.DateStart); err != nil {
			return Predicates{}, err
		}
	}
	if s.DateEnd != "" {
		if p.DateEnd, err = parseISO(s.DateEnd); err != nil {
			return Predicates{}, err
		}
	}
	p.Status = slices.Clone(s.Status[s.View])
	p.Groups = slices.Clone(s.Groups)
	p.States = slices.Clone(s.States)
	return p, nil
}

func (s State) clone() State {
	c := s
	c.Groups = slices.Clone(s.Groups)
	c.States = slices.Clone(s.States)
	c.Status = make(map[View][]string, len(s.Status))
	for k, v := range s.Status {
		c.Status[k] = slices.Clone(v)
	}
	return c
}

func parseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
