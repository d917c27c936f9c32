package handlers

import "github.com/Werneck0live/painel-vagas/internal/analytics"

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// DashboardRequest: Status omitido = todas as opções; Status [] = nada marcado.
// Datas vazias deixam aquele lado do período aberto.
type DashboardRequest struct {
	View      string   `json:"view" validate:"omitempty,oneof=lifecycle internal"`
	DateStart string   `json:"date_start" validate:"omitempty,datetime=2006-01-02"`
	DateEnd   string   `json:"date_end" validate:"omitempty,datetime=2006-01-02"`
	Status    []string `json:"status"`
	Groups    []string `json:"groups"`
	States    []string `json:"states"`
}

type EventRequest struct {
	State *analytics.State `json:"state"`
	Event analytics.Event  `json:"event"`
}

type EventResponse struct {
	State     analytics.State     `json:"state"`
	Dashboard analytics.Dashboard `json:"dashboard"`
}
