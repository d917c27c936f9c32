package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/analytics"
	"github.com/Werneck0live/painel-vagas/internal/models"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, analytics.ComputeFacets(t))
}

// State devolve o estado inicial dos filtros para o dataset atual.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, analytics.InitialState(analytics.ComputeFacets(t)))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDashboardRequest(w, r)
	if !ok {
		return
	}
	t, ok := h.load(w, r)
	if !ok {
		return
	}
	p, v, err := req.predicates(t)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, analytics.Build(t, p, v))
}

// Events aplica uma interação ao estado e devolve o estado novo com o painel recalculado.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil {
		utils.BadRequest(w, "invalid json: "+err.Error())
		return
	}
	t, ok := h.load(w, r)
	if !ok {
		return
	}

	f := analytics.ComputeFacets(t)
	cur := analytics.InitialState(f)
	if req.State != nil {
		cur = *req.State
	}
	next, err := cur.Apply(req.Event, f)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	p, err := next.Predicates()
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, EventResponse{State: next, Dashboard: analytics.Build(t, p, next.View)})
}

func decodeDashboardRequest(w http.ResponseWriter, r *http.Request) (DashboardRequest, bool) {
	var req DashboardRequest
	if err := utils.DecodeStrict(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.BadRequest(w, "invalid json: "+err.Error())
		return req, false
	}
	if err := validateDTO(req); err != nil {
		utils.BadRequest(w, err.Error())
		return req, false
	}
	return req, true
}

func (req DashboardRequest) predicates(t models.Table) (analytics.Predicates, analytics.View, error) {
	v, err := analytics.ParseView(req.View)
	if err != nil {
		return analytics.Predicates{}, "", err
	}
	p := analytics.Predicates{Groups: req.Groups, States: req.States, Status: req.Status}
	if p.Status == nil {
		p.Status = analytics.StatusOptions(t, v)
	}
	if req.DateStart != "" {
		if p.DateStart, err = time.Parse(analytics.ISODate, req.DateStart); err != nil {
			return analytics.Predicates{}, "", err
		}
	}
	if req.DateEnd != "" {
		if p.DateEnd, err = time.Parse(analytics.ISODate, req.DateEnd); err != nil {
			return analytics.Predicates{}, "", err
		}
	}
	return p, v, nil
}
