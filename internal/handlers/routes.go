package handlers

import (
	"net/http"

	"github.com/Werneck0live/painel-vagas/internal/auth"
	"github.com/Werneck0live/painel-vagas/internal/models"
)

// Routes monta o mux da API. Leitura exige login; troca do dataset exige admin.
func (h *Handler) Routes(codec *auth.SessionCodec) *http.ServeMux {
	logged := func(fn http.HandlerFunc) http.HandlerFunc { return auth.RequireSession(codec, fn) }
	admin := func(fn http.HandlerFunc) http.HandlerFunc { return auth.RequireRole(codec, models.RoleAdmin, fn) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)

	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("GET /api/session", h.Session)

	mux.HandleFunc("GET /api/facets", logged(h.Facets))
	mux.HandleFunc("GET /api/state", logged(h.State))
	mux.HandleFunc("POST /api/dashboard", logged(h.Dashboard))
	mux.HandleFunc("POST /api/dashboard/events", logged(h.Events))
	mux.HandleFunc("POST /api/export", logged(h.Export))

	mux.HandleFunc("GET /api/dataset", logged(h.DatasetToken))
	mux.HandleFunc("POST /api/dataset", admin(h.Upload))
	return mux
}
