package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/analytics"
	"github.com/Werneck0live/painel-vagas/internal/export"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

// Export gera o .xlsx com o mesmo recorte do POST /api/dashboard.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
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

	rows, err := analytics.Filter(t, p, v)
	if err != nil && !errors.Is(err, analytics.ErrNoSelection) {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDashboard(&buf, analytics.Build(t, p, v), rows); err != nil {
		h.logger().Error("export_error", "err", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	name := fmt.Sprintf("painel-vagas-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
