package handlers

import (
	"errors"
	"net/http"

	"github.com/Werneck0live/painel-vagas/internal/auth"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, "invalid json: "+err.Error())
		return
	}
	if err := validateDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	s, err := h.Auth.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger().Info("login_failed", "username", dto.Username)
			utils.WriteError(w, http.StatusUnauthorized, "Usuário ou senha inválidos")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.Sessions.SetCookie(w, s); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.logger().Info("login_ok", "username", s.Username, "role", s.Role)
	utils.WriteJSON(w, http.StatusOK, s)
}

// Logout expira o cookie e responde a sessão zerada.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s := h.Auth.Logout()
	h.Sessions.ClearCookie(w)
	utils.WriteJSON(w, http.StatusOK, s)
}

// Session responde a sessão atual; sem cookie válido vem authenticated=false.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.Sessions.FromRequest(r))
}
