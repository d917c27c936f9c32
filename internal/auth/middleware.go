package auth

import (
	"net/http"

	"github.com/Werneck0live/painel-vagas/internal/models"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

// RequireSession barra quem não está logado e põe a sessão no contexto.
func RequireSession(codec *SessionCodec, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := codec.FromRequest(r)
		if !s.Authenticated {
			utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "login required"})
			return
		}
		next(w, r.WithContext(WithSession(r.Context(), s)))
	}
}

// RequireRole: logado e com o papel pedido; senão 403.
func RequireRole(codec *SessionCodec, role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return RequireSession(codec, func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()).Role != role {
			utils.WriteJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		next(w, r)
	})
}
