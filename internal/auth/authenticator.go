// Package auth cuida do login contra a tabela fixa de credenciais e da sessão
// guardada no navegador (cookie com JWT assinado).
package auth

import (
	"errors"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Credential struct {
	Password string
	Role     models.Role
}

// Authenticator compara senha em texto puro, exata e case-sensitive.
// Sem hash, sem bloqueio por tentativas: fraqueza conhecida, mantida de propósito.
type Authenticator struct {
	creds map[string]Credential
}

func NewAuthenticator(creds map[string]Credential) *Authenticator {
	c := make(map[string]Credential, len(creds))
	for u, cr := range creds {
		if u == "" {
			continue
		}
		c[u] = cr
	}
	return &Authenticator{creds: c}
}

// FixedAccounts monta a tabela padrão: uma conta admin e uma convidada.
func FixedAccounts(adminUser, adminPass, guestUser, guestPass string) map[string]Credential {
	return map[string]Credential{
		adminUser: {Password: adminPass, Role: models.RoleAdmin},
		guestUser: {Password: guestPass, Role: models.RoleGuest},
	}
}

func (a *Authenticator) Login(username, password string) (models.Session, error) {
	cr, ok := a.creds[username]
	if !ok || cr.Password != password {
		return models.Session{}, ErrInvalidCredentials
	}
	return models.Session{Authenticated: true, Username: username, Role: cr.Role}, nil
}

// Logout sempre zera a sessão.
func (a *Authenticator) Logout() models.Session {
	return models.Session{}
}
