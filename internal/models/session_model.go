package models

type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Session é guardada do lado do cliente (cookie assinado).
// Valor zero = não autenticado.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          Role   `json:"role,omitempty"`
}

func (s Session) IsAdmin() bool {
	return s.Authenticated && s.Role == RoleAdmin
}
