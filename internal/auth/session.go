package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Werneck0live/painel-vagas/internal/models"
)

var ErrNoSession = errors.New("no session")

type sessionClaims struct {
	Authenticated bool        `json:"authenticated"`
	Username      string      `json:"username"`
	Role          models.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionCodec grava/lê a sessão num cookie HttpOnly assinado (HS256).
type SessionCodec struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

func NewSessionCodec(secret, cookieName string, ttl time.Duration, secure bool) *SessionCodec {
	return &SessionCodec{
		secret:     []byte(secret),
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		now:        time.Now,
	}
}

func (c *SessionCodec) Encode(s models.Session) (string, error) {
	now := c.now()
	claims := &sessionClaims{
		Authenticated: s.Authenticated,
		Username:      s.Username,
		Role:          s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return tok, nil
}

func (c *SessionCodec) Decode(token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrNoSession
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return models.Session{}, fmt.Errorf("parse session: %w", err)
	}
	if !parsed.Valid || !claims.Authenticated {
		return models.Session{}, ErrNoSession
	}
	return models.Session{Authenticated: true, Username: claims.Username, Role: claims.Role}, nil
}

// FromRequest: cookie ausente, vencido ou adulterado = sem sessão.
func (c *SessionCodec) FromRequest(r *http.Request) models.Session {
	ck, err := r.Cookie(c.cookieName)
	if err != nil {
		return models.Session{}
	}
	s, err := c.Decode(ck.Value)
	if err != nil {
		return models.Session{}
	}
	return s
}

func (c *SessionCodec) SetCookie(w http.ResponseWriter, s models.Session) error {
	tok, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.ttl.Seconds()),
	})
	return nil
}

func (c *SessionCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

type ctxKey struct{}

func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFrom(ctx context.Context) models.Session {
	s, _ := ctx.Value(ctxKey{}).(models.Session)
	return s
}
