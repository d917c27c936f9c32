package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/painel-vagas/internal/dataset"
	"github.com/Werneck0live/painel-vagas/internal/models"
	"github.com/Werneck0live/painel-vagas/internal/repository"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

type DatasetRepository interface {
	Load(ctx context.Context) (models.Table, error)
	Replace(ctx context.Context, filename string, data []byte) (repository.ReplaceResult, error)
	Token() string
}

type Publisher interface {
	Publish(ctx context.Context, body []byte, headers amqp.Table) error
	Close() error
}

type Authenticator interface {
	Login(username, password string) (models.Session, error)
	Logout() models.Session
}

type SessionStore interface {
	FromRequest(r *http.Request) models.Session
	SetCookie(w http.ResponseWriter, s models.Session) error
	ClearCookie(w http.ResponseWriter)
}

// Handler junta as dependências das rotas do painel. Pub pode ser nil (Rabbit desligado).
type Handler struct {
	Repo     DatasetRepository
	Pub      Publisher
	Auth     Authenticator
	Sessions SessionStore
	Log      *slog.Logger

	Timeout        time.Duration
	UploadMaxBytes int64
}

const tokenHeader = "X-Dataset-Token"

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}

func (h *Handler) ctx(r *http.Request) (context.Context, context.CancelFunc) {
	d := h.Timeout
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), d)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// load lê o dataset atual e já responde o erro, se houver.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Table, bool) {
	ctx, cancel := h.ctx(r)
	defer cancel()

	// token lido antes do Load: se um upload cair no meio, o cliente vê token velho e busca de novo
	tok := h.Repo.Token()
	t, err := h.Repo.Load(ctx)
	if err == nil {
		w.Header().Set(tokenHeader, tok)
		return t, true
	}

	var dfe *dataset.DataFormatError
	switch {
	case errors.As(err, &dfe):
		h.logger().Warn("dataset_format_error", "err", err)
		utils.WriteError(w, http.StatusUnprocessableEntity, dfe.Error())
	case errors.Is(err, repository.ErrNoDataset):
		utils.WriteError(w, http.StatusNotFound, "no dataset loaded")
	default:
		h.logger().Error("dataset_load_error", "err", err)
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
	return models.Table{}, false
}
