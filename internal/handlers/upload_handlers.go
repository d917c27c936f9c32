package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/auth"
	"github.com/Werneck0live/painel-vagas/internal/broker"
	"github.com/Werneck0live/painel-vagas/internal/repository"
	"github.com/Werneck0live/painel-vagas/internal/utils"
)

const uploadField = "file"

// DatasetToken responde o token atual; muda a cada troca de dataset.
func (h *Handler) DatasetToken(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": h.Repo.Token()})
}

// Upload troca o dataset (só admin). O conteúdo não é validado aqui:
// um CSV ruim aparece como 422 na próxima leitura.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	limit := h.UploadMaxBytes
	if limit <= 0 {
		limit = 32 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			utils.WriteError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		utils.BadRequest(w, "invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, fh, err := r.FormFile(uploadField)
	if err != nil {
		utils.BadRequest(w, "missing form file \"file\"")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := h.ctx(r)
	defer cancel()

	res, err := h.Repo.Replace(ctx, fh.Filename, data)
	if err != nil {
		var wf *repository.WriteFailure
		switch {
		case errors.Is(err, repository.ErrUnsupportedFormat):
			utils.WriteError(w, http.StatusUnsupportedMediaType, "Formato de arquivo não suportado. Envie um arquivo CSV.")
		case errors.As(err, &wf):
			utils.WriteJSON(w, http.StatusInternalServerError, map[string]string{
				"error":  "Erro ao salvar o arquivo",
				"detail": wf.Detail,
			})
		default:
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.publishEvent(res, auth.SessionFrom(r.Context()).Username)
	utils.WriteJSON(w, http.StatusOK, res)
}

// publishEvent avisa os painéis abertos. Falha no broker não desfaz o upload.
func (h *Handler) publishEvent(res repository.ReplaceResult, by string) {
	if h.Pub == nil {
		return
	}
	ev := broker.NewDatasetReplaced(res.Token, res.Filename, res.Bytes, by)
	body, err := ev.Body()
	if err != nil {
		h.logger().Warn("publish_encode_error", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.Pub.Publish(ctx, body, ev.Headers()); err != nil {
		h.logger().Warn("publish_error", "event_id", ev.ID, "err", err)
		return
	}
	h.logger().Info("dataset_event_published", "event_id", ev.ID, "token", ev.Token)
}
