package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/dataset"
	"github.com/Werneck0live/painel-vagas/internal/models"
)

// ExtMarker é o que o nome do arquivo precisa conter para o upload ser aceito.
const ExtMarker = ".csv"

var ErrUnsupportedFormat = errors.New("unsupported file format: expected a .csv file")

// WriteFailure: falha ao gravar o novo arquivo. Detail vai para o chamador.
type WriteFailure struct {
	Detail string
	Err    error
}

func (e *WriteFailure) Error() string { return "write failure: " + e.Detail }

func (e *WriteFailure) Unwrap() error { return e.Err }

type ReplaceResult struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Filename string `json:"filename"`
	Bytes    int    `json:"bytes"`
}

// DatasetRepository relê o storage a cada Load (sempre fresco) e serializa as escritas.
type DatasetRepository struct {
	store Storage
	log   *slog.Logger

	mu    sync.Mutex // um escritor por vez
	token time.Time
	now   func() time.Time
}

func NewDatasetRepository(store Storage, log *slog.Logger) *DatasetRepository {
	if log == nil {
		log = slog.Default()
	}
	r := &DatasetRepository{
		store: store,
		log:   log.With("cmp", "repository.dataset", "backend", store.Name()),
		now:   time.Now,
	}
	r.token = r.now().UTC()
	return r
}

// Load lê os bytes atuais e monta a tabela. Erros de formato vêm como *dataset.DataFormatError.
func (r *DatasetRepository) Load(ctx context.Context) (models.Table, error) {
	data, err := r.store.Read(ctx)
	if err != nil {
		return models.Table{}, fmt.Errorf("read dataset: %w", err)
	}
	t, err := dataset.Parse(data)
	if err != nil {
		return models.Table{}, err
	}
	if t.Dropped > 0 {
		r.log.Debug("dataset_rows_dropped", "dropped", t.Dropped, "rows", t.Len())
	}
	return t, nil
}

// Raw devolve os bytes guardados, sem parse.
func (r *DatasetRepository) Raw(ctx context.Context) ([]byte, error) {
	return r.store.Read(ctx)
}

// Replace troca o dataset inteiro. Nome sem ".csv" é recusado sem tocar no storage.
func (r *DatasetRepository) Replace(ctx context.Context, filename string, data []byte) (ReplaceResult, error) {
	if !strings.Contains(strings.ToLower(filename), ExtMarker) {
		return ReplaceResult{}, ErrUnsupportedFormat
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Write(ctx, data); err != nil {
		r.log.Error("dataset_write_failed", "filename", filename, "err", err)
		return ReplaceResult{}, &WriteFailure{Detail: err.Error(), Err: err}
	}

	r.token = r.nextToken()
	tok := r.token.Format(time.RFC3339Nano)
	r.log.Info("dataset_replaced", "filename", filename, "bytes", len(data), "token", tok)

	return ReplaceResult{
		Message:  fmt.Sprintf("Arquivo '%s' carregado com sucesso.", filename),
		Token:    tok,
		Filename: filename,
		Bytes:    len(data),
	}, nil
}

// Token é o sinal de invalidação: muda a cada Replace bem-sucedido.
func (r *DatasetRepository) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token.Format(time.RFC3339Nano)
}

// nextToken garante ordem estrita mesmo com relógio parado ou voltando.
func (r *DatasetRepository) nextToken() time.Time {
	t := r.now().UTC()
	if !t.After(r.token) {
		t = r.token.Add(time.Nanosecond)
	}
	return t
}
