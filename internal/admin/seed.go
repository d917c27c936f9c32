// Package admin reúne as tarefas avulsas do binário da API (-task=seed|import).
package admin

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/dataset"
	"github.com/Werneck0live/painel-vagas/internal/repository"
)

//go:embed seeds/vagas.csv
var sampleCSV []byte

// SampleFilename é o nome gravado quando o seed roda.
const SampleFilename = "vagas.csv"

// DatasetStore é o pedaço do repositório que as tarefas usam.
type DatasetStore interface {
	Raw(ctx context.Context) ([]byte, error)
	Replace(ctx context.Context, filename string, data []byte) (repository.ReplaceResult, error)
}

// Sample devolve uma cópia do CSV de exemplo embutido.
func Sample() []byte {
	return append([]byte(nil), sampleCSV...)
}

// Idempotente: grava o exemplo só se o storage estiver vazio.
func SeedDataset(ctx context.Context, repo DatasetStore, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := repo.Raw(ctx)
	switch {
	case err == nil:
		log.Info("seed_dataset_exists")
		return nil
	case !errors.Is(err, repository.ErrNoDataset):
		return fmt.Errorf("check dataset: %w", err)
	}

	res, err := repo.Replace(ctx, SampleFilename, Sample())
	if err != nil {
		return err
	}
	log.Info("seed_dataset_created", "bytes", res.Bytes, "token", res.Token)
	return nil
}

// ImportDataset valida o arquivo com o loader antes de trocar o dataset.
func ImportDataset(ctx context.Context, repo DatasetStore, path string, log *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	t, err := dataset.Parse(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := repo.Replace(ctx, filepath.Base(path), data)
	if err != nil {
		return err
	}
	log.Info("import_dataset_done", "file", res.Filename, "rows", t.Len(), "dropped", t.Dropped, "token", res.Token)
	return nil
}
