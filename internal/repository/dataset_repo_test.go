package repository

/*
	go test -v ./internal/repository -count=1
*/

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Werneck0live/painel-vagas/internal/dataset"
)

const csvV1 = "Código da Vaga;Título do Cargo;Grupo Econômico;UF da OI;Status da Vaga;STATUS;Recrutamento e Seleção;Dias em Aberto;Situação Vagas;Descrição do Motivo\n" +
	"V001;Analista;Grupo A;SP;Aberta;Em triagem;01/01/2024;10;Dentro do SLA;Aumento de quadro\n" +
	"V002;Gerente;Grupo B;RJ;Aberta;;15/06/2024;20;Fora do SLA;Substituição\n" +
	"V003;Auxiliar;Grupo B;RJ;Aberta;;data ruim;20;Fora do SLA;Substituição\n"

const csvV2 = "Código da Vaga;Título do Cargo;Grupo Econômico;UF da OI;Status da Vaga;STATUS;Recrutamento e Seleção;Dias em Aberto;Situação Vagas;Descrição do Motivo\n" +
	"V100;Diretor;Grupo C;MG;Aberta;OK;10/03/2024;5;Dentro do SLA;Novo cargo\n"

type failingStorage struct {
	MemoryStorage
	err error
}

func (f *failingStorage) Write(context.Context, []byte) error { return f.err }

func TestReplace_RejectsNonCSV(t *testing.T) {
	store := NewMemoryStorage([]byte(csvV1))
	repo := NewDatasetRepository(store, nil)
	before := repo.Token()

	_, err := repo.Replace(context.Background(), "report.txt", []byte(csvV2))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}

	got, _ := store.Read(context.Background())
	if string(got) != csvV1 {
		t.Fatal("storage foi alterado num upload recusado")
	}
	if repo.Token() != before {
		t.Fatal("token não deveria mudar")
	}
}

func TestReplace_AcceptsCSVMarker(t *testing.T) {
	for _, name := range []string{"dados.csv", "DADOS.CSV", "export.csv.bak"} {
		repo := NewDatasetRepository(NewMemoryStorage(nil), nil)
		if _, err := repo.Replace(context.Background(), name, []byte(csvV2)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestReplace_ReadYourWritesAndToken(t *testing.T) {
	ctx := context.Background()
	repo := NewDatasetRepository(NewMemoryStorage([]byte(csvV1)), nil)

	t1, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if t1.Len() != 2 || t1.Dropped != 1 {
		t.Fatalf("rows=%d dropped=%d", t1.Len(), t1.Dropped)
	}

	tok0 := repo.Token()
	res, err := repo.Replace(ctx, "novo.csv", []byte(csvV2))
	if err != nil {
		t.Fatal(err)
	}
	if res.Token == tok0 || repo.Token() != res.Token {
		t.Fatalf("token deveria mudar: antes=%s depois=%s", tok0, res.Token)
	}
	if res.Bytes != len(csvV2) || res.Filename != "novo.csv" || res.Message == "" {
		t.Fatalf("resultado: %#v", res)
	}

	t2, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if t2.Len() != 1 || t2.Rows[0].Code != "V100" {
		t.Fatalf("Load não viu o upload: %#v", t2.Rows)
	}
}

func TestReplace_TokenStrictlyIncreasing(t *testing.T) {
	repo := NewDatasetRepository(NewMemoryStorage(nil), nil)
	frozen := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }
	repo.token = frozen

	seen := map[string]bool{repo.Token(): true}
	prev := frozen
	for i := 0; i < 3; i++ {
		if _, err := repo.Replace(context.Background(), "a.csv", []byte(csvV2)); err != nil {
			t.Fatal(err)
		}
		tok := repo.Token()
		if seen[tok] {
			t.Fatalf("token repetido: %s", tok)
		}
		seen[tok] = true
		cur, _ := time.Parse(time.RFC3339Nano, tok)
		if !cur.After(prev) {
			t.Fatalf("token não cresceu: %v <= %v", cur, prev)
		}
		prev = cur
	}
}

func TestReplace_WriteFailure(t *testing.T) {
	store := &failingStorage{err: errors.New("disco cheio")}
	repo := NewDatasetRepository(store, nil)

	_, err := repo.Replace(context.Background(), "dados.csv", []byte(csvV2))
	var wf *WriteFailure
	if !errors.As(err, &wf) {
		t.Fatalf("want WriteFailure, got %v", err)
	}
	if wf.Detail != "disco cheio" {
		t.Fatalf("detail=%q", wf.Detail)
	}
}

func TestLoad_NoDatasetAndBadFormat(t *testing.T) {
	ctx := context.Background()

	repo := NewDatasetRepository(NewMemoryStorage(nil), nil)
	if _, err := repo.Load(ctx); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("want ErrNoDataset, got %v", err)
	}

	repo = NewDatasetRepository(NewMemoryStorage([]byte("a;b\n1;2\n")), nil)
	var dfe *dataset.DataFormatError
	if _, err := repo.Load(ctx); !errors.As(err, &dfe) {
		t.Fatalf("want DataFormatError, got %v", err)
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "dados.csv")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(csvV1), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewDatasetRepository(NewFileStorage(path), nil)

	before, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := repo.Raw(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// regrava os mesmos bytes e recarrega
	if _, err := repo.Replace(ctx, "dados.csv", raw); err != nil {
		t.Fatal(err)
	}
	after, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round-trip mudou a tabela:\n%#v\n%#v", before, after)
	}

	onDisk, _ := os.ReadFile(path)
	if !bytes.Equal(onDisk, raw) {
		t.Fatal("bytes em disco diferentes")
	}

	// nenhum temporário sobrando
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("sobrou lixo no diretório: %d entradas", len(entries))
	}
}

func TestFileStorage_MissingFileAndCreatesDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "novo", "dir", "dados.csv")
	s := NewFileStorage(path)
	if s.Path() != path || s.Name() != "file" {
		t.Fatalf("path=%q name=%q", s.Path(), s.Name())
	}

	if _, err := s.Read(ctx); !errors.Is(err, ErrNoDataset) {
		t.Fatalf("want ErrNoDataset, got %v", err)
	}
	if err := s.Write(ctx, []byte(csvV2)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read(ctx)
	if err != nil || string(got) != csvV2 {
		t.Fatalf("read: %q %v", got, err)
	}
}

func TestReplace_RejectedUploadLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dados.csv")
	if err := os.WriteFile(path, []byte(csvV1), 0o644); err != nil {
		t.Fatal(err)
	}
	info0, _ := os.Stat(path)

	repo := NewDatasetRepository(NewFileStorage(path), nil)
	if _, err := repo.Replace(ctx, "report.txt", []byte("qualquer coisa")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("want ErrUnsupportedFormat, got %v", err)
	}

	got, _ := os.ReadFile(path)
	info1, _ := os.Stat(path)
	if string(got) != csvV1 || !info1.ModTime().Equal(info0.ModTime()) {
		t.Fatal("arquivo foi tocado")
	}
}
