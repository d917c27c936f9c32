package repository

import (
	"context"
	"errors"
)

// ErrNoDataset: o backend ainda não tem arquivo gravado.
var ErrNoDataset = errors.New("dataset not found")

// Storage guarda os bytes crus do CSV. Um único "arquivo" por backend.
type Storage interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Name() string
}
