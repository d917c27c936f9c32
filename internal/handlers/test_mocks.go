package handlers

import (
	"context"
	"errors"

	"github.com/Werneck0live/painel-vagas/internal/models"
	"github.com/Werneck0live/painel-vagas/internal/repository"

	"github.com/rabbitmq/amqp091-go"
)

type repoMock struct {
	LoadFn    func(ctx context.Context) (models.Table, error)
	ReplaceFn func(ctx context.Context, filename string, data []byte) (repository.ReplaceResult, error)
	TokenFn   func() string
}

func (m *repoMock) Load(ctx context.Context) (models.Table, error) {
	if m.LoadFn == nil {
		return models.Table{}, errors.New("LoadFn not set")
	}
	return m.LoadFn(ctx)
}
func (m *repoMock) Replace(ctx context.Context, filename string, data []byte) (repository.ReplaceResult, error) {
	if m.ReplaceFn == nil {
		return repository.ReplaceResult{}, errors.New("ReplaceFn not set")
	}
	return m.ReplaceFn(ctx, filename, data)
}
func (m *repoMock) Token() string {
	if m.TokenFn == nil {
		return "2024-01-01T00:00:00Z"
	}
	return m.TokenFn()
}

type pubMock struct {
	PublishFn func(ctx context.Context, body []byte, headers amqp091.Table) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, body []byte, headers amqp091.Table) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, body, headers)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
