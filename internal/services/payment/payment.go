// Package payment отдаёт журнал платежей.
package payment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// ErrNoPayments возвращается, когда журнал платежей пуст.
var ErrNoPayments = errors.New("no payments recorded")

// Repository описывает контракт хранилища журнала платежей.
type Repository interface {
	// ListPayments возвращает все платежи в порядке записи.
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

// Service реализует чтение журнала платежей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List возвращает весь журнал платежей.
func (s *Service) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.repo.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, ErrNoPayments
	}
	return payments, nil
}
