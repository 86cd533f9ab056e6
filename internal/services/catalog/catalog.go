// Package catalog содержит бизнес-логику каталога занятий:
// чтение каталога через кэш и вычисление доступных занятий
// для конкретного пользователя.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
)

// cacheKey ключ кэша каталога; каталог меняется только миграциями.
const cacheKey = "catalog:classes"

// cacheTTL время жизни кэша каталога.
const cacheTTL = time.Hour

// ClassRepository определяет методы чтения каталога из хранилища.
type ClassRepository interface {
	// ListClasses возвращает весь каталог в порядке идентификаторов.
	ListClasses(ctx context.Context) ([]models.Class, error)
}

// CartRepository определяет чтение позиций корзины пользователя.
type CartRepository interface {
	// ListCartLines возвращает позиции корзины пользователя.
	ListCartLines(ctx context.Context, username string) ([]models.CartLine, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует чтение каталога и расчёт доступности.
type Service struct {
	classes ClassRepository
	carts   CartRepository
	cache   Cache
	log     *slog.Logger
}

// New создает новый Service.
func New(classes ClassRepository, carts CartRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		classes: classes,
		carts:   carts,
		cache:   cache,
		log:     log,
	}
}

// List возвращает весь каталог, используя кэш или хранилище.
// Ошибки кэша не фатальны: каталог читается из хранилища.
func (s *Service) List(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read catalog cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	classes, err := s.classes.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, classes, cacheTTL); err != nil {
		s.log.Warn("failed to cache catalog", sl.Err(err))
	}
	return classes, nil
}

// Available возвращает занятия, которых ещё нет в корзине пользователя.
// Сигналы пустого каталога и полностью разобранного каталога
// пробрасываются как availability.ErrCatalogEmpty и availability.ErrExhausted.
func (s *Service) Available(ctx context.Context, username string) ([]models.Class, error) {
	classes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := s.carts.ListCartLines(ctx, username)
	if err != nil {
		return nil, err
	}
	return availability.Resolve(classes, lines)
}
