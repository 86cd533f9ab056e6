// Package session реализует серверное хранилище сессий поверх redis.
// Клиенту выдаётся только непрозрачный токен в cookie; состояние сессии
// (имя пользователя и флаг абонемента) живёт на сервере под ключом
// session:<токен>. Уничтожение сессии — удаление записи из хранилища,
// после чего токен перестаёт что-либо значить.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session состояние одной браузерной сессии.
type Session struct {
	Username   string `json:"username"`
	Subscribed bool   `json:"subscribed"`
}

// Store хранилище сессий с фиксированным временем жизни записей.
type Store struct {
	db  *redis.Client
	ttl time.Duration
}

// NewStore создает Store поверх клиента redis.
func NewStore(db *redis.Client, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

func key(token string) string {
	return "session:" + token
}

// Create сохраняет новую сессию и возвращает её токен.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	const op = "session.Create"
	token := uuid.New().String()

	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get возвращает сессию по токену. Возвращает false, если сессии нет
// или срок её жизни истёк.
func (s *Store) Get(ctx context.Context, token string) (*Session, bool, error) {
	const op = "session.Get"
	val, err := s.db.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, true, nil
}

// Update перезаписывает сессию под существующим токеном,
// например после активации абонемента. TTL отсчитывается заново.
func (s *Store) Update(ctx context.Context, token string, sess Session) error {
	const op = "session.Update"
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, key(token), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Destroy удаляет сессию из хранилища. Удаление несуществующего
// токена не является ошибкой.
func (s *Store) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"
	if err := s.db.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
