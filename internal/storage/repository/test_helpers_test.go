package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const testSchema = `
DROP TABLE IF EXISTS payments CASCADE;
DROP TABLE IF EXISTS cart_lines CASCADE;
DROP TABLE IF EXISTS classes CASCADE;
DROP TABLE IF EXISTS users CASCADE;

CREATE TABLE users (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    subscribed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE classes (
    class_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    duration_minutes INTEGER NOT NULL,
    price NUMERIC(10, 2) NOT NULL,
    image_path TEXT NOT NULL DEFAULT ''
);

CREATE TABLE cart_lines (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL,
    class_id TEXT NOT NULL,
    price_at_add NUMERIC(10, 2) NOT NULL,
    CONSTRAINT cart_lines_username_class_id_key UNIQUE (username, class_id)
);

CREATE TABLE payments (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL,
    amount NUMERIC(10, 2) NOT NULL,
    checkout_uid TEXT UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// setupTestDatabase поднимает контейнер postgres и создает схему сервиса.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort(nat.Port("5432/tcp")),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to create test schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя.
func (f *TestDataFactory) CreateUser(t *testing.T, username, passwordHash string, subscribed bool) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO users (username, password_hash, subscribed)
		VALUES ($1, $2, $3)`,
		username, passwordHash, subscribed)
	require.NoError(t, err)
}

// CreateClass создает тестовое занятие в каталоге.
func (f *TestDataFactory) CreateClass(t *testing.T, classID, name string, durationMinutes int, price float64) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO classes (class_id, name, duration_minutes, price, image_path)
		VALUES ($1, $2, $3, $4, $5)`,
		classID, name, durationMinutes, price, "/images/"+classID+".jpg")
	require.NoError(t, err)
}

// CreateCartLine создает тестовую позицию корзины.
func (f *TestDataFactory) CreateCartLine(t *testing.T, username, classID string, priceAtAdd float64) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO cart_lines (username, class_id, price_at_add)
		VALUES ($1, $2, $3)`,
		username, classID, priceAtAdd)
	require.NoError(t, err)
}

// CountRows возвращает число строк таблицы, добавленных тестом.
func (f *TestDataFactory) CountRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := f.storage.DB.QueryRow(`SELECT count(*) FROM ` + table).Scan(&n)
	require.NoError(t, err)
	return n
}
