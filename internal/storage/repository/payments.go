package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// CreatePayment добавляет запись в журнал платежей.
// checkoutUID может быть nil — для платежа за месячный абонемент.
func (s *Storage) CreatePayment(ctx context.Context, username string, amount float64, checkoutUID *string) (*models.Payment, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (username, amount, checkout_uid)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at`
	p := models.Payment{Username: username, Amount: amount, CheckoutUID: checkoutUID}
	if err := s.DB.QueryRowContext(ctx, query, username, amount, checkoutUID).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// GetPaymentByCheckoutUID возвращает платёж по ключу идемпотентности.
// Отсутствие платежа — ErrNotFound.
func (s *Storage) GetPaymentByCheckoutUID(ctx context.Context, checkoutUID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByCheckoutUID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, amount, checkout_uid, created_at
			  FROM payments
			  WHERE checkout_uid = $1`
	var p models.Payment
	row := s.DB.QueryRowContext(ctx, query, checkoutUID)
	if err := row.Scan(&p.ID, &p.Username, &p.Amount, &p.CheckoutUID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// ListPayments возвращает весь журнал платежей в порядке создания.
func (s *Storage) ListPayments(ctx context.Context) ([]models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, amount, checkout_uid, created_at
			  FROM payments
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Username, &p.Amount, &p.CheckoutUID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Checkout атомарно записывает платёж и очищает корзину пользователя.
// Обе операции выполняются в одной транзакции: если корзина оказалась
// пустой, транзакция откатывается и платёж не записывается.
// Возвращает созданный платёж и количество удалённых позиций корзины.
func (s *Storage) Checkout(ctx context.Context, username string, amount float64, checkoutUID string) (*models.Payment, int, error) {
	const op = "storage.Checkout"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	p := models.Payment{Username: username, Amount: amount, CheckoutUID: &checkoutUID}
	insertQuery := `INSERT INTO payments (username, amount, checkout_uid)
			        VALUES ($1, $2, $3)
			        RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, insertQuery, username, amount, checkoutUID).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, 0, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	deleteQuery := `DELETE FROM cart_lines WHERE username = $1`
	result, err := tx.ExecContext(ctx, deleteQuery, username)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return &p, int(deleted), nil
}
