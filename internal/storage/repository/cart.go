package repository

import (
	"context"
	"fmt"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// CreateCartLine добавляет позицию корзины с зафиксированной ценой.
// Повтор той же пары (username, class_id) — ErrDuplicate.
func (s *Storage) CreateCartLine(ctx context.Context, line models.CartLine) error {
	const op = "storage.CreateCartLine"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_lines (username, class_id, price_at_add)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		line.Username, line.ClassID, line.PriceAtAdd); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListCartLines возвращает позиции корзины пользователя в порядке добавления.
func (s *Storage) ListCartLines(ctx context.Context, username string) ([]models.CartLine, error) {
	const op = "storage.ListCartLines"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT username, class_id, price_at_add
			  FROM cart_lines
			  WHERE username = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.CartLine
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.Username, &line.ClassID, &line.PriceAtAdd); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveCartLine удаляет позицию корзины, ограничивая удаление
// парой (username, class_id). Возвращает количество удалённых строк.
func (s *Storage) RemoveCartLine(ctx context.Context, username, classID string) (int, error) {
	const op = "storage.RemoveCartLine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_lines
			  WHERE username = $1 AND class_id = $2`
	result, err := s.DB.ExecContext(ctx, query, username, classID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
