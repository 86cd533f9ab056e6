package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// ListClasses возвращает весь каталог занятий в порядке идентификаторов.
func (s *Storage) ListClasses(ctx context.Context) ([]models.Class, error) {
	const op = "storage.ListClasses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT class_id, name, duration_minutes, price, image_path
			  FROM classes
			  ORDER BY class_id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ClassID, &c.Name, &c.DurationMinutes, &c.Price, &c.ImagePath); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetClassByID возвращает занятие по его идентификатору.
// Отсутствие занятия — ErrNotFound.
func (s *Storage) GetClassByID(ctx context.Context, classID string) (*models.Class, error) {
	const op = "storage.GetClassByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT class_id, name, duration_minutes, price, image_path
			  FROM classes
			  WHERE class_id = $1`
	var c models.Class
	row := s.DB.QueryRowContext(ctx, query, classID)
	if err := row.Scan(&c.ClassID, &c.Name, &c.DurationMinutes, &c.Price, &c.ImagePath); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
