// Package availability реализует вычисление доступных занятий:
// разность каталога и текущей корзины пользователя по идентификатору занятия.
// Порядок каталога сохраняется. Вычисление общее для входа, просмотра
// каталога и добавления в корзину — все три пути вызывают Resolve одинаково.
package availability

import (
	"errors"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// ErrCatalogEmpty означает, что студия сейчас не предлагает занятий.
// Возвращается независимо от содержимого корзины.
var ErrCatalogEmpty = errors.New("catalog is empty")

// ErrExhausted означает, что все занятия каталога уже в корзине пользователя.
var ErrExhausted = errors.New("all classes are already booked")

// Resolve возвращает занятия каталога, которых ещё нет в корзине lines.
// Пустая корзина — доступен весь каталог. Пустой каталог — ErrCatalogEmpty.
// Если каждое занятие каталога уже в корзине — ErrExhausted.
func Resolve(catalog []models.Class, lines []models.CartLine) ([]models.Class, error) {
	if len(catalog) == 0 {
		return nil, ErrCatalogEmpty
	}

	booked := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		booked[line.ClassID] = struct{}{}
	}

	available := make([]models.Class, 0, len(catalog))
	for _, class := range catalog {
		if _, ok := booked[class.ClassID]; !ok {
			available = append(available, class)
		}
	}

	if len(available) == 0 {
		return nil, ErrExhausted
	}
	return available, nil
}
