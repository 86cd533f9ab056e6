package models

// CartLine представляет одно занятие, зарезервированное пользователем.
// Цена фиксируется в момент добавления: последующие изменения каталога
// на уже добавленные позиции не влияют.
type CartLine struct {
	Username   string  `json:"username"`
	ClassID    string  `json:"class_id"`
	PriceAtAdd float64 `json:"price_at_add"`
}

// CartItem строка корзины для отображения: позиция корзины,
// соединённая с данными занятия из каталога.
type CartItem struct {
	ClassID         string  `json:"class_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	PriceAtAdd      float64 `json:"price_at_add"`
}
