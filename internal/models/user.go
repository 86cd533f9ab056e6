// Package models содержит доменные структуры фитнес-студии:
// пользователей, занятия из каталога, позиции корзины и платежи.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного клиента студии.
type User struct {
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Subscribed   bool   // Признак месячного абонемента: занятия не тарифицируются поштучно
}
