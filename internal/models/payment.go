package models

import "time"

// Payment представляет запись журнала платежей. Журнал только пополняется:
// записи никогда не изменяются и не удаляются.
// CheckoutUID заполняется при оформлении корзины и служит ключом
// идемпотентности — повтор запроса с тем же ключом не создаёт вторую запись.
type Payment struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Amount      float64   `json:"amount"`
	CheckoutUID *string   `json:"checkout_uid,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
