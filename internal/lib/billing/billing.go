// Package billing реализует расчёт стоимости корзины: подытог по
// зафиксированным ценам позиций, налог и итог. Для владельцев месячного
// абонемента подытог равен нулю — занятия не тарифицируются поштучно.
// Внутренние суммы считаются без округления; округление до копеек
// выполняется только на границе представления через Rounded.
package billing

import (
	"math"

	"github.com/vinhyan/elite-fitness/internal/models"
)

// Totals содержит результат расчёта корзины.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Calculate считает подытог, налог и итог по позициям корзины.
// subscribed=true обнуляет подытог независимо от содержимого корзины.
func Calculate(lines []models.CartLine, subscribed bool, taxRate float64) Totals {
	var subtotal float64
	if !subscribed {
		for _, line := range lines {
			subtotal += line.PriceAtAdd
		}
	}
	tax := subtotal * taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Rounded возвращает копию с суммами, округлёнными до двух знаков.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: round2(t.Subtotal),
		Tax:      round2(t.Tax),
		Total:    round2(t.Total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
