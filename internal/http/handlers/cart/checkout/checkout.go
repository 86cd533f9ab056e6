// Package checkout реализует HTTP-обработчик оформления корзины.
//
// Итог пересчитывается на сервере, оплата и очистка корзины атомарны.
// Клиент может передать заголовок Idempotency-Key: повтор запроса
// с тем же ключом возвращает уже записанный платёж и не списывает
// деньги второй раз. Без заголовка ключ генерируется на каждый запрос.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/services/cart"
)

// Service описывает интерфейс оформления корзины.
type Service interface {
	Checkout(ctx context.Context, username string, subscribed bool, attemptID string) (*cart.Receipt, error)
}

// Handler обрабатывает HTTP-запросы на оформление.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оформление корзины
// @Description Записывает платёж на пересчитанную сумму и очищает корзину одной транзакцией.
// @Tags Cart
// @Produce json
// @Param Idempotency-Key header string false "Ключ идемпотентности"
// @Success 200 {object} response.OKResponse "Платёж записан"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 409 {object} response.ErrorResponse "Корзина пуста"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())

	attemptID := r.Header.Get("Idempotency-Key")
	if attemptID == "" {
		attemptID = uuid.New().String()
	}

	receipt, err := h.service.Checkout(r.Context(), sess.Username, sess.Subscribed, attemptID)
	switch {
	case errors.Is(err, cart.ErrCartEmpty):
		log.Info("checkout of empty cart", slog.String("username", sess.Username))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("ERROR! Something went wrong, your cart is empty"))
		return
	case err != nil:
		log.Error("checkout failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("ERROR! Something went wrong, cannot checkout properly!"))
		return
	}

	log.Info("checkout success",
		slog.String("username", sess.Username),
		slog.Int("payment_id", receipt.Payment.ID),
		slog.Bool("replayed", receipt.Replayed))
	data := map[string]any{
		"message":       "Thank you! You have checked out successfully!",
		"payment":       receipt.Payment,
		"items_cleared": receipt.ItemsCleared,
		"replayed":      receipt.Replayed,
	}
	if receipt.Totals != nil {
		data["totals"] = receipt.Totals
	}
	render.JSON(w, r, response.OKWithData(data))
}
