// Package view реализует HTTP-обработчик страницы корзины: позиции,
// соединённые с каталогом, и стоимость. Суммы округляются до копеек
// только на выдаче.
package view

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/services/cart"
)

// Service описывает интерфейс просмотра корзины.
type Service interface {
	View(ctx context.Context, username string, subscribed bool) (*cart.Summary, error)
}

// Handler обрабатывает HTTP-запросы просмотра корзины.
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
// @Summary Корзина пользователя
// @Description Возвращает позиции корзины и стоимость с налогом.
// @Tags Cart
// @Produce json
// @Success 200 {object} response.OKResponse "Содержимое корзины"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.view"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())

	summary, err := h.service.View(r.Context(), sess.Username, sess.Subscribed)
	switch {
	case errors.Is(err, cart.ErrCartEmpty):
		log.Info("cart is empty", slog.String("username", sess.Username))
		render.JSON(w, r, response.Error("Sorry, you do not have any items in your cart"))
		return
	case errors.Is(err, availability.ErrCatalogEmpty):
		log.Info("catalog is empty")
		render.JSON(w, r, response.Error("Something went wrong! No items found"))
		return
	case err != nil:
		log.Error("failed to read cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	totals := summary.Totals.Rounded()
	log.Info("cart listed",
		slog.String("username", sess.Username), slog.Int("items", len(summary.Items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":        sess.Username,
		"is_monthly_plan": sess.Subscribed,
		"items":           summary.Items,
		"subtotal":        totals.Subtotal,
		"tax":             totals.Tax,
		"total":           totals.Total,
	}))
}
