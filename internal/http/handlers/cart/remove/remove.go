// Package remove реализует HTTP-обработчик удаления позиции из корзины.
// Удаление ограничено корзиной текущего пользователя: чужие позиции
// по тому же занятию не затрагиваются.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/services/cart"
)

// Service описывает интерфейс удаления позиции корзины.
type Service interface {
	Remove(ctx context.Context, username string, subscribed bool, classID string) (*cart.Summary, error)
}

// Handler обрабатывает HTTP-запросы на удаление позиции.
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
// @Summary Удаление позиции корзины
// @Description Удаляет занятие из корзины текущего пользователя и пересчитывает стоимость.
// @Tags Cart
// @Produce json
// @Param id path string true "Идентификатор занятия"
// @Success 200 {object} response.OKResponse "Пересчитанная корзина"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Позиция не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /remove-item/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	classID := chi.URLParam(r, "id")

	summary, err := h.service.Remove(r.Context(), sess.Username, sess.Subscribed, classID)
	switch {
	case errors.Is(err, cart.ErrLineNotFound):
		log.Info("cart item not found",
			slog.String("username", sess.Username), slog.String("class_id", classID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Something went wrong! Could not find the item from cart"))
		return
	case errors.Is(err, cart.ErrCartEmpty):
		log.Info("cart emptied", slog.String("username", sess.Username))
		render.JSON(w, r, response.Error("Sorry, you do not have any items in your cart"))
		return
	case errors.Is(err, availability.ErrCatalogEmpty):
		log.Info("catalog is empty")
		render.JSON(w, r, response.Error("Something went wrong! No items found"))
		return
	case err != nil:
		log.Error("failed to remove cart item", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	totals := summary.Totals.Rounded()
	log.Info("cart item removed",
		slog.String("username", sess.Username), slog.String("class_id", classID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":        sess.Username,
		"is_monthly_plan": sess.Subscribed,
		"items":           summary.Items,
		"subtotal":        totals.Subtotal,
		"tax":             totals.Tax,
		"total":           totals.Total,
	}))
}
