// Package list реализует HTTP-обработчик журнала платежей.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/payment"
)

// Service описывает интерфейс чтения журнала платежей.
type Service interface {
	List(ctx context.Context) ([]models.Payment, error)
}

// Handler обрабатывает HTTP-запросы журнала платежей.
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
// @Summary Журнал платежей
// @Description Возвращает все платежи в порядке записи.
// @Tags Payments
// @Produce json
// @Success 200 {object} response.OKResponse "Список платежей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payments, err := h.service.List(r.Context())
	switch {
	case errors.Is(err, payment.ErrNoPayments):
		log.Info("payment ledger is empty")
		render.JSON(w, r, response.Error("ERROR! There is no payment from database"))
		return
	case err != nil:
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("payments listed", slog.Int("count", len(payments)))
	render.JSON(w, r, response.OKWithData(payments))
}
