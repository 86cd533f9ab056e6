// Package add реализует HTTP-обработчик бронирования занятия:
// позиция корзины создаётся с зафиксированной ценой, в ответе
// возвращаются оставшиеся доступные занятия.
package add

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
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/cart"
)

// Service описывает интерфейс добавления занятия в корзину.
type Service interface {
	Add(ctx context.Context, username, classID string) ([]models.Class, error)
}

// Handler обрабатывает HTTP-запросы на бронирование занятия.
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
// @Summary Бронирование занятия
// @Description Добавляет занятие в корзину по текущей цене каталога.
// @Tags Cart
// @Produce json
// @Param classId path string true "Идентификатор занятия"
// @Success 200 {object} response.OKResponse "Оставшиеся доступные занятия"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Занятие не найдено"
// @Failure 409 {object} response.ErrorResponse "Занятие уже в корзине"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /add-class/{classId} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	classID := chi.URLParam(r, "classId")

	classes, err := h.service.Add(r.Context(), sess.Username, classID)
	switch {
	case errors.Is(err, availability.ErrCatalogEmpty):
		log.Info("catalog is empty")
		render.JSON(w, r, response.Error("Something went wrong! No classes found!"))
		return
	case errors.Is(err, cart.ErrClassNotFound):
		log.Info("unknown class", slog.String("class_id", classID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Something went wrong! No classes found!"))
		return
	case errors.Is(err, cart.ErrAlreadyBooked):
		log.Info("class already booked",
			slog.String("username", sess.Username), slog.String("class_id", classID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("You have already booked this class"))
		return
	case errors.Is(err, availability.ErrExhausted):
		log.Info("all classes booked", slog.String("username", sess.Username))
		render.JSON(w, r, response.Error("There are no more classes available"))
		return
	case err != nil:
		log.Error("failed to add class to cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("class booked",
		slog.String("username", sess.Username), slog.String("class_id", classID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"classes": classes,
	}))
}
