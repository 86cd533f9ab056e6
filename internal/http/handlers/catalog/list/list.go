// Package list реализует HTTP-обработчик каталога занятий.
//
// Анонимный запрос получает полный каталог, запрос с действующей
// сессией — только занятия, которых ещё нет в корзине пользователя.
package list

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
	"github.com/vinhyan/elite-fitness/internal/models"
)

// Service описывает интерфейс чтения каталога.
type Service interface {
	List(ctx context.Context) ([]models.Class, error)
	Available(ctx context.Context, username string) ([]models.Class, error)
}

// Handler обрабатывает HTTP-запросы каталога.
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
// @Summary Каталог занятий
// @Description Возвращает каталог; для вошедшего пользователя — без занятий из его корзины.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.OKResponse "Список занятий"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /classes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var classes []models.Class
	var err error

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess != nil {
		classes, err = h.service.Available(r.Context(), sess.Username)
	} else {
		classes, err = h.service.List(r.Context())
		if err == nil && len(classes) == 0 {
			err = availability.ErrCatalogEmpty
		}
	}

	switch {
	case errors.Is(err, availability.ErrCatalogEmpty):
		log.Info("catalog is empty")
		render.JSON(w, r, response.Error("We currently do not have any classes..."))
		return
	case errors.Is(err, availability.ErrExhausted):
		log.Info("all classes already booked", slog.String("username", sess.Username))
		render.JSON(w, r, response.Error("There are no more classes available"))
		return
	case err != nil:
		log.Error("failed to list classes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("catalog listed", slog.Int("count", len(classes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"classes": classes,
	}))
}
