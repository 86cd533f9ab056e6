// Package info реализует HTTP-обработчик стартовой страницы:
// отражает состояние текущей сессии без обращения к хранилищу.
package info

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
)

// Handler обрабатывает HTTP-запросы стартовой страницы.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Состояние сессии
// @Description Возвращает имя пользователя и флаг абонемента текущей сессии.
// @Tags Session
// @Produce json
// @Success 200 {object} response.OKResponse "Состояние сессии"
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.info"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess == nil {
		log.Info("anonymous session")
		render.JSON(w, r, response.OKWithData(map[string]any{
			"logged_in": false,
		}))
		return
	}

	log.Info("active session", slog.String("username", sess.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"logged_in":  true,
		"username":   sess.Username,
		"subscribed": sess.Subscribed,
	}))
}
