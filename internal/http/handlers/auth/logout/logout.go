// Package logout реализует HTTP-обработчик выхода: серверная сессия
// удаляется из хранилища, cookie сбрасывается. Удалённый токен
// перестаёт действовать немедленно на всех клиентах.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
)

// Sessions описывает удаление серверной сессии.
type Sessions interface {
	Destroy(ctx context.Context, token string) error
}

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log        *slog.Logger
	sessions   Sessions
	cookieName string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions Sessions, cookieName string) *Handler {
	return &Handler{
		log:        log,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет серверную сессию и сбрасывает cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.OKResponse "Сессия завершена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if token := middlewarectx.TokenFromContext(r.Context()); token != "" {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("internal error"))
			return
		}
	}
	middlewarectx.ClearSessionCookie(w, h.cookieName)

	log.Info("logged out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"logged_in": false,
	}))
}
