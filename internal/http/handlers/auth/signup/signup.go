// Package signup реализует HTTP-обработчик шага подтверждения регистрации:
// выбор тарифа. Селектор "monthly" активирует месячный абонемент и
// записывает платёж за него, любое другое значение оставляет оплату
// по занятиям. В обоих случаях пользователь входит в систему.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/auth"
	"github.com/vinhyan/elite-fitness/internal/session"
)

// Request — структура входных данных выбора тарифа.
// Пустое или отсутствующее значение означает оплату по занятиям.
type Request struct {
	Subscription string `json:"subscription"`
}

// Service описывает интерфейс активации тарифа.
type Service interface {
	ActivatePlan(ctx context.Context, username, plan string) (*models.User, error)
}

// Catalog описывает чтение доступных пользователю занятий.
type Catalog interface {
	Available(ctx context.Context, username string) ([]models.Class, error)
}

// Sessions описывает создание серверной сессии.
type Sessions interface {
	Create(ctx context.Context, sess session.Session) (string, error)
}

// Handler обрабатывает HTTP-запросы выбора тарифа.
type Handler struct {
	log        *slog.Logger
	service    Service
	catalog    Catalog
	sessions   Sessions
	cookieName string
	sessionTTL time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, catalog Catalog, sessions Sessions, cookieName string, sessionTTL time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		catalog:    catalog,
		sessions:   sessions,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// ServeHTTP godoc
// @Summary Выбор тарифа после регистрации
// @Description Активирует месячный абонемент при subscription=monthly и входит в систему.
// @Tags Auth
// @Accept json
// @Produce json
// @Param username path string true "Имя пользователя"
// @Param request body Request true "Выбранный тариф"
// @Success 200 {object} response.OKResponse "Тариф применён, доступные занятия"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signup/{username} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("plan selected",
		slog.String("username", username), slog.String("plan", req.Subscription))

	user, err := h.service.ActivatePlan(r.Context(), username, req.Subscription)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			log.Info("signup for unknown user", slog.String("username", username))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("Something went wrong! Username not found!"))
			return
		}
		log.Error("failed to activate plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	token, err := h.sessions.Create(r.Context(), session.Session{
		Username:   user.Username,
		Subscribed: user.Subscribed,
	})
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	middlewarectx.SetSessionCookie(w, h.cookieName, token, h.sessionTTL)

	classes, err := h.catalog.Available(r.Context(), user.Username)
	switch {
	case errors.Is(err, availability.ErrCatalogEmpty):
		render.JSON(w, r, response.Error("We currently do not have any classes..."))
		return
	case errors.Is(err, availability.ErrExhausted):
		render.JSON(w, r, response.Error("There are no more classes available"))
		return
	case err != nil:
		log.Error("failed to list available classes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":   user.Username,
		"subscribed": user.Subscribed,
		"classes":    classes,
	}))
}
