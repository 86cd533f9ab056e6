// Package login реализует HTTP-обработчик входа пользователя.
//
// В нём определяется структура Request для входных данных, выполняется
// декодирование JSON, валидация полей и делегирование проверки пароля
// сервису аутентификации. При успешном входе создаётся серверная сессия,
// клиенту выставляется cookie с токеном, а в ответе возвращаются
// доступные пользователю занятия.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/auth"
	"github.com/vinhyan/elite-fitness/internal/session"
)

// Request — структура входных данных для входа.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// Catalog описывает чтение доступных пользователю занятий.
type Catalog interface {
	Available(ctx context.Context, username string) ([]models.Class, error)
}

// Sessions описывает создание серверной сессии.
type Sessions interface {
	Create(ctx context.Context, sess session.Session) (string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log        *slog.Logger
	service    Service
	catalog    Catalog
	sessions   Sessions
	cookieName string
	sessionTTL time.Duration
	validate   *validator.Validate
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
		validate:   validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет имя и пароль, создает серверную сессию и выставляет cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.OKResponse "Успешный вход, доступные занятия"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("username", req.Username))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Invalid username or password! Please try again!"))
			return
		}
		log.Error("login failed", sl.Err(err))
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
	log.Info("login success", slog.String("username", user.Username))

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
