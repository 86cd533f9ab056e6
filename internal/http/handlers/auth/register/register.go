// Package register реализует HTTP-обработчик создания учётной записи.
//
// Пароль хэшируется сервисом, занятое имя пользователя отклоняется
// конфликтом. Автоматического входа после регистрации нет: пользователь
// проходит через /login или /signup/{username}.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/services/auth"
)

// Request — структура входных данных для регистрации.
// Отклоняются только пустые имя или пароль; другие ограничения
// на длину не накладываются.
type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, password string) error
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание учётной записи
// @Description Регистрирует нового пользователя без абонемента.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя пользователя и пароль"
// @Success 200 {object} response.OKResponse "Учётная запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} response.ErrorResponse "Имя пользователя занято"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /create-account [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	if err := h.service.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			log.Info("username already taken", slog.String("username", req.Username))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Username already exists!"))
			return
		}
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("account created", slog.String("username", req.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":        req.Username,
		"account_created": true,
	}))
}
