// Package middlewarectx содержит HTTP middleware для работы с сессиями.
//
// SessionMiddleware читает токен сессии из cookie, загружает состояние
// сессии из серверного хранилища и кладёт его в контекст запроса.
// RequireAuth отсекает запросы без действующей сессии с HTTP 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/vinhyan/elite-fitness/internal/http/response"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionKey — ключ для состояния сессии в контексте
	SessionKey Key = "session"
	// TokenKey — ключ для токена сессии в контексте
	TokenKey Key = "session_token"
)

// SessionStore описывает интерфейс чтения сессии по токену.
type SessionStore interface {
	Get(ctx context.Context, token string) (*session.Session, bool, error)
}

// SessionMiddleware возвращает HTTP middleware, которое загружает сессию
// из cookie с именем cookieName. Запрос без cookie или с истёкшим токеном
// проходит дальше анонимным: решение о доступе принимает RequireAuth
// или сам обработчик.
func SessionMiddleware(store SessionStore, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, found, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				log := log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				log.Error("failed to load session", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if !found {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			ctx = context.WithValue(ctx, TokenKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth возвращает HTTP middleware, которое пропускает только
// запросы с действующей сессией, иначе возвращает HTTP 401 Unauthorized
// с переданным сообщением. Сообщение своё на каждой странице.
func RequireAuth(msg string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			if SessionFromContext(r.Context()) == nil {
				log := log.With(
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				log.Info("unauthenticated request rejected", slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(msg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext возвращает сессию из контекста запроса или nil.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(SessionKey).(*session.Session)
	return sess
}

// TokenFromContext возвращает токен сессии из контекста запроса.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}
