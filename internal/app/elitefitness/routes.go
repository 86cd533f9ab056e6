// Package elitefitness предоставляет маршруты для основного приложения.
package elitefitness

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vinhyan/elite-fitness/internal/config"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/auth/login"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/auth/logout"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/auth/register"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/auth/signup"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/cart/add"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/cart/checkout"
	cartremove "github.com/vinhyan/elite-fitness/internal/http/handlers/cart/remove"
	cartview "github.com/vinhyan/elite-fitness/internal/http/handlers/cart/view"
	cataloglist "github.com/vinhyan/elite-fitness/internal/http/handlers/catalog/list"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/health"
	paymentlist "github.com/vinhyan/elite-fitness/internal/http/handlers/payment/list"
	"github.com/vinhyan/elite-fitness/internal/http/handlers/session/info"
	"github.com/vinhyan/elite-fitness/internal/http/middlewarectx"
	authservice "github.com/vinhyan/elite-fitness/internal/services/auth"
	cartservice "github.com/vinhyan/elite-fitness/internal/services/cart"
	catalogservice "github.com/vinhyan/elite-fitness/internal/services/catalog"
	paymentservice "github.com/vinhyan/elite-fitness/internal/services/payment"
	"github.com/vinhyan/elite-fitness/internal/session"
	"github.com/vinhyan/elite-fitness/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, sessions *session.Store,
	authService *authservice.Service, catalogService *catalogservice.Service,
	cartService *cartservice.Service, paymentService *paymentservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(middlewarectx.SessionMiddleware(sessions, cfg.CookieName, logger))

	// Открытые конечные точки
	r.Get("/", info.New(logger).ServeHTTP)
	r.Post("/create-account", register.New(logger, authService).ServeHTTP)
	r.Post("/signup/{username}", signup.New(logger, authService, catalogService, sessions, cfg.CookieName, cfg.SessionTTL).ServeHTTP)
	r.Post("/logout", logout.New(logger, sessions, cfg.CookieName).ServeHTTP)
	r.Get("/classes", cataloglist.New(logger, catalogService).ServeHTTP)
	r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)
	r.Get("/health", health.New(logger, db).ServeHTTP)

	// Вход с ограничением частоты запросов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/login", login.New(logger, authService, catalogService, sessions, cfg.CookieName, cfg.SessionTTL).ServeHTTP)
	})

	// Группа с обязательной сессией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth("You must log in to book a class", logger))
		r.Post("/add-class/{classId}", add.New(logger, cartService).ServeHTTP)
	})
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth("You need to log in to view your cart", logger))
		r.Get("/cart", cartview.New(logger, cartService).ServeHTTP)
		r.Post("/remove-item/{id}", cartremove.New(logger, cartService).ServeHTTP)
	})
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth("You must log in to check out", logger))
		r.Post("/pay", checkout.New(logger, cartService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
