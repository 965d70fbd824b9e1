// Package loyaltyclub предоставляет маршруты для основного приложения.
package loyaltyclub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/clube49/loyalty-club/internal/config"
	"github.com/clube49/loyalty-club/internal/http/handlers/auth/login"
	"github.com/clube49/loyalty-club/internal/http/handlers/auth/register"
	"github.com/clube49/loyalty-club/internal/http/handlers/billing/billingcreate"
	"github.com/clube49/loyalty-club/internal/http/handlers/billing/billingwebhook"
	"github.com/clube49/loyalty-club/internal/http/handlers/coupon/list"
	"github.com/clube49/loyalty-club/internal/http/handlers/coupon/mycoupons"
	"github.com/clube49/loyalty-club/internal/http/handlers/coupon/redeem"
	"github.com/clube49/loyalty-club/internal/http/handlers/health"
	"github.com/clube49/loyalty-club/internal/http/handlers/ledger/history"
	profileget "github.com/clube49/loyalty-club/internal/http/handlers/profile/get"
	"github.com/clube49/loyalty-club/internal/http/middlewarectx"
	authservice "github.com/clube49/loyalty-club/internal/services/auth"
	billingservice "github.com/clube49/loyalty-club/internal/services/billing"
	catalogservice "github.com/clube49/loyalty-club/internal/services/catalog"
	ledgerservice "github.com/clube49/loyalty-club/internal/services/ledger"
	profileservice "github.com/clube49/loyalty-club/internal/services/profile"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authSrv *authservice.Service,
	ledgerSrv *ledgerservice.Service,
	catalogSrv *catalogservice.Service,
	profileSrv *profileservice.Service,
	billingSrv *billingservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authSrv).ServeHTTP)
		r.Post("/login", login.New(logger, authSrv).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authSrv, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", profileget.New(logger, profileSrv).ServeHTTP)
			r.Get("/coupons", list.New(logger, catalogSrv).ServeHTTP)
			r.Post("/coupons/redeem", redeem.New(logger, ledgerSrv).ServeHTTP)
			r.Get("/coupons/my", mycoupons.New(logger, profileSrv).ServeHTTP)
			r.Get("/transactions", history.New(logger, profileSrv).ServeHTTP)
			r.Post("/billing", billingcreate.New(logger, billingSrv).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации, подпись проверяется по HMAC)
		r.Post("/billing/webhook", billingwebhook.New(logger, billingSrv, cfg.Billing.WebhookSecret).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
