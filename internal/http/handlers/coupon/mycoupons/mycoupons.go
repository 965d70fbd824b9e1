// Package mycoupons реализует HTTP-обработчик списка купонов пользователя.
package mycoupons

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clube49/loyalty-club/internal/http/middlewarectx"
	"github.com/clube49/loyalty-club/internal/http/response"
	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
)

// Service описывает интерфейс бизнес-логики списка купонов пользователя.
type Service interface {
	ListCoupons(ctx context.Context, userUID string) ([]*models.UserCoupon, error)
}

// Handler обрабатывает запросы на получение купленных купонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Купоны пользователя
// @Description Возвращает купленные купоны с кодами погашения, новые первыми.
// @Tags Coupons
// @Produce  json
// @Success 200 {object} map[string]any "Список купонов пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /coupons/my [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.mycoupons"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user UID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	coupons, err := h.service.ListCoupons(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list user coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list user coupons"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupons": coupons,
	}))
}
