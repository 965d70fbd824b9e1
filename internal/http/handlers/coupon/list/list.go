// Package list реализует HTTP-обработчик каталога купонов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/clube49/loyalty-club/internal/http/response"
	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Coupon, error)
}

// Handler обрабатывает запросы на получение каталога купонов.
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
// @Summary Каталог купонов
// @Description Возвращает список доступных купонов, отсортированный по номиналу.
// @Tags Coupons
// @Produce  json
// @Success 200 {object} map[string]any "Список купонов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /coupons [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	coupons, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list coupons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list coupons"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"coupons": coupons,
	}))
}
