// Package redeem реализует HTTP-обработчик списания кредитов за купон.
//
// Делегирует операцию сервису журнала и возвращает результат операции
// в едином конверте: покупка выполнена либо отклонена с причиной
// (недостаточно кредитов, купон не найден). Отказ по бизнес-причине
// не является ошибкой сервера и возвращается со статусом 200.
package redeem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/clube49/loyalty-club/internal/http/middlewarectx"
	"github.com/clube49/loyalty-club/internal/http/response"
	"github.com/clube49/loyalty-club/internal/lib/sl"
	"github.com/clube49/loyalty-club/internal/models"
)

// Service описывает интерфейс бизнес-логики списания кредитов.
type Service interface {
	RedeemStandard(ctx context.Context, userUID, couponID string) (*models.OperationResult, error)
}

// Handler обрабатывает запросы на покупку купона за кредиты.
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
// @Summary Покупка купона за кредиты
// @Description Атомарно списывает кредиты и выдаёт купон с уникальным кодом.
// @Tags Coupons
// @Accept  json
// @Produce  json
// @Param request body models.DummyRedeem true "Идентификатор купона"
// @Success 200 {object} map[string]any "Результат операции"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /coupons/redeem [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.coupon.redeem"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRedeem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user UID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.RedeemStandard(r.Context(), userUID, req.CouponID)
	if err != nil {
		log.Error("failed to redeem coupon", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not redeem coupon"))
		return
	}

	log.Info("redeem processed",
		slog.Bool("success", result.Success),
		slog.String("message", result.Message))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"result": result,
	}))
}
