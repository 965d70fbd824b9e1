// Package billingcreate реализует HTTP-обработчик создания PIX-платежа.
//
// Платёж создаётся на оплату членства или покупку premium-купона.
// Обработчик возвращает данные провайдера для оплаты (ссылка, pix-код),
// а начисление происходит позже, после webhook о подтверждении оплаты.
package billingcreate

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
	"github.com/clube49/loyalty-club/internal/paymentprovider"
)

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyBilling) (*paymentprovider.BillingResponse, error)
}

// Handler обрабатывает запросы на создание платежа.
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
// @Summary Создать PIX-платёж
// @Description Создаёт счёт на оплату членства или premium-купона через платёжного провайдера.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Param request body models.DummyBilling true "Назначение платежа"
// @Success 200 {object} map[string]any "Данные для оплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера или сервера"
// @Router /billing [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBilling
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

	resp, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create billing", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create billing"))
		return
	}

	log.Info("billing created", slog.String("billing_id", resp.BillingID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"billing_id": resp.BillingID,
		"url":        resp.URL,
		"pix_code":   resp.PixCode,
	}))
}
