// Package billingwebhook принимает уведомления платёжного провайдера.
//
// Подпись тела запроса проверяется по HMAC-SHA256 из заголовка
// X-Api-Signature. Начисление делается только по событию billing.paid,
// остальные события игнорируются.
package billingwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clube49/loyalty-club/internal/lib/sl"
)

// Service описывает интерфейс обработки подтверждённой оплаты.
type Service interface {
	ProcessPaid(ctx context.Context, billingID string) error
}

// Handler обрабатывает webhook платёжного провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Payload — тело уведомления провайдера.
type Payload struct {
	Event string `json:"event"`
	Data  struct {
		ID     string `json:"id"`     // Идентификатор счёта
		Status string `json:"status"` // Статус платежа
	} `json:"data"`
}

// Проверка подписи webhook (X-Api-Signature).
func (h *Handler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	const billingPaid = "billing.paid"

	switch strings.ToLower(payload.Event) {
	case billingPaid:
		if payload.Data.ID == "" {
			log.Error("webhook payload without billing id")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.service.ProcessPaid(r.Context(), payload.Data.ID); err != nil {
			log.Error("failed to process paid billing", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	default:
		log.Info("ignored webhook event", slog.String("event", payload.Event))
	}

	log.Info("webhook processed", slog.String("event", payload.Event), slog.String("billing_id", payload.Data.ID))
	w.WriteHeader(http.StatusOK)
}
