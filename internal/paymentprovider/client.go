// Package paymentprovider содержит клиентов PIX-платежей: реальный
// HTTP-клиент AbacatePay и детерминированный симулятор. Какая реализация
// используется, решает конфигурация, а не перехват сетевых ошибок.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"
)

// Provider описывает возможность создать PIX-счёт на оплату.
type Provider interface {
	CreateBilling(ctx context.Context, amount float64, customerEmail, description string) (*BillingResponse, error)
}

type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент AbacatePay.
func NewClient(apiKey, apiURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// CreateBilling отправляет запрос на создание единоразового PIX-счёта.
// Сумма передаётся в целых центах.
func (c *Client) CreateBilling(ctx context.Context, amount float64, customerEmail, description string) (*BillingResponse, error) {
	reqParams := createBillingRequest{
		Frequency: "ONE_TIME",
		Methods:   []string{"PIX"},
		Products: []billingProduct{{
			ExternalID: fmt.Sprintf("prod_%d", time.Now().UnixMilli()),
			Name:       description,
			Quantity:   1,
			Price:      int64(math.Round(amount * 100)),
		}},
		Customer: billingCustomer{Email: customerEmail},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/billing/create", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var billingResp createBillingResponse
	if err := json.NewDecoder(resp.Body).Decode(&billingResp); err != nil {
		return nil, err
	}
	return normalize(&billingResp), nil
}

// normalize приводит оба варианта ответа API к одной структуре.
func normalize(resp *createBillingResponse) *BillingResponse {
	out := &BillingResponse{
		BillingID: resp.ID,
		URL:       resp.URL,
		PixCode:   resp.Pix.Code,
		Status:    StatusPending,
	}
	if resp.Data.ID != "" {
		out.BillingID = resp.Data.ID
	}
	if resp.Data.URL != "" {
		out.URL = resp.Data.URL
	}
	if resp.Data.Pix.Code != "" {
		out.PixCode = resp.Data.Pix.Code
	}
	return out
}
