package paymentprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateBilling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/billing/create", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req createBillingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ONE_TIME", req.Frequency)
		assert.Equal(t, []string{"PIX"}, req.Methods)
		require.Len(t, req.Products, 1)
		// 49.90 должен уйти как 4990 центов
		assert.Equal(t, int64(4990), req.Products[0].Price)
		assert.Equal(t, "member@example.com", req.Customer.Email)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"id":"bill_123","url":"https://pay.example/123","pix":{"code":"pix-copy-paste"}}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	resp, err := client.CreateBilling(context.Background(), 49.90, "member@example.com", "Anuidade")
	require.NoError(t, err)

	assert.Equal(t, "bill_123", resp.BillingID)
	assert.Equal(t, "https://pay.example/123", resp.URL)
	assert.Equal(t, "pix-copy-paste", resp.PixCode)
	assert.Equal(t, StatusPending, resp.Status)
}

func TestClient_CreateBilling_FlatResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"bill_flat","url":"https://pay.example/flat","pix":{"code":"flat-pix"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	resp, err := client.CreateBilling(context.Background(), 10, "member@example.com", "Cupom")
	require.NoError(t, err)

	assert.Equal(t, "bill_flat", resp.BillingID)
	assert.Equal(t, "flat-pix", resp.PixCode)
}

func TestClient_CreateBilling_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("bad-key", srv.URL)
	_, err := client.CreateBilling(context.Background(), 10, "member@example.com", "Cupom")
	assert.Error(t, err)
}

func TestSimulator_CreateBilling(t *testing.T) {
	sim := NewSimulator()

	first, err := sim.CreateBilling(context.Background(), 49.90, "member@example.com", "Anuidade")
	require.NoError(t, err)
	second, err := sim.CreateBilling(context.Background(), 49.90, "member@example.com", "Anuidade")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, first.Status)
	assert.NotEmpty(t, first.PixCode)
	assert.NotEqual(t, first.BillingID, second.BillingID)
}
