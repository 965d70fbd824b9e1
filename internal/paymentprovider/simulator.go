package paymentprovider

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Фиксированный Código Copia e Cola для демонстрационного режима.
const simulatedPixCode = "00020126580014br.gov.bcb.pix0136123e4567-e89b-12d3-a456-426614174000520400005303986540549.905802BR5913AbacatePay6008Brasilia62070503***6304ABCD"

// Simulator — детерминированная заглушка провайдера для демо-режима
// и тестов. Никаких сетевых вызовов не делает.
type Simulator struct {
	counter atomic.Int64
}

// NewSimulator создаёт новый симулятор.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// CreateBilling возвращает предсказуемый счёт со статусом PENDING.
func (s *Simulator) CreateBilling(_ context.Context, _ float64, _ string, _ string) (*BillingResponse, error) {
	n := s.counter.Add(1)
	return &BillingResponse{
		BillingID: fmt.Sprintf("bill_sim_%06d", n),
		URL:       "https://billing.example/sim",
		PixCode:   simulatedPixCode,
		Status:    StatusPending,
	}, nil
}
