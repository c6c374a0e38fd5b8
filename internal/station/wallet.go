package station

import (
	"context"
	"fmt"
	"sync"

	"github.com/Yumichan48/foxrunner/internal/domain"
)

// MemoryWallet is a process-local Wallet. Balances never go negative.
type MemoryWallet struct {
	mu       sync.Mutex
	balances map[string]int
}

// NewMemoryWallet creates an empty wallet.
func NewMemoryWallet() *MemoryWallet {
	return &MemoryWallet{balances: make(map[string]int)}
}

func (w *MemoryWallet) Affordable(currency string, amount int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[currency] >= amount
}

func (w *MemoryWallet) Debit(_ context.Context, currency string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeAmount, amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.balances[currency] < amount {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientMaterial, currency)
	}
	w.balances[currency] -= amount
	return nil
}

func (w *MemoryWallet) Credit(_ context.Context, currency string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeAmount, amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[currency] += amount
	return nil
}

// Balance returns the current amount of a currency.
func (w *MemoryWallet) Balance(currency string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[currency]
}
