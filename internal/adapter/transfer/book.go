package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"sync"

	"fund-ledger/internal/core/domain"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// Book is an in-process value transfer service. It keeps one balance per
// address and moves value between them atomically. It stands in for the
// chain runtime in development and tests.
type Book struct {
	mu       sync.Mutex
	balances map[domain.Address]uint64
	logger   *slog.Logger
}

// NewBook returns a book seeded with the given balances.
func NewBook(logger *slog.Logger, seed map[string]uint64) *Book {
	b := &Book{balances: make(map[domain.Address]uint64, len(seed)), logger: logger}
	for addr, amount := range seed {
		b.balances[domain.Address(addr)] = amount
	}
	return b
}

// Transfer debits from and credits to, or does nothing and returns an error.
// A transfer to the same account succeeds without changing any balance as
// long as the account holds amount.
func (b *Book) Transfer(ctx context.Context, from, to domain.Address, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	src := b.balances[from]
	if src < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientBalance, from, src, amount)
	}
	if from == to {
		return nil
	}
	dst, carry := bits.Add64(b.balances[to], amount, 0)
	if carry != 0 {
		return fmt.Errorf("balance overflow on %s", to)
	}
	b.balances[from] = src - amount
	b.balances[to] = dst
	b.logger.Debug("transfer applied",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Uint64("amount", amount))
	return nil
}

// Balance returns the current balance of addr.
func (b *Book) Balance(addr domain.Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[addr]
}
