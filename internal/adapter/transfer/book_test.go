package transfer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBook(seed map[string]uint64) *Book {
	return NewBook(slog.New(slog.NewTextHandler(io.Discard, nil)), seed)
}

func TestTransfer(t *testing.T) {
	b := newBook(map[string]uint64{"alice": 1_000})
	ctx := context.Background()

	require.NoError(t, b.Transfer(ctx, "alice", "bob", 400))
	require.Equal(t, uint64(600), b.Balance("alice"))
	require.Equal(t, uint64(400), b.Balance("bob"))

	err := b.Transfer(ctx, "alice", "bob", 601)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	require.Equal(t, uint64(600), b.Balance("alice"))
	require.Equal(t, uint64(400), b.Balance("bob"))

}

func TestTransferToSelf(t *testing.T) {
	b := newBook(map[string]uint64{"alice": 1_000})
	ctx := context.Background()

	require.NoError(t, b.Transfer(ctx, "alice", "alice", 1_000))
	require.Equal(t, uint64(1_000), b.Balance("alice"))

	// an account cannot move more than it holds, even to itself
	require.ErrorIs(t, b.Transfer(ctx, "alice", "alice", 1_001), ErrInsufficientBalance)
	require.Equal(t, uint64(1_000), b.Balance("alice"))
}

func TestTransferOverflow(t *testing.T) {
	b := newBook(map[string]uint64{"alice": 10, "bob": ^uint64(0)})

	require.Error(t, b.Transfer(context.Background(), "alice", "bob", 1))
	require.Equal(t, uint64(10), b.Balance("alice"))
}

func TestTransferCanceled(t *testing.T) {
	b := newBook(map[string]uint64{"alice": 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, b.Transfer(ctx, "alice", "bob", 1), context.Canceled)
	require.Equal(t, uint64(10), b.Balance("alice"))
}
