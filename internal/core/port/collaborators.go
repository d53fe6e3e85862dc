package port

import (
	"context"

	"fund-ledger/internal/core/domain"
)

// Transferer moves value between accounts. A transfer either happens in
// full or returns an error and leaves every balance untouched.
type Transferer interface {
	Transfer(ctx context.Context, from, to domain.Address, amount uint64) error
}

// Authenticator resolves a request credential into a verified actor. The
// ledger never inspects credentials itself.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (domain.Address, error)
}

// EventSink receives ledger events after they are committed. Emit must not
// block the caller for long and cannot fail the operation.
type EventSink interface {
	Emit(ctx context.Context, ev domain.Event)
}
