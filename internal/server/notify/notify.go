// Package notify tells users about changes to their account.
package notify

import "context"

// Notifier is called inside the transaction that changed the account. A
// returned error aborts that transaction.
type Notifier interface {
	UserCreated(ctx context.Context, email, username string) error
	UserUpdated(ctx context.Context, email, username string) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) UserCreated(context.Context, string, string) error { return nil }
func (Nop) UserUpdated(context.Context, string, string) error { return nil }
