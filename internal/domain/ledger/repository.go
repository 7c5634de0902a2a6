package ledger

import "context"

type Repository interface {
	// Prepend stores tx in front of the existing lines.
	Prepend(ctx context.Context, tx *Transaction) error
	// List returns lines newest first.
	List(ctx context.Context) ([]Transaction, error)
}
