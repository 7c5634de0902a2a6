package voice

import (
	"context"

	dominv "github.com/Zhima-Mochi/streetsmart/internal/domain/inventory"
	"github.com/Zhima-Mochi/streetsmart/internal/domain/speech"
)

type Dialog string

const DialogAddItem Dialog = "add-item"

type Section string

const (
	SectionInventory    Section = "inventory"
	SectionTransactions Section = "transactions"
	SectionPayments     Section = "payments"
)

// View is what the assistant may do to the user interface. Speak is the
// spoken confirmation channel.
type View interface {
	speech.Output
	OpenDialog(ctx context.Context, d Dialog) error
	ScrollTo(ctx context.Context, s Section) error
	FilterInventory(ctx context.Context, query string) error
}

// InventoryQuerier is the read side of the inventory the assistant reports on.
type InventoryQuerier interface {
	Search(ctx context.Context, term string) (dominv.SearchResult, error)
	Stats(ctx context.Context) (dominv.Stats, error)
}
