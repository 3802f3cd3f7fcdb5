// Package seen persists the identities of announcements that have already
// been emitted, so an item is never notified twice.
package seen

import (
	"context"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Store is the dedup port. FilterNew returns the items whose
// (source, source_id) was not recorded yet, in their original relative
// order, and durably records each of them before returning — an item is
// marked seen on arrival, even if a later pipeline stage rejects it.
// A key appearing twice in one batch yields a single emission and a single
// record. A store error is fatal to the run; repeated notification is a
// worse outcome than a failed job.
type Store interface {
	FilterNew(ctx context.Context, items []item.Item) ([]item.Item, error)
	Close() error
}
