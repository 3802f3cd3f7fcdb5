// Package notify publishes run digests. Publishing is best-effort: a failure
// is logged by the caller and never fails the run, since the persisted
// report already holds the full result.
package notify

import (
	"context"
	"fmt"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Notifier publishes a digest of one run result.
type Notifier interface {
	Publish(ctx context.Context, res item.RunResult) error
}

// maxDigestItems is the hard ceiling on rendered items. Configuration may
// lower it but never raise it; the persisted report carries the full list.
const maxDigestItems = 10

// digest caps the rendered items; the remainder is summarized as a count.
func digest(res item.RunResult, max int) (shown []item.Item, more int) {
	if max <= 0 || max > maxDigestItems {
		max = maxDigestItems
	}
	if len(res.Items) <= max {
		return res.Items, 0
	}
	return res.Items[:max], len(res.Items) - max
}

// applyWindow renders an item's application period for humans.
func applyWindow(it item.Item) string {
	switch {
	case it.ApplyStart != "" && it.ApplyEnd != "":
		return fmt.Sprintf("%s ~ %s", it.ApplyStart, it.ApplyEnd)
	case it.ApplyStart != "":
		return fmt.Sprintf("from %s", it.ApplyStart)
	case it.ApplyEnd != "":
		return fmt.Sprintf("until %s", it.ApplyEnd)
	default:
		return "period not listed"
	}
}
