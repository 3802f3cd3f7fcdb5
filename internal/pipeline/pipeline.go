// Package pipeline runs one harvest: fetch per source, normalize, drop seen
// items, apply the date window and keyword rules, and assemble the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/item"
	"github.com/kkyungseo/support-project-radar/internal/rules"
	"github.com/kkyungseo/support-project-radar/internal/seen"
	"github.com/kkyungseo/support-project-radar/internal/source"
	"github.com/kkyungseo/support-project-radar/internal/window"
)

// Orchestrator composes the pipeline stages for one run. Sources are
// processed sequentially in registration order; connector mapping is
// resolved once at construction.
type Orchestrator struct {
	sources    []config.Source
	connectors map[string]source.Connector
	store      seen.Store
	rules      rules.RuleSet
	lookback   int
	maxItems   int

	// Now is the run's clock; overridable for tests.
	Now func() time.Time
}

// New resolves a connector per source. An unknown source type is a
// configuration bug and fails construction rather than the run.
func New(sources []config.Source, store seen.Store, ruleset rules.RuleSet, lookbackDays, maxItems int) (*Orchestrator, error) {
	connectors := make(map[string]source.Connector, len(sources))
	for _, src := range sources {
		c, err := source.New(src)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		connectors[src.Name] = c
	}
	return &Orchestrator{
		sources:    sources,
		connectors: connectors,
		store:      store,
		rules:      ruleset,
		lookback:   lookbackDays,
		maxItems:   maxItems,
		Now:        time.Now,
	}, nil
}

// Run executes the pipeline once. A failing source is logged and skipped;
// a failing seen-store aborts the run, since continuing would risk
// re-notifying on the next attempt.
func (o *Orchestrator) Run(ctx context.Context) (item.RunResult, error) {
	now := o.Now()

	var all []item.Item
	for _, src := range o.sources {
		raws, err := o.connectors[src.Name].Fetch(ctx)
		switch {
		case errors.Is(err, source.ErrNotConfigured):
			log.Printf("[%s] skipped: %v", src.Name, err)
			continue
		case err != nil:
			log.Printf("[%s] fetch failed: %v", src.Name, err)
			continue
		}

		count := 0
		for _, raw := range raws {
			it := item.Normalize(src.Name, raw)
			if it.Title == "" && it.Link == "" {
				log.Printf("[%s] dropping malformed record (no title, no link)", src.Name)
				continue
			}
			all = append(all, it)
			count++
		}
		log.Printf("[%s] fetched %d record(s)", src.Name, count)
	}

	if o.maxItems > 0 && len(all) > o.maxItems {
		log.Printf("capping run at %d of %d item(s)", o.maxItems, len(all))
		all = all[:o.maxItems]
	}

	// One pass across all sources, so seen-state updates atomically
	// relative to this run.
	fresh, err := o.store.FilterNew(ctx, all)
	if err != nil {
		return item.RunResult{}, fmt.Errorf("seen store: %w", err)
	}
	log.Printf("dedup: %d new of %d fetched", len(fresh), len(all))

	var out []item.Item
	for _, it := range fresh {
		ok, err := window.Within(it, now, o.lookback)
		if err != nil {
			log.Printf("[%s] excluding %s: %v", it.Source, it.SourceID, err)
			continue
		}
		if !ok {
			continue
		}

		matched, keywords := o.rules.Evaluate(it)
		if !matched {
			continue
		}
		it.Keywords = keywords
		out = append(out, it)
	}

	return item.RunResult{
		RunID:       uuid.NewString(),
		GeneratedAt: now,
		TotalCount:  len(out),
		Items:       out,
	}, nil
}
