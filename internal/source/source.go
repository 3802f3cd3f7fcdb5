// Package source fetches raw announcement records from the configured
// origins. Connectors hand back untyped records; the normalizer owns the
// mapping into the canonical item shape.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/item"
)

// ErrNotConfigured marks a source whose required credentials or parameters
// are missing. The orchestrator skips such sources instead of treating the
// failure as transient.
var ErrNotConfigured = errors.New("source not configured")

// Connector fetches the raw records of one source. A single invocation is a
// single attempt; retry policy, if any, lives inside the connector.
type Connector interface {
	Fetch(ctx context.Context) ([]item.RawRecord, error)
}

// New builds the connector for a configured source. The mapping from type
// to implementation is resolved once at startup, not per call.
func New(src config.Source) (Connector, error) {
	switch src.Type {
	case "kstartup":
		return NewKStartup(src), nil
	case "feed":
		return NewFeed(src), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}

const userAgent = "support-project-radar/1.0"

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 20 * time.Second}
}
