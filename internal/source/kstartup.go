package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/item"
)

const (
	defaultPerPage  = 100
	defaultMaxPages = 30
)

var defaultEndpoints = map[string]string{
	"announcements": "/getAnnouncementInformation01",
	"business":      "/getBusinessInformation01",
}

// KStartup pulls announcements from a data.go.kr-style paginated OpenAPI.
type KStartup struct {
	src    config.Source
	client *http.Client
}

func NewKStartup(src config.Source) *KStartup {
	return &KStartup{src: src, client: newHTTPClient()}
}

// Fetch walks every enabled endpoint page by page until the reported total
// is exhausted, a short page arrives, or the per-run page cap is hit.
func (k *KStartup) Fetch(ctx context.Context) ([]item.RawRecord, error) {
	api := k.src.API

	keyEnv := api.ServiceKeyEnv
	if keyEnv == "" {
		keyEnv = "DATA_GO_KR_SERVICE_KEY"
	}
	serviceKey := strings.TrimSpace(os.Getenv(keyEnv))
	if serviceKey == "" {
		return nil, fmt.Errorf("%w: env %s is empty", ErrNotConfigured, keyEnv)
	}

	keyParam := api.ServiceKeyParam
	if keyParam == "" {
		keyParam = "ServiceKey"
	}
	perPage := api.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	maxPages := api.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	endpoints := api.Endpoints
	if len(endpoints) == 0 {
		endpoints = defaultEndpoints
	}
	enabled := api.EnabledEndpoints
	if len(enabled) == 0 {
		enabled = []string{"announcements", "business"}
	}

	var (
		all     []item.RawRecord
		lastErr error
	)
	for _, name := range enabled {
		path, ok := endpoints[name]
		if !ok {
			log.Printf("[%s] endpoint %q has no configured path, skipping", k.src.Name, name)
			continue
		}
		endpoint := strings.TrimRight(api.BaseURL, "/") + path

		for page := 1; page <= maxPages; page++ {
			records, total, err := k.fetchPage(ctx, endpoint, keyParam, serviceKey, page, perPage)
			if err != nil {
				log.Printf("[%s] %s page %d: %v", k.src.Name, name, page, err)
				lastErr = err
				break
			}
			if len(records) == 0 {
				break
			}
			for _, r := range records {
				r["endpoint"] = name
				all = append(all, r)
			}
			// Stop at the last page when the API reports a total; a short
			// page is the fallback signal.
			if total > 0 && page >= (total+perPage-1)/perPage {
				break
			}
			if len(records) < perPage {
				break
			}
		}
	}

	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}

func (k *KStartup) fetchPage(ctx context.Context, endpoint, keyParam, serviceKey string, page, perPage int) ([]item.RawRecord, int, error) {
	q := url.Values{}
	q.Set(keyParam, serviceKey)
	q.Set("returnType", "json")
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, 0, fmt.Errorf("decoding response: %w", err)
	}
	records, total := extractItems(payload)
	return records, total, nil
}

// extractItems digs the item list out of an OpenAPI response. Response
// envelopes differ per service revision, so every known container shape is
// tried before giving up.
func extractItems(payload any) ([]item.RawRecord, int) {
	if list, ok := payload.([]any); ok {
		return toRecords(list), len(list)
	}
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, 0
	}
	if resp, ok := body["response"].(map[string]any); ok {
		body = resp
	}
	for _, k := range []string{"body", "data", "result"} {
		if inner, ok := body[k].(map[string]any); ok {
			body = inner
			break
		}
		if list, ok := body[k].([]any); ok {
			return toRecords(list), len(list)
		}
	}

	total := 0
	for _, k := range []string{"totalCount", "total_count", "total", "matchCount"} {
		if v, ok := body[k]; ok {
			if f, ok := v.(float64); ok {
				total = int(f)
			}
			break
		}
	}

	var container any
	for _, k := range []string{"items", "item", "itemsList", "list", "data"} {
		if v, ok := body[k]; ok && v != nil {
			container = v
			break
		}
	}
	if m, ok := container.(map[string]any); ok {
		container = m["item"]
	}

	switch c := container.(type) {
	case []any:
		return toRecords(c), total
	case map[string]any:
		return []item.RawRecord{item.RawRecord(c)}, total
	default:
		return nil, total
	}
}

func toRecords(list []any) []item.RawRecord {
	records := make([]item.RawRecord, 0, len(list))
	for _, v := range list {
		if m, ok := v.(map[string]any); ok {
			records = append(records, item.RawRecord(m))
		} else {
			records = append(records, item.RawRecord{"value": v})
		}
	}
	return records
}
