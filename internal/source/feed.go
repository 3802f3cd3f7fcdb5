package source

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/kkyungseo/support-project-radar/internal/config"
	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Feed pulls announcements from an RSS or Atom feed.
type Feed struct {
	src    config.Source
	parser *gofeed.Parser
}

func NewFeed(src config.Source) *Feed {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient()
	parser.UserAgent = userAgent
	return &Feed{src: src, parser: parser}
}

func (f *Feed) Fetch(ctx context.Context) ([]item.RawRecord, error) {
	feed, err := f.parser.ParseURLWithContext(f.src.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", f.src.Name, err)
	}

	records := make([]item.RawRecord, 0, len(feed.Items))
	for _, entry := range feed.Items {
		r := item.RawRecord{
			"guid":    entry.GUID,
			"title":   entry.Title,
			"link":    entry.Link,
			"summary": entry.Description,
			"content": entry.Content,
		}
		if entry.PublishedParsed != nil {
			r["published"] = entry.PublishedParsed.Format("2006-01-02T15:04:05Z07:00")
		} else {
			r["published"] = entry.Published
		}
		records = append(records, r)
	}
	return records, nil
}
