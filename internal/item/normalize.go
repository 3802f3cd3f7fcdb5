package item

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
)

// Candidate keys per canonical field. K-Startup responses use snake_case or
// camelCase depending on the endpoint, feed records use the canonical names
// directly, so one table covers both.
var (
	idKeys      = []string{"source_id", "guid", "pbanc_sn", "pbancSn", "id"}
	titleKeys   = []string{"title", "pbanc_titl_nm", "pbancTitlNm", "biz_pbanc_nm", "bizPbancNm"}
	linkKeys    = []string{"link", "url", "detl_pg_url", "detlPgUrl"}
	summaryKeys = []string{"summary", "description", "supt_biz_clsfc", "suptBizClsfc", "biz_supt_ctnt", "bizSuptCtnt"}
	contentKeys = []string{"content", "pbanc_ctnt", "pbancCtnt", "supt_ctnt", "supt_biz_intrd_info", "suptBizIntrdInfo"}
	startKeys   = []string{"apply_start", "pbanc_rcpt_bgng_dt", "pbancRcptBgngDt"}
	endKeys     = []string{"apply_end", "pbanc_rcpt_end_dt", "pbancRcptEndDt"}
)

// Normalize converts a connector payload into a canonical Item. Missing
// optional fields become empty strings; it never fails. When the source
// carries no native identifier the id is a content hash over title and link,
// so re-ingesting the same announcement yields the same identity even if the
// summary text was touched up.
func Normalize(sourceTag string, raw RawRecord) Item {
	it := Item{
		Source:     sourceTag,
		SourceID:   pickString(raw, idKeys...),
		Title:      pickString(raw, titleKeys...),
		Summary:    pickString(raw, summaryKeys...),
		Content:    pickString(raw, contentKeys...),
		Link:       pickString(raw, linkKeys...),
		ApplyStart: pickString(raw, startKeys...),
		ApplyEnd:   pickString(raw, endKeys...),
	}
	if it.SourceID == "" {
		it.SourceID = contentID(it.Title, it.Link)
	}
	return it
}

// contentID derives a stable id from the fields least likely to be edited
// after publication.
func contentID(title, link string) string {
	h := sha256.Sum256([]byte(title + "|" + link))
	return fmt.Sprintf("%x", h[:16])
}

// pickString returns the first non-empty string value among the given keys.
// Non-string scalars are stringified, everything else is skipped.
func pickString(raw RawRecord, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		case fmt.Stringer:
			if t := strings.TrimSpace(s.String()); t != "" {
				return t
			}
		case float64:
			// JSON numbers decode as float64; keep every digit verbatim so
			// an id that flips between string and number representations
			// across API revisions still yields the same identity.
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case int64:
			return strconv.FormatInt(s, 10)
		}
	}
	return ""
}
