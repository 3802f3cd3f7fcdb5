package item

import "testing"

func TestNormalizeKStartupFields(t *testing.T) {
	raw := RawRecord{
		"pbanc_sn":           "174321",
		"pbanc_titl_nm":      "2026 R&D voucher program",
		"detl_pg_url":        "https://www.k-startup.go.kr/web/contents/174321",
		"supt_biz_clsfc":     "R&D support",
		"pbanc_ctnt":         "Full announcement body",
		"pbanc_rcpt_bgng_dt": "20260201",
		"pbanc_rcpt_end_dt":  "20260228",
	}

	it := Normalize("kstartup", raw)

	if it.Source != "kstartup" {
		t.Errorf("source = %q, want kstartup", it.Source)
	}
	if it.SourceID != "174321" {
		t.Errorf("source_id = %q, want native id 174321", it.SourceID)
	}
	if it.Title != "2026 R&D voucher program" {
		t.Errorf("title = %q", it.Title)
	}
	if it.Summary != "R&D support" || it.Content != "Full announcement body" {
		t.Errorf("summary/content = %q / %q", it.Summary, it.Content)
	}
	if it.ApplyStart != "20260201" || it.ApplyEnd != "20260228" {
		t.Errorf("apply window = %q..%q", it.ApplyStart, it.ApplyEnd)
	}
}

func TestNormalizeCamelCaseFallback(t *testing.T) {
	it := Normalize("kstartup", RawRecord{
		"pbancSn":         "99",
		"bizPbancNm":      "Startup academy",
		"detlPgUrl":       "https://example.gov/99",
		"pbancRcptBgngDt": "20260301",
	})
	if it.SourceID != "99" || it.Title != "Startup academy" || it.ApplyStart != "20260301" {
		t.Errorf("camelCase keys not mapped: %+v", it)
	}
}

func TestNormalizeMissingOptionalFields(t *testing.T) {
	it := Normalize("knowhow", RawRecord{
		"title": "Grant notice",
		"link":  "https://knowhow.ceo/posts/1",
	})
	if it.Summary != "" || it.Content != "" || it.ApplyStart != "" || it.ApplyEnd != "" {
		t.Errorf("optional fields should be empty, got %+v", it)
	}
	if it.SourceID == "" {
		t.Error("expected derived source_id")
	}
}

func TestNormalizeDerivedIDIsStable(t *testing.T) {
	a := Normalize("knowhow", RawRecord{"title": "Grant notice", "link": "https://x/1", "summary": "v1"})
	b := Normalize("knowhow", RawRecord{"title": "Grant notice", "link": "https://x/1", "summary": "v2 edited"})
	c := Normalize("knowhow", RawRecord{"title": "Other notice", "link": "https://x/2"})

	if a.SourceID != b.SourceID {
		t.Error("summary edits must not change the derived id")
	}
	if a.SourceID == c.SourceID {
		t.Error("different announcements must get different ids")
	}
	if len(a.SourceID) != 32 {
		t.Errorf("expected 32-char hex id, got %q", a.SourceID)
	}
}

func TestNormalizeNativeIDWins(t *testing.T) {
	it := Normalize("knowhow", RawRecord{"guid": "tag:knowhow,2026:post-7", "title": "T", "link": "https://x/7"})
	if it.SourceID != "tag:knowhow,2026:post-7" {
		t.Errorf("native id should be used verbatim, got %q", it.SourceID)
	}
}

func TestNormalizeNumericID(t *testing.T) {
	// JSON decoding yields float64 for numbers.
	it := Normalize("kstartup", RawRecord{"pbanc_sn": float64(174321), "title": "T"})
	if it.SourceID != "174321" {
		t.Errorf("numeric id = %q, want 174321", it.SourceID)
	}
}

func TestNormalizeLargeNumericIDKeepsAllDigits(t *testing.T) {
	// 8-digit ids must not collapse into scientific notation: the same
	// announcement served as a string id on one API revision and a number
	// on another has to keep one identity.
	it := Normalize("kstartup", RawRecord{"pbanc_sn": float64(12345678), "title": "T"})
	if it.SourceID != "12345678" {
		t.Errorf("numeric id = %q, want 12345678", it.SourceID)
	}

	asString := Normalize("kstartup", RawRecord{"pbanc_sn": "12345678", "title": "T"})
	if it.SourceID != asString.SourceID {
		t.Errorf("string and numeric ids diverge: %q vs %q", asString.SourceID, it.SourceID)
	}
}
