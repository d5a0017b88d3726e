package scrape

import (
	"regexp"
	"strings"
)

// Best-effort markup patterns shared by the HTML-scraping sources. Listing
// sites change markup without notice; each pattern matches the loosest shape
// that still identifies the field, and callers fall back to defaults when a
// pattern finds nothing.
var (
	listingSplitRe = regexp.MustCompile(`(?i)<(?:div|li|article)[^>]*class="[^"]*event[^"]*"[^>]*>`)
	timeAttrRe     = regexp.MustCompile(`(?i)<time[^>]+datetime="([^"]+)"`)
	headingRe      = regexp.MustCompile(`(?is)<h[234][^>]*>(.*?)</h[234]>`)
	priceSpanRe    = regexp.MustCompile(`(?i)<(?:span|div)[^>]*class="[^"]*price[^"]*"[^>]*>([^<]+)</(?:span|div)>`)
	locationDivRe  = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*location[^"]*"[^>]*>(.*?)</div>`)
	hrefRe         = regexp.MustCompile(`(?i)<a[^>]+href="([^"]+)"`)
	paragraphRe    = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagStripRe     = regexp.MustCompile(`<[^>]+>`)
)

func stripTags(s string) string {
	return strings.TrimSpace(tagStripRe.ReplaceAllString(s, ""))
}
