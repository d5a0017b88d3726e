package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// HouseOfYes scrapes the House of Yes calendar page. The calendar links out
// to shotgun.live ticket pages whose URL slugs carry the event title and
// date, so the adapter parses slugs instead of the page markup.
type HouseOfYes struct {
	BaseURL   string
	Client    *http.Client
	MaxEvents int
}

// NewHouseOfYes returns a House of Yes source using the given client.
func NewHouseOfYes(client *http.Client) *HouseOfYes {
	return &HouseOfYes{
		BaseURL:   "https://www.houseofyes.org/calendar",
		Client:    client,
		MaxEvents: 10,
	}
}

// Name implements Source.
func (h *HouseOfYes) Name() string { return "house_of_yes" }

var (
	shotgunLinkRe = regexp.MustCompile(`https?://[^"'\s]*shotgun\.live/events/([a-zA-Z0-9-]+)`)
	slugDateRe    = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)-(\d{1,2})-(\d{4})$`)
)

// Scrape implements Source.
func (h *HouseOfYes) Scrape(ctx context.Context) ([]RawCandidate, error) {
	body, err := fetchPage(ctx, h.Client, h.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("house of yes: %w", err)
	}

	matches := shotgunLinkRe.FindAllStringSubmatch(string(body), -1)
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[0]]; ok {
			continue
		}
		seen[m[0]] = struct{}{}
		urls = append(urls, m[0])
	}
	sort.Strings(urls)

	var out []RawCandidate
	for _, u := range urls {
		if len(out) >= h.MaxEvents {
			break
		}
		if c, ok := h.candidateFromURL(u); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// candidateFromURL reconstructs an event from a shotgun.live URL slug of the
// form "<title-words>-<month>-<day>-<year>". Slugs without a date suffix are
// skipped. Doors are assumed at 9 PM local since the slug carries no time.
func (h *HouseOfYes) candidateFromURL(rawURL string) (RawCandidate, bool) {
	m := shotgunLinkRe.FindStringSubmatch(rawURL)
	if m == nil {
		return nil, false
	}
	slug := m[1]
	if i := strings.IndexByte(slug, '?'); i >= 0 {
		slug = slug[:i]
	}

	dm := slugDateRe.FindStringSubmatchIndex(slug)
	if dm == nil {
		return nil, false
	}
	monthName := slug[dm[2]:dm[3]]
	day, _ := strconv.Atoi(slug[dm[4]:dm[5]])
	year, _ := strconv.Atoi(slug[dm[6]:dm[7]])

	month, ok := monthsByName[strings.ToLower(monthName)]
	if !ok {
		return nil, false
	}

	titleSlug := strings.TrimRight(slug[:dm[0]], "-")
	if titleSlug == "" {
		return nil, false
	}
	title := titleFromSlug(titleSlug)

	start := time.Date(year, month, day, 21, 0, 0, 0, nycLocation())

	// Legacy bag shape: these fields predate the venue/neighborhood split
	// and are mapped by the normalizer.
	return RawCandidate{
		"title":       title,
		"description": "Live event at House of Yes. Get tickets at Shotgun.",
		"datetime":    start.Format(time.RFC3339),
		"location":    "House of Yes, 2 Wyckoff Ave, Brooklyn, NY 11237",
		"price":       "Varies",
		"url":         rawURL,
		"tags":        []string{"nightlife", "house_of_yes", "live_music", "performance", "brooklyn"},
	}, true
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// titleFromSlug turns "dirty-circus-variety-show" into
// "Dirty Circus Variety Show".
func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var (
	nycOnce sync.Once
	nycLoc  *time.Location
)

// nycLocation returns the America/New_York location, falling back to the
// process-local zone when tzdata is unavailable.
func nycLocation() *time.Location {
	nycOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.Local
		}
		nycLoc = loc
	})
	return nycLoc
}
