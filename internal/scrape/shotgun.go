package scrape

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

// Shotgun scrapes shotgun.live's New York listing. The listing embeds
// schema.org Event objects as JSON-LD, which is far more stable than the
// page markup, so the adapter decodes those instead.
type Shotgun struct {
	BaseURL   string
	Client    *http.Client
	MaxPages  int
	MaxEvents int
}

// NewShotgun returns a Shotgun source using the given client.
// Limited to two pages to be respectful of the platform.
func NewShotgun(client *http.Client) *Shotgun {
	return &Shotgun{
		BaseURL:   "https://shotgun.live/en-us/events/new-york",
		Client:    client,
		MaxPages:  2,
		MaxEvents: 20,
	}
}

// Name implements Source.
func (s *Shotgun) Name() string { return "shotgun" }

var jsonLDRe = regexp.MustCompile(`(?is)<script[^>]+type="application/ld\+json"[^>]*>(.*?)</script>`)

// ldEvent mirrors the schema.org Event fields the listing embeds.
type ldEvent struct {
	Type      string `json:"@type"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	URL       string `json:"url"`
	Location  struct {
		Name    string          `json:"name"`
		Address json.RawMessage `json:"address"`
	} `json:"location"`
	Offers      json.RawMessage `json:"offers"`
	Description string          `json:"description"`
}

// ldOffer is the subset of schema.org Offer/AggregateOffer we price from.
type ldOffer struct {
	Price     any `json:"price"`
	LowPrice  any `json:"lowPrice"`
	HighPrice any `json:"highPrice"`
}

// Scrape implements Source.
func (s *Shotgun) Scrape(ctx context.Context) ([]RawCandidate, error) {
	var out []RawCandidate
	for page := 1; page <= s.MaxPages; page++ {
		url := s.BaseURL
		if page > 1 {
			url = fmt.Sprintf("%s?page=%d", s.BaseURL, page)
		}

		body, err := fetchPage(ctx, s.Client, url)
		if err != nil {
			// Partial results plus the error: the orchestrator decides
			// whether what was gathered is worth keeping.
			return out, fmt.Errorf("shotgun page %d: %w", page, err)
		}

		found := s.candidatesFromPage(body)
		if len(found) == 0 {
			break
		}
		out = append(out, found...)
		if len(out) >= s.MaxEvents {
			out = out[:s.MaxEvents]
			break
		}
	}
	return out, nil
}

func (s *Shotgun) candidatesFromPage(body []byte) []RawCandidate {
	var out []RawCandidate
	for _, m := range jsonLDRe.FindAllSubmatch(body, -1) {
		raw := m[1]

		// A block may hold a single object or an array of them.
		var events []ldEvent
		var one ldEvent
		if err := json.Unmarshal(raw, &one); err == nil && one.Type != "" {
			events = append(events, one)
		} else {
			var many []ldEvent
			if err := json.Unmarshal(raw, &many); err == nil {
				events = many
			}
		}

		for _, ev := range events {
			if !strings.EqualFold(ev.Type, "Event") && !strings.EqualFold(ev.Type, "MusicEvent") {
				continue
			}
			if c, ok := s.candidateFromLD(ev); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

func (s *Shotgun) candidateFromLD(ev ldEvent) (RawCandidate, bool) {
	if strings.TrimSpace(ev.Name) == "" || strings.TrimSpace(ev.StartDate) == "" {
		return nil, false
	}

	venue := strings.TrimSpace(ev.Location.Name)
	locationText := venue + " " + string(ev.Location.Address)

	c := RawCandidate{
		"title":          strings.TrimSpace(ev.Name),
		"description":    strings.TrimSpace(ev.Description),
		"start_datetime": strings.TrimSpace(ev.StartDate),
		"venue_name":     venue,
		"city":           "New York",
		"url":            ev.URL,
		"raw_tags":       []string{"nightlife", "shotgun", "electronic", "dance"},
	}
	if end := strings.TrimSpace(ev.EndDate); end != "" {
		c["end_datetime"] = end
	}
	if hood := ExtractNeighborhood(locationText); hood != "" {
		c["neighborhood"] = hood
	}
	if min, max, ok := priceFromOffers(ev.Offers); ok {
		c["price_min"] = min
		c["price_max"] = max
	}
	return c, true
}

// priceFromOffers reads a schema.org offers value, which may be a single
// Offer, an AggregateOffer, or an array of Offers.
func priceFromOffers(raw json.RawMessage) (min, max float64, ok bool) {
	if len(raw) == 0 {
		return 0, 0, false
	}

	var offers []ldOffer
	var one ldOffer
	if err := json.Unmarshal(raw, &one); err == nil {
		offers = []ldOffer{one}
	} else if err := json.Unmarshal(raw, &offers); err != nil {
		return 0, 0, false
	}

	first := true
	for _, o := range offers {
		lo, loOK := priceValue(o.LowPrice)
		hi, hiOK := priceValue(o.HighPrice)
		if !loOK {
			lo, loOK = priceValue(o.Price)
		}
		if !hiOK {
			hi, hiOK = lo, loOK
		}
		if !loOK {
			continue
		}
		if first || lo < min {
			min = lo
		}
		if first || hi > max {
			max = hi
		}
		first = false
	}
	if first {
		return 0, 0, false
	}
	return min, max, true
}

// priceValue accepts the number-or-string price shapes JSON-LD uses.
func priceValue(v any) (float64, bool) {
	switch p := v.(type) {
	case float64:
		if p >= 0 {
			return p, true
		}
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%f", &f); err == nil && f >= 0 {
			return f, true
		}
	}
	return 0, false
}
