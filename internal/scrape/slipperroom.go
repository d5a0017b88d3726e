package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// SlipperRoom scrapes the Slipper Room calendar. The site renders one
// listing block per show with a <time datetime="..."> attribute; titles and
// prices are pulled from the surrounding markup with best-effort patterns.
type SlipperRoom struct {
	BaseURL   string
	Client    *http.Client
	MaxEvents int
}

// NewSlipperRoom returns a Slipper Room source using the given client.
func NewSlipperRoom(client *http.Client) *SlipperRoom {
	return &SlipperRoom{
		BaseURL:   "https://www.slipperroom.com/calendar",
		Client:    client,
		MaxEvents: 10,
	}
}

// Name implements Source.
func (s *SlipperRoom) Name() string { return "slipper_room" }

// Scrape implements Source.
func (s *SlipperRoom) Scrape(ctx context.Context) ([]RawCandidate, error) {
	body, err := fetchPage(ctx, s.Client, s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("slipper room: %w", err)
	}

	blocks := listingSplitRe.Split(string(body), -1)
	if len(blocks) > 1 {
		blocks = blocks[1:] // drop everything before the first listing
	} else {
		blocks = nil
	}

	var out []RawCandidate
	for _, block := range blocks {
		if len(out) >= s.MaxEvents {
			break
		}

		tm := timeAttrRe.FindStringSubmatch(block)
		if tm == nil {
			continue
		}

		title := "Slipper Room Show"
		if hm := headingRe.FindStringSubmatch(block); hm != nil {
			if t := stripTags(hm[1]); t != "" {
				title = t
			}
		}

		price := "$15-25"
		if pm := priceSpanRe.FindStringSubmatch(block); pm != nil {
			price = strings.TrimSpace(pm[1])
		}

		out = append(out, RawCandidate{
			"title":          title,
			"description":    "Burlesque and variety show at Slipper Room",
			"start_datetime": strings.TrimSpace(tm[1]),
			"venue_name":     "Slipper Room",
			"neighborhood":   "Lower East Side",
			"city":           "New York",
			"price":          price,
			"url":            "https://www.slipperroom.com/shows",
			"raw_tags":       []string{"nightlife", "slipper_room", "burlesque", "variety"},
		})
	}
	return out, nil
}
