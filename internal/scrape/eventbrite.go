package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Eventbrite scrapes the Eventbrite New York discovery page. Cards carry a
// heading and a <time datetime="..."> attribute; anything missing falls back
// to a neutral default the way the listing renders it.
type Eventbrite struct {
	BaseURL   string
	Client    *http.Client
	MaxEvents int
}

// NewEventbrite returns an Eventbrite source using the given client.
func NewEventbrite(client *http.Client) *Eventbrite {
	return &Eventbrite{
		BaseURL:   "https://www.eventbrite.com/d/ny--new-york/events/",
		Client:    client,
		MaxEvents: 10,
	}
}

// Name implements Source.
func (e *Eventbrite) Name() string { return "eventbrite" }

// Scrape implements Source.
func (e *Eventbrite) Scrape(ctx context.Context) ([]RawCandidate, error) {
	body, err := fetchPage(ctx, e.Client, e.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("eventbrite: %w", err)
	}

	blocks := listingSplitRe.Split(string(body), -1)
	if len(blocks) > 1 {
		blocks = blocks[1:]
	} else {
		blocks = nil
	}

	var out []RawCandidate
	for _, block := range blocks {
		if len(out) >= e.MaxEvents {
			break
		}

		hm := headingRe.FindStringSubmatch(block)
		tm := timeAttrRe.FindStringSubmatch(block)
		if hm == nil || tm == nil {
			continue
		}
		title := stripTags(hm[1])
		if title == "" {
			continue
		}

		location := "New York, NY"
		if lm := locationDivRe.FindStringSubmatch(block); lm != nil {
			if l := stripTags(lm[1]); l != "" {
				location = l
			}
		}

		price := "Free"
		if pm := priceSpanRe.FindStringSubmatch(block); pm != nil {
			price = strings.TrimSpace(pm[1])
		}

		url := e.BaseURL
		if um := hrefRe.FindStringSubmatch(block); um != nil {
			url = um[1]
			if !strings.HasPrefix(url, "http") {
				url = "https://www.eventbrite.com" + url
			}
		}

		out = append(out, RawCandidate{
			"title":       title,
			"description": "No description available",
			"datetime":    strings.TrimSpace(tm[1]),
			"location":    location,
			"price":       price,
			"url":         url,
			"tags":        []string{"nightlife", "eventbrite"},
		})
	}
	return out, nil
}
