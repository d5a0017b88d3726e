package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Posh scrapes posh.vip's events listing. The markup exposes little beyond
// a heading and an optional <time> element per card, so most fields default.
type Posh struct {
	BaseURL   string
	Client    *http.Client
	MaxEvents int
}

// NewPosh returns a Posh source using the given client.
func NewPosh(client *http.Client) *Posh {
	return &Posh{
		BaseURL:   "https://www.posh.vip/events",
		Client:    client,
		MaxEvents: 10,
	}
}

// Name implements Source.
func (p *Posh) Name() string { return "posh" }

// Scrape implements Source.
func (p *Posh) Scrape(ctx context.Context) ([]RawCandidate, error) {
	body, err := fetchPage(ctx, p.Client, p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("posh: %w", err)
	}

	blocks := listingSplitRe.Split(string(body), -1)
	if len(blocks) > 1 {
		blocks = blocks[1:]
	} else {
		blocks = nil
	}

	var out []RawCandidate
	for _, block := range blocks {
		if len(out) >= p.MaxEvents {
			break
		}

		hm := headingRe.FindStringSubmatch(block)
		tm := timeAttrRe.FindStringSubmatch(block)
		if hm == nil || tm == nil {
			continue
		}
		title := stripTags(hm[1])
		if title == "" {
			title = "Posh Event"
		}

		description := "Exclusive nightlife experience"
		if dm := paragraphRe.FindStringSubmatch(block); dm != nil {
			if d := stripTags(dm[1]); d != "" {
				description = d
			}
		}

		out = append(out, RawCandidate{
			"title":       title,
			"description": description,
			"datetime":    strings.TrimSpace(tm[1]),
			"location":    "New York, NY",
			"price":       "Varies",
			"url":         p.BaseURL,
			"tags":        []string{"nightlife", "posh", "exclusive"},
		})
	}
	return out, nil
}
