package scrape

import "net/http"

// DefaultSources returns the full production scraper set sharing one
// HTTP client.
func DefaultSources(client *http.Client) []Source {
	return []Source{
		NewHouseOfYes(client),
		NewEventbrite(client),
		NewSlipperRoom(client),
		NewPosh(client),
		NewShotgun(client),
		NewInstagram(),
	}
}
