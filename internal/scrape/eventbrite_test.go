package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const eventbritePage = `<html><body>
<div class="event-card">
  <h3><a href="/e/jazz-night-tickets-123">Jazz Night</a></h3>
  <time datetime="2026-03-14T21:00:00"></time>
  <div class="card-location">Blue Note, 131 W 3rd St, West Village</div>
  <span class="price-tag">$35</span>
</div>
<div class="event-card">
  <h3>Dateless Party</h3>
</div>
</body></html>`

func TestEventbrite_Scrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventbritePage))
	}))
	defer srv.Close()

	e := NewEventbrite(srv.Client())
	e.BaseURL = srv.URL

	got, err := e.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("candidates = %d, want 1", len(got))
	}

	c := got[0]
	if c.String("title") != "Jazz Night" {
		t.Errorf("title = %q", c.String("title"))
	}
	if c.String("datetime") != "2026-03-14T21:00:00" {
		t.Errorf("datetime = %q", c.String("datetime"))
	}
	if c.String("location") != "Blue Note, 131 W 3rd St, West Village" {
		t.Errorf("location = %q", c.String("location"))
	}
	if c.String("price") != "$35" {
		t.Errorf("price = %q", c.String("price"))
	}
	if c.String("url") != "https://www.eventbrite.com/e/jazz-night-tickets-123" {
		t.Errorf("url = %q, want relative href made absolute", c.String("url"))
	}
}
