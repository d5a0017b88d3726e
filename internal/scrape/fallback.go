package scrape

import (
	"fmt"
	"time"
)

// FallbackPlatform is the source_platform recorded on substituted sample
// events, so they can be told apart from scraped data.
const FallbackPlatform = "fallback_sample"

// Fallback provides a curated sample event set. The orchestrator substitutes
// it when a scrape run produces nothing, so the planner always has something
// to recommend during development and demos.
//
// Dates are pinned to the next seven days relative to the injected now func
// so the samples stay inside the retention window regardless of when the
// pipeline runs.
type Fallback struct {
	Now func() time.Time
}

// NewFallback returns a fallback provider using wall-clock time.
func NewFallback() *Fallback {
	return &Fallback{Now: time.Now}
}

// Candidates returns the sample set as raw candidates, one per upcoming day.
func (f *Fallback) Candidates() []RawCandidate {
	base := f.Now()
	day := func(offset int, hhmm string) string {
		d := base.AddDate(0, 0, offset)
		return fmt.Sprintf("%sT%s:00", d.Format("2006-01-02"), hhmm)
	}

	return []RawCandidate{
		{
			"title":           "Jazz Night at Blue Note",
			"description":     "Intimate jazz performance featuring Grammy-nominated artists. Dinner service available with reservations. Dress code: smart casual.",
			"start_datetime":  day(1, "20:00"),
			"end_datetime":    day(1, "23:00"),
			"venue_name":      "Blue Note Jazz Club",
			"neighborhood":    "West Village",
			"city":            "New York",
			"price_min":       35.0,
			"price_max":       50.0,
			"url":             "https://www.bluenote.net/newyork/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"jazz", "music", "seated", "dinner", "30_plus"},
		},
		{
			"title":           "Burlesque Extravaganza",
			"description":     "Immersive burlesque show with circus acts, aerial performances, and live music. Full bar and light bites available.",
			"start_datetime":  day(2, "21:00"),
			"end_datetime":    day(2, "23:30"),
			"venue_name":      "House of Yes",
			"neighborhood":    "Bushwick",
			"city":            "New York",
			"price_min":       20.0,
			"price_max":       40.0,
			"url":             "https://www.houseofyes.org/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"burlesque", "performance", "immersive", "show", "30_plus", "dance"},
		},
		{
			"title":           "Underground Techno Night",
			"description":     "All-night techno party with international DJs. Warehouse vibes, serious sound system, and a dedicated dance floor.",
			"start_datetime":  day(3, "23:00"),
			"end_datetime":    day(4, "06:00"),
			"venue_name":      "Elsewhere",
			"neighborhood":    "Bushwick",
			"city":            "New York",
			"price_min":       25.0,
			"price_max":       40.0,
			"url":             "https://www.elsewherebrooklyn.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"techno", "edm", "rave", "club", "dance", "electronic"},
		},
		{
			"title":           "Comedy Cellar Late Show",
			"description":     "Stand-up comedy with surprise celebrity drop-ins. Two-drink minimum. Shows often sell out.",
			"start_datetime":  day(3, "20:30"),
			"end_datetime":    day(3, "22:30"),
			"venue_name":      "Comedy Cellar",
			"neighborhood":    "West Village",
			"city":            "New York",
			"price_min":       15.0,
			"price_max":       25.0,
			"url":             "https://www.comedycellar.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"comedy", "stand-up", "seated", "30_plus"},
		},
		{
			"title":           "Salsa Dancing Social",
			"description":     "Beginner-friendly salsa night with free lesson at 8pm, then social dancing until late. Live band performs from 10pm.",
			"start_datetime":  day(4, "20:00"),
			"end_datetime":    day(5, "01:00"),
			"venue_name":      "SOB's",
			"neighborhood":    "SoHo",
			"city":            "New York",
			"price_min":       20.0,
			"price_max":       30.0,
			"url":             "https://www.sobs.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"salsa", "dance", "latin", "music", "social"},
		},
		{
			"title":           "Rooftop Cocktails & DJ Set",
			"description":     "Sunset cocktails with panoramic city views. Resident DJ spins house and disco. Dress code enforced.",
			"start_datetime":  day(5, "19:00"),
			"end_datetime":    day(5, "23:00"),
			"venue_name":      "Le Bain",
			"neighborhood":    "Chelsea",
			"city":            "New York",
			"price_min":       30.0,
			"price_max":       50.0,
			"url":             "https://www.standardhotels.com/new-york/properties/high-line",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"rooftop", "cocktails", "dj", "house", "disco", "30_plus"},
		},
		{
			"title":           "Live Soul Music Dinner Show",
			"description":     "Three-course dinner with live soul and R&B performances. Intimate venue with excellent acoustics.",
			"start_datetime":  day(6, "19:30"),
			"end_datetime":    day(6, "22:00"),
			"venue_name":      "Minton's Playhouse",
			"neighborhood":    "Harlem",
			"city":            "New York",
			"price_min":       40.0,
			"price_max":       60.0,
			"url":             "https://www.mintonsharlem.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"soul", "rnb", "music", "dinner", "seated", "30_plus"},
		},
		{
			"title":           "Indie Rock Concert",
			"description":     "Local indie bands and touring acts. Standing room, full bar, and a killer sound system.",
			"start_datetime":  day(6, "21:00"),
			"end_datetime":    day(7, "00:00"),
			"venue_name":      "Bowery Ballroom",
			"neighborhood":    "Lower East Side",
			"city":            "New York",
			"price_min":       25.0,
			"price_max":       35.0,
			"url":             "https://www.boweryballroom.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"indie", "rock", "concert", "music", "live"},
		},
		{
			"title":           "Karaoke Night",
			"description":     "Private karaoke rooms and open mic stage. Full menu and extensive drink selection. No cover charge.",
			"start_datetime":  day(7, "20:00"),
			"end_datetime":    day(8, "02:00"),
			"venue_name":      "Karaoke Duet",
			"neighborhood":    "Koreatown",
			"city":            "New York",
			"price_min":       0.0,
			"price_max":       0.0,
			"url":             "https://www.karaokeduet.com/",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"karaoke", "social", "singing", "fun"},
		},
		{
			"title":           "Deep House Warehouse Party",
			"description":     "Underground deep house and minimal techno. Secret location revealed 24h before. BYOB friendly.",
			"start_datetime":  day(7, "23:30"),
			"end_datetime":    day(8, "05:00"),
			"venue_name":      "Secret Warehouse",
			"neighborhood":    "Williamsburg",
			"city":            "New York",
			"price_min":       20.0,
			"price_max":       30.0,
			"url":             "https://ra.co/events/us/newyork",
			"source_platform": FallbackPlatform,
			"raw_tags":        []string{"deep house", "techno", "warehouse", "underground", "dance", "electronic"},
		},
	}
}
