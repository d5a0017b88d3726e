package scrape

import (
	"context"
	"log/slog"
)

// Instagram is a structural placeholder. Scraping Instagram without a login
// session yields nothing useful, so the source reports its targets and
// returns no candidates until a proper API integration exists.
type Instagram struct {
	Profiles []string
	Logger   *slog.Logger
}

// NewInstagram returns the placeholder Instagram source.
func NewInstagram() *Instagram {
	return &Instagram{
		Profiles: []string{"houseofyes", "slipperroom", "poshnyc"},
		Logger:   slog.Default(),
	}
}

// Name implements Source.
func (i *Instagram) Name() string { return "instagram" }

// Scrape implements Source. Always succeeds with zero candidates.
func (i *Instagram) Scrape(ctx context.Context) ([]RawCandidate, error) {
	i.Logger.Debug("instagram source is a placeholder",
		"profiles", i.Profiles,
	)
	return nil, nil
}
