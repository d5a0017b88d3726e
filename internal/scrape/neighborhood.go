package scrape

import "strings"

// neighborhoodByKeyword maps lowercase substrings of location text to the
// canonical neighborhood names used by the planner's travel table.
// The table is curated for New York; unknown locations fall back to the
// borough-level default.
var neighborhoodByKeyword = []struct {
	keyword string
	name    string
}{
	{"bushwick", "Bushwick"},
	{"williamsburg", "Williamsburg"},
	{"greenpoint", "Greenpoint"},
	{"lower east side", "Lower East Side"},
	{"east village", "East Village"},
	{"west village", "West Village"},
	{"soho", "SoHo"},
	{"tribeca", "Tribeca"},
	{"chelsea", "Chelsea"},
	{"harlem", "Harlem"},
	{"upper west side", "Upper West Side"},
	{"upper east side", "Upper East Side"},
	{"midtown", "Midtown"},
	{"koreatown", "Koreatown"},
	{"astoria", "Astoria"},
	{"long island city", "Long Island City"},
	// Borough names last so a more specific neighborhood wins.
	{"brooklyn", "Brooklyn"},
	{"queens", "Queens"},
}

// ExtractNeighborhood maps free-form location text to a canonical
// neighborhood name. Returns "" when nothing matches.
func ExtractNeighborhood(location string) string {
	lower := strings.ToLower(location)
	for _, n := range neighborhoodByKeyword {
		if strings.Contains(lower, n.keyword) {
			return n.name
		}
	}
	return ""
}
