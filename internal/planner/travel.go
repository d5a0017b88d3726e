package planner

import "strings"

// DefaultTravelMinutes is assumed when either endpoint of a trip is
// unknown. It sits inside common budgets so missing data biases toward
// inclusion rather than exclusion.
const DefaultTravelMinutes = 20

type hoodPair struct {
	from, to string
}

// travelMatrix holds approximate subway travel times in minutes between
// NYC neighborhoods. Each directed pair stands on its own: bridge and
// transfer asymmetries are real, so a missing direction is never inferred
// from its reverse. Sparse on purpose; anything absent falls back to
// DefaultTravelMinutes.
var travelMatrix = map[hoodPair]int{
	{"harlem", "harlem"}:          0,
	{"harlem", "upper west side"}: 15,
	{"harlem", "upper east side"}: 20,
	{"harlem", "midtown"}:         20,
	{"harlem", "hell's kitchen"}:  25,
	{"harlem", "west village"}:    30,
	{"harlem", "east village"}:    35,
	{"harlem", "lower east side"}: 40,
	{"harlem", "williamsburg"}:    45,
	{"harlem", "bushwick"}:        50,
	{"harlem", "astoria"}:         40,

	{"midtown", "midtown"}:         0,
	{"midtown", "harlem"}:          20,
	{"midtown", "hell's kitchen"}:  10,
	{"midtown", "west village"}:    15,
	{"midtown", "east village"}:    20,
	{"midtown", "lower east side"}: 25,
	{"midtown", "williamsburg"}:    25,
	{"midtown", "bushwick"}:        40,
	{"midtown", "astoria"}:         25,
	{"midtown", "upper west side"}: 15,
	{"midtown", "upper east side"}: 15,

	{"west village", "west village"}:    0,
	{"west village", "east village"}:    15,
	{"west village", "lower east side"}: 15,
	{"west village", "midtown"}:         15,
	{"west village", "harlem"}:          35,
	{"west village", "williamsburg"}:    25,
	{"west village", "bushwick"}:        40,

	{"east village", "east village"}:    0,
	{"east village", "lower east side"}: 10,
	{"east village", "west village"}:    15,
	{"east village", "williamsburg"}:    15,
	{"east village", "bushwick"}:        30,
	{"east village", "midtown"}:         20,
	{"east village", "harlem"}:          35,

	{"lower east side", "lower east side"}: 0,
	{"lower east side", "east village"}:    10,
	{"lower east side", "williamsburg"}:    15,
	{"lower east side", "bushwick"}:        25,
	{"lower east side", "midtown"}:         25,
	{"lower east side", "harlem"}:          40,

	{"williamsburg", "williamsburg"}:    0,
	{"williamsburg", "bushwick"}:        15,
	{"williamsburg", "greenpoint"}:      10,
	{"williamsburg", "lower east side"}: 15,
	{"williamsburg", "east village"}:    15,
	{"williamsburg", "midtown"}:         25,
	{"williamsburg", "harlem"}:          45,

	{"bushwick", "bushwick"}:     0,
	{"bushwick", "williamsburg"}: 15,
	{"bushwick", "east village"}: 30,
	{"bushwick", "midtown"}:      40,
	{"bushwick", "harlem"}:       55,

	{"astoria", "astoria"}: 0,
	{"astoria", "midtown"}: 25,
	{"astoria", "harlem"}:  40,

	{"park slope", "park slope"}:      0,
	{"park slope", "williamsburg"}:    30,
	{"park slope", "lower east side"}: 30,
	{"park slope", "midtown"}:         35,
}

// TravelMinutes estimates travel time from home to an event
// neighborhood. The second return reports whether the estimate came from
// the matrix or is the unknown-pair default.
func TravelMinutes(home, neighborhood string) (int, bool) {
	from := strings.ToLower(strings.TrimSpace(home))
	to := strings.ToLower(strings.TrimSpace(neighborhood))
	if from == "" || to == "" || to == "tbd" {
		return DefaultTravelMinutes, false
	}
	if m, ok := travelMatrix[hoodPair{from, to}]; ok {
		return m, true
	}
	return DefaultTravelMinutes, false
}
