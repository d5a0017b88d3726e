package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/morlabs/nightplanner/internal/event"
)

var priceTokenRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePrice extracts price bounds from free-form price text.
//
//	""            -> 0, 0        (listings omit the price when entry is free)
//	"Free"        -> 0, 0
//	"$25"         -> 25, 25
//	"$20-40"      -> 20, 40
//	"Varies"      -> nil, nil    (never guess a number)
func ParsePrice(text string) (*float64, *float64) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.Contains(strings.ToLower(trimmed), "free") {
		return event.Float64Ptr(0), event.Float64Ptr(0)
	}

	tokens := priceTokenRe.FindAllString(trimmed, 2)
	switch len(tokens) {
	case 1:
		v, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return nil, nil
		}
		return event.Float64Ptr(v), event.Float64Ptr(v)
	case 2:
		lo, err1 := strconv.ParseFloat(tokens[0], 64)
		hi, err2 := strconv.ParseFloat(tokens[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		return event.Float64Ptr(lo), event.Float64Ptr(hi)
	}
	return nil, nil
}
