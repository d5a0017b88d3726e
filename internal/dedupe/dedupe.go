// Package dedupe collapses the merged event stream to one record per
// cross-source identity key.
package dedupe

import (
	"github.com/morlabs/nightplanner/internal/event"
)

// Discard records one dropped duplicate for observability: which later
// record lost, under which key, and which kept record it collided with.
type Discard struct {
	Event event.Event
	Key   string
	// KeptIndex is the position in the returned unique slice of the record
	// that was seen first under the same key.
	KeptIndex int
}

// Deduplicate keeps the first record seen per identity key, in input order,
// and reports every later record it drops. It is applied once to the full
// merged stream so records from different platforms collapse correctly;
// running it again over its own output is a no-op.
func Deduplicate(events []event.Event) ([]event.Event, []Discard) {
	seen := make(map[string]int, len(events))
	unique := make([]event.Event, 0, len(events))
	var discards []Discard

	for _, e := range events {
		key := e.IdentityKey()
		if keptIdx, dup := seen[key]; dup {
			discards = append(discards, Discard{Event: e, Key: key, KeptIndex: keptIdx})
			continue
		}
		seen[key] = len(unique)
		unique = append(unique, e)
	}
	return unique, discards
}
