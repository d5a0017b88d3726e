package planner

import (
	"regexp"
	"strings"

	"github.com/morlabs/nightplanner/internal/event"
)

// Keyword tables used for vibe classification. Matching is
// case-insensitive on word boundaries so "club" does not fire on
// "clubhouse sandwich".

var intenseWords = []string{
	"rave",
	"techno",
	"warehouse",
	"club",
	"clubbing",
	"dj",
	"djs",
	"edm",
	"electronic",
	"deep house",
	"dance party",
	"all night",
	"afterhours",
	"after hours",
	"underground",
	"bass",
	"drum and bass",
}

var seatedWords = []string{
	"jazz",
	"acoustic",
	"comedy",
	"stand-up",
	"standup",
	"cabaret",
	"burlesque",
	"trivia",
	"spoken word",
	"poetry",
	"open mic",
	"piano",
	"supper",
	"lounge",
	"listening",
	"show",
	"theater",
	"theatre",
}

var dinnerWords = []string{
	"dinner",
	"supper",
	"prix fixe",
	"tasting menu",
	"food",
	"brunch",
	"restaurant",
}

// collegeWords flags events that skew toward a student crowd.
var collegeWords = []string{
	"college",
	"frat",
	"sorority",
	"spring break",
	"student night",
	"pregame",
}

// thirtyPlusVenues are venues known for an older, settled crowd. Matched
// by lowercased substring against the venue name.
var thirtyPlusVenues = []string{
	"blue note",
	"village vanguard",
	"birdland",
	"smalls",
	"comedy cellar",
	"harlem jazz club",
	"minton's",
	"smoke jazz",
	"the django",
	"cafe carlyle",
	"joe's pub",
	"city winery",
}

var (
	intenseRe = wordListRe(intenseWords)
	seatedRe  = wordListRe(seatedWords)
	dinnerRe  = wordListRe(dinnerWords)
	collegeRe = wordListRe(collegeWords)
)

func wordListRe(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// vibeText is the searchable text for classification: title, description
// and tags, never the venue name.
func vibeText(e *event.Event) string {
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteByte('\n')
	b.WriteString(e.Description)
	for _, t := range e.Tags {
		b.WriteByte('\n')
		b.WriteString(t)
	}
	return b.String()
}

func isIntense(text string) bool { return intenseRe.MatchString(text) }
func isSeated(text string) bool  { return seatedRe.MatchString(text) }
func mentionsDinner(text string) bool {
	return dinnerRe.MatchString(text)
}

func isCollegeLeaning(title string) bool {
	return collegeRe.MatchString(title)
}

func isThirtyPlusVenue(venue string) bool {
	v := strings.ToLower(venue)
	for _, known := range thirtyPlusVenues {
		if strings.Contains(v, known) {
			return true
		}
	}
	return false
}
