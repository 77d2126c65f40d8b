package fixture

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"futbolcal/internal/config"
)

// GraceWindow is how long after kickoff a match still counts as upcoming.
// Covers matches currently in progress when the generator runs.
const GraceWindow = 3 * time.Hour

// uidNamespace seeds the SHA1 UUIDs used as calendar event identifiers.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("futbol-calendar.github.io"))

// Fixture is a normalized scheduled match record.
type Fixture struct {
	Subject     config.Subject `json:"subject"`
	Kickoff     time.Time      `json:"kickoff"`
	HomeTeam    string         `json:"home_team"`
	AwayTeam    string         `json:"away_team"`
	Competition string         `json:"competition"`
	Venue       string         `json:"venue"`
}

// KickoffText returns the kickoff formatted as RFC 3339. The fixed-width,
// zero-padded form makes lexicographic order match chronological order.
func (f Fixture) KickoffText() string {
	return f.Kickoff.Format(time.RFC3339)
}

// Key returns the identity key used for deduplication across sources. Two
// fixtures are the same match iff their keys match exactly; team-name
// variants are deliberately not reconciled.
func (f Fixture) Key() string {
	return f.HomeTeam + "|" + f.AwayTeam + "|" + f.KickoffText()
}

// UID returns a deterministic identifier for the fixture, stable across
// process runs so subscribed clients never see duplicate events on refresh.
func (f Fixture) UID() string {
	return uuid.NewSHA1(uidNamespace, []byte(f.Key())).String()
}

// Stale reports whether the fixture kicked off more than GraceWindow before
// now.
func (f Fixture) Stale(now time.Time) bool {
	return f.Kickoff.Before(now.Add(-GraceWindow))
}

// Merge concatenates fixture batches, drops duplicates by identity key
// (first occurrence wins, so the first-seen venue and competition are
// retained), and sorts the result by kickoff ascending.
func Merge(batches ...[]Fixture) []Fixture {
	seen := make(map[string]bool)
	merged := make([]Fixture, 0)

	for _, batch := range batches {
		for _, f := range batch {
			key := f.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, f)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].KickoffText() < merged[j].KickoffText()
	})

	return merged
}
