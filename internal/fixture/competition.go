package fixture

import (
	"strings"

	"futbolcal/internal/config"
)

// Filter classifies free-text competition labels as in-scope or not per
// subject. There is no rejection list: a label that matches nothing on the
// allow-list is excluded, which is what keeps reserve and youth fixtures out
// of the calendar.
type Filter struct {
	club     []string
	national []string
	isNat    map[config.Subject]bool
}

// NewFilter builds a filter from the configured allow-lists.
func NewFilter(cfg *config.Config) *Filter {
	f := &Filter{
		club:     lowered(cfg.ClubCompetitions),
		national: lowered(cfg.NationalCompetitions),
		isNat:    make(map[config.Subject]bool, len(cfg.Teams)),
	}
	for subject, team := range cfg.Teams {
		f.isNat[subject] = team.IsNational
	}
	return f
}

// Allowed reports whether the competition label is in scope for the subject.
// Matching is case-insensitive substring containment against the subject's
// allow-list.
func (f *Filter) Allowed(label string, subject config.Subject) bool {
	list := f.club
	if f.isNat[subject] {
		list = f.national
	}

	lower := strings.ToLower(label)
	for _, allowed := range list {
		if strings.Contains(lower, allowed) {
			return true
		}
	}
	return false
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
