// Package feed extracts fixtures from the ESPN scoreboard API, the
// structured counterpart to the HTML table scraper. Kickoff timestamps in
// the feed already carry explicit offsets, so no locale parsing is needed;
// subject attribution is by numeric ESPN team ID rather than table
// provenance.
package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"futbolcal/internal/config"
	"futbolcal/internal/fixture"
	"futbolcal/internal/logger"
)

const (
	scoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/soccer/%s/scoreboard?dates=%s"

	// The scoreboard is sampled one day per week across this horizon.
	horizonDays = 120
	stepDays    = 7
)

// scoreboardResponse mirrors the subset of the scoreboard payload the
// generator reads.
type scoreboardResponse struct {
	Events []struct {
		Date   string `json:"date"`
		Season struct {
			Type struct {
				Name string `json:"name"`
			} `json:"type"`
		} `json:"season"`
		Competitions []struct {
			Venue struct {
				FullName string `json:"fullName"`
			} `json:"venue"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Team     struct {
					ID          string `json:"id"`
					DisplayName string `json:"displayName"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// Client fetches scheduled matches from the scoreboard API.
type Client struct {
	httpClient *http.Client
	userAgent  string
	cfg        *config.Config
	league     string

	// Now is the clock used for the sampling window and staleness checks.
	// Overridable in tests.
	Now func() time.Time
}

// New creates a scoreboard client for the Argentine league.
func New(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTP.FeedTimeout},
		userAgent:  cfg.HTTP.UserAgent,
		cfg:        cfg,
		league:     "arg.1",
		Now:        time.Now,
	}
}

// Fixtures samples the scoreboard weekly over the coming months and returns
// every scheduled match involving a tracked club. Failures on individual
// sample dates contribute nothing; a fully unreachable API yields an empty
// list, never an aborted run.
func (c *Client) Fixtures() ([]fixture.Fixture, error) {
	now := c.Now()
	fixtures := make([]fixture.Fixture, 0)

	for daysAhead := 0; daysAhead < horizonDays; daysAhead += stepDays {
		target := now.AddDate(0, 0, daysAhead)
		batch, err := c.fetchDate(target)
		if err != nil {
			logger.Debug("scoreboard sample failed", logger.Fields{
				"date":  target.Format("20060102"),
				"error": err.Error(),
			})
			continue
		}
		fixtures = append(fixtures, c.extract(batch, now)...)
	}

	return fixtures, nil
}

func (c *Client) fetchDate(date time.Time) (*scoreboardResponse, error) {
	url := fmt.Sprintf(scoreboardURL, c.league, date.Format("20060102"))

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching scoreboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding scoreboard: %w", err)
	}

	return &payload, nil
}

// extract converts scoreboard events involving a tracked club into
// fixtures. Events without a tracked team or with an unreadable kickoff are
// skipped.
func (c *Client) extract(payload *scoreboardResponse, now time.Time) []fixture.Fixture {
	fixtures := make([]fixture.Fixture, 0, len(payload.Events))

	for _, event := range payload.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]

		kickoff, err := parseFeedTime(event.Date)
		if err != nil {
			logger.Debug("event skipped", logger.Fields{
				"reason": "unparseable kickoff",
				"date":   event.Date,
			})
			logger.Incr("feed.events_skipped")
			continue
		}
		kickoff = kickoff.In(c.cfg.Location())

		var homeTeam, awayTeam string
		var subject config.Subject
		var tracked bool

		for _, competitor := range comp.Competitors {
			if competitor.HomeAway == "home" {
				homeTeam = competitor.Team.DisplayName
			} else {
				awayTeam = competitor.Team.DisplayName
			}
			if s, ok := c.cfg.SubjectForESPNID(competitor.Team.ID); ok {
				subject = s
				tracked = true
			}
		}

		if !tracked {
			continue
		}

		competition := event.Season.Type.Name
		if competition == "" {
			competition = "Liga Profesional"
		}

		venue := comp.Venue.FullName
		if venue == "" {
			venue = config.VenueTBC
		}

		f := fixture.Fixture{
			Subject:     subject,
			Kickoff:     kickoff,
			HomeTeam:    homeTeam,
			AwayTeam:    awayTeam,
			Competition: competition,
			Venue:       venue,
		}

		if f.Stale(now) {
			logger.Debug("event skipped", logger.Fields{
				"reason":  "kickoff in the past",
				"kickoff": f.KickoffText(),
			})
			logger.Incr("feed.events_skipped")
			continue
		}

		fixtures = append(fixtures, f)
	}

	return fixtures
}

// parseFeedTime parses scoreboard kickoffs, which arrive as RFC 3339 with
// either a Z suffix or an explicit offset, sometimes without seconds.
func parseFeedTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}
