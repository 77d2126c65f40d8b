package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"futbolcal/internal/config"
	"futbolcal/internal/fixture"
	"futbolcal/internal/logger"
)

const (
	// Fixture pages live on two ESPN hosts: the Spanish-language Argentine
	// site for domestic schedules and the international site for cup and
	// national-team pages.
	clubScheduleURL  = "https://www.espn.com.ar/futbol/equipo/calendario/_/id/%s/%s"
	leagueFixtureURL = "https://www.espn.com/soccer/team/fixtures/_/id/%s/league/%s/%s"
	teamFixtureURL   = "https://www.espn.com/soccer/team/fixtures/_/id/%s/%s"

	// Match rows carry this literal in the separator column; header, ad and
	// bye rows do not.
	separatorMarker = "v"

	domesticLeagueCode = "arg.1"
)

// tableLayout describes the shape of one ESPN fixture-table variant.
type tableLayout struct {
	minCells int
	// hasCompetitionColumn marks tables with a sixth competition cell. Rows
	// in tables without one are contextually pre-filtered (the page is
	// already specific to one cup), so no allow-list check runs.
	hasCompetitionColumn bool
	// competitionOptional admits rows without the competition cell even
	// when the table usually has one (national-team pages mix both).
	competitionOptional bool
	defaultCompetition  string
}

// Scraper extracts fixtures from ESPN fixture pages.
type Scraper struct {
	client    *http.Client
	userAgent string
	cfg       *config.Config
	filter    *fixture.Filter

	// Now is the clock used for year resolution and staleness checks.
	// Overridable in tests.
	Now func() time.Time
}

// New creates a Scraper bound to the static configuration.
func New(cfg *config.Config, filter *fixture.Filter) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: cfg.HTTP.ScrapeTimeout},
		userAgent: cfg.HTTP.UserAgent,
		cfg:       cfg,
		filter:    filter,
		Now:       time.Now,
	}
}

// ClubFixtures scrapes the domestic schedule page for a club subject. Rows
// are filtered against the club competition allow-list.
func (s *Scraper) ClubFixtures(subject config.Subject) ([]fixture.Fixture, error) {
	team, ok := s.cfg.TeamBySubject(subject)
	if !ok {
		return nil, fmt.Errorf("unknown subject: %s", subject)
	}

	url := fmt.Sprintf(clubScheduleURL, team.ESPNID, team.Slug)
	body, err := s.get(url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseFixtureTables(body, subject, tableLayout{
		minCells:             6,
		hasCompetitionColumn: true,
	})
}

// CupFixtures scrapes the international cup pages for a club subject, one
// per configured league code. The domestic league is skipped (it is covered
// by ClubFixtures and the scoreboard feed). A missing cup page, common
// before the draw, contributes nothing rather than failing the run.
func (s *Scraper) CupFixtures(subject config.Subject) ([]fixture.Fixture, error) {
	team, ok := s.cfg.TeamBySubject(subject)
	if !ok {
		return nil, fmt.Errorf("unknown subject: %s", subject)
	}

	all := make([]fixture.Fixture, 0)
	for name, code := range team.Leagues {
		if code == domesticLeagueCode {
			continue
		}

		url := fmt.Sprintf(leagueFixtureURL, team.ESPNID, code, team.Slug)
		body, err := s.get(url)
		if err != nil {
			logger.Warn("cup page unavailable", logger.Fields{
				"subject": subject,
				"league":  name,
				"error":   err.Error(),
			})
			continue
		}

		fixtures, err := s.parseFixtureTables(body, subject, tableLayout{
			minCells:           5,
			defaultCompetition: cupCompetitionName(name, code, s.Now()),
		})
		body.Close()
		if err != nil {
			logger.Warn("cup page unparseable", logger.Fields{
				"subject": subject,
				"league":  name,
				"error":   err.Error(),
			})
			continue
		}
		all = append(all, fixtures...)
	}

	return all, nil
}

// NationalFixtures scrapes the unfiltered national-team fixture page, which
// carries World Cup, Finalissima and friendly matches. The competition cell
// is present on some rows only; when it is, the national allow-list applies.
func (s *Scraper) NationalFixtures(subject config.Subject) ([]fixture.Fixture, error) {
	team, ok := s.cfg.TeamBySubject(subject)
	if !ok {
		return nil, fmt.Errorf("unknown subject: %s", subject)
	}

	url := fmt.Sprintf(teamFixtureURL, team.ESPNID, team.Slug)
	body, err := s.get(url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseFixtureTables(body, subject, tableLayout{
		minCells:             5,
		hasCompetitionColumn: true,
		competitionOptional:  true,
		defaultCompetition:   team.Name,
	})
}

// get performs a bounded GET and returns the body on HTTP 200.
func (s *Scraper) get(url string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// parseFixtureTables walks every table row in the document and emits the
// fixtures that survive the row contract, the competition filter, date
// normalization, and the staleness window. One bad row never aborts the
// rest.
func (s *Scraper) parseFixtureTables(r io.Reader, subject config.Subject, layout tableLayout) ([]fixture.Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	now := s.Now()
	fixtures := make([]fixture.Fixture, 0)

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < layout.minCells {
			return
		}

		text := func(idx int) string {
			return strings.TrimSpace(cells.Eq(idx).Text())
		}

		datePhrase := text(0)
		homeTeam := text(1)
		separator := text(2)
		awayTeam := text(3)
		timePhrase := text(4)

		if separator != separatorMarker {
			s.skip(subject, "not a match row", nil)
			return
		}

		competition := layout.defaultCompetition
		hasCompetitionCell := cells.Length() > 5 && text(5) != ""
		if layout.hasCompetitionColumn {
			if hasCompetitionCell {
				competition = text(5)
			} else if !layout.competitionOptional {
				s.skip(subject, "missing competition cell", nil)
				return
			}
		}

		// Tables without a competition column are already scoped to one
		// cup, so only filter when a label was actually present.
		if layout.hasCompetitionColumn && hasCompetitionCell &&
			!s.filter.Allowed(competition, subject) {
			s.skip(subject, "competition not allowed", logger.Fields{"competition": competition})
			return
		}

		kickoff, err := fixture.ParseKickoff(datePhrase, timePhrase, now, s.cfg.Location())
		if err != nil {
			s.skip(subject, "unparseable kickoff", logger.Fields{
				"date": datePhrase,
				"time": timePhrase,
			})
			return
		}

		f := fixture.Fixture{
			Subject:     subject,
			Kickoff:     kickoff,
			HomeTeam:    homeTeam,
			AwayTeam:    awayTeam,
			Competition: competition,
			Venue:       config.VenueTBC,
		}

		if f.Stale(now) {
			s.skip(subject, "kickoff in the past", logger.Fields{"kickoff": f.KickoffText()})
			return
		}

		fixtures = append(fixtures, f)
	})

	return fixtures, nil
}

func (s *Scraper) skip(subject config.Subject, reason string, extra logger.Fields) {
	fields := logger.Fields{"subject": subject, "reason": reason}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Debug("row skipped", fields)
	logger.Incr("scraper.rows_skipped")
}

// cupCompetitionName derives a display label for a cup page from its league
// code, tagged with the season year.
func cupCompetitionName(leagueName, leagueCode string, now time.Time) string {
	code := strings.ToLower(leagueCode)
	switch {
	case strings.Contains(code, "libertadores"):
		return fmt.Sprintf("Copa Libertadores %d", now.Year())
	case strings.Contains(code, "sudamericana"):
		return fmt.Sprintf("Copa Sudamericana %d", now.Year())
	default:
		return leagueName
	}
}
