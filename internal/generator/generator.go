// Package generator orchestrates a calendar run: it executes every fixture
// source sequentially, merges the batches, and writes the resulting
// iCalendar file. Source failures degrade to empty contributions so a
// partial calendar is always produced in preference to none.
package generator

import (
	"fmt"
	"time"

	"futbolcal/internal/calendar"
	"futbolcal/internal/config"
	"futbolcal/internal/feed"
	"futbolcal/internal/fixture"
	"futbolcal/internal/logger"
	"futbolcal/internal/scraper"
)

// Source produces a batch of fixtures. The scoreboard feed, the fixture
// table scrapes, and the hardcoded seed list all implement it.
type Source interface {
	Name() string
	Fixtures() ([]fixture.Fixture, error)
}

// Generator runs the full collection pipeline.
type Generator struct {
	cfg      *config.Config
	feed     *feed.Client
	scraper  *scraper.Scraper
	clubs    []config.Subject
	national config.Subject

	// Now is the generation clock. Overridable in tests.
	Now func() time.Time
}

// New wires a generator from the static configuration.
func New(cfg *config.Config) *Generator {
	filter := fixture.NewFilter(cfg)
	return &Generator{
		cfg:      cfg,
		feed:     feed.New(cfg),
		scraper:  scraper.New(cfg, filter),
		clubs:    []config.Subject{config.SubjectRiver, config.SubjectBoca},
		national: config.SubjectArgentina,
		Now:      time.Now,
	}
}

// Collect runs every source in order and returns the merged, deduplicated,
// chronologically sorted fixture list. The direct club schedule scrape only
// runs when the scoreboard feed comes back empty, mirroring the feed's role
// as the preferred source for domestic matches.
func (g *Generator) Collect() []fixture.Fixture {
	batches := make([][]fixture.Fixture, 0)

	scoreboard := g.runSource(scoreboardSource{g.feed})
	batches = append(batches, scoreboard)

	if len(scoreboard) == 0 {
		logger.Info("scoreboard empty, falling back to schedule scrape", nil)
		for _, subject := range g.clubs {
			batches = append(batches, g.runSource(clubSource{g.scraper, subject}))
		}
	}

	for _, subject := range g.clubs {
		batches = append(batches, g.runSource(cupSource{g.scraper, subject}))
	}

	batches = append(batches, g.runSource(nationalSource{g.scraper, g.national}))
	batches = append(batches, g.runSource(seedSource{g.cfg, g.Now}))

	return fixture.Merge(batches...)
}

// runSource executes one source, treating any failure as an empty result.
func (g *Generator) runSource(src Source) []fixture.Fixture {
	fixtures, err := src.Fixtures()
	if err != nil {
		logger.Warn("source failed", logger.Fields{
			"source": src.Name(),
			"error":  err.Error(),
		})
		logger.Incr("generator.sources_failed")
		return nil
	}

	logger.Info("source fetched", logger.Fields{
		"source":   src.Name(),
		"fixtures": len(fixtures),
	})
	logger.Add("generator.fixtures_fetched", int64(len(fixtures)))
	return fixtures
}

// Run collects fixtures, writes the calendar file, and logs a summary of
// the next matches. When dryRun is set the document is returned without
// touching the filesystem.
func (g *Generator) Run(outputPath string, dryRun bool) (string, error) {
	fixtures := g.Collect()
	now := g.Now()

	logger.Info("calendar built", logger.Fields{
		"events":   len(fixtures),
		"output":   outputPath,
		"counters": logger.CountersSnapshot(),
	})

	for i, f := range fixtures {
		if i >= 10 {
			break
		}
		logger.Info("upcoming match", logger.Fields{
			"kickoff":     f.Kickoff.Format("02/01 15:04"),
			"home":        f.HomeTeam,
			"away":        f.AwayTeam,
			"competition": f.Competition,
		})
	}

	doc := calendar.Build(fixtures, now)
	if dryRun {
		return doc, nil
	}

	if err := calendar.WriteFile(outputPath, fixtures, now); err != nil {
		return "", err
	}
	return doc, nil
}

type scoreboardSource struct {
	client *feed.Client
}

func (s scoreboardSource) Name() string { return "scoreboard" }

func (s scoreboardSource) Fixtures() ([]fixture.Fixture, error) {
	return s.client.Fixtures()
}

type clubSource struct {
	scraper *scraper.Scraper
	subject config.Subject
}

func (s clubSource) Name() string { return fmt.Sprintf("schedule:%s", s.subject) }
func (s clubSource) Fixtures() ([]fixture.Fixture, error) {
	return s.scraper.ClubFixtures(s.subject)
}

type cupSource struct {
	scraper *scraper.Scraper
	subject config.Subject
}

func (s cupSource) Name() string { return fmt.Sprintf("cups:%s", s.subject) }
func (s cupSource) Fixtures() ([]fixture.Fixture, error) {
	return s.scraper.CupFixtures(s.subject)
}

type nationalSource struct {
	scraper *scraper.Scraper
	subject config.Subject
}

func (s nationalSource) Name() string { return fmt.Sprintf("national:%s", s.subject) }
func (s nationalSource) Fixtures() ([]fixture.Fixture, error) {
	return s.scraper.NationalFixtures(s.subject)
}

// seedSource contributes the hardcoded fixtures for known future matches
// that upstream does not carry yet. Deduplication removes a seed once the
// same match appears in a live source.
type seedSource struct {
	cfg *config.Config
	now func() time.Time
}

func (s seedSource) Name() string { return "seeds" }

func (s seedSource) Fixtures() ([]fixture.Fixture, error) {
	now := s.now()
	fixtures := make([]fixture.Fixture, 0, len(s.cfg.Seeds))

	for _, seed := range s.cfg.Seeds {
		kickoff, err := time.Parse(time.RFC3339, seed.Kickoff)
		if err != nil {
			logger.Warn("seed fixture skipped", logger.Fields{
				"kickoff": seed.Kickoff,
				"error":   err.Error(),
			})
			continue
		}

		venue := seed.Venue
		if venue == "" {
			venue = config.VenueTBC
		}

		f := fixture.Fixture{
			Subject:     seed.Subject,
			Kickoff:     kickoff,
			HomeTeam:    seed.HomeTeam,
			AwayTeam:    seed.AwayTeam,
			Competition: seed.Competition,
			Venue:       venue,
		}

		if f.Stale(now) {
			continue
		}
		fixtures = append(fixtures, f)
	}

	return fixtures, nil
}
