package generator

import (
	"errors"
	"testing"
	"time"

	"futbolcal/internal/config"
	"futbolcal/internal/fixture"
)

func TestSeedSource(t *testing.T) {
	cfg := config.Default()
	cfg.Seeds = []config.SeedFixture{
		{
			Subject:     config.SubjectArgentina,
			Kickoff:     "2026-03-27T15:00:00-03:00",
			HomeTeam:    "Argentina",
			AwayTeam:    "Espana",
			Competition: "Finalissima 2026 (CONMEBOL-UEFA)",
			Venue:       "Estadio Lusail, Qatar",
		},
		{
			// Already played, outside the grace window.
			Subject:     config.SubjectArgentina,
			Kickoff:     "2025-06-01T20:00:00-03:00",
			HomeTeam:    "Argentina",
			AwayTeam:    "Chile",
			Competition: "Amistoso",
		},
		{
			// Malformed kickoff, skipped with a warning.
			Subject:  config.SubjectArgentina,
			Kickoff:  "27 de marzo",
			HomeTeam: "Argentina",
			AwayTeam: "Francia",
		},
	}

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	src := seedSource{cfg: cfg, now: func() time.Time { return now }}

	fixtures, err := src.Fixtures()
	if err != nil {
		t.Fatalf("Fixtures failed: %v", err)
	}

	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1", len(fixtures))
	}

	f := fixtures[0]
	if f.AwayTeam != "Espana" {
		t.Errorf("AwayTeam = %q, want Espana", f.AwayTeam)
	}
	if f.Venue != "Estadio Lusail, Qatar" {
		t.Errorf("Venue = %q", f.Venue)
	}
	if !f.Kickoff.Equal(time.Date(2026, time.March, 27, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("Kickoff = %v, want 2026-03-27T18:00Z", f.Kickoff)
	}
}

func TestSeedSourceDefaultsVenue(t *testing.T) {
	cfg := config.Default()
	cfg.Seeds = []config.SeedFixture{
		{
			Subject:     config.SubjectBoca,
			Kickoff:     "2026-05-01T21:00:00-03:00",
			HomeTeam:    "Boca Juniors",
			AwayTeam:    "Palmeiras",
			Competition: "Copa Libertadores",
		},
	}

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	src := seedSource{cfg: cfg, now: func() time.Time { return now }}

	fixtures, err := src.Fixtures()
	if err != nil {
		t.Fatalf("Fixtures failed: %v", err)
	}
	if len(fixtures) != 1 {
		t.Fatalf("got %d fixtures, want 1", len(fixtures))
	}
	if fixtures[0].Venue != config.VenueTBC {
		t.Errorf("Venue = %q, want %q", fixtures[0].Venue, config.VenueTBC)
	}
}

type stubSource struct {
	name     string
	fixtures []fixture.Fixture
	err      error
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Fixtures() ([]fixture.Fixture, error) { return s.fixtures, s.err }

func TestRunSourceTreatsFailureAsEmpty(t *testing.T) {
	g := New(config.Default())

	got := g.runSource(stubSource{name: "broken", err: errors.New("connection refused")})
	if got != nil {
		t.Errorf("failed source should contribute nil, got %v", got)
	}

	want := []fixture.Fixture{{HomeTeam: "River Plate", AwayTeam: "Talleres"}}
	got = g.runSource(stubSource{name: "ok", fixtures: want})
	if len(got) != 1 {
		t.Errorf("got %d fixtures, want 1", len(got))
	}
}
