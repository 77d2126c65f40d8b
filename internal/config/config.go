// Package config holds the static configuration for the fixture calendar
// generator: tracked teams, competition allow-lists, seed fixtures, and
// HTTP/output settings.
//
// Configuration is immutable after Load. Built-in defaults cover the three
// tracked subjects (River Plate, Boca Juniors, the Argentina national team);
// an optional YAML file pointed to by the FUTBOLCAL_CONFIG environment
// variable can override any of them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv   = "FUTBOLCAL_CONFIG"
	defaultTimezone = "America/Argentina/Buenos_Aires"

	// DefaultOutputFile is the fixed calendar filename written each run.
	DefaultOutputFile = "futbol-argentina.ics"

	// VenueTBC is the sentinel venue used when the source carries none.
	VenueTBC = "Por confirmar"
)

// Subject identifies one of the tracked entities.
type Subject string

const (
	SubjectRiver     Subject = "river"
	SubjectBoca      Subject = "boca"
	SubjectArgentina Subject = "argentina"
)

// Team describes a tracked team as ESPN knows it.
type Team struct {
	ESPNID     string            `yaml:"espnId"`
	Name       string            `yaml:"name"`
	Slug       string            `yaml:"slug"`
	Leagues    map[string]string `yaml:"leagues"`
	IsNational bool              `yaml:"isNational"`
}

// SeedFixture is a hardcoded future fixture not yet carried upstream.
type SeedFixture struct {
	Subject     Subject `yaml:"subject"`
	Kickoff     string  `yaml:"kickoff"` // RFC 3339 with offset
	HomeTeam    string  `yaml:"homeTeam"`
	AwayTeam    string  `yaml:"awayTeam"`
	Competition string  `yaml:"competition"`
	Venue       string  `yaml:"venue"`
}

// HTTPConfig bounds outbound requests.
type HTTPConfig struct {
	UserAgent     string        `yaml:"userAgent"`
	ScrapeTimeout time.Duration `yaml:"scrapeTimeout"`
	FeedTimeout   time.Duration `yaml:"feedTimeout"`
}

// Config is the full static configuration, loaded once at process start and
// passed explicitly into components.
type Config struct {
	Timezone             string           `yaml:"timezone"`
	Teams                map[Subject]Team `yaml:"teams"`
	ClubCompetitions     []string         `yaml:"clubCompetitions"`
	NationalCompetitions []string         `yaml:"nationalCompetitions"`
	Seeds                []SeedFixture    `yaml:"seeds"`
	HTTP                 HTTPConfig       `yaml:"http"`
	OutputFile           string           `yaml:"outputFile"`

	location *time.Location `yaml:"-"`
}

// Location resolves the configured timezone. Defaults to UTC if the zone
// cannot be loaded, so callers never receive nil.
func (c *Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.UTC
}

// TeamBySubject returns the team entry for a subject.
func (c *Config) TeamBySubject(s Subject) (Team, bool) {
	t, ok := c.Teams[s]
	return t, ok
}

// SubjectForESPNID resolves an ESPN numeric team ID to a tracked subject.
// Used by the structured-feed source, where table provenance is unavailable.
func (c *Config) SubjectForESPNID(id string) (Subject, bool) {
	for subject, team := range c.Teams {
		if team.ESPNID == id {
			return subject, true
		}
	}
	return "", false
}

// Default returns the built-in configuration with its timezone resolved.
func Default() *Config {
	cfg := &Config{
		Timezone: defaultTimezone,
		Teams: map[Subject]Team{
			SubjectRiver: {
				ESPNID: "16",
				Name:   "River Plate",
				Slug:   "river-plate",
				Leagues: map[string]string{
					"liga":         "arg.1",
					"sudamericana": "conmebol.sudamericana",
				},
			},
			SubjectBoca: {
				ESPNID: "5",
				Name:   "Boca Juniors",
				Slug:   "boca-juniors",
				Leagues: map[string]string{
					"liga":         "arg.1",
					"libertadores": "conmebol.libertadores",
				},
			},
			SubjectArgentina: {
				ESPNID: "202",
				Name:   "Argentina",
				Slug:   "argentina",
				Leagues: map[string]string{
					"mundial": "fifa.world",
				},
				IsNational: true,
			},
		},
		ClubCompetitions: []string{
			"liga profesional",
			"copa de la liga",
			"copa argentina",
			"copa libertadores",
			"libertadores",
			"copa sudamericana",
			"sudamericana",
			"supercopa",
			"trofeo de campeones",
			"recopa",
		},
		NationalCompetitions: []string{
			"fifa world cup",
			"world cup",
			"mundial",
			"copa del mundo",
			"friendly",
			"amistoso",
			"international friendly",
			"finalissima",
			"conmebol-uefa",
		},
		Seeds: []SeedFixture{
			{
				Subject:     SubjectArgentina,
				Kickoff:     "2026-03-27T15:00:00-03:00",
				HomeTeam:    "Argentina",
				AwayTeam:    "Espana",
				Competition: "Finalissima 2026 (CONMEBOL-UEFA)",
				Venue:       "Estadio Lusail, Qatar",
			},
		},
		HTTP: HTTPConfig{
			UserAgent:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			ScrapeTimeout: 30 * time.Second,
			FeedTimeout:   15 * time.Second,
		},
		OutputFile: DefaultOutputFile,
	}
	cfg.bindTimezone()
	return cfg
}

// Load builds the configuration from defaults, applying YAML overrides from
// the file named by FUTBOLCAL_CONFIG when set. A missing or malformed
// override file falls back to defaults rather than failing the run.
func Load() *Config {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		if err := cfg.applyFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		}
	}

	cfg.bindTimezone()
	return cfg
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) bindTimezone() {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}
	c.location = loc
}
