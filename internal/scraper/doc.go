// Package scraper fetches and parses ESPN fixture tables for the tracked
// teams. It extracts candidate fixtures from table rows with a fixed column
// order (date, home, separator, away, time, competition), normalizes kickoff
// phrases through the fixture package, and drops rows that fail the
// competition allow-list or the staleness window. Individual malformed rows
// are skipped, never fatal, since the scraped markup is not a contract.
package scraper
