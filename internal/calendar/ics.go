// Package calendar serializes fixtures into an iCalendar document suitable
// for subscription. Events carry deterministic UIDs so a refreshed
// subscription against unchanged upstream data never produces duplicates.
package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"futbolcal/internal/fixture"
)

const (
	prodID       = "-//Futbol Argentina Calendar//github.io//"
	calendarName = "Futbol Argentina - River, Boca y Seleccion"
	timezoneName = "America/Argentina/Buenos_Aires"
	uidDomain    = "futbol-calendar.github.io"

	// Placeholder duration: true match length is unknown at build time.
	eventDuration = 2 * time.Hour
)

// Build generates the full iCalendar document for a merged fixture list.
// now becomes the DTSTAMP of every event; it is a generation timestamp, not
// persisted across runs.
func Build(fixtures []fixture.Fixture, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(calendarName)))
	ics.WriteString(fmt.Sprintf("X-WR-TIMEZONE:%s\r\n", timezoneName))

	for _, f := range fixtures {
		writeEvent(&ics, f, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// WriteFile builds the calendar and writes it to path.
func WriteFile(path string, fixtures []fixture.Fixture, now time.Time) error {
	if err := os.WriteFile(path, []byte(Build(fixtures, now)), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func writeEvent(ics *strings.Builder, f fixture.Fixture, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", f.UID(), uidDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))

	// Kickoffs are converted to UTC for cross-client compatibility;
	// Outlook in particular mishandles floating local times.
	start := f.Kickoff.UTC()
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(eventDuration))))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(eventTitle(f))))
	ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(f.Venue)))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(eventDescription(f))))

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// eventTitle derives the event summary from the teams and competition.
func eventTitle(f fixture.Fixture) string {
	title := fmt.Sprintf("%s vs %s", f.HomeTeam, f.AwayTeam)
	if f.Competition != "" {
		title += fmt.Sprintf(" (%s)", f.Competition)
	}
	return title
}

// eventDescription restates the fixture in a fixed multi-line template.
func eventDescription(f fixture.Fixture) string {
	competition := f.Competition
	if competition == "" {
		competition = "N/A"
	}
	return fmt.Sprintf(
		"Competencia: %s\nLocal: %s\nVisitante: %s\nEstadio: %s\n\nCalendario generado automaticamente",
		competition, f.HomeTeam, f.AwayTeam, f.Venue)
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
