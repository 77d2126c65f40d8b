package fixture

import (
	"errors"
	"testing"
	"time"
)

var testZone = time.FixedZone("ART", -3*60*60)

func TestParseKickoff(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, testZone)

	tests := []struct {
		name       string
		datePhrase string
		timePhrase string
		wantYear   int
		wantMonth  time.Month
		wantDay    int
		wantHour   int
		wantMinute int
	}{
		{
			name:       "Weekday prefix and de connector",
			datePhrase: "Dom., 1 de Feb.",
			timePhrase: "21:30",
			wantYear:   2026,
			wantMonth:  time.February,
			wantDay:    1,
			wantHour:   21,
			wantMinute: 30,
		},
		{
			name:       "Bare day and month",
			datePhrase: "14 Mar",
			timePhrase: "18:00",
			wantYear:   2026,
			wantMonth:  time.March,
			wantDay:    14,
			wantHour:   18,
		},
		{
			name:       "PM conversion",
			datePhrase: "Sab., 7 de Feb.",
			timePhrase: "7:15 PM",
			wantYear:   2026,
			wantMonth:  time.February,
			wantDay:    7,
			wantHour:   19,
			wantMinute: 15,
		},
		{
			name:       "Noon stays twelve",
			datePhrase: "1 Feb",
			timePhrase: "12:00 PM",
			wantYear:   2026,
			wantMonth:  time.February,
			wantDay:    1,
			wantHour:   12,
		},
		{
			name:       "Midnight becomes zero",
			datePhrase: "1 Feb",
			timePhrase: "12:00 AM",
			wantYear:   2026,
			wantMonth:  time.February,
			wantDay:    1,
			wantHour:   0,
		},
		{
			name:       "Time not announced sentinel",
			datePhrase: "Mie., 4 de Mar.",
			timePhrase: "P.A.",
			wantYear:   2026,
			wantMonth:  time.March,
			wantDay:    4,
		},
		{
			name:       "Empty time phrase",
			datePhrase: "4 Mar",
			timePhrase: "",
			wantYear:   2026,
			wantMonth:  time.March,
			wantDay:    4,
		},
		{
			name:       "A confirmar sentinel",
			datePhrase: "4 Mar",
			timePhrase: "A conf.",
			wantYear:   2026,
			wantMonth:  time.March,
			wantDay:    4,
		},
		{
			name:       "Month only one behind stays current year",
			datePhrase: "20 Dic",
			timePhrase: "17:00",
			wantYear:   2026,
			wantMonth:  time.December,
			wantDay:    20,
			wantHour:   17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKickoff(tt.datePhrase, tt.timePhrase, now, testZone)
			if err != nil {
				t.Fatalf("ParseKickoff(%q, %q) error: %v", tt.datePhrase, tt.timePhrase, err)
			}

			if got.Year() != tt.wantYear {
				t.Errorf("Year = %d, want %d", got.Year(), tt.wantYear)
			}
			if got.Month() != tt.wantMonth {
				t.Errorf("Month = %v, want %v", got.Month(), tt.wantMonth)
			}
			if got.Day() != tt.wantDay {
				t.Errorf("Day = %d, want %d", got.Day(), tt.wantDay)
			}
			if got.Hour() != tt.wantHour {
				t.Errorf("Hour = %d, want %d", got.Hour(), tt.wantHour)
			}
			if got.Minute() != tt.wantMinute {
				t.Errorf("Minute = %d, want %d", got.Minute(), tt.wantMinute)
			}
			if got.Location() != testZone {
				t.Errorf("Location = %v, want %v", got.Location(), testZone)
			}
		})
	}
}

func TestParseKickoffYearRollover(t *testing.T) {
	// In December, a February fixture belongs to the next calendar year.
	december := time.Date(2025, time.December, 10, 12, 0, 0, 0, testZone)

	got, err := ParseKickoff("Dom., 1 de Feb.", "21:30", december, testZone)
	if err != nil {
		t.Fatalf("ParseKickoff error: %v", err)
	}

	if got.Year() != 2026 {
		t.Errorf("Year = %d, want 2026", got.Year())
	}

	// November is only one month behind December and stays in the current
	// year.
	got, err = ParseKickoff("30 Nov", "21:30", december, testZone)
	if err != nil {
		t.Fatalf("ParseKickoff error: %v", err)
	}
	if got.Year() != 2025 {
		t.Errorf("Year = %d, want 2025", got.Year())
	}
}

func TestParseKickoffErrors(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, testZone)

	tests := []struct {
		name       string
		datePhrase string
		wantErr    error
	}{
		{"Empty phrase", "", ErrEmptyDate},
		{"Whitespace only", "   ", ErrEmptyDate},
		{"No digits", "Dom., de Feb.", ErrNoDay},
		{"No month", "Dom., 1 de", ErrNoMonth},
		{"English month", "Sun, 1 Jly", ErrNoMonth},
		{"Day out of range", "30 Feb", ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKickoff(tt.datePhrase, "21:30", now, testZone)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseKickoff(%q) error = %v, want %v", tt.datePhrase, err, tt.wantErr)
			}
		})
	}
}

func TestParseKickoffUnmatchedTimeDefaultsToMidnight(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, testZone)

	got, err := ParseKickoff("1 Feb", "en vivo", now, testZone)
	if err != nil {
		t.Fatalf("ParseKickoff error: %v", err)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("got %02d:%02d, want 00:00", got.Hour(), got.Minute())
	}
}
