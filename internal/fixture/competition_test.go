package fixture

import (
	"testing"

	"futbolcal/internal/config"
)

func TestFilterAllowed(t *testing.T) {
	f := NewFilter(config.Default())

	tests := []struct {
		label   string
		subject config.Subject
		want    bool
	}{
		{"Copa Libertadores Group Stage", config.SubjectBoca, true},
		{"CONMEBOL Sudamericana", config.SubjectRiver, true},
		{"Liga Profesional de Futbol", config.SubjectRiver, true},
		{"Copa Argentina", config.SubjectBoca, true},
		{"Supercopa Internacional", config.SubjectRiver, true},
		{"Reserve League", config.SubjectRiver, false},
		{"Torneo de Reserva", config.SubjectBoca, false},
		{"FIFA World Cup Qualifier", config.SubjectArgentina, true},
		{"FIFA World Cup Qualifier", config.SubjectBoca, false},
		{"International Friendly", config.SubjectArgentina, true},
		{"Amistoso Internacional", config.SubjectArgentina, true},
		{"Finalissima 2026 (CONMEBOL-UEFA)", config.SubjectArgentina, true},
		{"Liga Profesional", config.SubjectArgentina, false},
		{"", config.SubjectRiver, false},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+string(tt.subject), func(t *testing.T) {
			if got := f.Allowed(tt.label, tt.subject); got != tt.want {
				t.Errorf("Allowed(%q, %s) = %v, want %v", tt.label, tt.subject, got, tt.want)
			}
		})
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	f := NewFilter(config.Default())

	if !f.Allowed("COPA LIBERTADORES", config.SubjectBoca) {
		t.Error("uppercase label should match")
	}
	if !f.Allowed("copa libertadores", config.SubjectBoca) {
		t.Error("lowercase label should match")
	}
}
