package utils

import "testing"

func TestMatchCustomerName(t *testing.T) {
	tests := []struct {
		query, candidate string
		want             bool
	}{
		{"NetJets", "netjets", true},
		{"Air Culinaire", "Air Culinaire Worldwide", true},
		{"Air Culinaire Worldwide LLC", "Air Culinaire Worldwide", true},
		{"Worldwide Culinaire", "Air Culinaire Worldwide", true},
		{"Wheels-Up", "Wheels Up", true},
		{"wheelsup", "Wheels Up Inc.", true},
		{"Jet Aviation", "Jet Aviation - Teterboro", true},
		{"VistaJet", "Flexjet", false},
		{"Air Culinaire", "NetJets", false},
		{"", "NetJets", false},
		{"NetJets", "", false},
	}
	for _, tt := range tests {
		if got := MatchCustomerName(tt.query, tt.candidate); got != tt.want {
			t.Errorf("MatchCustomerName(%q, %q) = %v, want %v", tt.query, tt.candidate, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"  Air  Culinaire, Inc. ": "air culinaire inc",
		"O'Hare Catering":         "ohare catering",
		"Jet-Aviation/TEB":        "jet aviation teb",
	}
	for in, want := range tests {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
