package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		s     string
		lower bool
		want  string
	}{
		{s: "  Calculus II \n", want: "Calculus II"},
		{s: " HIGH ", lower: true, want: "high"},
		{s: "", want: ""},
	}
	for _, tt := range tests {
		if got := CleanString(tt.s, tt.lower); got != tt.want {
			t.Errorf("CleanString(%q, %v) = %q, want %q", tt.s, tt.lower, got, tt.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Organic Chemistry", "CHEM") {
		t.Error("ContainsFold() should ignore case")
	}
	if ContainsFold("Organic Chemistry", "physics") {
		t.Error("ContainsFold() matched a missing substring")
	}
}

func TestRound(t *testing.T) {
	if got := Round(91.66666, 1); got != 91.7 {
		t.Errorf("Round() = %v, want 91.7", got)
	}
	if got := Round(64.05, 0); got != 64 {
		t.Errorf("Round() = %v, want 64", got)
	}
}
