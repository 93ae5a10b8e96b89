package utils

import (
	"testing"

	"rutero/internal/models"
)

func TestParseWeekday_Variants(t *testing.T) {
	tests := []struct {
		label    string
		expected models.Weekday
	}{
		{"monday", models.Monday},
		{"Monday", models.Monday},
		{"LUNES", models.Monday},
		{"Miércoles", models.Wednesday},
		{"MIÉRCOLES", models.Wednesday},
		{"miercoles", models.Wednesday},
		{"sábado", models.Saturday},
		{"Sab", models.Saturday},
		{"  jueves  ", models.Thursday},
		{"dom", models.Sunday},
		{"tue", models.Tuesday},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseWeekday(tt.label)
			if err != nil {
				t.Fatalf("ParseWeekday(%q) failed: %v", tt.label, err)
			}
			if got != tt.expected {
				t.Errorf("ParseWeekday(%q) = %s, want %s", tt.label, got, tt.expected)
			}
		})
	}
}

func TestParseWeekday_Invalid(t *testing.T) {
	for _, label := range []string{"", "someday", "lunes2"} {
		if _, err := ParseWeekday(label); err == nil {
			t.Errorf("ParseWeekday(%q) should fail", label)
		}
	}
}

func TestFoldDayLabel(t *testing.T) {
	if got := FoldDayLabel(" MIÉRCOLES "); got != "miercoles" {
		t.Errorf("FoldDayLabel = %q, want %q", got, "miercoles")
	}
}
