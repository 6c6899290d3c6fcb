package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"fre", "fr"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"Chinese", "zh"},
		{"mandarin", "zh"},
		{"zh-Hans", "zh"},
		{"en_US", "en"},
		{"xx", "xx"},
		{"klingon", ""},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.input); got != tt.expected {
			t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"zh", "Chinese"},
		{"eng", "English"},
		{"zh-TW", "Chinese"},
		{"xx", "XX"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCased(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"en", true},
		{"de", true},
		{"zh", false},
		{"ja", false},
		{"ko", false},
		{"xx", true},
	}
	for _, tt := range tests {
		if got := Cased(tt.input); got != tt.expected {
			t.Errorf("Cased(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
