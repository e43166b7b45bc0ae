package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"e164 with country code", "+15551234567", "5551234567"},
		{"bare ten digits", "5551234567", "5551234567"},
		{"formatted with parens", "(555) 123-4567", "5551234567"},
		{"dashed with country code", "1-555-123-4567", "5551234567"},
		{"eleven digits not starting with 1", "25551234567", "25551234567"},
		{"international number kept intact", "+442071234567", "442071234567"},
		{"empty", "", ""},
		{"no digits", "abc", ""},
		{"whitespace and dots", " 555.123.4567 ", "5551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEqualAcrossFormats(t *testing.T) {
	variants := []string{"+15551234567", "5551234567", "(555) 123-4567", "1 555 123 4567"}
	want := Normalize(variants[0])
	for _, v := range variants[1:] {
		if got := Normalize(v); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, want)
		}
	}
}
