package cli

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		currency string
		in       float64
		want     string
	}{
		{"$", 0, "$0.00"},
		{"$", 3.5, "$3.50"},
		{"$", 7.5, "$7.50"},
		{"$", 12.345, "$12.35"},
		{"$", 0.005, "$0.01"},
		{"$", 2.675, "$2.67"},
		{"$", 1200, "$1,200.00"},
		{"€", 1234567.891, "€1,234,567.89"},
		{"", 4, "4.00"},
		{"$", -2.5, "-$2.50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.currency, tc.in); got != tc.want {
			t.Errorf("FormatAmount(%q, %v) = %q, want %q", tc.currency, tc.in, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "entry", "entries"); got != "1 entry" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(1500, "entry", "entries"); got != "1,500 entries" {
		t.Errorf("Plural(1500) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("groceries", 20); got != "groceries" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("groceries", 5); got != "groc…" {
		t.Errorf("Truncate long = %q, want groc…", got)
	}
}
