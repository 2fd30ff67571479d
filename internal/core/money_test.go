package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"1250.755", "1250.755", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"1e3", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if !got.Equal(dec(tc.out)) {
				t.Fatalf("%q: got %s, want %s", tc.in, got, tc.out)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error, got %s", tc.in, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"1250.5", "$1250.50"},
		{"0", "$0.00"},
		{"-3.5", "-$3.50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(dec(tc.in)); got != tc.out {
			t.Fatalf("%s: got %q, want %q", tc.in, got, tc.out)
		}
	}
}
