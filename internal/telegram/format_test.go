package telegram

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "$0.00"},
		{1, "$0.01"},
		{100, "$1.00"},
		{12345, "$123.45"},
		{10_000, "$100.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.minor); got != tt.want {
			t.Errorf("FormatMoney(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		s       string
		want    int64
		wantErr bool
	}{
		{"123.45", 12345, false},
		{"100", 10000, false},
		{"0.01", 1, false},
		{"0", 0, false},
		{"1.234", 0, true},
		{"-5", 0, true},
		{"diez", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseMoney(tt.s)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMoney(%q) error = %v, wantErr %v", tt.s, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 100, 12345, 10_000} {
		got, err := ParseMoney(FormatMoney(minor)[1:])
		if err != nil {
			t.Fatalf("round trip %d: %v", minor, err)
		}
		if got != minor {
			t.Errorf("round trip %d = %d", minor, got)
		}
	}
}
