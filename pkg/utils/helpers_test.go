package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1.5m"},
		{90 * time.Minute, "1.5h"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestGetStringOrDefault(t *testing.T) {
	if got := GetStringOrDefault("", "medium"); got != "medium" {
		t.Errorf("empty value should fall back, got %q", got)
	}
	if got := GetStringOrDefault("high", "medium"); got != "high" {
		t.Errorf("set value should win, got %q", got)
	}
}
