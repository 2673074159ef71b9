package core

import (
	"testing"
	"time"
)

func TestTickDuration(t *testing.T) {
	tests := []struct {
		rate     int
		expected time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}

	for _, tt := range tests {
		cfg := RuntimeConfig{TickRate: tt.rate}
		if got := cfg.TickDuration(); got != tt.expected {
			t.Errorf("TickDuration() at %d = %v, expected %v", tt.rate, got, tt.expected)
		}
	}
}
