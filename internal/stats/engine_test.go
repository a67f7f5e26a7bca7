package stats

import (
	"testing"
	"time"
)

func TestCutoffFor(t *testing.T) {
	now := time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		windowDays int
		expected   time.Time
	}{
		{
			name:       "zero window means lifetime",
			windowDays: 0,
			expected:   time.Time{},
		},
		{
			name:       "negative window means lifetime",
			windowDays: -3,
			expected:   time.Time{},
		},
		{
			name:       "seven day window",
			windowDays: 7,
			expected:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:       "window longer than a year",
			windowDays: 365,
			expected:   time.Date(2023, 6, 9, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cutoffFor(now, tt.windowDays); !got.Equal(tt.expected) {
				t.Errorf("cutoffFor(%d) = %v, want %v", tt.windowDays, got, tt.expected)
			}
		})
	}
}
