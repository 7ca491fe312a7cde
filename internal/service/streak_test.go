package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestCurrentStreak(t *testing.T) {
	today := day(2026, time.March, 10)

	tests := []struct {
		name     string
		activity []time.Time
		want     int
	}{
		{"no activity", nil, 0},
		{"only today", []time.Time{today}, 1},
		{"three consecutive days ending today", []time.Time{
			day(2026, time.March, 8),
			day(2026, time.March, 9),
			today,
		}, 3},
		{"streak broken by missing today", []time.Time{
			day(2026, time.March, 8),
			day(2026, time.March, 9),
		}, 0},
		{"gap before today breaks the streak", []time.Time{
			day(2026, time.March, 5),
			day(2026, time.March, 6),
			today,
		}, 1},
		{"activity two days ago only", []time.Time{
			day(2026, time.March, 8),
		}, 0},
		{"duplicates on one day count once", []time.Time{
			day(2026, time.March, 9),
			day(2026, time.March, 9).Add(3 * time.Hour),
			today,
			today.Add(5 * time.Hour),
		}, 2},
		{"unsorted input", []time.Time{
			today,
			day(2026, time.March, 8),
			day(2026, time.March, 9),
		}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(tt.activity, today))
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name     string
		activity []time.Time
		want     int
	}{
		{"no activity", nil, 0},
		{"single day", []time.Time{day(2026, time.January, 5)}, 1},
		{"longest run in the middle", []time.Time{
			day(2026, time.January, 1),
			day(2026, time.January, 5),
			day(2026, time.January, 6),
			day(2026, time.January, 7),
			day(2026, time.January, 9),
		}, 3},
		{"two equal runs", []time.Time{
			day(2026, time.January, 1),
			day(2026, time.January, 2),
			day(2026, time.January, 10),
			day(2026, time.January, 11),
		}, 2},
		{"duplicates do not extend a run", []time.Time{
			day(2026, time.January, 1),
			day(2026, time.January, 1).Add(time.Hour),
			day(2026, time.January, 2),
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LongestStreak(tt.activity))
		})
	}
}

func TestCurrentStreakCrossesMonthBoundary(t *testing.T) {
	today := day(2026, time.April, 1)
	activity := []time.Time{
		day(2026, time.March, 30),
		day(2026, time.March, 31),
		today,
	}
	assert.Equal(t, 3, CurrentStreak(activity, today))
}
