package service

import (
	"sort"
	"time"
)

// toCalendarDays dedupes timestamps into sorted UTC calendar days.
func toCalendarDays(activity []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(activity))
	days := make([]time.Time, 0, len(activity))
	for _, t := range activity {
		u := t.UTC()
		day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// CurrentStreak walks backward from today over the user's activity
// days. The walk starts at day-offset 0 and advances while each next
// activity day is exactly at the current offset; without activity
// today the first gap breaks the walk immediately and the streak is 0.
func CurrentStreak(activity []time.Time, today time.Time) int {
	days := toCalendarDays(activity)
	if len(days) == 0 {
		return 0
	}

	u := today.UTC()
	anchor := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		daysDiff := int(anchor.Sub(days[i]).Hours() / 24)
		if daysDiff == streak {
			streak++
		} else if daysDiff > streak {
			break
		}
	}

	return streak
}

// LongestStreak scans the sorted activity days and tracks the longest
// run of consecutive dates.
func LongestStreak(activity []time.Time) int {
	days := toCalendarDays(activity)
	if len(days) == 0 {
		return 0
	}

	longest := 1
	current := 1
	for i := 1; i < len(days); i++ {
		diff := int(days[i].Sub(days[i-1]).Hours() / 24)
		if diff == 1 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}

	return longest
}
