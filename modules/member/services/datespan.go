package services

import (
	"sort"
	"time"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// All resolution math runs at calendar-day granularity in UTC. A zero
// time.Time stands for "no date" throughout.

func dayOnly(t time.Time) time.Time {
	u := t.UTC()
	y, m, d := u.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayBefore(t time.Time) time.Time { return dayOnly(t).AddDate(0, 0, -1) }

func dayAfter(t time.Time) time.Time { return dayOnly(t).AddDate(0, 0, 1) }

// spanDays is the total number of days a record's range covers. Open-ended
// ranges run to today. Undated records span zero days.
func spanDays(r membership.Record, today time.Time) int {
	if !r.Dated() {
		return 0
	}
	end := r.DateEnd()
	if end.IsZero() {
		end = today
	}
	if end.Before(r.DateStart()) {
		return 0
	}
	return int(dayOnly(end).Sub(dayOnly(r.DateStart())).Hours()/24) + 1
}

// rangesOverlap is the strict interval-overlap test; a zero end means the
// range is open-ended.
func rangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if !aEnd.IsZero() && aEnd.Before(bStart) {
		return false
	}
	if !bEnd.IsZero() && bEnd.Before(aStart) {
		return false
	}
	return true
}

// changePoints enumerates the ordered unique days on which the set of active
// records can change: every record's start day and the day after every
// record's end day, clamped to [earliest, today]. Walking these instead of
// every single day yields identical segments with far fewer steps.
func changePoints(records []membership.Record, earliest, today time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(records)*2)
	add := func(d time.Time) {
		if d.Before(earliest) || d.After(today) {
			return
		}
		seen[d] = struct{}{}
	}

	for _, r := range records {
		if !r.Dated() {
			continue
		}
		add(dayOnly(r.DateStart()))
		if !r.DateEnd().IsZero() {
			add(dayAfter(r.DateEnd()))
		}
	}

	points := make([]time.Time, 0, len(seen))
	for d := range seen {
		points = append(points, d)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })
	return points
}

func activeOn(records []membership.Record, day time.Time) []membership.Record {
	var active []membership.Record
	for _, r := range records {
		if r.ActiveOn(day) {
			active = append(active, r)
		}
	}
	return active
}
