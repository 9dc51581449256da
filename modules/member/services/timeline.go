package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// Titles that never count as work-affiliation evidence.
var blacklistedTitles = []string{"investor", "mentor", "board member"}

func titleBlacklisted(title string) bool {
	lowered := strings.ToLower(title)
	for _, t := range blacklistedTitles {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// usableRecords filters the raw fetched record set down to resolution input:
// soft-deleted rows, records excluded by the allowAffiliation override, and
// blacklisted titles are dropped. Invalid date shapes abort the run.
func usableRecords(records []membership.Record) ([]membership.Record, error) {
	usable := make([]membership.Record, 0, len(records))
	for _, r := range records {
		if r.Deleted() || !r.AllowAffiliation() || titleBlacklisted(r.Title()) {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, err
		}
		usable = append(usable, r)
	}
	return usable, nil
}

// buildTimeline resolves a member's membership history into ordered,
// non-overlapping primary-affiliation segments. Gap periods come out as
// segments with a Nil organization. The second return value is the earliest
// known start date, zero when no dated record takes part.
//
// Undated records are excluded up front, with one escape hatch: when exactly
// one undated record carries the primary override, a human has declared it
// the one true affiliation, so every dated record is discarded and the
// timeline stays empty (the overridden record resolves via the fallback).
func buildTimeline(
	records []membership.Record,
	popularity map[uuid.UUID]int64,
	today time.Time,
) ([]membership.TimelineSegment, time.Time, error) {
	usable, err := usableRecords(records)
	if err != nil {
		return nil, time.Time{}, err
	}

	var dated []membership.Record
	overriddenUndated := 0
	for _, r := range usable {
		if r.Undated() {
			if r.PrimaryOverride() {
				overriddenUndated++
			}
			continue
		}
		dated = append(dated, r)
	}
	if overriddenUndated == 1 {
		return nil, time.Time{}, nil
	}
	if len(dated) == 0 {
		return nil, time.Time{}, nil
	}

	earliest := dayOnly(dated[0].DateStart())
	for _, r := range dated[1:] {
		if d := dayOnly(r.DateStart()); d.Before(earliest) {
			earliest = d
		}
	}

	var segments []membership.TimelineSegment
	var openOrg uuid.UUID
	var openStart time.Time
	open := false

	for _, day := range changePoints(dated, earliest, today) {
		active := activeOn(dated, day)
		var org uuid.UUID
		if len(active) > 0 {
			org = selectPrimary(active, popularity, today).OrganizationID()
		}

		if open && org == openOrg {
			continue
		}
		if open {
			segments = append(segments, membership.NewTimelineSegment(openOrg, openStart, dayBefore(day)))
		}
		openOrg, openStart, open = org, day, true
	}

	if open {
		segments = append(segments, closeFinalSegment(openOrg, openStart, dated, popularity, today))
	}

	return segments, earliest, nil
}

// closeFinalSegment ends the segment still open on the final day. When the
// selected record carries its own end date the segment closes there,
// otherwise it stays open-ended. Trailing gaps stay open-ended too.
func closeFinalSegment(
	org uuid.UUID,
	start time.Time,
	dated []membership.Record,
	popularity map[uuid.UUID]int64,
	today time.Time,
) membership.TimelineSegment {
	if org == uuid.Nil {
		return membership.NewTimelineSegment(uuid.Nil, start, time.Time{})
	}

	active := activeOn(dated, today)
	if len(active) == 0 {
		return membership.NewTimelineSegment(org, start, time.Time{})
	}

	selected := selectPrimary(active, popularity, today)
	if end := selected.DateEnd(); !end.IsZero() {
		return membership.NewTimelineSegment(org, start, dayOnly(end))
	}
	return membership.NewTimelineSegment(org, start, time.Time{})
}
