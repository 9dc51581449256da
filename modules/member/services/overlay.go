package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// AffiliationWindow is one entry of the priority-ordered list the propagator
// consumes. Ordering expresses priority, not chronology; manual windows may
// overlap the inferred ones and always come first.
type AffiliationWindow struct {
	OrganizationID uuid.UUID
	SegmentID      uuid.UUID
	DateStart      time.Time
	DateEnd        time.Time
	Manual         bool
}

// overlayAffiliations lays user-entered manual affiliation periods, listed
// most-recent-first, on top of the inferred timeline. They are kept as
// independent override windows, never merged into the inferred segments.
func overlayAffiliations(
	manual []membership.ManualAffiliation,
	inferred []membership.TimelineSegment,
) []AffiliationWindow {
	windows := make([]AffiliationWindow, 0, len(manual)+len(inferred))

	ordered := make([]membership.ManualAffiliation, len(manual))
	copy(ordered, manual)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DateStart().After(ordered[j].DateStart())
	})
	for _, m := range ordered {
		windows = append(windows, AffiliationWindow{
			OrganizationID: m.OrganizationID(),
			SegmentID:      m.SegmentID(),
			DateStart:      m.DateStart(),
			DateEnd:        m.DateEnd(),
			Manual:         true,
		})
	}

	for _, s := range inferred {
		windows = append(windows, AffiliationWindow{
			OrganizationID: s.OrganizationID(),
			DateStart:      s.DateStart(),
			DateEnd:        s.DateEnd(),
		})
	}

	return windows
}

// resolveFallback picks the organization assigned to activities that predate
// any known dated membership: the single override-marked undated record when
// a human asserted one, otherwise the most-recently-created fully undated
// record, otherwise none.
func resolveFallback(records []membership.Record) (uuid.UUID, error) {
	usable, err := usableRecords(records)
	if err != nil {
		return uuid.Nil, err
	}

	var undated []membership.Record
	var overridden []membership.Record
	for _, r := range usable {
		if !r.Undated() {
			continue
		}
		undated = append(undated, r)
		if r.PrimaryOverride() {
			overridden = append(overridden, r)
		}
	}
	if len(overridden) == 1 {
		return overridden[0].OrganizationID(), nil
	}
	if len(undated) == 0 {
		return uuid.Nil, nil
	}

	latest := undated[0]
	for _, r := range undated[1:] {
		if r.CreatedAt().After(latest.CreatedAt()) {
			latest = r
		}
	}
	return latest.OrganizationID(), nil
}
