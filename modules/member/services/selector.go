package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// selectPrimary picks exactly one record among the candidates active on a
// given day. Tie-breaking, in order: a human-asserted primary override
// (dated ones first), then the unique dated candidate, then the organization
// with the strictly larger member count, then the longest total date range.
// The result is deterministic for identical input ordering.
func selectPrimary(candidates []membership.Record, popularity map[uuid.UUID]int64, today time.Time) membership.Record {
	if len(candidates) == 1 {
		return candidates[0]
	}

	var overridden []membership.Record
	for _, c := range candidates {
		if c.PrimaryOverride() {
			overridden = append(overridden, c)
		}
	}
	if len(overridden) > 0 {
		for _, c := range overridden {
			if c.Dated() {
				return c
			}
		}
		return overridden[0]
	}

	var dated []membership.Record
	for _, c := range candidates {
		if c.Dated() {
			dated = append(dated, c)
		}
	}
	if len(dated) == 1 {
		return dated[0]
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		bestCount := popularity[best.OrganizationID()]
		count := popularity[c.OrganizationID()]
		switch {
		case count > bestCount:
			best = c
		case count == bestCount && spanDays(c, today) > spanDays(best, today):
			best = c
		}
	}
	return best
}
