package membership

import (
	"time"

	"github.com/google/uuid"
)

// ManualAffiliation is a user-asserted affiliation period scoped to one
// activity segment. It always wins over the inferred timeline for the dates
// it covers. A Nil organizationID means "explicitly no organization".
type ManualAffiliation struct {
	memberID       uuid.UUID
	organizationID uuid.UUID
	segmentID      uuid.UUID
	dateStart      time.Time
	dateEnd        time.Time
}

func HydrateManualAffiliation(
	memberID uuid.UUID,
	organizationID uuid.UUID,
	segmentID uuid.UUID,
	dateStart time.Time,
	dateEnd time.Time,
) ManualAffiliation {
	return ManualAffiliation{
		memberID:       memberID,
		organizationID: organizationID,
		segmentID:      segmentID,
		dateStart:      dateStart,
		dateEnd:        dateEnd,
	}
}

func (m ManualAffiliation) MemberID() uuid.UUID       { return m.memberID }
func (m ManualAffiliation) OrganizationID() uuid.UUID { return m.organizationID }
func (m ManualAffiliation) SegmentID() uuid.UUID      { return m.segmentID }
func (m ManualAffiliation) DateStart() time.Time      { return m.dateStart }
func (m ManualAffiliation) DateEnd() time.Time        { return m.dateEnd }
