package membership

import (
	"time"

	"github.com/google/uuid"
)

// TimelineSegment is a maximal contiguous date range with one fixed primary
// organization. A Nil organizationID denotes a genuine gap; a zero dateEnd
// means the segment is still open. Segments for one member are non-overlapping
// and ordered, and consecutive segments never share the same organization.
type TimelineSegment struct {
	organizationID uuid.UUID
	dateStart      time.Time
	dateEnd        time.Time
}

func NewTimelineSegment(organizationID uuid.UUID, dateStart, dateEnd time.Time) TimelineSegment {
	return TimelineSegment{
		organizationID: organizationID,
		dateStart:      dateStart,
		dateEnd:        dateEnd,
	}
}

func (s TimelineSegment) OrganizationID() uuid.UUID { return s.organizationID }
func (s TimelineSegment) DateStart() time.Time      { return s.dateStart }
func (s TimelineSegment) DateEnd() time.Time        { return s.dateEnd }
func (s TimelineSegment) Open() bool                { return s.dateEnd.IsZero() }
func (s TimelineSegment) Gap() bool                 { return s.organizationID == uuid.Nil }
