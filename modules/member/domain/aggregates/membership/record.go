package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is a member's claimed role at an organization, joined with the
// per-(member, organization) override flags before any resolution runs.
// Date fields use the zero time.Time for "not set"; all dates are calendar
// days in UTC.
type Record struct {
	id               uuid.UUID
	memberID         uuid.UUID
	organizationID   uuid.UUID
	title            string
	dateStart        time.Time
	dateEnd          time.Time
	source           string
	allowAffiliation bool
	primaryOverride  bool
	createdAt        time.Time
	deletedAt        time.Time
}

func New(memberID, organizationID uuid.UUID, title, source string) Record {
	return Record{
		memberID:         memberID,
		organizationID:   organizationID,
		title:            strings.TrimSpace(title),
		source:           strings.TrimSpace(source),
		allowAffiliation: true,
	}
}

func Hydrate(
	id uuid.UUID,
	memberID uuid.UUID,
	organizationID uuid.UUID,
	title string,
	dateStart time.Time,
	dateEnd time.Time,
	source string,
	allowAffiliation bool,
	primaryOverride bool,
	createdAt time.Time,
	deletedAt time.Time,
) Record {
	return Record{
		id:               id,
		memberID:         memberID,
		organizationID:   organizationID,
		title:            strings.TrimSpace(title),
		dateStart:        dateStart,
		dateEnd:          dateEnd,
		source:           strings.TrimSpace(source),
		allowAffiliation: allowAffiliation,
		primaryOverride:  primaryOverride,
		createdAt:        createdAt,
		deletedAt:        deletedAt,
	}
}

func (r Record) ID() uuid.UUID             { return r.id }
func (r Record) MemberID() uuid.UUID       { return r.memberID }
func (r Record) OrganizationID() uuid.UUID { return r.organizationID }
func (r Record) Title() string             { return r.title }
func (r Record) DateStart() time.Time      { return r.dateStart }
func (r Record) DateEnd() time.Time        { return r.dateEnd }
func (r Record) Source() string            { return r.source }
func (r Record) AllowAffiliation() bool    { return r.allowAffiliation }
func (r Record) PrimaryOverride() bool     { return r.primaryOverride }
func (r Record) CreatedAt() time.Time      { return r.createdAt }
func (r Record) DeletedAt() time.Time      { return r.deletedAt }
func (r Record) Deleted() bool             { return !r.deletedAt.IsZero() }

// Undated records carry no interval at all. They never contribute to the
// day-by-day timeline, only to fallback resolution.
func (r Record) Undated() bool { return r.dateStart.IsZero() && r.dateEnd.IsZero() }

func (r Record) Dated() bool { return !r.dateStart.IsZero() }

// OpenEnded is a current role: started, no end date.
func (r Record) OpenEnded() bool { return !r.dateStart.IsZero() && r.dateEnd.IsZero() }

func (r Record) Bounded() bool { return !r.dateStart.IsZero() && !r.dateEnd.IsZero() }

// ActiveOn reports whether the record counts as affiliation evidence on the
// given day. Undated records are active on every day.
func (r Record) ActiveOn(day time.Time) bool {
	if r.Undated() {
		return true
	}
	if r.dateStart.IsZero() || day.Before(r.dateStart) {
		return false
	}
	return r.dateEnd.IsZero() || !day.After(r.dateEnd)
}

// Validate surfaces invalid date shapes. A dateEnd without a dateStart is
// upstream data corruption and is never silently repaired here.
func (r Record) Validate() error {
	if !r.dateEnd.IsZero() && r.dateStart.IsZero() {
		return ErrInvalidDateRange
	}
	if !r.dateEnd.IsZero() && r.dateEnd.Before(r.dateStart) {
		return ErrInvalidDateRange
	}
	return nil
}

// WithMemberID returns a copy of the record rebased onto another member.
// Used when merging two members' role sets.
func (r Record) WithMemberID(memberID uuid.UUID) Record {
	out := r
	out.memberID = memberID
	return out
}

// WithOrganizationID returns a copy rebased onto another organization.
// Used when merging two organizations' rosters.
func (r Record) WithOrganizationID(organizationID uuid.UUID) Record {
	out := r
	out.organizationID = organizationID
	return out
}

func (r Record) WithDateStart(dateStart time.Time) Record {
	out := r
	out.dateStart = dateStart
	return out
}

func (r Record) WithDates(dateStart, dateEnd time.Time) Record {
	out := r
	out.dateStart = dateStart
	out.dateEnd = dateEnd
	return out
}

func (r Record) WithTitleAndSource(title, source string) Record {
	out := r
	out.title = strings.TrimSpace(title)
	out.source = strings.TrimSpace(source)
	return out
}
