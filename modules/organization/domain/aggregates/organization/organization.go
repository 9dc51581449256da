package organization

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	id          uuid.UUID
	name        string
	memberCount int64
	createdAt   time.Time
	updatedAt   time.Time
}

func New(name string) Organization {
	return Organization{name: strings.TrimSpace(name)}
}

func Hydrate(
	id uuid.UUID,
	name string,
	memberCount int64,
	createdAt time.Time,
	updatedAt time.Time,
) Organization {
	return Organization{
		id:          id,
		name:        strings.TrimSpace(name),
		memberCount: memberCount,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (o Organization) ID() uuid.UUID        { return o.id }
func (o Organization) Name() string         { return o.name }
func (o Organization) CreatedAt() time.Time { return o.createdAt }
func (o Organization) UpdatedAt() time.Time { return o.updatedAt }

// MemberCount is the cross-segment aggregate used as a popularity proxy when
// breaking primary-affiliation ties.
func (o Organization) MemberCount() int64 { return o.memberCount }
