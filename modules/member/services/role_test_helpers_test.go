package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// d parses a calendar day; an empty string stays the zero time ("no date").
func d(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

type testRole struct {
	ID       uuid.UUID
	Member   uuid.UUID
	Org      uuid.UUID
	Title    string
	Start    string
	End      string
	Source   string
	Deny     bool
	Override bool
	Created  time.Time
}

func (r testRole) build() membership.Record {
	id := r.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return membership.Hydrate(
		id,
		r.Member,
		r.Org,
		r.Title,
		d(r.Start),
		d(r.End),
		r.Source,
		!r.Deny,
		r.Override,
		r.Created,
		time.Time{},
	)
}

func buildRoles(roles ...testRole) []membership.Record {
	out := make([]membership.Record, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.build())
	}
	return out
}
