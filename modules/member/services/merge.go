package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

// MergeStrategy abstracts over the two merge directions: merging two members'
// roles at shared organizations, and merging two organizations' member
// rosters. JoinKey projects the id the role sets are matched on; Rebase
// rewrites a secondary role so it belongs to the primary entity.
type MergeStrategy struct {
	JoinKey func(membership.Record) uuid.UUID
	Rebase  func(membership.Record) membership.Record
}

func MemberMergeStrategy(primaryID uuid.UUID) MergeStrategy {
	return MergeStrategy{
		JoinKey: func(r membership.Record) uuid.UUID { return r.OrganizationID() },
		Rebase:  func(r membership.Record) membership.Record { return r.WithMemberID(primaryID) },
	}
}

func OrganizationMergeStrategy(primaryID uuid.UUID) MergeStrategy {
	return MergeStrategy{
		JoinKey: func(r membership.Record) uuid.UUID { return r.MemberID() },
		Rebase:  func(r membership.Record) membership.Record { return r.WithOrganizationID(primaryID) },
	}
}

// MergeResult is the reconciler's output: roles to insert on the primary
// entity and roles to soft-delete (replaced primary roles plus every consumed
// secondary role).
type MergeResult struct {
	Added   []membership.Record
	Removed []membership.Record
}

// mergeRoles reconciles the secondary entity's roles into the primary's set.
// Each secondary role is resolved against the primary state as already
// amended by the preceding roles, never against a stale snapshot. The result
// is the diff between the initial and final primary state, so a role amended
// twice during the fold yields one removal and one addition, and the caller
// can apply all removals before all additions.
func mergeRoles(primaryRoles, secondaryRoles []membership.Record, strategy MergeStrategy) (MergeResult, error) {
	working := make([]membership.Record, len(primaryRoles))
	copy(working, primaryRoles)

	for _, secondary := range secondaryRoles {
		if err := secondary.Validate(); err != nil {
			return MergeResult{}, err
		}

		added, removed, err := reconcileRole(working, secondary, strategy)
		if err != nil {
			return MergeResult{}, err
		}
		working = applyRoleOps(working, added, removed)
	}

	var result MergeResult
	for _, p := range primaryRoles {
		if !containsRoleValue(working, p) {
			result.Removed = append(result.Removed, p)
		}
	}
	// every secondary role is consumed by the merge, dated or not
	result.Removed = append(result.Removed, secondaryRoles...)
	for _, w := range working {
		if !containsRoleValue(primaryRoles, w) {
			result.Added = append(result.Added, w)
		}
	}
	return result, nil
}

func reconcileRole(
	working []membership.Record,
	secondary membership.Record,
	strategy MergeStrategy,
) (added, removed []membership.Record, err error) {
	// No dates means no information to merge; drop the role from the
	// secondary entity.
	if secondary.Undated() {
		return nil, []membership.Record{secondary}, nil
	}

	key := strategy.JoinKey(secondary)

	if secondary.OpenEnded() {
		var current []membership.Record
		for _, p := range working {
			if strategy.JoinKey(p) == key && p.OpenEnded() {
				current = append(current, p)
			}
		}
		switch len(current) {
		case 0:
			return []membership.Record{strategy.Rebase(secondary)}, []membership.Record{secondary}, nil
		case 1:
			primary := current[0]
			if !secondary.DateStart().After(primary.DateStart()) {
				return []membership.Record{primary.WithDateStart(secondary.DateStart())},
					[]membership.Record{primary, secondary}, nil
			}
			return nil, []membership.Record{secondary}, nil
		default:
			return nil, nil, membership.ErrAmbiguousCurrentRole
		}
	}

	// Bounded: union the secondary with every overlapping primary role into
	// one interval spanning min(starts) to max(ends).
	var overlapping []membership.Record
	for _, p := range working {
		if strategy.JoinKey(p) != key || !p.Dated() {
			continue
		}
		if rangesOverlap(p.DateStart(), p.DateEnd(), secondary.DateStart(), secondary.DateEnd()) {
			overlapping = append(overlapping, p)
		}
	}
	if len(overlapping) == 0 {
		return []membership.Record{strategy.Rebase(secondary)}, []membership.Record{secondary}, nil
	}

	start := secondary.DateStart()
	end := secondary.DateEnd()
	openEnded := false
	for _, p := range overlapping {
		if p.DateStart().Before(start) {
			start = p.DateStart()
		}
		if p.DateEnd().IsZero() {
			openEnded = true
		} else if p.DateEnd().After(end) {
			end = p.DateEnd()
		}
	}
	if openEnded {
		end = time.Time{}
	}

	title, source := overlapping[0].Title(), overlapping[0].Source()
	if title == "" {
		title = secondary.Title()
	}
	if source == "" {
		source = secondary.Source()
	}

	merged := strategy.Rebase(secondary).
		WithDates(start, end).
		WithTitleAndSource(title, source)

	removed = append(removed, overlapping...)
	removed = append(removed, secondary)
	return []membership.Record{merged}, removed, nil
}

// applyRoleOps folds one secondary role's add/remove set into the working
// primary state so subsequent roles see fresh data.
func applyRoleOps(working, added, removed []membership.Record) []membership.Record {
	out := working[:0:0]
	for _, p := range working {
		consumed := false
		for _, r := range removed {
			if rolesEqual(p, r) {
				consumed = true
				break
			}
		}
		if !consumed {
			out = append(out, p)
		}
	}
	return append(out, added...)
}

func rolesEqual(a, b membership.Record) bool {
	if a.ID() != uuid.Nil && b.ID() != uuid.Nil {
		return a.ID() == b.ID()
	}
	return a.MemberID() == b.MemberID() &&
		a.OrganizationID() == b.OrganizationID() &&
		a.DateStart().Equal(b.DateStart()) &&
		a.DateEnd().Equal(b.DateEnd())
}

// containsRoleValue matches on the full field tuple, not just id, so an
// amended copy of a role does not count as its original.
func containsRoleValue(roles []membership.Record, role membership.Record) bool {
	for _, r := range roles {
		if r.ID() == role.ID() &&
			r.MemberID() == role.MemberID() &&
			r.OrganizationID() == role.OrganizationID() &&
			r.Title() == role.Title() &&
			r.Source() == role.Source() &&
			r.DateStart().Equal(role.DateStart()) &&
			r.DateEnd().Equal(role.DateEnd()) {
			return true
		}
	}
	return false
}
