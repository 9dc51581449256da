package membership

import "github.com/google/uuid"

// AffiliationsRefreshedEvent is published after a member's timeline has been
// recomputed and propagated onto the activity stream.
type AffiliationsRefreshedEvent struct {
	MemberID  uuid.UUID
	Segments  int
	Processed int
}

type MergeKind string

const (
	MergeKindMember       MergeKind = "member"
	MergeKindOrganization MergeKind = "organization"
)

// RolesMergedEvent is published after two entities' role sets have been
// reconciled into one.
type RolesMergedEvent struct {
	Kind        MergeKind
	PrimaryID   uuid.UUID
	SecondaryID uuid.UUID
	Added       int
	Removed     int
}
