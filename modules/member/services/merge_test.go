package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/pulse-sdk/modules/member/domain/aggregates/membership"
)

func TestMergeRoles_UndatedSecondaryRemoved(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ})

	result, err := mergeRoles(nil, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)
	require.Empty(t, result.Added)
	require.Len(t, result.Removed, 1)
	require.Equal(t, secondary, result.Removed[0].MemberID())
}

func TestMergeRoles_OpenEndedNoMatchMovesToPrimary(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2013-05-01"})

	result, err := mergeRoles(nil, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)

	require.Len(t, result.Added, 1)
	require.Equal(t, primary, result.Added[0].MemberID())
	require.Equal(t, orgZ, result.Added[0].OrganizationID())
	require.Equal(t, d("2013-05-01"), result.Added[0].DateStart())
	require.True(t, result.Added[0].OpenEnded())

	require.Len(t, result.Removed, 1)
	require.Equal(t, secondary, result.Removed[0].MemberID())
}

func TestMergeRoles_OpenEndedEarlierSecondaryReplacesPrimaryStart(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(testRole{Member: primary, Org: orgZ, Start: "2018-01-01"})
	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2015-01-01"})

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)

	require.Len(t, result.Added, 1)
	require.Equal(t, primary, result.Added[0].MemberID())
	require.Equal(t, d("2015-01-01"), result.Added[0].DateStart())
	require.True(t, result.Added[0].OpenEnded())

	// both the superseded primary role and the secondary role go away
	require.Len(t, result.Removed, 2)
	require.Equal(t, primaryRoles[0].ID(), result.Removed[0].ID())
	require.Equal(t, secondary, result.Removed[1].MemberID())
}

func TestMergeRoles_OpenEndedLaterSecondaryOnlyRemoved(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(testRole{Member: primary, Org: orgZ, Start: "2015-01-01"})
	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2018-01-01"})

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)
	require.Empty(t, result.Added)
	require.Len(t, result.Removed, 1)
	require.Equal(t, secondary, result.Removed[0].MemberID())
}

func TestMergeRoles_AmbiguousCurrentRolesFail(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(
		testRole{Member: primary, Org: orgZ, Start: "2015-01-01"},
		testRole{Member: primary, Org: orgZ, Start: "2016-01-01"},
	)
	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2018-01-01"})

	_, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.ErrorIs(t, err, membership.ErrAmbiguousCurrentRole)
}

func TestMergeRoles_BoundedOverlapUnions(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(
		testRole{Member: primary, Org: orgZ, Title: "Engineer", Source: "import", Start: "2015-01-01", End: "2016-01-01"},
	)
	secondaryRoles := buildRoles(
		testRole{Member: secondary, Org: orgZ, Title: "Developer", Start: "2015-06-01", End: "2017-01-01"},
	)

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)

	require.Len(t, result.Added, 1)
	merged := result.Added[0]
	require.Equal(t, primary, merged.MemberID())
	require.Equal(t, d("2015-01-01"), merged.DateStart())
	require.Equal(t, d("2017-01-01"), merged.DateEnd())
	require.Equal(t, "Engineer", merged.Title())
	require.Equal(t, "import", merged.Source())

	require.Len(t, result.Removed, 2)
}

func TestMergeRoles_BoundedNoOverlapMovesToPrimary(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(testRole{Member: primary, Org: orgZ, Start: "2010-01-01", End: "2011-01-01"})
	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2015-01-01", End: "2016-01-01"})

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	require.Equal(t, d("2015-01-01"), result.Added[0].DateStart())
	require.Len(t, result.Removed, 1)
	require.Equal(t, secondary, result.Removed[0].MemberID())
}

func TestMergeRoles_BoundedOverlapWithOpenEndedPrimaryStaysOpen(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	primaryRoles := buildRoles(testRole{Member: primary, Org: orgZ, Start: "2016-01-01"})
	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, Start: "2015-01-01", End: "2017-01-01"})

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	require.Equal(t, d("2015-01-01"), result.Added[0].DateStart())
	require.True(t, result.Added[0].OpenEnded())
}

func TestMergeRoles_SubsequentRolesSeeAmendedPrimaryState(t *testing.T) {
	// The first secondary role moves an open-ended role onto the primary;
	// the second must tie-break against that fresh state, not the original
	// empty one.
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	secondaryRoles := buildRoles(
		testRole{Member: secondary, Org: orgZ, Start: "2018-01-01"},
		testRole{Member: secondary, Org: orgZ, Start: "2014-01-01", End: ""},
	)

	result, err := mergeRoles(nil, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)

	// one surviving open-ended role, with the earlier start
	require.Len(t, result.Added, 1)
	require.Equal(t, primary, result.Added[0].MemberID())
	require.Equal(t, d("2014-01-01"), result.Added[0].DateStart())
	require.True(t, result.Added[0].OpenEnded())
	require.Len(t, result.Removed, 2)
}

func TestMergeRoles_SingleCurrentRolePerJoinKey(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgY, orgZ := uuid.New(), uuid.New()

	primaryRoles := buildRoles(
		testRole{Member: primary, Org: orgY, Start: "2019-01-01"},
		testRole{Member: primary, Org: orgZ, Start: "2012-01-01", End: "2013-01-01"},
	)
	secondaryRoles := buildRoles(
		testRole{Member: secondary, Org: orgY, Start: "2017-01-01"},
		testRole{Member: secondary, Org: orgZ, Start: "2020-01-01"},
	)

	result, err := mergeRoles(primaryRoles, secondaryRoles, MemberMergeStrategy(primary))
	require.NoError(t, err)

	// replay the ops onto the primary set and count open-ended roles per org
	final := applyRoleOps(primaryRoles, result.Added, result.Removed)
	open := map[uuid.UUID]int{}
	for _, r := range final {
		require.Equal(t, primary, r.MemberID())
		if r.OpenEnded() {
			open[r.OrganizationID()]++
		}
	}
	for org, n := range open {
		require.LessOrEqual(t, n, 1, "org %s has %d open-ended roles", org, n)
	}
}

func TestMergeRoles_OrganizationStrategyJoinsOnMember(t *testing.T) {
	primaryOrg, secondaryOrg := uuid.New(), uuid.New()
	member := uuid.New()

	primaryRoles := buildRoles(testRole{Member: member, Org: primaryOrg, Start: "2015-01-01", End: "2016-01-01"})
	secondaryRoles := buildRoles(testRole{Member: member, Org: secondaryOrg, Start: "2015-06-01", End: "2017-01-01"})

	result, err := mergeRoles(primaryRoles, secondaryRoles, OrganizationMergeStrategy(primaryOrg))
	require.NoError(t, err)

	require.Len(t, result.Added, 1)
	require.Equal(t, primaryOrg, result.Added[0].OrganizationID())
	require.Equal(t, member, result.Added[0].MemberID())
	require.Equal(t, d("2015-01-01"), result.Added[0].DateStart())
	require.Equal(t, d("2017-01-01"), result.Added[0].DateEnd())
}

func TestMergeRoles_InvalidSecondaryDateShapeFails(t *testing.T) {
	primary, secondary := uuid.New(), uuid.New()
	orgZ := uuid.New()

	secondaryRoles := buildRoles(testRole{Member: secondary, Org: orgZ, End: "2020-01-01"})

	_, err := mergeRoles(nil, secondaryRoles, MemberMergeStrategy(primary))
	require.ErrorIs(t, err, membership.ErrInvalidDateRange)
}
