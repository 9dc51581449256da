package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSelectPrimary_SingleCandidate(t *testing.T) {
	org := uuid.New()
	candidates := buildRoles(testRole{Org: org, Start: "2020-01-01"})

	got := selectPrimary(candidates, nil, d("2024-01-01"))
	require.Equal(t, org, got.OrganizationID())
}

func TestSelectPrimary_OverrideWins(t *testing.T) {
	// Two roles active the same day: one flagged primary with dates, one
	// unflagged and undated. The flagged, dated one wins.
	flagged, plain := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: plain},
		testRole{Org: flagged, Start: "2020-01-01", Override: true},
	)

	got := selectPrimary(candidates, nil, d("2024-01-01"))
	require.Equal(t, flagged, got.OrganizationID())
}

func TestSelectPrimary_OverrideDatedPreferredOverUndatedOverride(t *testing.T) {
	dated, undated := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: undated, Override: true},
		testRole{Org: dated, Start: "2020-01-01", Override: true},
	)

	got := selectPrimary(candidates, nil, d("2024-01-01"))
	require.Equal(t, dated, got.OrganizationID())
}

func TestSelectPrimary_UniqueDatedCandidate(t *testing.T) {
	dated, undated := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: undated},
		testRole{Org: dated, Start: "2020-01-01"},
	)

	got := selectPrimary(candidates, nil, d("2024-01-01"))
	require.Equal(t, dated, got.OrganizationID())
}

func TestSelectPrimary_PopularityBreaksTie(t *testing.T) {
	small, large := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: small, Start: "2019-01-01"},
		testRole{Org: large, Start: "2020-01-01"},
	)
	popularity := map[uuid.UUID]int64{small: 5, large: 50}

	got := selectPrimary(candidates, popularity, d("2024-01-01"))
	require.Equal(t, large, got.OrganizationID())
}

func TestSelectPrimary_LongestRangeBreaksPopularityTie(t *testing.T) {
	short, long := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: short, Start: "2023-01-01", End: "2023-06-01"},
		testRole{Org: long, Start: "2019-01-01", End: "2023-06-01"},
	)
	popularity := map[uuid.UUID]int64{short: 10, long: 10}

	got := selectPrimary(candidates, popularity, d("2024-01-01"))
	require.Equal(t, long, got.OrganizationID())
}

func TestSelectPrimary_Deterministic(t *testing.T) {
	orgA, orgB := uuid.New(), uuid.New()
	candidates := buildRoles(
		testRole{Org: orgA, Start: "2020-01-01", End: "2021-01-01"},
		testRole{Org: orgB, Start: "2020-01-01", End: "2021-01-01"},
	)
	popularity := map[uuid.UUID]int64{orgA: 10, orgB: 10}

	first := selectPrimary(candidates, popularity, d("2024-01-01"))
	for range 10 {
		require.Equal(t, first.ID(), selectPrimary(candidates, popularity, d("2024-01-01")).ID())
	}
	// exact tie on popularity and range falls back to input order
	require.Equal(t, candidates[0].ID(), first.ID())
}
