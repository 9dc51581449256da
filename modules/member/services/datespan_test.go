package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSpanDays(t *testing.T) {
	today := d("2024-01-10")

	bounded := testRole{Org: uuid.New(), Start: "2024-01-01", End: "2024-01-05"}.build()
	require.Equal(t, 5, spanDays(bounded, today))

	open := testRole{Org: uuid.New(), Start: "2024-01-01"}.build()
	require.Equal(t, 10, spanDays(open, today))

	undated := testRole{Org: uuid.New()}.build()
	require.Equal(t, 0, spanDays(undated, today))
}

func TestRangesOverlap(t *testing.T) {
	require.True(t, rangesOverlap(d("2015-01-01"), d("2016-01-01"), d("2015-06-01"), d("2017-01-01")))
	require.True(t, rangesOverlap(d("2015-01-01"), d("2016-01-01"), d("2016-01-01"), d("2017-01-01")))
	require.False(t, rangesOverlap(d("2015-01-01"), d("2016-01-01"), d("2016-01-02"), d("2017-01-01")))

	// open ends overlap everything from their start onward
	require.True(t, rangesOverlap(d("2015-01-01"), time.Time{}, d("2020-06-01"), d("2021-01-01")))
	require.True(t, rangesOverlap(d("2015-01-01"), time.Time{}, d("2010-01-01"), time.Time{}))
	require.False(t, rangesOverlap(d("2015-01-01"), time.Time{}, d("2010-01-01"), d("2014-12-31")))
}

func TestChangePoints(t *testing.T) {
	orgX, orgY := uuid.New(), uuid.New()
	records := buildRoles(
		testRole{Org: orgX, Start: "2020-01-01", End: "2021-01-01"},
		testRole{Org: orgY, Start: "2021-06-01"},
	)

	points := changePoints(records, d("2020-01-01"), d("2024-05-01"))
	require.Equal(t, []time.Time{d("2020-01-01"), d("2021-01-02"), d("2021-06-01")}, points)
}

func TestChangePoints_ClampsToWindow(t *testing.T) {
	org := uuid.New()
	records := buildRoles(
		testRole{Org: org, Start: "2020-01-01", End: "2099-01-01"},
	)

	points := changePoints(records, d("2020-01-01"), d("2024-05-01"))
	require.Equal(t, []time.Time{d("2020-01-01")}, points)
}

func TestDayBeforeAfter(t *testing.T) {
	require.Equal(t, d("2020-02-29"), dayBefore(d("2020-03-01")))
	require.Equal(t, d("2021-01-01"), dayAfter(d("2020-12-31")))
}
