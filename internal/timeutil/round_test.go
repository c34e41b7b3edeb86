package timeutil

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/mosaic/internal/apperr"
)

func TestRoundHalfHour_Table(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{-15, "0.0"},
		{0, "0.0"},
		{1, "0.5"},
		{29, "0.5"},
		{30, "0.5"},
		{31, "1.0"},
		{45, "1.0"},
		{59, "1.0"},
		{60, "1.0"},
		{61, "1.5"},
		{90, "1.5"},
		{91, "2.0"},
		{105, "2.0"},
		{120, "2.0"},
		{121, "2.5"},
	}
	for _, tc := range cases {
		got := RoundHalfHour(tc.minutes)
		assert.Equal(t, tc.want, FormatHours(got), "minutes=%d", tc.minutes)
	}
}

// TestRoundHalfHour_Invariants property-tests monotonicity and the
// one-hour period of the rounding table.
func TestRoundHalfHour_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	one := RoundHalfHour(60)
	for trial := 0; trial < 200; trial++ {
		m1 := rng.Intn(600)
		m2 := rng.Intn(600)
		if m1 > m2 {
			m1, m2 = m2, m1
		}

		r1, r2 := RoundHalfHour(m1), RoundHalfHour(m2)
		assert.True(t, r1.LessThanOrEqual(r2),
			"trial %d: round(%d)=%s must be <= round(%d)=%s", trial, m1, r1, m2, r2)

		shifted := RoundHalfHour(m1 + 60)
		assert.True(t, shifted.Equal(r1.Add(one)),
			"trial %d: round(%d+60)=%s must equal round(%d)+1.0=%s", trial, m1, shifted, m1, r1.Add(one))
	}
}

func TestDurationRounded_TruncatesSeconds(t *testing.T) {
	start := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)

	got, err := DurationRounded(start, start.Add(29*time.Minute+59*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "0.5", FormatHours(got), "29m59s truncates to 29m")

	got, err = DurationRounded(start, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "0.5", FormatHours(got))

	got, err = DurationRounded(start, start.Add(30*time.Minute+1*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "0.5", FormatHours(got), "30m01s truncates to 30m")

	got, err = DurationRounded(start, start.Add(105*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "2.0", FormatHours(got))
}

func TestDurationRounded_EndBeforeStart(t *testing.T) {
	start := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)
	_, err := DurationRounded(start, start.Add(-time.Minute))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestDurationRounded_EqualInstants(t *testing.T) {
	at := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)
	got, err := DurationRounded(at, at)
	require.NoError(t, err)
	assert.Equal(t, "0.0", FormatHours(got))
}

// TestDurationRounded_MatchesMinuteRounding checks the duration law over
// random spans: rounding a span equals rounding its whole-minute count.
func TestDurationRounded_MatchesMinuteRounding(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for trial := 0; trial < 200; trial++ {
		span := time.Duration(rng.Intn(10*60*60)) * time.Second
		got, err := DurationRounded(base, base.Add(span))
		require.NoError(t, err)

		want := RoundHalfHour(int(span / time.Minute))
		assert.True(t, got.Equal(want),
			"trial %d: span=%s got=%s want=%s", trial, span, got, want)
	}
}
