package pregnancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEDDFromLMP(t *testing.T) {
	lmp := date(2025, time.January, 1)
	assert.Equal(t, date(2025, time.October, 8), EDDFromLMP(lmp))
}

func TestLMPFromEDD_InverseOfEDDFromLMP(t *testing.T) {
	for _, lmp := range []time.Time{
		date(2025, time.January, 1),
		date(2024, time.February, 29), // leap day
		date(2025, time.December, 31),
	} {
		assert.Equal(t, lmp, LMPFromEDD(EDDFromLMP(lmp)), "round trip for %s", lmp)
	}
}

func TestAgeAt(t *testing.T) {
	lmp := date(2025, time.January, 1)

	tests := []struct {
		name     string
		asOf     time.Time
		wantWeek int
		wantDay  int
	}{
		{"same day", lmp, 0, 0},
		{"six days in", date(2025, time.January, 7), 0, 6},
		{"exactly one week", date(2025, time.January, 8), 1, 0},
		{"mid pregnancy", date(2025, time.July, 2), 26, 0},
		{"at EDD", date(2025, time.October, 8), 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, err := AgeAt(lmp, tt.asOf)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWeek, age.Week)
			assert.Equal(t, tt.wantDay, age.Day)
		})
	}
}

func TestAgeAt_FutureLMP(t *testing.T) {
	_, err := AgeAt(date(2025, time.June, 1), date(2025, time.May, 31))
	assert.ErrorIs(t, err, ErrFutureLMP)
}

func TestAgeAt_IgnoresTimeOfDay(t *testing.T) {
	// 23:59 on the LMP day vs 00:01 on the as-of day must not lose a day.
	lmp := time.Date(2025, time.January, 1, 23, 59, 0, 0, time.UTC)
	asOf := time.Date(2025, time.January, 8, 0, 1, 0, 0, time.UTC)

	age, err := AgeAt(lmp, asOf)
	require.NoError(t, err)
	assert.Equal(t, GestationalAge{Week: 1, Day: 0}, age)
}

func TestTrimester(t *testing.T) {
	tests := []struct {
		week int
		want int
	}{
		{0, 1},
		{13, 1},
		{14, 2},
		{26, 2},
		{27, 3},
		{40, 3},
		{44, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Trimester(tt.week), "week %d", tt.week)
	}
}

func TestCheckupWeek(t *testing.T) {
	// 2025-07-02 is a Wednesday in ISO week 27.
	year, week := CheckupWeek(date(2025, time.July, 2))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 27, week)
}

func TestCheckupWeek_YearRollover(t *testing.T) {
	// Monday 2024-12-30 already belongs to ISO week 1 of 2025.
	year, week := CheckupWeek(date(2024, time.December, 30))
	assert.Equal(t, 2025, year)
	assert.Equal(t, 1, week)

	// Sunday 2023-01-01 still belongs to ISO week 52 of 2022. A checkup on
	// this day and one in the true first week of 2023 land in distinct
	// buckets.
	year, week = CheckupWeek(date(2023, time.January, 1))
	assert.Equal(t, 2022, year)
	assert.Equal(t, 52, week)

	y2, w2 := CheckupWeek(date(2023, time.January, 2))
	assert.Equal(t, 2023, y2)
	assert.Equal(t, 1, w2)
	assert.NotEqual(t, [2]int{year, week}, [2]int{y2, w2})
}

func TestCheckupWeek_SameWeekSameBucket(t *testing.T) {
	// Monday through Sunday of one ISO week share a bucket.
	monday := date(2025, time.June, 30)
	for d := 0; d < 7; d++ {
		year, week := CheckupWeek(monday.AddDate(0, 0, d))
		assert.Equal(t, 2025, year)
		assert.Equal(t, 27, week)
	}
	// The next Monday starts a new one.
	_, next := CheckupWeek(monday.AddDate(0, 0, 7))
	assert.Equal(t, 28, next)
}
