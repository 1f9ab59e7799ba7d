// Package pregnancy implements the pregnancy-date and checkup-cycle
// calculations: LMP/EDD conversion, gestational age and trimester, the ISO
// calendar-week bucketing used for weekly checkups, and vitals (blood
// pressure and BMI) classification.
//
// Everything here is a pure function; callers own persistence and
// validation of raw input ranges.
package pregnancy

import (
	"errors"
	"time"
)

// GestationDays is the standard pregnancy duration from LMP to EDD.
const GestationDays = 280

// ErrFutureLMP is returned when the LMP date lies after the as-of date.
var ErrFutureLMP = errors.New("LMP date is in the future")

// EDDFromLMP derives the expected delivery date from the last menstrual
// period date.
func EDDFromLMP(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, GestationDays)
}

// LMPFromEDD derives the last menstrual period date from the expected
// delivery date. It is the exact inverse of EDDFromLMP.
func LMPFromEDD(edd time.Time) time.Time {
	return edd.AddDate(0, 0, -GestationDays)
}

// GestationalAge is an elapsed pregnancy duration expressed as full weeks
// plus leftover days (0-6).
type GestationalAge struct {
	Week int `json:"week"`
	Day  int `json:"day"`
}

// AgeAt computes the gestational age at the given as-of time. Times are
// compared at calendar-date granularity so the time-of-day and timezone of
// either argument cannot shift the result by a week. An LMP after asOf is
// invalid input.
func AgeAt(lmp, asOf time.Time) (GestationalAge, error) {
	days := daysBetween(lmp, asOf)
	if days < 0 {
		return GestationalAge{}, ErrFutureLMP
	}
	return GestationalAge{Week: days / 7, Day: days % 7}, nil
}

// Trimester maps a gestational week to its trimester: weeks 0-13 are the
// first, 14-26 the second, everything later the third.
func Trimester(week int) int {
	switch {
	case week <= 13:
		return 1
	case week <= 26:
		return 2
	default:
		return 3
	}
}

// CheckupWeek returns the ISO-8601 year and week number the given time falls
// in. This is the single week-bucketing convention for weekly checkups: both
// checkup creation and the duplicate-week check must call this function so
// the write path and the conflict check can never disagree. Around New Year
// the ISO year may differ from the calendar year, which keeps week 52 of one
// year and week 1 of the next in distinct buckets.
func CheckupWeek(t time.Time) (year, week int) {
	return t.UTC().ISOWeek()
}

// daysBetween counts whole calendar days from a to b, negative when b is
// before a.
func daysBetween(a, b time.Time) int {
	au := a.UTC()
	bu := b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad) / (24 * time.Hour))
}
