// Package timescale provides two-part Julian dates and the UTC, TAI, TT and
// UT1 conversions needed to drive the astrometry pipeline.
package timescale

import (
	"errors"
	"math"
	"time"
)

// Reference epochs.
const (
	// J2000 is the Julian date of the J2000.0 epoch.
	J2000 = 2451545.0

	// MJDZero is the offset between Julian date and modified Julian date.
	MJDZero = 2400000.5

	daysPerCentury = 36525.0
	daysPerYear    = 365.25
	secondsPerDay  = 86400.0
)

// Calendar conversion errors.
var (
	ErrBadYear     = errors.New("timescale: year out of range")
	ErrBadMonth    = errors.New("timescale: month out of range")
	ErrBadDay      = errors.New("timescale: day out of range")
	ErrBadFraction = errors.New("timescale: day fraction out of range")
	ErrBadDate     = errors.New("timescale: Julian date out of range")
)

// Date is a Julian date held as two parts whose sum is the date. Keeping the
// parts apart preserves precision; any split is valid, the most useful being
// a fixed epoch in Hi and the offset in Lo.
type Date struct {
	Hi, Lo float64
}

// MJD returns the Date for a modified Julian date.
func MJD(mjd float64) Date {
	return Date{Hi: MJDZero, Lo: mjd}
}

// JD returns the date as a single float64. Precision is lost; use for display
// or coarse calculations only.
func (d Date) JD() float64 {
	return d.Hi + d.Lo
}

// AddDays returns the date shifted by the given number of days, applied to the
// low part.
func (d Date) AddDays(days float64) Date {
	return Date{Hi: d.Hi, Lo: d.Lo + days}
}

// DaysSinceJ2000 returns the interval from J2000.0 in days.
func (d Date) DaysSinceJ2000() float64 {
	return (d.Hi - J2000) + d.Lo
}

// Centuries returns the interval from J2000.0 in Julian centuries.
func (d Date) Centuries() float64 {
	return d.DaysSinceJ2000() / daysPerCentury
}

// Years returns the interval from J2000.0 in Julian years.
func (d Date) Years() float64 {
	return d.DaysSinceJ2000() / daysPerYear
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// FromCalendar converts a Gregorian calendar date to a two-part Julian date at
// 0h. The result is {MJDZero, MJD}.
func FromCalendar(year, month, day int) (Date, error) {
	if year < -4799 {
		return Date{}, ErrBadYear
	}
	if month < 1 || month > 12 {
		return Date{}, ErrBadMonth
	}

	leap := 0
	if month == 2 && year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		leap = 1
	}
	var err error
	if day < 1 || day > monthDays[month-1]+leap {
		err = ErrBadDay
	}

	my := (month - 14) / 12
	iypmy := int64(year + my)
	mjd := (1461*(iypmy+4800))/4 +
		(367*int64(month-2-12*my))/12 -
		(3*((iypmy+4900)/100))/4 +
		int64(day) - 2432076

	return Date{Hi: MJDZero, Lo: float64(mjd)}, err
}

// Calendar converts the date to a Gregorian calendar date and fraction of day.
// The parts are split at their nearest integers and the fraction summed with
// compensation, so no precision is lost whichever part holds the epoch.
func (d Date) Calendar() (year, month, day int, frac float64, err error) {
	dj := d.Hi + d.Lo
	if dj < -68569.5 || dj > 1e9 {
		return 0, 0, 0, 0, ErrBadDate
	}

	// Day and fraction of each part, -0.5 <= fraction <= 0.5.
	n1 := math.Round(d.Hi)
	n2 := math.Round(d.Lo)
	jd := int64(n1) + int64(n2)

	// f1 + f2 + 0.5 by compensated summation.
	s, cs := 0.5, 0.0
	for _, x := range [2]float64{d.Hi - n1, d.Lo - n2} {
		t := s + x
		if math.Abs(s) >= math.Abs(x) {
			cs += (s - t) + x
		} else {
			cs += (x - t) + s
		}
		s = t
		if s >= 1 {
			jd++
			s--
		}
	}
	f := s + cs
	cs = f - s

	if f < 0 {
		f = s + 1
		cs += (1 - f) + s
		s = f
		f = s + cs
		cs = f - s
		jd--
	}

	// A fraction that rounds to one belongs to the next day.
	if f-1 >= -epsilon/4 {
		t := s - 1
		cs += (s - t) - 1
		s = t
		f = s + cs
		if -epsilon/2 < f {
			jd++
			f = math.Max(f, 0)
		}
	}

	l := jd + 68569
	n := (4 * l) / 146097
	l -= (146097*n + 3) / 4
	i := (4000 * (l + 1)) / 1461001
	l -= (1461*i)/4 - 31
	k := (80 * l) / 2447
	day = int(l - (2447*k)/80)
	l = k / 11
	month = int(k + 2 - 12*l)
	year = int(100*(n-49) + i + l)

	return year, month, day, f, nil
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

// FromTime converts a time to a two-part quasi Julian date on the UTC scale,
// {MJDZero, MJD + fraction}.
func FromTime(t time.Time) Date {
	t = t.UTC()
	d, _ := FromCalendar(t.Year(), int(t.Month()), t.Day())

	sec := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
	return Date{Hi: d.Hi, Lo: d.Lo + sec/secondsPerDay}
}
