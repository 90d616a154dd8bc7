package timescale

import (
	"fmt"
	"math"
)

// TTMinusTAI is the fixed offset TT-TAI in seconds.
const TTMinusTAI = 32.184

// Epoch holds the two clocks the astrometry pipeline runs on: TT for the
// ephemeris and precession-nutation, UT1 for Earth rotation. TDB is taken to
// equal TT; the difference is under 2 ms and negligible here.
type Epoch struct {
	TT  Date
	UT1 Date
}

// EpochFromUTC converts a UTC quasi Julian date and UT1-UTC (seconds) into an
// Epoch. dubious is set when the leap-second table cannot vouch for the date.
func EpochFromUTC(utc Date, dut1 float64) (Epoch, bool, error) {
	tai, dubious, err := UTCToTAI(utc)
	if err != nil {
		return Epoch{}, false, err
	}
	ut1, d2, err := UTCToUT1(utc, dut1)
	if err != nil {
		return Epoch{}, false, err
	}
	return Epoch{TT: TAIToTT(tai), UT1: ut1}, dubious || d2, nil
}

// UTCToTAI converts UTC to TAI. On days containing a leap second the UTC
// fraction is scaled so that the day has 86401 (or 86399) seconds.
func UTCToTAI(utc Date) (Date, bool, error) {
	big1 := math.Abs(utc.Hi) >= math.Abs(utc.Lo)
	u1, u2 := utc.Hi, utc.Lo
	if !big1 {
		u1, u2 = utc.Lo, utc.Hi
	}

	iy, im, id, fd, err := Date{u1, u2}.Calendar()
	if err != nil {
		return Date{}, false, err
	}
	dat0, dubious, err := TAIMinusUTC(iy, im, id, 0)
	if err != nil {
		return Date{}, false, err
	}
	dat12, _, err := TAIMinusUTC(iy, im, id, 0.5)
	if err != nil {
		return Date{}, false, err
	}

	iyt, imt, idt, _, err := Date{u1 + 1.5, u2 - fd}.Calendar()
	if err != nil {
		return Date{}, false, err
	}
	dat24, _, err := TAIMinusUTC(iyt, imt, idt, 0)
	if err != nil {
		return Date{}, false, err
	}

	// Separate the TAI-UTC change into a per-day rate and any jump.
	dlod := 2 * (dat12 - dat0)
	dleap := dat24 - (dat0 + dlod)

	fd *= (secondsPerDay + dleap) / secondsPerDay
	fd *= (secondsPerDay + dlod) / secondsPerDay

	z, err := FromCalendar(iy, im, id)
	if err != nil {
		return Date{}, false, fmt.Errorf("utc to tai: %w", err)
	}

	a2 := z.Hi - u1
	a2 += z.Lo
	a2 += fd + dat0/secondsPerDay
	if big1 {
		return Date{Hi: u1, Lo: a2}, dubious, nil
	}
	return Date{Hi: a2, Lo: u1}, dubious, nil
}

// TAIToTT converts TAI to TT.
func TAIToTT(tai Date) Date {
	dtat := TTMinusTAI / secondsPerDay
	if math.Abs(tai.Hi) > math.Abs(tai.Lo) {
		return Date{Hi: tai.Hi, Lo: tai.Lo + dtat}
	}
	return Date{Hi: tai.Hi + dtat, Lo: tai.Lo}
}

// TTToTAI converts TT to TAI.
func TTToTAI(tt Date) Date {
	dtat := TTMinusTAI / secondsPerDay
	if math.Abs(tt.Hi) > math.Abs(tt.Lo) {
		return Date{Hi: tt.Hi, Lo: tt.Lo - dtat}
	}
	return Date{Hi: tt.Hi - dtat, Lo: tt.Lo}
}

// TAIToUT1 converts TAI to UT1 given UT1-TAI in seconds.
func TAIToUT1(tai Date, dta float64) Date {
	dtad := dta / secondsPerDay
	if math.Abs(tai.Hi) > math.Abs(tai.Lo) {
		return Date{Hi: tai.Hi, Lo: tai.Lo + dtad}
	}
	return Date{Hi: tai.Hi + dtad, Lo: tai.Lo}
}

// UTCToUT1 converts UTC to UT1 given UT1-UTC in seconds.
func UTCToUT1(utc Date, dut1 float64) (Date, bool, error) {
	iy, im, id, _, err := utc.Calendar()
	if err != nil {
		return Date{}, false, err
	}
	dat, dubious, err := TAIMinusUTC(iy, im, id, 0)
	if err != nil {
		return Date{}, false, err
	}

	tai, d2, err := UTCToTAI(utc)
	if err != nil {
		return Date{}, false, err
	}
	return TAIToUT1(tai, dut1-dat), dubious || d2, nil
}
