package timescale

// lastTableYear is the year of the most recent review of the leap-second
// table. Dates more than five years later are flagged as dubious because a
// leap second may have been announced since.
const lastTableYear = 2025

type leapChange struct {
	year, month int
	delta       float64
}

// TAI-UTC changes. The first 14 entries belong to the pre-1972 era in which
// UTC drifted against TAI at the rates in drift.
var leapChanges = []leapChange{
	{1960, 1, 1.4178180},
	{1961, 1, 1.4228180},
	{1961, 8, 1.3728180},
	{1962, 1, 1.8458580},
	{1963, 11, 1.9458580},
	{1964, 1, 3.2401300},
	{1964, 4, 3.3401300},
	{1964, 9, 3.4401300},
	{1965, 1, 3.5401300},
	{1965, 3, 3.6401300},
	{1965, 7, 3.7401300},
	{1965, 9, 3.8401300},
	{1966, 1, 4.3131700},
	{1968, 2, 4.2131700},
	{1972, 1, 10.0},
	{1972, 7, 11.0},
	{1973, 1, 12.0},
	{1974, 1, 13.0},
	{1975, 1, 14.0},
	{1976, 1, 15.0},
	{1977, 1, 16.0},
	{1978, 1, 17.0},
	{1979, 1, 18.0},
	{1980, 1, 19.0},
	{1981, 7, 20.0},
	{1982, 7, 21.0},
	{1983, 7, 22.0},
	{1985, 7, 23.0},
	{1988, 1, 24.0},
	{1990, 1, 25.0},
	{1991, 1, 26.0},
	{1992, 7, 27.0},
	{1993, 7, 28.0},
	{1994, 7, 29.0},
	{1996, 1, 30.0},
	{1997, 7, 31.0},
	{1999, 1, 32.0},
	{2006, 1, 33.0},
	{2009, 1, 34.0},
	{2012, 7, 35.0},
	{2015, 7, 36.0},
	{2017, 1, 37.0},
}

// Reference MJD and rate (s/day) for the drifting era.
var drift = [][2]float64{
	{37300.0, 0.0012960},
	{37300.0, 0.0012960},
	{37300.0, 0.0012960},
	{37665.0, 0.0011232},
	{37665.0, 0.0011232},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{38761.0, 0.0012960},
	{39126.0, 0.0025920},
	{39126.0, 0.0025920},
}

// TAIMinusUTC returns TAI-UTC in seconds for a UTC calendar date and fraction
// of day. dubious reports that the date precedes the table (the result is then
// zero) or lies far enough past its last review that a later leap second may
// be missing.
func TAIMinusUTC(year, month, day int, frac float64) (delta float64, dubious bool, err error) {
	if frac < 0 || frac > 1 {
		return 0, false, ErrBadFraction
	}

	d, err := FromCalendar(year, month, day)
	if err != nil {
		return 0, false, err
	}

	if year < leapChanges[0].year {
		return 0, true, nil
	}
	if year > lastTableYear+5 {
		dubious = true
	}

	m := 12*year + month
	i := len(leapChanges) - 1
	for ; i >= 0; i-- {
		if m >= 12*leapChanges[i].year+leapChanges[i].month {
			break
		}
	}
	if i < 0 {
		return 0, true, nil
	}

	delta = leapChanges[i].delta
	if i < len(drift) {
		delta += (d.Lo + frac - drift[i][0]) * drift[i][1]
	}
	return delta, dubious, nil
}
