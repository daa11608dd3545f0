package astro

import (
	"fmt"
	"math"
)

// Date is a calendar date in the proleptic Gregorian calendar with a
// fractional time of day.
type Date struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Seconds float64
}

// JulianDay converts the date to a Julian day number. The conversion uses the
// Gregorian calendar for all dates, which is how catalog files express epochs.
func (d Date) JulianDay() float64 {
	y := d.Year
	m := d.Month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(d.Day) + float64(b) - 1524.5

	return jd + (float64(d.Hour)+float64(d.Minute)/60.0+d.Seconds/3600.0)/24.0
}

// ParseDate interprets a catalog date string of the form
// "YYYY MM DD HH:MM:SS"; the day, time-of-day, and seconds parts are each
// optional. It returns the corresponding Julian day number.
func ParseDate(s string) (float64, error) {
	d := Date{Month: 1, Day: 1}

	if n, _ := fmt.Sscanf(s, "%d %d %d %d:%d:%f",
		&d.Year, &d.Month, &d.Day, &d.Hour, &d.Minute, &d.Seconds); n < 1 {
		return 0, fmt.Errorf("astro: unrecognized date %q", s)
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return 0, fmt.Errorf("astro: date %q out of range", s)
	}
	return d.JulianDay(), nil
}
