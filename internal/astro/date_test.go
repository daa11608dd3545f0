package astro

import (
	"math"
	"testing"
)

func TestJulianDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		date Date
		want float64
	}{
		{"J2000 epoch", Date{Year: 2000, Month: 1, Day: 1, Hour: 12}, 2451545.0},
		{"J2000 midnight", Date{Year: 2000, Month: 1, Day: 1}, 2451544.5},
		{"unix epoch", Date{Year: 1970, Month: 1, Day: 1}, 2440587.5},
		{"half day", Date{Year: 2000, Month: 1, Day: 1, Hour: 18}, 2451545.25},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.date.JulianDay(); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("JulianDay() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("full form", func(t *testing.T) {
		t.Parallel()
		jd, err := ParseDate("2000 1 1 12:00:00")
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if math.Abs(jd-2451545.0) > 1e-9 {
			t.Errorf("jd = %v, want 2451545", jd)
		}
	})

	t.Run("year only", func(t *testing.T) {
		t.Parallel()
		jd, err := ParseDate("2000")
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		if math.Abs(jd-2451544.5) > 1e-9 {
			t.Errorf("jd = %v, want midnight of Jan 1", jd)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseDate("not a date"); err == nil {
			t.Error("want error for unparseable date")
		}
		if _, err := ParseDate("2000 13 1"); err == nil {
			t.Error("want error for month out of range")
		}
	})
}

func TestUnitConversions(t *testing.T) {
	t.Parallel()
	if got := AUToKm(1); got != KmPerAU {
		t.Errorf("AUToKm(1) = %v", got)
	}
	if got := YearsToDays(2); got != 730.5 {
		t.Errorf("YearsToDays(2) = %v", got)
	}
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(math.Pi / 2); math.Abs(got-90) > 1e-12 {
		t.Errorf("RadToDeg(pi/2) = %v", got)
	}
}
