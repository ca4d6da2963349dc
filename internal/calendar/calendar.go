// Package calendar converts an externally sourced calendar date into a
// Christmas countdown.
package calendar

import (
	"fmt"
)

// Date is a calendar date. Values are only built through NewDate, so a Date
// in hand is always a real day of the Gregorian calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

var baseDaysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var monthAbbrev = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

const (
	christmasMonth = 12
	christmasDay   = 25
)

// NewDate validates year, month and day and returns the Date.
func NewDate(year, month, day int) (Date, error) {
	if year <= 0 {
		return Date{}, fmt.Errorf("year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month in year. Months outside 1..12
// report zero.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeap(year) {
		return 29
	}
	return baseDaysInMonth[month-1]
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based ordinal of the date within its year.
func DayOfYear(year, month, day int) int {
	total := day
	for m := 1; m < month && m <= 12; m++ {
		total += DaysInMonth(year, m)
	}
	return total
}

// DaysUntilChristmas returns the number of days from the given date until
// the next December 25th. Christmas day itself yields zero; the days after
// it count towards the following year.
func DaysUntilChristmas(year, month, day int) int {
	target := year
	if month == christmasMonth && day > christmasDay {
		target = year + 1
	}

	current := DayOfYear(year, month, day)

	var days int
	if target == year {
		days = DayOfYear(year, christmasMonth, christmasDay) - current
	} else {
		remaining := DaysInYear(year) - current
		days = remaining + DayOfYear(target, christmasMonth, christmasDay)
	}
	if days < 0 {
		return 0
	}
	return days
}

// DaysUntilChristmas is the countdown for d.
func (d Date) DaysUntilChristmas() int {
	return DaysUntilChristmas(d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Format renders d as "DD MMM YYYY", e.g. "05 Dec 2025".
func Format(d Date) string {
	month := "???"
	if d.Month >= 1 && d.Month <= 12 {
		month = monthAbbrev[d.Month-1]
	}
	return fmt.Sprintf("%02d %s %04d", d.Day, month, d.Year)
}
