package calendar

import "testing"

func TestDaysUntilChristmas(t *testing.T) {
	cases := []struct {
		name             string
		year, month, day int
		want             int
	}{
		{"christmas day", 2025, 12, 25, 0},
		{"christmas eve", 2025, 12, 24, 1},
		{"boxing day leap year", 2024, 12, 26, 364},
		{"boxing day before non-leap", 2025, 12, 26, 364},
		{"boxing day before leap", 2023, 12, 26, 365},
		{"new years eve", 2023, 12, 31, 360},
		{"new years day", 2025, 1, 1, 358},
		{"new years day leap", 2024, 1, 1, 359},
		{"feb 28 leap counts feb 29", 2024, 2, 28, 301},
		{"feb 28 non-leap", 2023, 2, 28, 300},
		{"feb 29 leap", 2024, 2, 29, 300},
		{"century leap 2000", 2000, 2, 28, 301},
		{"century non-leap 1900", 1900, 2, 28, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysUntilChristmas(tc.year, tc.month, tc.day)
			if got != tc.want {
				t.Fatalf("DaysUntilChristmas(%d, %d, %d) = %d, want %d", tc.year, tc.month, tc.day, got, tc.want)
			}
		})
	}
}

func TestDaysUntilChristmas_ChristmasIsAlwaysZero(t *testing.T) {
	for year := 1890; year <= 2110; year++ {
		if got := DaysUntilChristmas(year, 12, 25); got != 0 {
			t.Fatalf("DaysUntilChristmas(%d, 12, 25) = %d, want 0", year, got)
		}
	}
}

func TestDaysUntilChristmas_YearRolloverMatchesNewYear(t *testing.T) {
	// Dec 26 through Dec 31 plus Jan 1 itself separate the two dates.
	for year := 1990; year <= 2110; year++ {
		boxing := DaysUntilChristmas(year, 12, 26)
		newYear := DaysUntilChristmas(year+1, 1, 1)
		if boxing != newYear+6 {
			t.Fatalf("year %d: Dec 26 = %d, Jan 1 next year = %d, want difference 6", year, boxing, newYear)
		}
	}
}

func TestDaysUntilChristmas_NeverNegative(t *testing.T) {
	for _, year := range []int{1900, 2000, 2023, 2024, 2100} {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= DaysInMonth(year, month); day++ {
				if got := DaysUntilChristmas(year, month, day); got < 0 {
					t.Fatalf("DaysUntilChristmas(%d, %d, %d) = %d, want >= 0", year, month, day, got)
				}
			}
		}
	}
}

func TestIsLeap(t *testing.T) {
	cases := map[int]bool{
		1900: false,
		2000: true,
		2023: false,
		2024: true,
		2100: false,
		2400: true,
	}
	for year, want := range cases {
		if got := IsLeap(year); got != want {
			t.Fatalf("IsLeap(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestDayOfYear(t *testing.T) {
	if got := DayOfYear(2024, 3, 1); got != 61 {
		t.Fatalf("DayOfYear(2024, 3, 1) = %d, want 61", got)
	}
	if got := DayOfYear(2023, 3, 1); got != 60 {
		t.Fatalf("DayOfYear(2023, 3, 1) = %d, want 60", got)
	}
	if got := DayOfYear(2024, 12, 31); got != 366 {
		t.Fatalf("DayOfYear(2024, 12, 31) = %d, want 366", got)
	}
}

func TestNewDate_Validates(t *testing.T) {
	if _, err := NewDate(2025, 12, 25); err != nil {
		t.Fatalf("NewDate(2025, 12, 25) returned error: %v", err)
	}
	bad := [][3]int{
		{0, 1, 1},
		{2025, 0, 1},
		{2025, 13, 1},
		{2025, 1, 0},
		{2025, 1, 32},
		{2023, 2, 29},
		{1900, 2, 29},
	}
	for _, b := range bad {
		if _, err := NewDate(b[0], b[1], b[2]); err == nil {
			t.Fatalf("NewDate(%d, %d, %d) returned nil error, want error", b[0], b[1], b[2])
		}
	}
	if _, err := NewDate(2000, 2, 29); err != nil {
		t.Fatalf("NewDate(2000, 2, 29) returned error: %v", err)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   Date
		want string
	}{
		{Date{Year: 2025, Month: 12, Day: 5}, "05 Dec 2025"},
		{Date{Year: 2024, Month: 1, Day: 31}, "31 Jan 2024"},
		{Date{Year: 999, Month: 7, Day: 4}, "04 Jul 0999"},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate_StringAndCountdown(t *testing.T) {
	d, err := NewDate(2025, 12, 1)
	if err != nil {
		t.Fatalf("NewDate returned error: %v", err)
	}
	if d.String() != "2025-12-01" {
		t.Fatalf("String() = %q, want 2025-12-01", d.String())
	}
	if d.DaysUntilChristmas() != 24 {
		t.Fatalf("DaysUntilChristmas() = %d, want 24", d.DaysUntilChristmas())
	}
	if d.IsZero() {
		t.Fatal("IsZero() = true, want false")
	}
}
