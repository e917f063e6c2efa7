package schedule

import (
	"testing"
	"time"
)

func TestParseDayKey(t *testing.T) {
	tests := []struct {
		name string
		year int
		key  string
		want string
		ok   bool
	}{
		{"valid spring day", 2024, "0315", "2024-03-15", true},
		{"first of january", 2024, "0101", "2024-01-01", true},
		{"last of december", 2024, "1231", "2024-12-31", true},
		{"leap day on leap year", 2024, "0229", "2024-02-29", true},
		{"leap day on common year", 2023, "0229", "", false},
		{"february thirtieth", 2024, "0230", "", false},
		{"month thirteen", 2024, "1301", "", false},
		{"day zero", 2024, "0100", "", false},
		{"month zero", 2024, "0015", "", false},
		{"metadata key", 2024, "_meta", "", false},
		{"underscore four chars", 2024, "_ver", "", false},
		{"too short", 2024, "315", "", false},
		{"too long", 2024, "03150", "", false},
		{"non numeric", 2024, "03a5", "", false},
		{"empty", 2024, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDayKey(tt.year, tt.key)
			if ok != tt.ok {
				t.Fatalf("ParseDayKey(%d, %q) ok = %v, want %v", tt.year, tt.key, ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDayKey(%d, %q) = %s, want %s", tt.year, tt.key, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestMMDDRoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	key := MMDD(date)
	if key != "0305" {
		t.Fatalf("MMDD = %s, want 0305", key)
	}
	back, ok := ParseDayKey(2024, key)
	if !ok || !back.Equal(date) {
		t.Errorf("round trip = %v, %v", back, ok)
	}
}

func TestPaths(t *testing.T) {
	if got := YearBucketPath("u1", CollectionScale, 2024); got != "users/u1/scale/2024" {
		t.Errorf("YearBucketPath = %s", got)
	}
	day := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	if got := DayBucketPath("u1", day); got != "users/u1/food/2024-03-15" {
		t.Errorf("DayBucketPath = %s", got)
	}
}

func TestYearsIn(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []int
	}{
		{"same year", "2024-01-05", "2024-11-20", []int{2024}},
		{"spans new year", "2023-12-28", "2024-01-03", []int{2023, 2024}},
		{"three years", "2022-06-01", "2024-06-01", []int{2022, 2023, 2024}},
		{"inverted", "2024-02-01", "2024-01-01", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := time.Parse("2006-01-02", tt.start)
			end, _ := time.Parse("2006-01-02", tt.end)
			got := YearsIn(start, end)
			if len(got) != len(tt.want) {
				t.Fatalf("YearsIn = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("YearsIn[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestInRange(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	if !InRange(time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), start, end) {
		t.Error("start day should be in range regardless of time")
	}
	if !InRange(end, start, end) {
		t.Error("end day should be in range")
	}
	if InRange(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), start, end) {
		t.Error("day before range should be out")
	}
	if InRange(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), start, end) {
		t.Error("day after range should be out")
	}
}
