package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
		wantErr  bool
	}{
		{
			name:     "empty string returns UTC",
			timezone: "",
			want:     "UTC",
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			want:     "Local",
		},
		{
			name:     "valid timezone America/Detroit",
			timezone: "America/Detroit",
			want:     "America/Detroit",
		},
		{
			name:     "valid timezone Asia/Tokyo",
			timezone: "Asia/Tokyo",
			want:     "Asia/Tokyo",
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc.String() != tt.want {
				t.Errorf("LoadLocation() = %q, want %q", loc.String(), tt.want)
			}
		})
	}
}

func TestResolveLocation(t *testing.T) {
	loc, ok := ResolveLocation("Not/AZone")
	if ok {
		t.Error("expected ok=false for unknown timezone")
	}
	if loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}

	loc, ok = ResolveLocation("Europe/Berlin")
	if !ok || loc.String() != "Europe/Berlin" {
		t.Errorf("ResolveLocation(Europe/Berlin) = %v, %v", loc, ok)
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:00", 360, false},
		{"17:30", 1050, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"6am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	loc, _ := time.LoadLocation("America/Detroit")
	got, err := CombineDateAndTime("2025-12-18", "17:00", loc)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2025, 12, 18, 22, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got.UTC(), want)
	}

	if _, err := CombineDateAndTime("2025-13-01", "17:00", loc); err == nil {
		t.Error("expected error for invalid date")
	}
	if _, err := CombineDateAndTime("2025-12-18", "5pm", loc); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2025-12-18", -1, "2025-12-17"},
		{"2025-03-01", -1, "2025-02-28"},
		{"2024-03-01", -1, "2024-02-29"},
		{"2025-12-31", 1, "2026-01-01"},
		{"2025-12-19", -29, "2025-11-20"},
	}
	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error = %v", tt.date, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2025-12-30", "2026-01-02")
	if err != nil {
		t.Fatalf("DateRange() error = %v", err)
	}
	want := []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"}
	if len(dates) != len(want) {
		t.Fatalf("DateRange() returned %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, dates[i], want[i])
		}
	}

	empty, err := DateRange("2026-01-02", "2026-01-01")
	if err != nil {
		t.Fatalf("DateRange() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no dates for reversed range, got %v", empty)
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") {
		t.Error("empty timezone should be valid")
	}
	if !ValidateTimezone("America/New_York") {
		t.Error("America/New_York should be valid")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("Mars/Olympus should be invalid")
	}
}
