package service

import (
	"testing"
	"time"

	"time2gather/modules/meeting/entity"
)

func TestGetTimeRangeSlots_Bounds(t *testing.T) {
	if got := GetTimeRangeSlots("10:00", "09:00"); len(got) != 0 {
		t.Fatalf("expected empty range when start is after end, got %v", got)
	}
	got := GetTimeRangeSlots("09:00", "09:00")
	if len(got) != 1 || got[0] != "09:00" {
		t.Fatalf("expected [09:00], got %v", got)
	}
	if got := GetTimeRangeSlots("09:30", "11:00"); len(got) != 0 {
		t.Fatalf("expected empty range for non-canonical start, got %v", got)
	}
	if got := GetTimeRangeSlots("", "11:00"); got == nil || len(got) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v", got)
	}
}

func TestGetTimeRangeSlots_Inclusive(t *testing.T) {
	got := GetTimeRangeSlots("09:00", "12:00")
	want := []entity.TimeSlot{"09:00", "10:00", "11:00", "12:00"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	full := GetTimeRangeSlots("00:00", "23:00")
	if len(full) != 24 {
		t.Fatalf("expected 24 hourly slots, got %d", len(full))
	}
}

func TestHalfHourRangeSlots(t *testing.T) {
	got := HalfHourRangeSlots("09:00", "10:30")
	if len(got) != 4 || got[1] != "09:30" || got[3] != "10:30" {
		t.Fatalf("unexpected half-hour range %v", got)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30} {
			slot := entity.ClockFromMinutes(h*60 + m)
			t12, err := ConvertTo12Hour(slot)
			if err != nil {
				t.Fatalf("ConvertTo12Hour(%s): %v", slot, err)
			}
			back, err := ConvertTo24Hour(t12.Time, t12.AmPm)
			if err != nil {
				t.Fatalf("ConvertTo24Hour(%s %s): %v", t12.Time, t12.AmPm, err)
			}
			if back != slot {
				t.Fatalf("round trip %s -> %s %s -> %s", slot, t12.Time, t12.AmPm, back)
			}
		}
	}
}

func TestConvertTo24Hour_Noon(t *testing.T) {
	cases := []struct {
		time string
		amPm AmPm
		want entity.TimeSlot
	}{
		{"12:00", AM, "00:00"},
		{"12:30", PM, "12:30"},
		{"9:00", AM, "09:00"},
		{"00:00", PM, "12:00"},
		{"11:30", PM, "23:30"},
	}
	for _, tc := range cases {
		got, err := ConvertTo24Hour(tc.time, tc.amPm)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.time, tc.amPm, err)
		}
		if got != tc.want {
			t.Fatalf("%s %s: expected %s, got %s", tc.time, tc.amPm, tc.want, got)
		}
	}

	if _, err := ConvertTo24Hour("13:00", PM); err == nil {
		t.Fatalf("expected error for hour 13")
	}
	if _, err := ConvertTo24Hour("09:00", "XM"); err == nil {
		t.Fatalf("expected error for bad marker")
	}
}

func TestIsTimeAfter(t *testing.T) {
	if !IsTimeAfter("10:00", "09:30") {
		t.Fatalf("10:00 should be after 09:30")
	}
	if !IsTimeAfter("09:30", "09:30") {
		t.Fatalf("equal times should count as after")
	}
	if IsTimeAfter("09:00", "09:30") {
		t.Fatalf("09:00 should not be after 09:30")
	}
	if IsTimeAfter("bogus", "09:30") {
		t.Fatalf("malformed input should report false")
	}
}

func TestSlotIndex(t *testing.T) {
	idx, ok := TimeToSlotIndex("13:30")
	if !ok || idx != 27 {
		t.Fatalf("expected index 27, got %d (ok=%v)", idx, ok)
	}
	if _, ok := TimeToSlotIndex("13:15"); ok {
		t.Fatalf("13:15 is not a half-hour boundary")
	}
	if _, ok := TimeToSlotIndex(entity.AllDay); ok {
		t.Fatalf("ALL_DAY has no slot index")
	}
	slot, ok := SlotIndexToTime(27)
	if !ok || slot != "13:30" {
		t.Fatalf("expected 13:30, got %s", slot)
	}
	if _, ok := SlotIndexToTime(48); ok {
		t.Fatalf("index 48 is out of range")
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		date   entity.DateKey
		locale string
		want   string
	}{
		{"2024-02-15", "ko", "2월 15일 (목)"},
		{"2025-01-06", "ko", "2025년 1월 6일 (월)"},
		{"2024-02-15", "en", "Feb 15 (Thu)"},
		{"2025-01-06", "en", "Jan 6, 2025 (Mon)"},
		{"not-a-date", "en", "not-a-date"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.date, tc.locale, now); got != tc.want {
			t.Fatalf("FormatDate(%s, %s): expected %q, got %q", tc.date, tc.locale, tc.want, got)
		}
	}
}

func TestIsValidDateKeyAndSlot(t *testing.T) {
	if !IsValidDateKey("2024-02-29") {
		t.Fatalf("leap day should be valid")
	}
	if IsValidDateKey("2023-02-29") || IsValidDateKey("2024-2-1") {
		t.Fatalf("invalid dates accepted")
	}
	if !IsValidTimeSlot("09:30") || IsValidTimeSlot("9:30") || IsValidTimeSlot(" 9:30") || IsValidTimeSlot("24:00") {
		t.Fatalf("unexpected time slot validation")
	}
}
