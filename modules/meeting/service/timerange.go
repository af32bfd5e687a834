package service

import (
	"fmt"
	"time"

	"time2gather/core/constants"
	"time2gather/modules/meeting/entity"
)

type AmPm string

const (
	AM AmPm = "AM"
	PM AmPm = "PM"
)

// Time12 is a 12-hour clock value as shown in the host's time pickers.
type Time12 struct {
	Time string `json:"time"`
	AmPm AmPm   `json:"amPm"`
}

const slotStepMinutes = entity.SlotStepMinutes

// TimeSlots24 is the canonical hourly slot list, 00:00 through 23:00.
var TimeSlots24 = buildSlots(60)

// HalfHourSlots is the 48-entry half-hour list, 00:00 through 23:30.
var HalfHourSlots = buildSlots(slotStepMinutes)

func buildSlots(step int) []entity.TimeSlot {
	slots := make([]entity.TimeSlot, 0, entity.MinutesPerDay/step)
	for m := 0; m < entity.MinutesPerDay; m += step {
		slots = append(slots, entity.ClockFromMinutes(m))
	}
	return slots
}

// GetTimeRangeSlots returns TimeSlots24[start..end] inclusive, or an empty slice when either bound is
// not a canonical slot or start sorts after end.
func GetTimeRangeSlots(start, end entity.TimeSlot) []entity.TimeSlot {
	return sliceRange(TimeSlots24, start, end)
}

// HalfHourRangeSlots is GetTimeRangeSlots over the half-hour list.
func HalfHourRangeSlots(start, end entity.TimeSlot) []entity.TimeSlot {
	return sliceRange(HalfHourSlots, start, end)
}

func sliceRange(list []entity.TimeSlot, start, end entity.TimeSlot) []entity.TimeSlot {
	startIndex, endIndex := -1, -1
	for i, t := range list {
		if t == start {
			startIndex = i
		}
		if t == end {
			endIndex = i
		}
	}
	if startIndex == -1 || endIndex == -1 || startIndex > endIndex {
		return []entity.TimeSlot{}
	}
	out := make([]entity.TimeSlot, endIndex-startIndex+1)
	copy(out, list[startIndex:endIndex+1])
	return out
}

// ParseClock returns minutes since midnight for an H:mm or HH:mm value.
func ParseClock(t entity.TimeSlot) (int, bool) {
	return t.Minutes()
}

func IsValidTimeSlot(t entity.TimeSlot) bool {
	return t.Valid()
}

func IsValidDateKey(d entity.DateKey) bool {
	return d.Valid()
}

// ConvertTo24Hour converts a 12-hour picker value. The pickers offer 00..11 as well as 12, so hour 0 and
// hour 12 both mean the start of the half-day: 12 AM is 00, 12 PM is 12.
func ConvertTo24Hour(time12 string, amPm AmPm) (entity.TimeSlot, error) {
	h, m, ok := entity.SplitClock(time12)
	if !ok || h > 12 {
		return "", fmt.Errorf("invalid 12-hour time %q", time12)
	}
	if h == 12 {
		h = 0
	}
	switch amPm {
	case AM:
	case PM:
		h += 12
	default:
		return "", fmt.Errorf("invalid am/pm marker %q", amPm)
	}
	return entity.ClockFromMinutes(h*60 + m), nil
}

func ConvertTo12Hour(time24 entity.TimeSlot) (Time12, error) {
	minutes, ok := ParseClock(time24)
	if !ok {
		return Time12{}, fmt.Errorf("invalid 24-hour time %q", time24)
	}
	h, m := minutes/60, minutes%60

	amPm := AM
	if h >= 12 {
		amPm = PM
	}
	hour12 := h % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return Time12{Time: fmt.Sprintf("%02d:%02d", hour12, m), AmPm: amPm}, nil
}

// IsTimeAfter reports whether a is later than or equal to b as same-day clock times.
func IsTimeAfter(a, b entity.TimeSlot) bool {
	ma, okA := ParseClock(a)
	mb, okB := ParseClock(b)
	if !okA || !okB {
		return false
	}
	return ma >= mb
}

// MinutesBetween returns b - a in minutes.
func MinutesBetween(a, b entity.TimeSlot) (int, bool) {
	ma, okA := ParseClock(a)
	mb, okB := ParseClock(b)
	if !okA || !okB {
		return 0, false
	}
	return mb - ma, true
}

// TimeToSlotIndex maps a half-hour boundary to its index (h*2 + m/30).
func TimeToSlotIndex(t entity.TimeSlot) (int, bool) {
	return t.SlotIndex()
}

func SlotIndexToTime(index int) (entity.TimeSlot, bool) {
	return entity.SlotAt(index)
}

var koWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatDate renders a date for the ko or en locale, adding the year only when it differs from now.
func FormatDate(date entity.DateKey, locale string, now time.Time) string {
	d, err := time.Parse(entity.DateLayout, string(date))
	if err != nil {
		return string(date)
	}
	sameYear := d.Year() == now.Year()

	if locale == constants.LocaleEN {
		if sameYear {
			return d.Format("Jan 2 (Mon)")
		}
		return d.Format("Jan 2, 2006 (Mon)")
	}

	weekday := koWeekdays[d.Weekday()]
	if sameYear {
		return fmt.Sprintf("%d월 %d일 (%s)", int(d.Month()), d.Day(), weekday)
	}
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", d.Year(), int(d.Month()), d.Day(), weekday)
}

// FormatTimeRange renders a merged range label.
func FormatTimeRange(r entity.TimeRange, locale string) string {
	if r.Start == entity.AllDay {
		if locale == constants.LocaleEN {
			return "All day"
		}
		return "종일"
	}
	if r.Start == r.End {
		return string(r.Start)
	}
	return string(r.Start) + " - " + string(r.End)
}
