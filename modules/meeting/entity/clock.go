package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	SlotStepMinutes = 30
	MinutesPerDay   = 24 * 60
)

// ClockFromMinutes formats minutes since midnight as HH:mm.
func ClockFromMinutes(minutes int) TimeSlot {
	return TimeSlot(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// SplitClock parses H:mm or HH:mm. The hour is not bounded so 12-hour callers can apply their own limit.
func SplitClock(value string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Minutes returns minutes since midnight for an H:mm or HH:mm value.
func (t TimeSlot) Minutes() (int, bool) {
	h, m, ok := SplitClock(string(t))
	if !ok || h > 23 {
		return 0, false
	}
	return h*60 + m, true
}

// Valid accepts zero padded HH:mm values only.
func (t TimeSlot) Valid() bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	_, ok := t.Minutes()
	return ok
}

// SlotIndex maps a half-hour boundary to its index (h*2 + m/30).
func (t TimeSlot) SlotIndex() (int, bool) {
	minutes, ok := t.Minutes()
	if !ok || minutes%SlotStepMinutes != 0 {
		return 0, false
	}
	return minutes / SlotStepMinutes, true
}

// SlotAt is the inverse of SlotIndex over the 48 half-hour boundaries.
func SlotAt(index int) (TimeSlot, bool) {
	if index < 0 || index >= MinutesPerDay/SlotStepMinutes {
		return "", false
	}
	return ClockFromMinutes(index * SlotStepMinutes), true
}

func (d DateKey) Valid() bool {
	if len(d) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}
