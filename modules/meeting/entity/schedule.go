package entity

import "sort"

// DateKey is a calendar date in YYYY-MM-DD form. The meeting carries one timezone for all dates.
type DateKey string

// TimeSlot is a zero padded 24h "HH:mm" boundary or the AllDay sentinel. Lexicographic order of
// HH:mm values is chronological order.
type TimeSlot string

const AllDay TimeSlot = "ALL_DAY"

type SelectionType string

const (
	SelectionTypeAllDay SelectionType = "ALL_DAY"
	SelectionTypeTime   SelectionType = "TIME"
)

// AvailableDates is the host-defined candidate space. A nil slot list marks an all-day date.
type AvailableDates map[DateKey][]TimeSlot

// IsAllDay reports whether every candidate date is an all-day date.
func (a AvailableDates) IsAllDay() bool {
	if len(a) == 0 {
		return false
	}
	for _, slots := range a {
		if slots != nil {
			return false
		}
	}
	return true
}

func (a AvailableDates) SelectionType() SelectionType {
	if a.IsAllDay() {
		return SelectionTypeAllDay
	}
	return SelectionTypeTime
}

// SortedDates returns the candidate dates in ascending order.
func (a AvailableDates) SortedDates() []DateKey {
	dates := make([]DateKey, 0, len(a))
	for d := range a {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// SlotsFor returns the ordered slots of a date; an all-day date has the single AllDay slot.
func (a AvailableDates) SlotsFor(date DateKey) ([]TimeSlot, bool) {
	slots, ok := a[date]
	if !ok {
		return nil, false
	}
	if slots == nil {
		return []TimeSlot{AllDay}, true
	}
	out := make([]TimeSlot, len(slots))
	copy(out, slots)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}

func (a AvailableDates) Contains(date DateKey, time TimeSlot) bool {
	slots, ok := a.SlotsFor(date)
	if !ok {
		return false
	}
	for _, s := range slots {
		if s == time {
			return true
		}
	}
	return false
}

// TimeAxis is the sorted union of every date's slots, used as the row axis of the date x time grid.
func (a AvailableDates) TimeAxis() []TimeSlot {
	if a.IsAllDay() {
		return []TimeSlot{AllDay}
	}
	seen := make(map[TimeSlot]struct{})
	axis := make([]TimeSlot, 0)
	for _, slots := range a {
		for _, s := range slots {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			axis = append(axis, s)
		}
	}
	sort.Slice(axis, func(i, j int) bool { return axis[i] < axis[j] })
	return axis
}

type Participant struct {
	UserID          int64  `json:"userId"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// ScheduleSlot is the upstream aggregate for one (date, time) cell. Count equals len(Participants)
// unless it was adjusted for the viewer.
type ScheduleSlot struct {
	Count        int           `json:"count"`
	Participants []Participant `json:"participants"`
}

func (s ScheduleSlot) Includes(userID int64) bool {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

type Schedule map[DateKey]map[TimeSlot]ScheduleSlot

// BestSlot is one ranked candidate. Percentage is the upstream's pre-formatted value.
type BestSlot struct {
	Date       DateKey  `json:"date"`
	Time       TimeSlot `json:"time"`
	Count      int      `json:"count"`
	Percentage string   `json:"percentage"`
}

type TimeRange struct {
	Start      TimeSlot `json:"start"`
	End        TimeSlot `json:"end"`
	Count      int      `json:"count"`
	Percentage string   `json:"percentage"`
}

type GroupedBestSlot struct {
	Date       DateKey     `json:"date"`
	TimeRanges []TimeRange `json:"timeRanges"`
}
