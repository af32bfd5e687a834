package entity

import (
	"sort"
	"time"
)

// Selection is one participant's picks. Slot lists are kept sorted and duplicate free; a date with no
// slots counts as not selected.
type Selection map[DateKey][]TimeSlot

func (s Selection) Has(date DateKey, time TimeSlot) bool {
	for _, t := range s[date] {
		if t == time {
			return true
		}
	}
	return false
}

func (s Selection) Add(date DateKey, time TimeSlot) {
	if s.Has(date, time) {
		return
	}
	slots := append(s[date], time)
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	s[date] = slots
}

func (s Selection) Remove(date DateKey, time TimeSlot) {
	slots := s[date]
	for i, t := range slots {
		if t == time {
			s[date] = append(slots[:i:i], slots[i+1:]...)
			break
		}
	}
	if len(s[date]) == 0 {
		delete(s, date)
	}
}

func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for date, slots := range s {
		if len(slots) == 0 {
			continue
		}
		cp := make([]TimeSlot, len(slots))
		copy(cp, slots)
		out[date] = cp
	}
	return out
}

// Count is the number of selected cells.
func (s Selection) Count() int {
	n := 0
	for _, slots := range s {
		n += len(slots)
	}
	return n
}

func (s Selection) IsEmpty() bool {
	return s.Count() == 0
}

type Cell struct {
	Date DateKey  `json:"date"`
	Time TimeSlot `json:"time"`
}

type SubmissionEntry struct {
	Date  DateKey       `json:"date"`
	Type  SelectionType `json:"type"`
	Times []TimeSlot    `json:"times"`
}

// Submission is the body sent to the upstream selections endpoint.
type Submission struct {
	Selections []SubmissionEntry `json:"selections"`
}

// Draft is an in-progress selection owned by one editing session.
type Draft struct {
	ID          string         `json:"id"`
	MeetingCode string         `json:"meetingCode"`
	UserID      int64          `json:"userId"`
	Type        SelectionType  `json:"type"`
	Available   AvailableDates `json:"available"`
	Selection   Selection      `json:"selection"`
	LocationIDs []int64        `json:"locationIds,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
