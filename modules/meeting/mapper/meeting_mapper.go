package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"time2gather/modules/meeting/dto"
	"time2gather/modules/meeting/entity"
)

// ToMeetingDetail validates an upstream meeting payload. Any malformed date, time, or cell fails the
// whole payload.
func ToMeetingDetail(raw *dto.UpstreamMeetingDetail) (*entity.MeetingDetail, error) {
	if raw == nil {
		return nil, fmt.Errorf("meeting payload is empty")
	}
	if strings.TrimSpace(raw.Meeting.Code) == "" {
		return nil, fmt.Errorf("meeting code is missing")
	}

	available, err := ToAvailableDates(raw.Meeting.AvailableDates)
	if err != nil {
		return nil, err
	}

	meeting := entity.Meeting{
		ID:             raw.Meeting.ID,
		Code:           raw.Meeting.Code,
		Title:          raw.Meeting.Title,
		Description:    raw.Meeting.Description,
		Host:           toHost(raw.Meeting.Host),
		Timezone:       raw.Meeting.Timezone,
		AvailableDates: available,
	}
	if raw.Meeting.ConfirmedDate != nil {
		confirmed, err := toConfirmedSlot(*raw.Meeting.ConfirmedDate, raw.Meeting.ConfirmedSlot)
		if err != nil {
			return nil, err
		}
		meeting.Confirmed = confirmed
	}

	schedule, err := toSchedule(raw.Schedule)
	if err != nil {
		return nil, err
	}

	bestSlots := make([]entity.BestSlot, 0, len(raw.Summary.BestSlots))
	for i, b := range raw.Summary.BestSlots {
		slot, err := toBestSlot(b)
		if err != nil {
			return nil, fmt.Errorf("bestSlots[%d]: %w", i, err)
		}
		bestSlots = append(bestSlots, slot)
	}

	locations := make([]entity.Location, 0, len(raw.Locations))
	for _, l := range raw.Locations {
		loc, err := toLocation(l)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	sort.SliceStable(locations, func(i, j int) bool { return locations[i].DisplayOrder < locations[j].DisplayOrder })

	detail := &entity.MeetingDetail{
		Meeting:      meeting,
		Participants: toParticipants(raw.Participants),
		Schedule:     schedule,
		Summary: entity.Summary{
			TotalParticipants: raw.Summary.TotalParticipants,
			BestSlots:         bestSlots,
		},
		Locations: locations,
	}
	if raw.ConfirmedLocation != nil {
		loc, err := toLocation(*raw.ConfirmedLocation)
		if err != nil {
			return nil, err
		}
		detail.ConfirmedLocation = &loc
	}
	return detail, nil
}

// ToAvailableDates validates the candidate space. Null or empty lists mark all-day dates; a meeting that
// mixes all-day and timed dates is rejected.
func ToAvailableDates(raw map[string][]string) (entity.AvailableDates, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("availableDates is empty")
	}
	out := make(entity.AvailableDates, len(raw))
	allDay, timed := 0, 0
	for date, times := range raw {
		if !isDateKey(date) {
			return nil, fmt.Errorf("invalid date %q", date)
		}
		if len(times) == 0 {
			out[entity.DateKey(date)] = nil
			allDay++
			continue
		}
		slots := make([]entity.TimeSlot, 0, len(times))
		seen := make(map[string]struct{}, len(times))
		for _, t := range times {
			if !isTimeSlot(t) {
				return nil, fmt.Errorf("invalid time %q on %s", t, date)
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			slots = append(slots, entity.TimeSlot(t))
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
		out[entity.DateKey(date)] = slots
		timed++
	}
	if allDay > 0 && timed > 0 {
		return nil, fmt.Errorf("availableDates mixes all-day and timed dates")
	}
	return out, nil
}

// ToSelection validates a selections map. Unlike the candidate space, an empty list here simply means
// the date is not selected.
func ToSelection(raw map[string][]string) (entity.Selection, error) {
	out := entity.Selection{}
	for date, times := range raw {
		if !isDateKey(date) {
			return nil, fmt.Errorf("invalid date %q", date)
		}
		for _, t := range times {
			if t != string(entity.AllDay) && !isTimeSlot(t) {
				return nil, fmt.Errorf("invalid time %q on %s", t, date)
			}
			out.Add(entity.DateKey(date), entity.TimeSlot(t))
		}
	}
	return out, nil
}

func ToCreatedMeeting(raw *dto.UpstreamCreatedMeeting) (*entity.CreatedMeeting, error) {
	if raw == nil || raw.MeetingCode == "" {
		return nil, fmt.Errorf("created meeting has no code")
	}
	return &entity.CreatedMeeting{ID: raw.ID, MeetingCode: raw.MeetingCode, URL: raw.URL}, nil
}

// ToUpstreamAvailableDates is the create-meeting body form; all-day dates are sent as null.
func ToUpstreamAvailableDates(available entity.AvailableDates) map[string][]string {
	out := make(map[string][]string, len(available))
	for date, slots := range available {
		if slots == nil {
			out[string(date)] = nil
			continue
		}
		times := make([]string, len(slots))
		for i, s := range slots {
			times[i] = string(s)
		}
		out[string(date)] = times
	}
	return out
}

// FormatPercentage normalizes a raw percentage, a JSON number or string, to the "<n>%" form.
func FormatPercentage(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "0%", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("invalid percentage %s: %w", trimmed, err)
		}
		s = strings.TrimSpace(s)
		if strings.HasSuffix(s, "%") {
			return s, nil
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return "", fmt.Errorf("invalid percentage %q", s)
		}
		return s + "%", nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return "", fmt.Errorf("invalid percentage %s: %w", trimmed, err)
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + "%", nil
}

func toBestSlot(raw dto.UpstreamBestSlot) (entity.BestSlot, error) {
	if !isDateKey(raw.Date) {
		return entity.BestSlot{}, fmt.Errorf("invalid date %q", raw.Date)
	}
	if raw.Time != string(entity.AllDay) && !isTimeSlot(raw.Time) {
		return entity.BestSlot{}, fmt.Errorf("invalid time %q", raw.Time)
	}
	if raw.Count < 0 {
		return entity.BestSlot{}, fmt.Errorf("negative count %d", raw.Count)
	}
	pct, err := FormatPercentage(raw.Percentage)
	if err != nil {
		return entity.BestSlot{}, err
	}
	return entity.BestSlot{
		Date:       entity.DateKey(raw.Date),
		Time:       entity.TimeSlot(raw.Time),
		Count:      raw.Count,
		Percentage: pct,
	}, nil
}

func toSchedule(raw map[string]map[string]json.RawMessage) (entity.Schedule, error) {
	out := make(entity.Schedule, len(raw))
	for date, cells := range raw {
		if !isDateKey(date) {
			return nil, fmt.Errorf("schedule: invalid date %q", date)
		}
		day := make(map[entity.TimeSlot]entity.ScheduleSlot, len(cells))
		for t, cell := range cells {
			if t != string(entity.AllDay) && !isTimeSlot(t) {
				return nil, fmt.Errorf("schedule: invalid time %q on %s", t, date)
			}
			slot, err := toScheduleSlot(cell)
			if err != nil {
				return nil, fmt.Errorf("schedule %s %s: %w", date, t, err)
			}
			day[entity.TimeSlot(t)] = slot
		}
		out[entity.DateKey(date)] = day
	}
	return out, nil
}

func toScheduleSlot(raw json.RawMessage) (entity.ScheduleSlot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return entity.ScheduleSlot{}, fmt.Errorf("empty cell")
	}

	switch trimmed[0] {
	case '[':
		var users []dto.UpstreamUser
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return entity.ScheduleSlot{}, err
		}
		participants := toParticipants(users)
		return entity.ScheduleSlot{Count: len(participants), Participants: participants}, nil
	case '{':
		var cell dto.UpstreamScheduleSlot
		if err := json.Unmarshal(trimmed, &cell); err != nil {
			return entity.ScheduleSlot{}, err
		}
		participants := toParticipants(cell.Participants)
		count := len(participants)
		if cell.Count != nil {
			if *cell.Count < 0 {
				return entity.ScheduleSlot{}, fmt.Errorf("negative count %d", *cell.Count)
			}
			count = *cell.Count
		}
		return entity.ScheduleSlot{Count: count, Participants: participants}, nil
	default:
		return entity.ScheduleSlot{}, fmt.Errorf("unexpected cell %s", trimmed)
	}
}

func toLocation(raw dto.UpstreamLocation) (entity.Location, error) {
	pct, err := FormatPercentage(raw.Percentage)
	if err != nil {
		return entity.Location{}, fmt.Errorf("location %d: %w", raw.ID, err)
	}
	return entity.Location{
		ID:           raw.ID,
		Name:         raw.Name,
		DisplayOrder: raw.DisplayOrder,
		VoteCount:    raw.VoteCount,
		Percentage:   pct,
		Voters:       toParticipants(raw.Voters),
	}, nil
}

func toConfirmedSlot(date string, slotIndex *int) (*entity.ConfirmedSlot, error) {
	if !isDateKey(date) {
		return nil, fmt.Errorf("invalid confirmed date %q", date)
	}
	if slotIndex == nil {
		return &entity.ConfirmedSlot{Date: entity.DateKey(date), Time: entity.AllDay}, nil
	}
	slot, ok := entity.SlotAt(*slotIndex)
	if !ok {
		return nil, fmt.Errorf("invalid confirmed slot index %d", *slotIndex)
	}
	return &entity.ConfirmedSlot{Date: entity.DateKey(date), Time: slot}, nil
}

func toParticipants(users []dto.UpstreamUser) []entity.Participant {
	out := make([]entity.Participant, 0, len(users))
	for _, u := range users {
		out = append(out, toParticipant(u))
	}
	return out
}

func toParticipant(u dto.UpstreamUser) entity.Participant {
	id := u.UserID
	if id == 0 {
		id = u.ID
	}
	p := entity.Participant{UserID: id, Username: u.Username}
	if u.ProfileImageURL != nil {
		p.ProfileImageURL = *u.ProfileImageURL
	}
	return p
}

func toHost(u dto.UpstreamUser) entity.Host {
	p := toParticipant(u)
	return entity.Host{ID: p.UserID, Username: p.Username, ProfileImageURL: p.ProfileImageURL}
}

func isDateKey(s string) bool {
	return entity.DateKey(s).Valid()
}

func isTimeSlot(s string) bool {
	return entity.TimeSlot(s).Valid()
}
