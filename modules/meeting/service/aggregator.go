package service

import (
	"sort"
	"time"

	"time2gather/modules/meeting/entity"
)

const heatLevels = 4

// GroupBestSlots partitions ranked best slots by date and merges entries that sit exactly one half-hour
// apart with an unchanged count and percentage. Dates keep the order of their first appearance.
func GroupBestSlots(slots []entity.BestSlot) []entity.GroupedBestSlot {
	order := make([]entity.DateKey, 0)
	byDate := make(map[entity.DateKey][]entity.BestSlot)
	for _, s := range slots {
		if _, ok := byDate[s.Date]; !ok {
			order = append(order, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	groups := make([]entity.GroupedBestSlot, 0, len(order))
	for _, date := range order {
		entries := byDate[date]
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })

		ranges := make([]entity.TimeRange, 0, len(entries))
		current := entity.TimeRange{
			Start:      entries[0].Time,
			End:        entries[0].Time,
			Count:      entries[0].Count,
			Percentage: entries[0].Percentage,
		}
		for _, e := range entries[1:] {
			gap, ok := MinutesBetween(current.End, e.Time)
			if ok && gap == slotStepMinutes && e.Count == current.Count && e.Percentage == current.Percentage {
				current.End = e.Time
				continue
			}
			ranges = append(ranges, current)
			current = entity.TimeRange{Start: e.Time, End: e.Time, Count: e.Count, Percentage: e.Percentage}
		}
		ranges = append(ranges, current)

		groups = append(groups, entity.GroupedBestSlot{Date: date, TimeRanges: ranges})
	}
	return groups
}

// ParticipantsForGroup unions the participants of every slot of date inside [r.Start, r.End]. Each
// userId is listed once, in the order first seen scanning times ascending. All-day meetings read the
// ALL_DAY slot directly.
func ParticipantsForGroup(schedule entity.Schedule, date entity.DateKey, r entity.TimeRange, allDay bool) []entity.Participant {
	daySlots := schedule[date]
	out := make([]entity.Participant, 0)
	if len(daySlots) == 0 {
		return out
	}
	if allDay || r.Start == entity.AllDay {
		return append(out, daySlots[entity.AllDay].Participants...)
	}

	start, okStart := ParseClock(r.Start)
	end, okEnd := ParseClock(r.End)
	if !okStart || !okEnd {
		return out
	}

	times := make([]entity.TimeSlot, 0, len(daySlots))
	for t := range daySlots {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	seen := make(map[int64]struct{})
	for _, t := range times {
		minutes, ok := ParseClock(t)
		if !ok || minutes < start || minutes > end {
			continue
		}
		for _, p := range daySlots[t].Participants {
			if _, dup := seen[p.UserID]; dup {
				continue
			}
			seen[p.UserID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// AdjustScheduleForViewer returns a copy of schedule where every slot the viewer appears in counts one
// less, so a live edit view does not double count the viewer's pending picks.
func AdjustScheduleForViewer(schedule entity.Schedule, viewerID int64) entity.Schedule {
	out := make(entity.Schedule, len(schedule))
	for date, slots := range schedule {
		day := make(map[entity.TimeSlot]entity.ScheduleSlot, len(slots))
		for t, slot := range slots {
			if viewerID != 0 && slot.Includes(viewerID) {
				slot.Count = max(0, slot.Count-1)
			}
			day[t] = slot
		}
		out[date] = day
	}
	return out
}

// SelectionFromSchedule recovers the viewer's prior picks from the aggregated schedule.
func SelectionFromSchedule(schedule entity.Schedule, available entity.AvailableDates, viewerID int64) entity.Selection {
	sel := entity.Selection{}
	if viewerID == 0 {
		return sel
	}
	for date, slots := range schedule {
		for t, slot := range slots {
			if slot.Includes(viewerID) && available.Contains(date, t) {
				sel.Add(date, t)
			}
		}
	}
	return sel
}

// TopSlots returns at most limit best slots in the server's ranking order.
func TopSlots(slots []entity.BestSlot, limit int) []entity.BestSlot {
	if limit < 0 || len(slots) <= limit {
		limit = len(slots)
	}
	out := make([]entity.BestSlot, limit)
	copy(out, slots[:limit])
	return out
}

// HeatLevel buckets count against total into 0..4 for the results grid.
func HeatLevel(count, total int) int {
	if count <= 0 || total <= 0 {
		return 0
	}
	if count >= total {
		return heatLevels
	}
	level := (count*heatLevels + total - 1) / total
	return max(1, min(level, heatLevels))
}

// BuildHeatGrid lays out every candidate cell in date then time order with its heat level.
func BuildHeatGrid(available entity.AvailableDates, schedule entity.Schedule, total int) []entity.HeatCell {
	grid := make([]entity.HeatCell, 0)
	for _, date := range available.SortedDates() {
		slots, _ := available.SlotsFor(date)
		for _, t := range slots {
			count := schedule[date][t].Count
			grid = append(grid, entity.HeatCell{
				Date:  date,
				Time:  t,
				Count: count,
				Level: HeatLevel(count, total),
			})
		}
	}
	return grid
}

// BuildResult assembles the read-only results view from a validated meeting payload.
func BuildResult(detail *entity.MeetingDetail, locale string, now time.Time, topLimit int) *entity.MeetingResult {
	available := detail.Meeting.AvailableDates
	allDay := available.IsAllDay()

	grouped := GroupBestSlots(detail.Summary.BestSlots)
	groups := make([]entity.ResultGroup, 0, len(grouped))
	for _, g := range grouped {
		ranges := make([]entity.ResultRange, 0, len(g.TimeRanges))
		for _, r := range g.TimeRanges {
			ranges = append(ranges, entity.ResultRange{
				TimeRange:    r,
				Label:        FormatTimeRange(r, locale),
				Participants: ParticipantsForGroup(detail.Schedule, g.Date, r, allDay),
			})
		}
		groups = append(groups, entity.ResultGroup{
			Date:      g.Date,
			DateLabel: FormatDate(g.Date, locale, now),
			Ranges:    ranges,
		})
	}

	total := detail.Summary.TotalParticipants
	return &entity.MeetingResult{
		Code:              detail.Meeting.Code,
		Title:             detail.Meeting.Title,
		Timezone:          detail.Meeting.Timezone,
		SelectionType:     available.SelectionType(),
		Locale:            locale,
		TotalParticipants: total,
		Participants:      detail.Participants,
		Groups:            groups,
		TopSlots:          TopSlots(detail.Summary.BestSlots, topLimit),
		Grid:              BuildHeatGrid(available, detail.Schedule, total),
		Locations:         detail.Locations,
		Confirmed:         detail.Meeting.Confirmed,
		GeneratedAt:       now,
	}
}
