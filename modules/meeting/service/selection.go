package service

import (
	"time2gather/modules/meeting/entity"
)

// RangeAction is what a range toggle ended up doing.
type RangeAction string

const (
	ActionSelect   RangeAction = "select"
	ActionDeselect RangeAction = "deselect"
	ActionNone     RangeAction = "none"
)

// SelectionModel holds one participant's picks bounded by a meeting's candidate space. It is not safe
// for concurrent use; each draft owns its own model.
type SelectionModel struct {
	available entity.AvailableDates
	dates     []entity.DateKey
	axis      []entity.TimeSlot
	selection entity.Selection
}

// NewSelectionModel seeds the model with initial picks, dropping any cell outside available.
func NewSelectionModel(available entity.AvailableDates, initial entity.Selection) *SelectionModel {
	m := &SelectionModel{
		available: available,
		dates:     available.SortedDates(),
		axis:      available.TimeAxis(),
		selection: entity.Selection{},
	}
	for date, slots := range initial {
		for _, t := range slots {
			if available.Contains(date, t) {
				m.selection.Add(date, t)
			}
		}
	}
	return m
}

// ToggleCell flips one cell. Cells outside the candidate space are ignored and false is returned.
func (m *SelectionModel) ToggleCell(date entity.DateKey, t entity.TimeSlot) bool {
	if !m.available.Contains(date, t) {
		return false
	}
	if m.selection.Has(date, t) {
		m.selection.Remove(date, t)
	} else {
		m.selection.Add(date, t)
	}
	return true
}

// ToggleRange removes every cell when all in-bound cells are already selected and adds them otherwise.
// Out-of-bound cells are dropped before the decision; an empty remainder is a no-op.
func (m *SelectionModel) ToggleRange(cells []entity.Cell) RangeAction {
	inBounds := make([]entity.Cell, 0, len(cells))
	for _, c := range cells {
		if m.available.Contains(c.Date, c.Time) {
			inBounds = append(inBounds, c)
		}
	}
	if len(inBounds) == 0 {
		return ActionNone
	}

	allSelected := true
	for _, c := range inBounds {
		if !m.selection.Has(c.Date, c.Time) {
			allSelected = false
			break
		}
	}

	if allSelected {
		for _, c := range inBounds {
			m.selection.Remove(c.Date, c.Time)
		}
		return ActionDeselect
	}
	for _, c := range inBounds {
		m.selection.Add(c.Date, c.Time)
	}
	return ActionSelect
}

// ToggleDateHeader applies the range rule to every slot of one date.
func (m *SelectionModel) ToggleDateHeader(date entity.DateKey) RangeAction {
	slots, ok := m.available.SlotsFor(date)
	if !ok {
		return ActionNone
	}
	cells := make([]entity.Cell, 0, len(slots))
	for _, t := range slots {
		cells = append(cells, entity.Cell{Date: date, Time: t})
	}
	return m.ToggleRange(cells)
}

// DragRange returns the rectangle spanned by two corner cells over the sorted date list and the time
// axis. The rectangle may include cells a particular date does not offer; ToggleRange drops those.
// Nil is returned when either corner is off the grid.
func (m *SelectionModel) DragRange(start, current entity.Cell) []entity.Cell {
	d1, ok1 := indexOf(m.dates, start.Date)
	d2, ok2 := indexOf(m.dates, current.Date)
	t1, ok3 := indexOf(m.axis, start.Time)
	t2, ok4 := indexOf(m.axis, current.Time)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil
	}

	dMin, dMax := minMax(d1, d2)
	tMin, tMax := minMax(t1, t2)

	cells := make([]entity.Cell, 0, (dMax-dMin+1)*(tMax-tMin+1))
	for d := dMin; d <= dMax; d++ {
		for t := tMin; t <= tMax; t++ {
			cells = append(cells, entity.Cell{Date: m.dates[d], Time: m.axis[t]})
		}
	}
	return cells
}

// Selection returns a copy of the current picks.
func (m *SelectionModel) Selection() entity.Selection {
	return m.selection.Clone()
}

func (m *SelectionModel) Dates() []entity.DateKey {
	return m.dates
}

func (m *SelectionModel) TimeAxis() []entity.TimeSlot {
	return m.axis
}

func (m *SelectionModel) IsEmpty() bool {
	return m.selection.IsEmpty()
}

// Submission serializes the picks in date order. Dates without times are omitted; all-day picks are
// sent with an empty times list.
func (m *SelectionModel) Submission() entity.Submission {
	return BuildSubmission(m.available, m.selection)
}

// BuildSubmission is Submission for a bare selection, used when no model is at hand.
func BuildSubmission(available entity.AvailableDates, selection entity.Selection) entity.Submission {
	out := entity.Submission{Selections: make([]entity.SubmissionEntry, 0, len(selection))}
	for _, date := range available.SortedDates() {
		slots := selection[date]
		if len(slots) == 0 {
			continue
		}
		if available[date] == nil {
			if selection.Has(date, entity.AllDay) {
				out.Selections = append(out.Selections, entity.SubmissionEntry{
					Date:  date,
					Type:  entity.SelectionTypeAllDay,
					Times: []entity.TimeSlot{},
				})
			}
			continue
		}
		times := make([]entity.TimeSlot, 0, len(slots))
		for _, t := range slots {
			if t != entity.AllDay && available.Contains(date, t) {
				times = append(times, t)
			}
		}
		if len(times) == 0 {
			continue
		}
		out.Selections = append(out.Selections, entity.SubmissionEntry{
			Date:  date,
			Type:  entity.SelectionTypeTime,
			Times: times,
		})
	}
	return out
}

func indexOf[T comparable](list []T, v T) (int, bool) {
	for i, x := range list {
		if x == v {
			return i, true
		}
	}
	return -1, false
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
