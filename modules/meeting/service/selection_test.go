package service

import (
	"reflect"
	"testing"

	"time2gather/modules/meeting/entity"
)

func timeAvailable() entity.AvailableDates {
	return entity.AvailableDates{
		"2024-02-15": {"09:00", "09:30", "10:00", "10:30"},
		"2024-02-16": {"09:00", "09:30", "10:00"},
		"2024-02-17": {"10:00", "10:30"},
	}
}

func TestToggleCell(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), nil)

	if !m.ToggleCell("2024-02-15", "09:00") {
		t.Fatalf("expected in-bound toggle to apply")
	}
	if !m.Selection().Has("2024-02-15", "09:00") {
		t.Fatalf("expected cell to be selected")
	}
	m.ToggleCell("2024-02-15", "09:00")
	if !m.IsEmpty() {
		t.Fatalf("expected second toggle to deselect, got %v", m.Selection())
	}

	if m.ToggleCell("2024-02-17", "09:00") {
		t.Fatalf("expected out-of-bound cell to be ignored")
	}
	if m.ToggleCell("2024-03-01", "09:00") {
		t.Fatalf("expected unknown date to be ignored")
	}
	if !m.IsEmpty() {
		t.Fatalf("out-of-bound toggles mutated the selection")
	}
}

func TestNewSelectionModel_DropsOutOfBounds(t *testing.T) {
	initial := entity.Selection{
		"2024-02-15": {"09:00", "23:00"},
		"2024-03-01": {"09:00"},
	}
	m := NewSelectionModel(timeAvailable(), initial)
	want := entity.Selection{"2024-02-15": {"09:00"}}
	if got := m.Selection(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToggleRange_TwiceRestores(t *testing.T) {
	cells := []entity.Cell{
		{Date: "2024-02-15", Time: "09:00"},
		{Date: "2024-02-15", Time: "09:30"},
		{Date: "2024-02-16", Time: "09:00"},
	}

	cases := []struct {
		name    string
		initial entity.Selection
		first   RangeAction
	}{
		{"unselected", entity.Selection{"2024-02-17": {"10:00"}}, ActionSelect},
		{"fully selected", entity.Selection{
			"2024-02-15": {"09:00", "09:30"},
			"2024-02-16": {"09:00", "10:00"},
		}, ActionDeselect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewSelectionModel(timeAvailable(), tc.initial)
			before := m.Selection()

			if got := m.ToggleRange(cells); got != tc.first {
				t.Fatalf("first toggle: expected %s, got %s", tc.first, got)
			}
			m.ToggleRange(cells)

			if got := m.Selection(); !reflect.DeepEqual(got, before) {
				t.Fatalf("expected %v after two toggles, got %v", before, got)
			}
		})
	}
}

func TestToggleRange_PartialSelects(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), entity.Selection{"2024-02-15": {"09:00"}})
	cells := []entity.Cell{
		{Date: "2024-02-15", Time: "09:00"},
		{Date: "2024-02-15", Time: "09:30"},
	}
	if got := m.ToggleRange(cells); got != ActionSelect {
		t.Fatalf("partially selected range should select, got %s", got)
	}
	sel := m.Selection()
	if !sel.Has("2024-02-15", "09:00") || !sel.Has("2024-02-15", "09:30") {
		t.Fatalf("expected both cells selected, got %v", sel)
	}
}

func TestToggleRange_FiltersBeforeDeciding(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), entity.Selection{"2024-02-17": {"10:00"}})

	// 2024-02-17 has no 09:30, so the range is fully selected once filtered.
	cells := []entity.Cell{
		{Date: "2024-02-17", Time: "09:30"},
		{Date: "2024-02-17", Time: "10:00"},
	}
	if got := m.ToggleRange(cells); got != ActionDeselect {
		t.Fatalf("expected deselect, got %s", got)
	}
	if !m.IsEmpty() {
		t.Fatalf("expected empty selection, got %v", m.Selection())
	}

	outside := []entity.Cell{{Date: "2024-02-17", Time: "09:00"}}
	if got := m.ToggleRange(outside); got != ActionNone {
		t.Fatalf("expected no-op for fully out-of-bound range, got %s", got)
	}
	if got := m.ToggleRange(nil); got != ActionNone {
		t.Fatalf("expected no-op for empty range, got %s", got)
	}
}

func TestToggleDateHeader(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), entity.Selection{"2024-02-16": {"09:00"}})

	if got := m.ToggleDateHeader("2024-02-16"); got != ActionSelect {
		t.Fatalf("expected select, got %s", got)
	}
	if got := len(m.Selection()["2024-02-16"]); got != 3 {
		t.Fatalf("expected all 3 slots selected, got %d", got)
	}
	if got := m.ToggleDateHeader("2024-02-16"); got != ActionDeselect {
		t.Fatalf("expected deselect, got %s", got)
	}
	if !m.IsEmpty() {
		t.Fatalf("expected empty selection")
	}
	if got := m.ToggleDateHeader("2024-03-01"); got != ActionNone {
		t.Fatalf("expected no-op for unknown date, got %s", got)
	}
}

func TestDragRange_Rectangle(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), nil)
	dates := m.Dates()
	axis := m.TimeAxis()

	for d1 := range dates {
		for d2 := range dates {
			for t1 := range axis {
				for t2 := range axis {
					start := entity.Cell{Date: dates[d1], Time: axis[t1]}
					current := entity.Cell{Date: dates[d2], Time: axis[t2]}
					cells := m.DragRange(start, current)

					want := (abs(d1-d2) + 1) * (abs(t1-t2) + 1)
					if len(cells) != want {
						t.Fatalf("drag %v -> %v: expected %d cells, got %d", start, current, want, len(cells))
					}
					for _, c := range cells {
						di, _ := indexOf(dates, c.Date)
						ti, _ := indexOf(axis, c.Time)
						if di < min(d1, d2) || di > max(d1, d2) || ti < min(t1, t2) || ti > max(t1, t2) {
							t.Fatalf("cell %v outside rectangle", c)
						}
					}
				}
			}
		}
	}

	if cells := m.DragRange(entity.Cell{Date: "2024-03-01", Time: "09:00"}, entity.Cell{Date: "2024-02-15", Time: "09:00"}); cells != nil {
		t.Fatalf("expected nil for off-grid corner, got %v", cells)
	}
}

func TestDragRange_ThenToggle(t *testing.T) {
	m := NewSelectionModel(timeAvailable(), nil)
	cells := m.DragRange(
		entity.Cell{Date: "2024-02-16", Time: "10:30"},
		entity.Cell{Date: "2024-02-17", Time: "10:00"},
	)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	m.ToggleRange(cells)

	// 2024-02-16 10:30 is not offered and must be dropped.
	want := entity.Selection{
		"2024-02-16": {"10:00"},
		"2024-02-17": {"10:00", "10:30"},
	}
	if got := m.Selection(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSubmission_FiltersEmptyDates(t *testing.T) {
	available := entity.AvailableDates{
		"2024-02-15": {"09:00", "09:30"},
		"2024-02-16": {"09:00"},
	}
	selection := entity.Selection{
		"2024-02-15": {"09:00"},
		"2024-02-16": {},
	}
	sub := BuildSubmission(available, selection)
	if len(sub.Selections) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sub.Selections))
	}
	entry := sub.Selections[0]
	if entry.Date != "2024-02-15" || entry.Type != entity.SelectionTypeTime {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(entry.Times) != 1 || entry.Times[0] != "09:00" {
		t.Fatalf("unexpected times %v", entry.Times)
	}
}

func TestSubmission_AllDay(t *testing.T) {
	available := entity.AvailableDates{"2024-02-15": nil, "2024-02-16": nil}
	m := NewSelectionModel(available, nil)

	if !m.ToggleCell("2024-02-16", entity.AllDay) {
		t.Fatalf("expected all-day toggle to apply")
	}
	if m.ToggleCell("2024-02-16", "09:00") {
		t.Fatalf("time cells must be rejected on an all-day date")
	}

	sub := m.Submission()
	if len(sub.Selections) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sub.Selections))
	}
	entry := sub.Selections[0]
	if entry.Type != entity.SelectionTypeAllDay || entry.Times == nil || len(entry.Times) != 0 {
		t.Fatalf("expected ALL_DAY entry with empty times, got %+v", entry)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
