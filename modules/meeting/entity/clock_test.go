package entity

import "testing"

func TestTimeSlot_Valid(t *testing.T) {
	tests := []struct {
		slot TimeSlot
		want bool
	}{
		{"09:30", true},
		{"00:00", true},
		{"23:59", true},
		{"9:30", false},
		{" 9:30", false},
		{"24:00", false},
		{"09:60", false},
		{"0930", false},
		{AllDay, false},
	}
	for _, tt := range tests {
		if got := tt.slot.Valid(); got != tt.want {
			t.Errorf("%q.Valid() = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestSlotIndex_RoundTrip(t *testing.T) {
	for i := 0; i < 48; i++ {
		slot, ok := SlotAt(i)
		if !ok {
			t.Fatalf("SlotAt(%d) rejected", i)
		}
		back, ok := slot.SlotIndex()
		if !ok || back != i {
			t.Fatalf("SlotIndex(%s) = %d, want %d", slot, back, i)
		}
	}
	if slot, _ := SlotAt(19); slot != "09:30" {
		t.Fatalf("SlotAt(19) = %s", slot)
	}
	if _, ok := SlotAt(48); ok {
		t.Fatalf("index 48 must be rejected")
	}
	if _, ok := TimeSlot("09:15").SlotIndex(); ok {
		t.Fatalf("off-boundary time must not map to an index")
	}
}

func TestDateKey_Valid(t *testing.T) {
	if !DateKey("2024-02-29").Valid() {
		t.Fatalf("leap day should be valid")
	}
	if DateKey("2023-02-29").Valid() || DateKey("2024-2-1").Valid() {
		t.Fatalf("invalid dates accepted")
	}
}
