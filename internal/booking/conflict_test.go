package booking

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical intervals", "09:00", "10:00", "09:00", "10:00", true},
		{"partial overlap at end", "09:00", "10:00", "09:30", "11:00", true},
		{"partial overlap at start", "09:30", "11:00", "09:00", "10:00", true},
		{"contained interval", "09:00", "12:00", "10:00", "11:00", true},
		{"containing interval", "10:00", "11:00", "09:00", "12:00", true},
		{"touching endpoints do not conflict", "09:00", "10:00", "10:00", "11:00", false},
		{"touching endpoints reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint intervals", "09:00", "10:00", "14:00", "15:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestFindConflict(t *testing.T) {
	existing := []Slot{
		{BookingID: "booking-1", Start: "09:00", End: "10:00"},
		{BookingID: "booking-2", Start: "13:00", End: "14:30"},
	}

	t.Run("returns the conflicting slot", func(t *testing.T) {
		slot, found := FindConflict(existing, "13:30", "15:00")
		if !found {
			t.Fatal("expected a conflict")
		}
		if slot.BookingID != "booking-2" {
			t.Fatalf("expected booking-2, got %s", slot.BookingID)
		}
	})

	t.Run("no conflict between existing slots", func(t *testing.T) {
		if _, found := FindConflict(existing, "10:00", "13:00"); found {
			t.Fatal("expected no conflict")
		}
	})

	t.Run("empty slot list never conflicts", func(t *testing.T) {
		if _, found := FindConflict(nil, "00:00", "23:59"); found {
			t.Fatal("expected no conflict")
		}
	})
}
