package schedule

import (
	"testing"

	"appointment-booking-api/internal/model"
)

func slot(date, start, end string) model.Slot {
	return model.Slot{Date: date, Start: start, End: end, Status: model.SlotOpen}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2025-06-01")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "2025-06-01" {
		t.Errorf("got %q", got)
	}

	for _, bad := range []string{"", "06/01/2025", "2025-13-01", "2025-06-01T00:00:00Z"} {
		if _, err := NormalizeDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"23:59", "23:59"},
		{"09:00:00", "09:00"}, // SQL TIME text form
		{"14:30:15", "14:30"},
	}
	for _, tt := range tests {
		got, err := NormalizeClock(tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %q want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "9am", "25:00", "12:60"} {
		if _, err := NormalizeClock(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"disjoint before", 540, 600, 600, 660, false}, // touching endpoints
		{"disjoint after", 600, 660, 540, 600, false},
		{"starts inside", 570, 630, 540, 600, true},
		{"ends inside", 510, 570, 540, 600, true},
		{"contains", 500, 700, 540, 600, true},
		{"contained", 550, 590, 540, 600, true},
		{"exact match", 540, 600, 540, 600, true},
		{"far apart", 0, 60, 1380, 1440, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}

func TestValidateSlotMissingFields(t *testing.T) {
	for _, tt := range []struct{ date, start, end string }{
		{"", "09:00", "10:00"},
		{"2025-06-01", "", "10:00"},
		{"2025-06-01", "09:00", ""},
	} {
		err := ValidateSlot(tt.date, tt.start, tt.end, nil)
		if KindOf(err) != KindMissingField {
			t.Errorf("(%q,%q,%q): got %v, want missing field", tt.date, tt.start, tt.end, err)
		}
	}
}

func TestValidateSlotInvalidRange(t *testing.T) {
	if err := ValidateSlot("2025-06-01", "10:00", "09:00", nil); KindOf(err) != KindInvalidRange {
		t.Errorf("reversed range: got %v", err)
	}
	// zero-length interval is empty under half-open semantics
	if err := ValidateSlot("2025-06-01", "09:00", "09:00", nil); KindOf(err) != KindInvalidRange {
		t.Errorf("empty range: got %v", err)
	}
}

func TestValidateSlotOverlap(t *testing.T) {
	existing := []model.Slot{slot("2025-06-01", "09:00", "10:00")}

	tests := []struct {
		name       string
		start, end string
		wantKind   Kind
	}{
		{"identical range", "09:00", "10:00", KindOverlap},
		{"starts inside", "09:30", "10:30", KindOverlap},
		{"ends inside", "08:30", "09:30", KindOverlap},
		{"contains existing", "08:00", "11:00", KindOverlap},
		{"contained by existing", "09:15", "09:45", KindOverlap},
		{"touching before", "08:00", "09:00", ""},
		{"touching after", "10:00", "11:00", ""},
		{"disjoint", "14:00", "15:00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot("2025-06-01", tt.start, tt.end, existing)
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if KindOf(err) != tt.wantKind {
				t.Fatalf("got %v, want kind %s", err, tt.wantKind)
			}
		})
	}
}

func TestValidateSlotIgnoresOtherDates(t *testing.T) {
	existing := []model.Slot{slot("2025-06-02", "09:00", "10:00")}
	if err := ValidateSlot("2025-06-01", "09:00", "10:00", existing); err != nil {
		t.Fatalf("different date must not collide: %v", err)
	}
}

func TestValidateSlotBookedStillOccupies(t *testing.T) {
	existing := []model.Slot{{Date: "2025-06-01", Start: "09:00", End: "10:00", Status: model.SlotBooked}}
	if err := ValidateSlot("2025-06-01", "09:30", "10:30", existing); KindOf(err) != KindOverlap {
		t.Fatalf("booked slot must still block overlap, got %v", err)
	}
}

func TestValidateBooking(t *testing.T) {
	existing := []model.Appointment{
		{Date: "2025-06-01", Start: "09:00", End: "10:00"},
	}

	if err := ValidateBooking("2025-06-01", "09:00", "10:00", existing); KindOf(err) != KindAlreadyBooked {
		t.Errorf("exact triple: got %v", err)
	}
	// exact-match check only: a merely overlapping window passes here
	if err := ValidateBooking("2025-06-01", "09:30", "10:30", existing); err != nil {
		t.Errorf("overlapping but distinct window: %v", err)
	}
	if err := ValidateBooking("2025-06-02", "09:00", "10:00", existing); err != nil {
		t.Errorf("same window other date: %v", err)
	}
	if err := ValidateBooking("", "09:00", "10:00", nil); KindOf(err) != KindMissingField {
		t.Errorf("missing date: got %v", err)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(Errf(KindOverlap, "x")) != KindOverlap {
		t.Error("typed error lost its kind")
	}
	if KindOf(errPlain) != KindInternal {
		t.Error("foreign errors must map to internal")
	}
}

var errPlain = errPlainType{}

type errPlainType struct{}

func (errPlainType) Error() string { return "plain" }
