package domain

import (
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

// TimeSlot is the label of one bookable interval, e.g. "8:00 AM - 8:30 AM".
// Slots form a fixed catalog; anything outside it is rejected at validation
type TimeSlot string

// SlotWindow is the clock interval a slot occupies
type SlotWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// SlotDurationMinutes длительность каждого слота каталога
const SlotDurationMinutes = 30

// slotCatalog рабочий день клиники: 8:00-12:00 и 13:00-17:00 с шагом 30 минут
// Обеденный перерыв 12:00-13:00 не бронируется
var slotCatalog = buildCatalog()

func buildCatalog() []TimeSlot {
	ranges := [][2]string{
		{"8:00 AM", "12:00 PM"},
		{"1:00 PM", "5:00 PM"},
	}

	var catalog []TimeSlot
	for _, r := range ranges {
		start, _ := types.NewTimeStringFromString(r[0])
		end, _ := types.NewTimeStringFromString(r[1])
		for cur := start; cur.IsBefore(end); {
			next, err := cur.AddMinutes(SlotDurationMinutes)
			if err != nil || next.IsAfter(end) {
				break
			}
			catalog = append(catalog, TimeSlot(fmt.Sprintf("%s - %s", cur, next)))
			cur = next
		}
	}
	return catalog
}

// Slots returns the full ordered slot catalog
func Slots() []TimeSlot {
	out := make([]TimeSlot, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// IsValid returns true if the slot belongs to the catalog
func (s TimeSlot) IsValid() bool {
	for _, known := range slotCatalog {
		if s == known {
			return true
		}
	}
	return false
}

// Window parses the slot label into its clock interval
func (s TimeSlot) Window() (SlotWindow, error) {
	var h1, m1, h2, m2 int
	var ap1, ap2 string

	// Формат метки фиксирован: "<start> - <end>"
	n, err := fmt.Sscanf(string(s), "%d:%d %s - %d:%d %s", &h1, &m1, &ap1, &h2, &m2, &ap2)
	if err != nil || n != 6 {
		return SlotWindow{}, fmt.Errorf("invalid time slot %q", s)
	}

	start, err := types.NewTimeStringFromString(fmt.Sprintf("%d:%02d %s", h1, m1, ap1))
	if err != nil {
		return SlotWindow{}, fmt.Errorf("invalid time slot %q: %v", s, err)
	}
	end, err := types.NewTimeStringFromString(fmt.Sprintf("%d:%02d %s", h2, m2, ap2))
	if err != nil {
		return SlotWindow{}, fmt.Errorf("invalid time slot %q: %v", s, err)
	}

	return SlotWindow{Start: start, End: end}, nil
}

// Intersects reports whether the slot window really overlaps [start, end).
// Touching boundaries do not count as an overlap
func (w SlotWindow) Intersects(start, end types.TimeString) bool {
	return start.IsBefore(w.End) && end.IsAfter(w.Start)
}
