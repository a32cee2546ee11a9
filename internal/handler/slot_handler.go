package handler

import (
	"net/http"
	"strconv"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
	"appointment-booking-api/internal/store"
)

type slotJSON struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toSlotJSON(s *model.Slot) slotJSON {
	return slotJSON{
		ID:        s.ID,
		Date:      s.Date,
		StartTime: s.Start,
		EndTime:   s.End,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

type createSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CreateSlot handles POST /api/appointments/create. The overlap check runs
// application-side against every slot on the date; the schema's exclusion
// constraint closes the window between check and insert.
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		writeKind(w, schedule.KindMissingField, "All fields are required.")
		return
	}

	date, err := schedule.NormalizeDate(req.Date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	start, err := schedule.NormalizeClock(req.StartTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	end, err := schedule.NormalizeClock(req.EndTime)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	existing, err := h.store.SlotsForDate(r.Context(), date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := schedule.ValidateSlot(date, start, end, existing); err != nil {
		h.writeError(w, r, err)
		return
	}

	slot, err := h.store.CreateSlot(r.Context(), date, start, end)
	if err != nil {
		if store.IsExclusionViolation(err) {
			// a concurrent creator won the race
			writeKind(w, schedule.KindOverlap, "Appointment slot overlaps with an existing slot.")
			return
		}
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Appointment slot created successfully",
		"slot":    toSlotJSON(slot),
	})
}

// AvailableSlots handles GET /api/appointments/available-slots.
func (h *Handler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.store.AvailableSlots(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]slotJSON, 0, len(slots))
	for i := range slots {
		out = append(out, toSlotJSON(&slots[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": out})
}

type updateSlotRequest struct {
	Status string `json:"status"`
}

// UpdateSlotStatus handles PUT /api/appointments/update-slot/{slotId}.
// Direct status writes exist for the booking flow's benefit; the handler
// only polices the value set.
func (h *Handler) UpdateSlotStatus(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(r.PathValue("slotId"))
	if err != nil {
		writeKind(w, schedule.KindMissingField, "Slot ID and status are required")
		return
	}

	var req updateSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Status != model.SlotOpen && req.Status != model.SlotBooked {
		writeKind(w, schedule.KindMissingField, "Slot ID and status are required")
		return
	}

	slot, err := h.store.UpdateSlotStatus(r.Context(), slotID, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Slot status updated successfully",
		"slot":    toSlotJSON(slot),
	})
}

// DeleteSlot handles DELETE /api/appointments/delete-slot/{slotId}. The slot
// goes away even when booked; an appointment left pointing at the window is
// reported in the log rather than silently orphaned.
func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.Atoi(r.PathValue("slotId"))
	if err != nil {
		writeKind(w, schedule.KindMissingField, "Slot ID is required")
		return
	}

	slot, danglingID, err := h.store.DeleteSlot(r.Context(), slotID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if danglingID != 0 {
		h.log.Warn("deleted slot had a live appointment",
			"slot_id", slot.ID,
			"appointment_id", danglingID,
			"date", slot.Date,
			"start_time", slot.Start,
		)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Appointment slot deleted successfully",
	})
}
