package handler

import (
	"net/http"
	"strconv"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
)

type appointmentJSON struct {
	ID        int       `json:"id"`
	SlotID    int       `json:"slot_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	NIC       string    `json:"nic"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

func toAppointmentJSON(a *model.Appointment) appointmentJSON {
	return appointmentJSON{
		ID:        a.ID,
		SlotID:    a.SlotID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		NIC:       a.NIC,
		Date:      a.Date,
		StartTime: a.Start,
		EndTime:   a.End,
		CreatedAt: a.CreatedAt,
	}
}

type bookRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	NIC       string `json:"nic"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Book handles POST /api/appointments/book. The uniqueness pre-check gives
// the common case a clean message; the transactional insert in the store is
// what actually decides races.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.NIC == "" ||
		req.Date == "" || req.StartTime == "" || req.EndTime == "" {
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

	existing, err := h.store.AppointmentsForDate(r.Context(), date)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := schedule.ValidateBooking(date, start, end, existing); err != nil {
		h.writeError(w, r, err)
		return
	}

	booked, err := h.store.BookAppointment(r.Context(), &model.Appointment{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		NIC:   req.NIC,
		Date:  date,
		Start: start,
		End:   end,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Appointment booked successfully",
		"appointment": toAppointmentJSON(booked),
	})
}

type cancelRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

// Cancel handles DELETE /api/appointments/cancel/{appointmentId}. The body
// still carries date and start_time for rows predating the slot reference.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.Atoi(r.PathValue("appointmentId"))
	if err != nil {
		writeKind(w, schedule.KindMissingField, "Missing required data")
		return
	}

	var req cancelRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Date == "" || req.StartTime == "" {
		writeKind(w, schedule.KindMissingField, "Missing required data")
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

	if err := h.store.CancelAppointment(r.Context(), appointmentID, date, start); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Appointment canceled successfully",
	})
}

// UserAppointments handles GET /api/appointments/user/{email}. An empty
// result answers 404: the client treats "no bookings yet" as its own screen
// state, distinct from an empty list it would render as a table.
func (h *Handler) UserAppointments(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		writeKind(w, schedule.KindMissingField, "Email is required")
		return
	}

	appts, err := h.store.UserAppointments(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if len(appts) == 0 {
		writeKind(w, schedule.KindNotFound, "No appointments found")
		return
	}

	out := make([]appointmentJSON, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentJSON(&appts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": out})
}

// AllAppointments handles GET /api/appointments/appointment-slots, the admin
// view of every booked window.
func (h *Handler) AllAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.store.AllAppointments(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]appointmentJSON, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentJSON(&appts[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Appointment slots retrieved successfully",
		"slots":   out,
	})
}
