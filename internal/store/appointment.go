package store

import (
	"context"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
)

const appointmentColumns = `id, COALESCE(slot_id, 0), name, email, phone, nic,
	to_char(slot_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'),
	created_at`

// BookAppointment creates the appointment and flips the matching slot to
// booked in one transaction, so the two tables cannot diverge on partial
// failure. The slot row is locked first; the unique index on
// (slot_date, start_time, end_time) catches concurrent bookings that raced
// past the application-level check.
func (s *Store) BookAppointment(ctx context.Context, a *model.Appointment) (*model.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var slotID int
	var status string
	err = tx.QueryRow(ctx,
		`SELECT id, status FROM appointment_slots
		 WHERE slot_date = $1::date AND start_time = $2::time AND end_time = $3::time
		 FOR UPDATE`,
		a.Date, a.Start, a.End,
	).Scan(&slotID, &status)
	if err != nil {
		if IsNotFound(err) {
			// No slot backs this window; refusing up front beats inserting
			// an appointment the slot table knows nothing about.
			return nil, schedule.Errf(schedule.KindPartialBooking,
				"No open slot matches the requested time.")
		}
		return nil, err
	}
	if status == model.SlotBooked {
		return nil, schedule.Errf(schedule.KindAlreadyBooked, "This time slot is already booked.")
	}

	booked := &model.Appointment{}
	err = tx.QueryRow(ctx,
		`INSERT INTO appointments (slot_id, name, email, phone, nic, slot_date, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8::time)
		 RETURNING `+appointmentColumns,
		slotID, a.Name, a.Email, a.Phone, a.NIC, a.Date, a.Start, a.End,
	).Scan(&booked.ID, &booked.SlotID, &booked.Name, &booked.Email, &booked.Phone, &booked.NIC,
		&booked.Date, &booked.Start, &booked.End, &booked.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, schedule.Errf(schedule.KindAlreadyBooked, "This time slot is already booked.")
		}
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE appointment_slots SET status = $1 WHERE id = $2`,
		model.SlotBooked, slotID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Appointment row exists but the slot flip matched nothing; the
		// rollback below undoes the insert, so surface it instead of
		// committing a divergent state.
		return nil, schedule.Errf(schedule.KindPartialBooking,
			"Booking could not be completed consistently.")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return booked, nil
}

// CancelAppointment deletes the appointment and reopens its slot in one
// transaction. A missing slot is not an error: the admin may have deleted
// it after the booking was made.
func (s *Store) CancelAppointment(ctx context.Context, appointmentID int, date, start string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var slotID *int
	err = tx.QueryRow(ctx,
		`DELETE FROM appointments WHERE id = $1 RETURNING slot_id`, appointmentID,
	).Scan(&slotID)
	if err != nil {
		if IsNotFound(err) {
			return schedule.Errf(schedule.KindNotFound, "Appointment not found")
		}
		return err
	}

	if slotID != nil {
		_, err = tx.Exec(ctx,
			`UPDATE appointment_slots SET status = $1 WHERE id = $2`,
			model.SlotOpen, *slotID,
		)
	} else {
		// Pre-FK rows carry no slot reference; fall back to the window match
		// the original data model used.
		_, err = tx.Exec(ctx,
			`UPDATE appointment_slots SET status = $1
			 WHERE slot_date = $2::date AND start_time = $3::time`,
			model.SlotOpen, date, start,
		)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AppointmentsForDate feeds the exact-window uniqueness pre-check.
func (s *Store) AppointmentsForDate(ctx context.Context, date string) ([]model.Appointment, error) {
	return s.queryAppointments(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE slot_date = $1::date
		 ORDER BY start_time`, date)
}

func (s *Store) UserAppointments(ctx context.Context, email string) ([]model.Appointment, error) {
	return s.queryAppointments(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 WHERE email = $1
		 ORDER BY slot_date DESC, start_time ASC`, email)
}

func (s *Store) AllAppointments(ctx context.Context) ([]model.Appointment, error) {
	return s.queryAppointments(ctx,
		`SELECT `+appointmentColumns+`
		 FROM appointments
		 ORDER BY slot_date ASC, start_time ASC`)
}

func (s *Store) queryAppointments(ctx context.Context, sql string, args ...any) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(&a.ID, &a.SlotID, &a.Name, &a.Email, &a.Phone, &a.NIC,
			&a.Date, &a.Start, &a.End, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
