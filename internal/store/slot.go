package store

import (
	"context"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/schedule"
)

// Dates and clock times cross the storage boundary as canonical strings
// ("YYYY-MM-DD" / "HH24:MI"). DATE and TIME columns carry no timezone, so
// reading them back with to_char keeps the stored civil day intact instead
// of shifting it through a timestamp conversion.
const slotColumns = `id,
	to_char(slot_date, 'YYYY-MM-DD'),
	to_char(start_time, 'HH24:MI'),
	to_char(end_time, 'HH24:MI'),
	status, created_at`

func (s *Store) CreateSlot(ctx context.Context, date, start, end string) (*model.Slot, error) {
	slot := &model.Slot{}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointment_slots (slot_date, start_time, end_time, status)
		 VALUES ($1::date, $2::time, $3::time, $4)
		 RETURNING `+slotColumns,
		date, start, end, model.SlotOpen,
	).Scan(&slot.ID, &slot.Date, &slot.Start, &slot.End, &slot.Status, &slot.CreatedAt)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// SlotsForDate returns every slot on the given date regardless of status;
// booked slots still occupy their interval for overlap purposes.
func (s *Store) SlotsForDate(ctx context.Context, date string) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+slotColumns+`
		 FROM appointment_slots
		 WHERE slot_date = $1::date
		 ORDER BY start_time`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.ID, &sl.Date, &sl.Start, &sl.End, &sl.Status, &sl.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) AvailableSlots(ctx context.Context) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+slotColumns+`
		 FROM appointment_slots
		 WHERE status = $1
		 ORDER BY slot_date, start_time`, model.SlotOpen,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.ID, &sl.Date, &sl.Start, &sl.End, &sl.Status, &sl.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSlotStatus(ctx context.Context, slotID int, status string) (*model.Slot, error) {
	slot := &model.Slot{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointment_slots SET status = $1 WHERE id = $2
		 RETURNING `+slotColumns,
		status, slotID,
	).Scan(&slot.ID, &slot.Date, &slot.Start, &slot.End, &slot.Status, &slot.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, schedule.Errf(schedule.KindNotFound, "Slot not found")
		}
		return nil, err
	}
	return slot, nil
}

// DeleteSlot removes the slot unconditionally, booked or not. The id of an
// appointment still referencing the slot's window is returned so the caller
// can report the orphan; the appointment row itself is left in place and its
// slot reference is nulled by the schema.
func (s *Store) DeleteSlot(ctx context.Context, slotID int) (*model.Slot, int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	slot := &model.Slot{}
	err = tx.QueryRow(ctx,
		`SELECT `+slotColumns+`
		 FROM appointment_slots WHERE id = $1 FOR UPDATE`, slotID,
	).Scan(&slot.ID, &slot.Date, &slot.Start, &slot.End, &slot.Status, &slot.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, 0, schedule.Errf(schedule.KindNotFound, "Slot not found")
		}
		return nil, 0, err
	}

	danglingID := 0
	err = tx.QueryRow(ctx,
		`SELECT id FROM appointments WHERE slot_id = $1 LIMIT 1`, slotID,
	).Scan(&danglingID)
	if err != nil && !IsNotFound(err) {
		return nil, 0, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM appointment_slots WHERE id = $1`, slotID); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return slot, danglingID, nil
}
