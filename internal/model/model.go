package model

import "time"

// Slot statuses. Stored as text for compatibility with the existing data set.
const (
	SlotOpen   = "not booked"
	SlotBooked = "booked"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Name         string
	Email        string
	NIC          string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot is an offerable, non-recurring interval on a calendar day.
// Date is canonical "2006-01-02"; Start and End are canonical "15:04"
// wall-clock times forming the half-open interval [Start, End).
type Slot struct {
	ID        int
	Date      string
	Start     string
	End       string
	Status    string
	CreatedAt time.Time
}

// Appointment is a confirmed booking of one slot. SlotID is zero when the
// referenced slot was deleted out from under the appointment.
type Appointment struct {
	ID        int
	SlotID    int
	Name      string
	Email     string
	Phone     string
	NIC       string
	Date      string
	Start     string
	End       string
	CreatedAt time.Time
}
