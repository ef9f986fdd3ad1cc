package domain

import "time"

// Expense is a cost paid inside a meeting and split between Users.
type Expense struct {
	ID          uint
	MeetingID   uint
	Name        string
	Description string
	Amount      float64
	Users       []User
	CreatedByID uint
	CreatedBy   User
	CreatedAt   time.Time
}

type ExpenseUpdate struct {
	Name        *string
	Description *string
	Amount      *float64
	// UserIDs replaces the whole split list when non-nil.
	UserIDs *[]uint
}
