package domain

import "time"

type Activity struct {
	ID          uint
	MeetingID   uint
	Name        string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

type ActivityUpdate struct {
	Name        *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}
