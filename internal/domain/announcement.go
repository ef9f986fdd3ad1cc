package domain

import "time"

type Announcement struct {
	ID          uint
	MeetingID   uint
	Title       string
	Description string
	UserID      uint
	User        User
	CreatedAt   time.Time
}

type AnnouncementUpdate struct {
	Title       *string
	Description *string
}

type AnnouncementPage struct {
	Announcements []Announcement
	Count         int64
}
