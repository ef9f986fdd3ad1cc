package response

import (
	"time"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

type Announcement struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	User        User      `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewAnnouncement(a domain.Announcement) Announcement {
	return Announcement{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		User:        NewUser(a.User),
		CreatedAt:   a.CreatedAt,
	}
}

type AnnouncementsResponse struct {
	Announcements []Announcement `json:"announcements"`
	Count         int64          `json:"count"`
}

func NewAnnouncementsResponse(page domain.AnnouncementPage) AnnouncementsResponse {
	out := make([]Announcement, 0, len(page.Announcements))
	for _, a := range page.Announcements {
		out = append(out, NewAnnouncement(a))
	}
	return AnnouncementsResponse{
		Announcements: out,
		Count:         page.Count,
	}
}

type CreatedAnnouncementResponse struct {
	CreatedAnnouncement Announcement `json:"createdAnnouncement"`
}

type Expense struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Users       []User    `json:"users"`
	CreatedBy   User      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewExpense(e domain.Expense) Expense {
	return Expense{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		Users:       NewUsers(e.Users),
		CreatedBy:   NewUser(e.CreatedBy),
		CreatedAt:   e.CreatedAt,
	}
}

func NewExpenses(expenses []domain.Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, NewExpense(e))
	}
	return out
}

type Activity struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

func NewActivity(a domain.Activity) Activity {
	return Activity{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
	}
}

func NewActivities(activities []domain.Activity) []Activity {
	out := make([]Activity, 0, len(activities))
	for _, a := range activities {
		out = append(out, NewActivity(a))
	}
	return out
}

type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}
