package response

import (
	"time"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

type Participant struct {
	User
	UserParticipationStatus domain.ParticipationStatus `json:"userParticipationStatus"`
}

type DatePollEntry struct {
	ID        uint      `json:"id"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Voters    []User    `json:"voters"`
	CreatedAt time.Time `json:"createdAt"`
}

type Meeting struct {
	ID                     uint                 `json:"id"`
	Name                   string               `json:"name"`
	Description            string               `json:"description"`
	StartDate              *time.Time           `json:"startDate"`
	EndDate                *time.Time           `json:"endDate"`
	Status                 domain.MeetingStatus `json:"status"`
	LocationID             *string              `json:"locationId"`
	LocationString         *string              `json:"locationString"`
	IsDatesPollActive      bool                 `json:"isDatesPollActive"`
	CanUsersAddPollEntries bool                 `json:"canUsersAddPollEntries"`
	Creator                User                 `json:"creator"`
	Participants           []Participant        `json:"participants"`
	DatesPollEntries       []DatePollEntry      `json:"datesPollEntries"`
	CreatedAt              time.Time            `json:"createdAt"`
	UpdatedAt              time.Time            `json:"updatedAt"`
}

func NewParticipant(p domain.Participant) Participant {
	return Participant{
		User:                    NewUser(p.User),
		UserParticipationStatus: p.Status,
	}
}

func NewParticipants(participants []domain.Participant) []Participant {
	out := make([]Participant, 0, len(participants))
	for _, p := range participants {
		out = append(out, NewParticipant(p))
	}
	return out
}

func NewDatePollEntries(entries []domain.DatePollEntry) []DatePollEntry {
	out := make([]DatePollEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DatePollEntry{
			ID:        e.ID,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Voters:    NewUsers(e.Voters),
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func NewMeeting(m domain.Meeting) Meeting {
	return Meeting{
		ID:                     m.ID,
		Name:                   m.Name,
		Description:            m.Description,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
		Status:                 m.Status,
		LocationID:             m.LocationID,
		LocationString:         m.LocationString,
		IsDatesPollActive:      m.IsDatesPollActive,
		CanUsersAddPollEntries: m.CanUsersAddPollEntries,
		Creator:                NewUser(m.Creator),
		Participants:           NewParticipants(m.Participants),
		DatesPollEntries:       NewDatePollEntries(m.DatePollEntries),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

type CreatedMeetingResponse struct {
	CreatedMeeting Meeting `json:"createdMeeting"`
}

type MeetingResponse struct {
	Meeting Meeting `json:"meeting"`
}

type UpdatedMeetingResponse struct {
	UpdatedMeeting Meeting `json:"updatedMeeting"`
}

type MeetingsResponse struct {
	Meetings []Meeting `json:"meetings"`
	Count    int64     `json:"count"`
}

func NewMeetingsResponse(page domain.MeetingPage) MeetingsResponse {
	meetings := make([]Meeting, 0, len(page.Meetings))
	for _, m := range page.Meetings {
		meetings = append(meetings, NewMeeting(m))
	}
	return MeetingsResponse{
		Meetings: meetings,
		Count:    page.Count,
	}
}

type NewParticipantsResponse struct {
	NewParticipants []Participant `json:"newParticipants"`
}

// Invitation is a pending participation row with a summary of its meeting.
type Invitation struct {
	ID                      uint                       `json:"id"`
	MeetingID               uint                       `json:"meetingId"`
	UserParticipationStatus domain.ParticipationStatus `json:"userParticipationStatus"`
	Meeting                 Meeting                    `json:"meeting"`
}

func NewInvitations(invitations []domain.Invitation) []Invitation {
	out := make([]Invitation, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, Invitation{
			ID:                      inv.ID,
			MeetingID:               inv.MeetingID,
			UserParticipationStatus: inv.Status,
			Meeting:                 NewMeeting(inv.Meeting),
		})
	}
	return out
}
