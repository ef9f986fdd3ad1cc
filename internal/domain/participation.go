package domain

type ParticipationStatus string

const (
	ParticipationInvited  ParticipationStatus = "invited"
	ParticipationMaybe    ParticipationStatus = "maybe"
	ParticipationGoing    ParticipationStatus = "going"
	ParticipationDeclined ParticipationStatus = "declined"
)

func (s ParticipationStatus) Valid() bool {
	switch s {
	case ParticipationInvited, ParticipationMaybe, ParticipationGoing, ParticipationDeclined:
		return true
	}
	return false
}

// Participant is a user together with their RSVP state for one meeting.
type Participant struct {
	User
	Status ParticipationStatus `json:"userParticipationStatus"`
}

// Invitation is a pending participation row joined with its meeting.
type Invitation struct {
	ID        uint
	MeetingID uint
	UserID    uint
	Status    ParticipationStatus
	Meeting   Meeting
}

// MeetingAccess is the result of checking a user's relationship to a meeting.
// Guards consume it before any mutation; it is not atomic with the write that follows.
type MeetingAccess struct {
	MeetingID uint
	UserID    uint
	CreatorID uint
	// Status is empty when the user has no participation row.
	Status ParticipationStatus
}

// IsParticipant is true for any participation row, whatever its status.
func (a MeetingAccess) IsParticipant() bool {
	return a.Status != ""
}

func (a MeetingAccess) IsCreator() bool {
	return a.CreatorID != 0 && a.CreatorID == a.UserID
}
