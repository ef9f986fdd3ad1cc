package domain

import (
	"time"
)

type MeetingStatus int

const (
	MeetingPlanned MeetingStatus = iota
	MeetingPostponed
	MeetingStarted
	MeetingExtended
	MeetingEnded
	MeetingCanceled
)

var meetingStatusNames = [...]string{"planned", "postponed", "started", "extended", "ended", "canceled"}

func (s MeetingStatus) Valid() bool {
	return s >= MeetingPlanned && s <= MeetingCanceled
}

func (s MeetingStatus) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return meetingStatusNames[s]
}

// IsArchived reports whether the meeting is over for good. Ended and Canceled
// meetings never show up in the planned listing.
func (s MeetingStatus) IsArchived() bool {
	return s == MeetingEnded || s == MeetingCanceled
}

// MeetingView selects one half of the status bipartition used by the meeting listing.
type MeetingView string

const (
	MeetingViewPlanned  MeetingView = "planned"
	MeetingViewArchived MeetingView = "archived"
)

// ParseMeetingView maps the typeOfMeeting query value to a view. Anything that
// is not "archived" falls back to the planned view.
func ParseMeetingView(s string) MeetingView {
	if MeetingView(s) == MeetingViewArchived {
		return MeetingViewArchived
	}
	return MeetingViewPlanned
}

func (v MeetingView) Statuses() []MeetingStatus {
	if v == MeetingViewArchived {
		return []MeetingStatus{MeetingEnded, MeetingCanceled}
	}
	return []MeetingStatus{MeetingPlanned, MeetingPostponed, MeetingStarted, MeetingExtended}
}

type Meeting struct {
	ID                     uint
	Name                   string
	Description            string
	StartDate              *time.Time
	EndDate                *time.Time
	Status                 MeetingStatus
	LocationID             *string
	LocationString         *string
	IsDatesPollActive      bool
	CanUsersAddPollEntries bool
	CreatorID              uint
	Creator                User
	Participants           []Participant
	DatePollEntries        []DatePollEntry
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (m Meeting) IsCreator(userID uint) bool {
	return m.CreatorID == userID
}

// CanAddPollEntries reports whether userID may propose new candidate dates.
// The creator always may; everybody else only when the meeting allows it.
func (m Meeting) CanAddPollEntries(userID uint) bool {
	return m.CanUsersAddPollEntries || m.IsCreator(userID)
}

// MeetingUpdate is a partial patch; nil fields are left untouched.
type MeetingUpdate struct {
	Name                   *string
	Description            *string
	Status                 *MeetingStatus
	LocationID             *string
	LocationString         *string
	StartDate              *time.Time
	EndDate                *time.Time
	IsDatesPollActive      *bool
	CanUsersAddPollEntries *bool
}

func (u MeetingUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Status == nil &&
		u.LocationID == nil && u.LocationString == nil &&
		u.StartDate == nil && u.EndDate == nil &&
		u.IsDatesPollActive == nil && u.CanUsersAddPollEntries == nil
}

// Apply returns a copy of m with the patch applied.
func (u MeetingUpdate) Apply(m Meeting) Meeting {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
	if u.LocationID != nil {
		m.LocationID = u.LocationID
	}
	if u.LocationString != nil {
		m.LocationString = u.LocationString
	}
	if u.StartDate != nil {
		m.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		m.EndDate = u.EndDate
	}
	if u.IsDatesPollActive != nil {
		m.IsDatesPollActive = *u.IsDatesPollActive
	}
	if u.CanUsersAddPollEntries != nil {
		m.CanUsersAddPollEntries = *u.CanUsersAddPollEntries
	}
	return m
}

// MeetingPage is one page of the caller's meetings plus the total match count.
type MeetingPage struct {
	Meetings []Meeting
	Count    int64
}
