package request

import (
	"errors"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

var (
	errEndBeforeStart   = errors.New("endDate must not be before startDate")
	errInvalidStatus    = errors.New("status must be between 0 and 5")
	errInvalidVoteEntry = errors.New("votes must be keyed by poll entry id")
)

type DatePollEntry struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (e DatePollEntry) Validate() error {
	err := validation.ValidateStruct(
		&e,
		validation.Field(&e.StartDate, validation.Required),
		validation.Field(&e.EndDate, validation.Required),
	)
	if err != nil {
		return err
	}
	if e.EndDate.Before(e.StartDate) {
		return errEndBeforeStart
	}
	return nil
}

func toNewEntries(entries []DatePollEntry) []domain.NewDatePollEntry {
	out := make([]domain.NewDatePollEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.NewDatePollEntry{StartDate: e.StartDate, EndDate: e.EndDate})
	}
	return out
}

var validStatus = validation.By(func(value interface{}) error {
	var s domain.MeetingStatus
	switch v := value.(type) {
	case domain.MeetingStatus:
		s = v
	case *domain.MeetingStatus:
		if v == nil {
			return nil
		}
		s = *v
	}
	if !s.Valid() {
		return errInvalidStatus
	}
	return nil
})

type CreateMeetingRequest struct {
	Name                   string               `json:"name"`
	Description            string               `json:"description"`
	StartDate              *time.Time           `json:"startDate"`
	EndDate                *time.Time           `json:"endDate"`
	LocationID             *string              `json:"locationId"`
	LocationString         *string              `json:"locationString"`
	Status                 domain.MeetingStatus `json:"status"`
	IsDatesPollActive      bool                 `json:"isDatesPollActive"`
	CanUsersAddPollEntries bool                 `json:"canUsersAddPollEntries"`
	ParticipantIDs         []uint               `json:"participantIds"`
	DatesPollEntries       []DatePollEntry      `json:"datesPollEntries"`
}

func (req *CreateMeetingRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Status, validStatus),
		validation.Field(&req.DatesPollEntries),
	)
	if err != nil {
		return err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errEndBeforeStart
	}
	return nil
}

func (req *CreateMeetingRequest) Meeting() domain.Meeting {
	return domain.Meeting{
		Name:                   req.Name,
		Description:            req.Description,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		Status:                 req.Status,
		LocationID:             req.LocationID,
		LocationString:         req.LocationString,
		IsDatesPollActive:      req.IsDatesPollActive,
		CanUsersAddPollEntries: req.CanUsersAddPollEntries,
	}
}

func (req *CreateMeetingRequest) PollEntries() []domain.NewDatePollEntry {
	return toNewEntries(req.DatesPollEntries)
}

// UpdateMeetingRequest is a partial patch; absent fields keep their value.
type UpdateMeetingRequest struct {
	Name                   *string               `json:"name"`
	Description            *string               `json:"description"`
	Status                 *domain.MeetingStatus `json:"status"`
	LocationID             *string               `json:"locationId"`
	LocationString         *string               `json:"locationString"`
	StartDate              *time.Time            `json:"startDate"`
	EndDate                *time.Time            `json:"endDate"`
	IsDatesPollActive      *bool                 `json:"isDatesPollActive"`
	CanUsersAddPollEntries *bool                 `json:"canUsersAddPollEntries"`
}

func (req *UpdateMeetingRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Status, validStatus),
	)
	if err != nil {
		return err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errEndBeforeStart
	}
	return nil
}

func (req *UpdateMeetingRequest) Update() domain.MeetingUpdate {
	return domain.MeetingUpdate{
		Name:                   req.Name,
		Description:            req.Description,
		Status:                 req.Status,
		LocationID:             req.LocationID,
		LocationString:         req.LocationString,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		IsDatesPollActive:      req.IsDatesPollActive,
		CanUsersAddPollEntries: req.CanUsersAddPollEntries,
	}
}

type VoteRequest struct {
	NewMeetingDatesPollEntries []DatePollEntry  `json:"newMeetingDatesPollEntries"`
	Votes                      map[string]bool `json:"votes"`
}

func (req *VoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NewMeetingDatesPollEntries),
	)
}

// PollUpdate converts the request into a domain update. Vote keys must be
// positive entry ids.
func (req *VoteRequest) PollUpdate() (domain.PollUpdate, error) {
	votes := make(map[uint]bool, len(req.Votes))
	for key, yes := range req.Votes {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil || id == 0 {
			return domain.PollUpdate{}, errInvalidVoteEntry
		}
		votes[uint(id)] = yes
	}

	return domain.PollUpdate{
		NewEntries: toNewEntries(req.NewMeetingDatesPollEntries),
		Votes:      votes,
	}, nil
}

type ParticipationStatusRequest struct {
	Status domain.ParticipationStatus `json:"status"`
}

func (req *ParticipationStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			domain.ParticipationInvited,
			domain.ParticipationMaybe,
			domain.ParticipationGoing,
			domain.ParticipationDeclined,
		)),
	)
}

type InviteRequest struct {
	UserIDs []uint `json:"userIds"`
}

func (req *InviteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.UserIDs, validation.Required),
	)
}
