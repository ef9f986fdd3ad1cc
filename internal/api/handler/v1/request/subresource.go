package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/meetup-api/internal/domain"
)

var errEmptyUpdate = errors.New("nothing to update")

type AnnouncementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (req *AnnouncementRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Description, validation.Required),
	)
}

type UpdateAnnouncementRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (req *UpdateAnnouncementRequest) Validate() error {
	if req.Title == nil && req.Description == nil {
		return errEmptyUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Description, validation.NilOrNotEmpty),
	)
}

func (req *UpdateAnnouncementRequest) Update() domain.AnnouncementUpdate {
	return domain.AnnouncementUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
}

type ExpenseRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	UserIDs     []uint  `json:"userIds"`
}

func (req *ExpenseRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Amount, validation.Required, validation.Min(0.0)),
		validation.Field(&req.UserIDs, validation.Required),
	)
}

type UpdateExpenseRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	UserIDs     *[]uint  `json:"userIds"`
}

func (req *UpdateExpenseRequest) Validate() error {
	if req.Name == nil && req.Description == nil && req.Amount == nil && req.UserIDs == nil {
		return errEmptyUpdate
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Amount, validation.Min(0.0)),
		validation.Field(&req.UserIDs, validation.NilOrNotEmpty),
	)
}

func (req *UpdateExpenseRequest) Update() domain.ExpenseUpdate {
	return domain.ExpenseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		UserIDs:     req.UserIDs,
	}
}

type ActivityRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

func (req *ActivityRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.StartTime, validation.Required),
		validation.Field(&req.EndTime, validation.Required),
	)
	if err != nil {
		return err
	}
	if req.EndTime.Before(req.StartTime) {
		return errEndBeforeStart
	}
	return nil
}

type UpdateActivityRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func (req *UpdateActivityRequest) Validate() error {
	if req.Name == nil && req.Description == nil && req.StartTime == nil && req.EndTime == nil {
		return errEmptyUpdate
	}
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		return errEndBeforeStart
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
	)
}

func (req *UpdateActivityRequest) Update() domain.ActivityUpdate {
	return domain.ActivityUpdate{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
}
