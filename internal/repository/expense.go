package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

var (
	ErrExpenseNotFound = dao.ErrExpenseNotFound
	ErrUnknownUser     = dao.ErrUnknownUser
)

type ExpenseDAO interface {
	Insert(ctx context.Context, e dao.Expense, userIDs []uint) (dao.Expense, error)
	FindByID(ctx context.Context, meetingID, id uint) (dao.Expense, error)
	ListByMeeting(ctx context.Context, meetingID uint) ([]dao.Expense, error)
	Update(ctx context.Context, meetingID, id uint, fields map[string]any, userIDs *[]uint) (dao.Expense, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type ExpenseRepository struct {
	dao ExpenseDAO
}

func NewExpenseRepository(dao ExpenseDAO) *ExpenseRepository {
	return &ExpenseRepository{
		dao: dao,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error) {
	created, err := r.dao.Insert(ctx, dao.Expense{
		MeetingID:   e.MeetingID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedByID: e.CreatedByID,
	}, userIDs)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return expenseToDomain(created), nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, meetingID, id uint) (domain.Expense, error) {
	found, err := r.dao.FindByID(ctx, meetingID, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return expenseToDomain(found), nil
}

func (r *ExpenseRepository) List(ctx context.Context, meetingID uint) ([]domain.Expense, error) {
	found, err := r.dao.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByMeeting -> %w", err)
	}

	expenses := make([]domain.Expense, 0, len(found))
	for _, e := range found {
		expenses = append(expenses, expenseToDomain(e))
	}

	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, meetingID, id uint, update domain.ExpenseUpdate) (domain.Expense, error) {
	fields := make(map[string]any)
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Amount != nil {
		fields["amount"] = *update.Amount
	}

	updated, err := r.dao.Update(ctx, meetingID, id, fields, update.UserIDs)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return expenseToDomain(updated), nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, meetingID, id uint) error {
	if err := r.dao.Delete(ctx, meetingID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func expenseToDomain(e dao.Expense) domain.Expense {
	return domain.Expense{
		ID:          e.ID,
		MeetingID:   e.MeetingID,
		Name:        e.Name,
		Description: e.Description,
		Amount:      e.Amount,
		Users:       usersToDomain(e.Users),
		CreatedByID: e.CreatedByID,
		CreatedBy:   userToDomain(e.CreatedBy),
		CreatedAt:   e.CreatedAt,
	}
}
