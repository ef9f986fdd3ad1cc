package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository"
)

var (
	ErrExpenseNotFound   = repository.ErrExpenseNotFound
	ErrUnknownUser       = repository.ErrUnknownUser
	ErrNotExpenseCreator = errors.New("only the expense creator can do this")
)

type ExpenseRepository interface {
	Create(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error)
	FindByID(ctx context.Context, meetingID, id uint) (domain.Expense, error)
	List(ctx context.Context, meetingID uint) ([]domain.Expense, error)
	Update(ctx context.Context, meetingID, id uint, update domain.ExpenseUpdate) (domain.Expense, error)
	Delete(ctx context.Context, meetingID, id uint) error
}

type ExpenseService struct {
	repo ExpenseRepository
}

func NewExpenseService(repo ExpenseRepository) *ExpenseService {
	return &ExpenseService{
		repo: repo,
	}
}

func (s *ExpenseService) ListExpenses(ctx context.Context, meetingID uint) ([]domain.Expense, error) {
	expenses, err := s.repo.List(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return expenses, nil
}

func (s *ExpenseService) CreateExpense(ctx context.Context, e domain.Expense, userIDs []uint) (domain.Expense, error) {
	created, err := s.repo.Create(ctx, e, uniqueIDs(userIDs, 0))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, meetingID, id, userID uint, update domain.ExpenseUpdate) (domain.Expense, error) {
	found, err := s.repo.FindByID(ctx, meetingID, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if found.CreatedByID != userID {
		return domain.Expense{}, ErrNotExpenseCreator
	}

	if update.UserIDs != nil {
		ids := uniqueIDs(*update.UserIDs, 0)
		update.UserIDs = &ids
	}

	updated, err := s.repo.Update(ctx, meetingID, id, update)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteExpense lets the expense creator or the meeting creator remove an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, access domain.MeetingAccess, id uint) error {
	found, err := s.repo.FindByID(ctx, access.MeetingID, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if found.CreatedByID != access.UserID && !access.IsCreator() {
		return ErrNotExpenseCreator
	}

	if err = s.repo.Delete(ctx, access.MeetingID, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
