package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrUnknownUser     = errors.New("unknown user")
)

type Expense struct {
	ID          uint    `gorm:"primaryKey"`
	MeetingID   uint    `gorm:"not null"`
	Name        string  `gorm:"not null"`
	Description string
	Amount      float64 `gorm:"not null"`
	Users       []User  `gorm:"many2many:expense_users;"`
	CreatedByID uint    `gorm:"not null"`
	CreatedBy   User    `gorm:"foreignKey:CreatedByID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// ExpenseUser is one row of the split list.
type ExpenseUser struct {
	ExpenseID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey"`
}

type ExpenseDAO struct {
	db *gorm.DB
}

func NewExpenseDAO(db *gorm.DB) *ExpenseDAO {
	return &ExpenseDAO{
		db: db,
	}
}

func (d *ExpenseDAO) Insert(ctx context.Context, e Expense, userIDs []uint) (Expense, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&e).Error; err != nil {
			return err
		}

		return replaceExpenseUsers(tx, e.ID, userIDs)
	})
	if err != nil {
		return Expense{}, classifyExpenseErr(err)
	}

	return d.FindByID(ctx, e.MeetingID, e.ID)
}

func (d *ExpenseDAO) FindByID(ctx context.Context, meetingID, id uint) (Expense, error) {
	var e Expense

	result := d.db.WithContext(ctx).
		Preload("Users", orderByID).
		Preload("CreatedBy").
		Where("meeting_id = ?", meetingID).
		First(&e, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Expense{}, ErrExpenseNotFound
		}

		return Expense{}, result.Error
	}

	return e, nil
}

func (d *ExpenseDAO) ListByMeeting(ctx context.Context, meetingID uint) ([]Expense, error) {
	var list []Expense

	result := d.db.WithContext(ctx).
		Preload("Users", orderByID).
		Preload("CreatedBy").
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC, id DESC").
		Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}

	return list, nil
}

// Update patches the expense and, when userIDs is non-nil, replaces its split list.
func (d *ExpenseDAO) Update(ctx context.Context, meetingID, id uint, fields map[string]any, userIDs *[]uint) (Expense, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&Expense{}).Where("meeting_id = ? AND id = ?", meetingID, id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrExpenseNotFound
		}

		if len(fields) > 0 {
			if err := tx.Model(&Expense{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}

		if userIDs != nil {
			return replaceExpenseUsers(tx, id, *userIDs)
		}

		return nil
	})
	if err != nil {
		return Expense{}, classifyExpenseErr(err)
	}

	return d.FindByID(ctx, meetingID, id)
}

func (d *ExpenseDAO) Delete(ctx context.Context, meetingID, id uint) error {
	result := d.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// replaceExpenseUsers drops ids that match no user.
func replaceExpenseUsers(tx *gorm.DB, expenseID uint, userIDs []uint) error {
	if err := tx.Where("expense_id = ?", expenseID).Delete(&ExpenseUser{}).Error; err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&User{}).Where("id IN ?", userIDs).Order("id").Pluck("id", &existing).Error; err != nil {
		return err
	}
	if len(existing) == 0 {
		return nil
	}

	rows := make([]ExpenseUser, 0, len(existing))
	for _, userID := range existing {
		rows = append(rows, ExpenseUser{ExpenseID: expenseID, UserID: userID})
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// classifyExpenseErr covers a user deleted between the lookup and the insert.
func classifyExpenseErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return ErrUnknownUser
	}

	return err
}
