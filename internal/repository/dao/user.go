package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Name     string `gorm:"not null"`
	LastName string `gorm:"not null"`
	Color    string `gorm:"not null"`

	PasswordResetToken *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// Search lists users other than excludeID whose name or last name contains any of
// words, case-insensitively. Newest users come first.
func (d *UserDAO) Search(ctx context.Context, excludeID uint, words []string) ([]User, error) {
	var users []User

	query := d.db.WithContext(ctx).Where("id <> ?", excludeID)
	query = whereAnyWord(query, words)

	result := query.Order("created_at DESC, id DESC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// SearchNotInMeeting is Search restricted to users without a participation row
// for meetingID.
func (d *UserDAO) SearchNotInMeeting(ctx context.Context, meetingID uint, words []string) ([]User, error) {
	var users []User

	participants := d.db.Model(&ParticipationStatus{}).Select("user_id").Where("meeting_id = ?", meetingID)
	query := d.db.WithContext(ctx).Where("id NOT IN (?)", participants)
	query = whereAnyWord(query, words)

	result := query.Order("created_at DESC, id DESC").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func whereAnyWord(query *gorm.DB, words []string) *gorm.DB {
	if len(words) == 0 {
		return query
	}

	cond := query.Session(&gorm.Session{NewDB: true})
	for i, w := range words {
		pattern := "%" + escapeLike(w) + "%"
		if i == 0 {
			cond = cond.Where("(name ILIKE ? OR last_name ILIKE ?)", pattern, pattern)
			continue
		}
		cond = cond.Or("(name ILIKE ? OR last_name ILIKE ?)", pattern, pattern)
	}

	return query.Where(cond)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) SetResetToken(ctx context.Context, id uint, token *string) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("password_reset_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ResetPassword swaps the password for the user holding token and clears the
// token in the same statement.
func (d *UserDAO) ResetPassword(ctx context.Context, token, hash string) error {
	result := d.db.WithContext(ctx).Model(&User{}).
		Where("password_reset_token = ?", token).
		Updates(map[string]any{
			"password":             hash,
			"password_reset_token": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
