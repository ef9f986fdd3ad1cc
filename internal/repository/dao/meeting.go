package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMeetingNotFound       = errors.New("meeting not found")
	ErrParticipationNotFound = errors.New("participation not found")
)

type Meeting struct {
	ID uint `gorm:"primaryKey"`

	Name           string `gorm:"not null"`
	Description    string
	StartDate      *time.Time
	EndDate        *time.Time
	Status         int `gorm:"not null;default:0"`
	LocationID     *string
	LocationString *string

	IsDatesPollActive      bool
	CanUsersAddPollEntries bool

	CreatorID       uint                  `gorm:"not null"`
	Creator         User                  `gorm:"foreignKey:CreatorID"`
	Participations  []ParticipationStatus `gorm:"foreignKey:MeetingID"`
	DatePollEntries []DatePollEntry       `gorm:"foreignKey:MeetingID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ParticipationStatus struct {
	ID        uint    `gorm:"primaryKey"`
	MeetingID uint    `gorm:"not null"`
	Meeting   Meeting `gorm:"foreignKey:MeetingID"`
	UserID    uint    `gorm:"not null"`
	User      User    `gorm:"foreignKey:UserID"`
	Status    string  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ParticipationStatus) TableName() string {
	return "participation_statuses"
}

// Access is the raw row behind a meeting authorization check. Status is nil
// when the user has no participation row.
type Access struct {
	CreatorID uint
	Status    *string
}

type MeetingDAO struct {
	db *gorm.DB
}

func NewMeetingDAO(db *gorm.DB) *MeetingDAO {
	return &MeetingDAO{
		db: db,
	}
}

// Transaction runs fn against a DAO bound to a single database transaction.
// Returning an error from fn rolls everything back.
func (d *MeetingDAO) Transaction(ctx context.Context, fn func(tx *MeetingDAO) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MeetingDAO{db: tx})
	})
}

func (d *MeetingDAO) Insert(ctx context.Context, meeting Meeting) (Meeting, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&meeting)
	if result.Error != nil {
		return Meeting{}, result.Error
	}

	return meeting, nil
}

// FindByID loads a meeting with its creator, participants in invitation order
// and poll entries in creation order together with their voters.
func (d *MeetingDAO) FindByID(ctx context.Context, id uint) (Meeting, error) {
	var meeting Meeting

	result := d.db.WithContext(ctx).
		Preload("Creator").
		Preload("Participations", orderByID).
		Preload("Participations.User").
		Preload("DatePollEntries", orderByCreation).
		Preload("DatePollEntries.Votes", orderByID).
		Preload("DatePollEntries.Votes.User").
		First(&meeting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Meeting{}, ErrMeetingNotFound
		}

		return Meeting{}, result.Error
	}

	return meeting, nil
}

// FindPlain loads the meeting row alone.
func (d *MeetingDAO) FindPlain(ctx context.Context, id uint) (Meeting, error) {
	var meeting Meeting

	result := d.db.WithContext(ctx).First(&meeting, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Meeting{}, ErrMeetingNotFound
		}

		return Meeting{}, result.Error
	}

	return meeting, nil
}

func (d *MeetingDAO) FindAccess(ctx context.Context, meetingID, userID uint) (Access, error) {
	var rows []Access

	result := d.db.WithContext(ctx).
		Table("meetings").
		Select("meetings.creator_id, ps.status").
		Joins("LEFT JOIN participation_statuses ps ON ps.meeting_id = meetings.id AND ps.user_id = ?", userID).
		Where("meetings.id = ?", meetingID).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		return Access{}, result.Error
	}
	if len(rows) == 0 {
		return Access{}, ErrMeetingNotFound
	}

	return rows[0], nil
}

// ListForUser returns one page of the meetings userID participates in whose
// status is in statuses, plus the total number of matches.
func (d *MeetingDAO) ListForUser(ctx context.Context, userID uint, statuses []int, limit, offset int) ([]Meeting, int64, error) {
	query := d.db.WithContext(ctx).
		Model(&Meeting{}).
		Joins("JOIN participation_statuses ps ON ps.meeting_id = meetings.id AND ps.user_id = ?", userID).
		Where("meetings.status IN ?", statuses).
		Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var meetings []Meeting
	result := query.
		Preload("Creator").
		Preload("Participations", orderByID).
		Preload("Participations.User").
		Preload("DatePollEntries", orderByCreation).
		Preload("DatePollEntries.Votes", orderByID).
		Preload("DatePollEntries.Votes.User").
		Order("meetings.start_date ASC, meetings.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&meetings)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return meetings, count, nil
}

func (d *MeetingDAO) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&Meeting{ID: id}).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

// FindExistingUserIDs returns the subset of ids that belong to a user.
func (d *MeetingDAO) FindExistingUserIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	result := d.db.WithContext(ctx).Model(&User{}).Where("id IN ?", ids).Order("id").Pluck("id", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	return found, nil
}

// FindParticipantUserIDs returns which of userIDs already have a participation
// row for meetingID.
func (d *MeetingDAO) FindParticipantUserIDs(ctx context.Context, meetingID uint, userIDs []uint) ([]uint, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var found []uint
	result := d.db.WithContext(ctx).
		Model(&ParticipationStatus{}).
		Where("meeting_id = ? AND user_id IN ?", meetingID, userIDs).
		Pluck("user_id", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	return found, nil
}

// InsertParticipations creates rows and silently skips pairs that already exist.
// Only the rows actually written are returned, each with its user loaded.
func (d *MeetingDAO) InsertParticipations(ctx context.Context, rows []ParticipationStatus) ([]ParticipationStatus, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	result := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		if row.ID != 0 {
			ids = append(ids, row.ID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var created []ParticipationStatus
	result = d.db.WithContext(ctx).Preload("User").Where("id IN ?", ids).Order("id").Find(&created)
	if result.Error != nil {
		return nil, result.Error
	}

	return created, nil
}

// UpsertParticipation sets the status of the (meetingID, userID) row, creating
// it when missing.
func (d *MeetingDAO) UpsertParticipation(ctx context.Context, meetingID, userID uint, status string) (ParticipationStatus, error) {
	row := ParticipationStatus{
		MeetingID: meetingID,
		UserID:    userID,
		Status:    status,
	}

	result := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&row)
	if result.Error != nil {
		return ParticipationStatus{}, result.Error
	}

	var saved ParticipationStatus
	result = d.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&saved)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ParticipationStatus{}, ErrParticipationNotFound
		}

		return ParticipationStatus{}, result.Error
	}

	return saved, nil
}

func (d *MeetingDAO) FindParticipationsByStatus(ctx context.Context, userID uint, status string) ([]ParticipationStatus, error) {
	var rows []ParticipationStatus

	result := d.db.WithContext(ctx).
		Preload("Meeting").
		Preload("Meeting.Creator").
		Where("user_id = ? AND status = ?", userID, status).
		Order("id DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
