package dao

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

type DatePollEntry struct {
	ID        uint           `gorm:"primaryKey"`
	MeetingID uint           `gorm:"not null"`
	StartDate time.Time      `gorm:"not null"`
	EndDate   time.Time      `gorm:"not null"`
	Votes     []DatePollVote `gorm:"foreignKey:DatePollEntryID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DatePollVote is a yes vote. Deleting the row withdraws it, so it is never
// soft-deleted.
type DatePollVote struct {
	ID              uint `gorm:"primaryKey"`
	DatePollEntryID uint `gorm:"not null"`
	UserID          uint `gorm:"not null"`
	User            User `gorm:"foreignKey:UserID"`
	CreatedAt       time.Time
}

func (d *MeetingDAO) InsertPollEntries(ctx context.Context, entries []DatePollEntry) ([]DatePollEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// FindPollEntryIDs returns which of ids are poll entries of meetingID.
func (d *MeetingDAO) FindPollEntryIDs(ctx context.Context, meetingID uint, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	result := d.db.WithContext(ctx).
		Model(&DatePollEntry{}).
		Where("meeting_id = ? AND id IN ?", meetingID, ids).
		Order("id").
		Pluck("id", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	return found, nil
}

// FindVotedEntryIDs returns which of entryIDs userID currently votes yes on.
func (d *MeetingDAO) FindVotedEntryIDs(ctx context.Context, userID uint, entryIDs []uint) ([]uint, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	var found []uint
	result := d.db.WithContext(ctx).
		Model(&DatePollVote{}).
		Where("user_id = ? AND date_poll_entry_id IN ?", userID, entryIDs).
		Pluck("date_poll_entry_id", &found)
	if result.Error != nil {
		return nil, result.Error
	}

	return found, nil
}

func (d *MeetingDAO) InsertVotes(ctx context.Context, votes []DatePollVote) error {
	if len(votes) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date_poll_entry_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&votes).Error
}

func (d *MeetingDAO) DeleteVotes(ctx context.Context, userID uint, entryIDs []uint) error {
	if len(entryIDs) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).
		Where("user_id = ? AND date_poll_entry_id IN ?", userID, entryIDs).
		Delete(&DatePollVote{}).Error
}

// FindPollEntries returns the meeting's entries in creation order with voters loaded.
func (d *MeetingDAO) FindPollEntries(ctx context.Context, meetingID uint) ([]DatePollEntry, error) {
	var entries []DatePollEntry

	result := d.db.WithContext(ctx).
		Preload("Votes", orderByID).
		Preload("Votes.User").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC, id ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
