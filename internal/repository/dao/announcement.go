package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type Announcement struct {
	ID          uint   `gorm:"primaryKey"`
	MeetingID   uint   `gorm:"not null"`
	UserID      uint   `gorm:"not null"`
	User        User   `gorm:"foreignKey:UserID"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type AnnouncementDAO struct {
	db *gorm.DB
}

func NewAnnouncementDAO(db *gorm.DB) *AnnouncementDAO {
	return &AnnouncementDAO{
		db: db,
	}
}

func (d *AnnouncementDAO) Insert(ctx context.Context, a Announcement) (Announcement, error) {
	result := d.db.WithContext(ctx).Omit(clause.Associations).Create(&a)
	if result.Error != nil {
		return Announcement{}, result.Error
	}

	return d.FindByID(ctx, a.MeetingID, a.ID)
}

func (d *AnnouncementDAO) FindByID(ctx context.Context, meetingID, id uint) (Announcement, error) {
	var a Announcement

	result := d.db.WithContext(ctx).Preload("User").Where("meeting_id = ?", meetingID).First(&a, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Announcement{}, ErrAnnouncementNotFound
		}

		return Announcement{}, result.Error
	}

	return a, nil
}

// ListByMeeting returns one page of announcements, newest first, and the total count.
func (d *AnnouncementDAO) ListByMeeting(ctx context.Context, meetingID uint, limit, offset int) ([]Announcement, int64, error) {
	query := d.db.WithContext(ctx).Model(&Announcement{}).Where("meeting_id = ?", meetingID).Session(&gorm.Session{})

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var list []Announcement
	result := query.Preload("User").Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&list)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return list, count, nil
}

func (d *AnnouncementDAO) Update(ctx context.Context, meetingID, id uint, fields map[string]any) (Announcement, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&Announcement{}).Where("meeting_id = ? AND id = ?", meetingID, id).Updates(fields)
		if result.Error != nil {
			return Announcement{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Announcement{}, ErrAnnouncementNotFound
		}
	}

	return d.FindByID(ctx, meetingID, id)
}

func (d *AnnouncementDAO) Delete(ctx context.Context, meetingID, id uint) error {
	result := d.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}

	return nil
}
