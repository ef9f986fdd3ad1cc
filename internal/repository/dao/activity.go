package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

type Activity struct {
	ID          uint   `gorm:"primaryKey"`
	MeetingID   uint   `gorm:"not null"`
	Name        string `gorm:"not null"`
	Description string
	StartTime   time.Time `gorm:"not null"`
	EndTime     time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

func (d *ActivityDAO) Insert(ctx context.Context, a Activity) (Activity, error) {
	result := d.db.WithContext(ctx).Create(&a)
	if result.Error != nil {
		return Activity{}, result.Error
	}

	return a, nil
}

func (d *ActivityDAO) FindByID(ctx context.Context, meetingID, id uint) (Activity, error) {
	var a Activity

	result := d.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&a, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Activity{}, ErrActivityNotFound
		}

		return Activity{}, result.Error
	}

	return a, nil
}

// ListByMeeting returns the meeting's activities in chronological order.
func (d *ActivityDAO) ListByMeeting(ctx context.Context, meetingID uint) ([]Activity, error) {
	var list []Activity

	result := d.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Order("start_time ASC, id ASC").Find(&list)
	if result.Error != nil {
		return nil, result.Error
	}

	return list, nil
}

func (d *ActivityDAO) Update(ctx context.Context, meetingID, id uint, fields map[string]any) (Activity, error) {
	if len(fields) > 0 {
		result := d.db.WithContext(ctx).Model(&Activity{}).Where("meeting_id = ? AND id = ?", meetingID, id).Updates(fields)
		if result.Error != nil {
			return Activity{}, result.Error
		}
		if result.RowsAffected == 0 {
			return Activity{}, ErrActivityNotFound
		}
	}

	return d.FindByID(ctx, meetingID, id)
}

func (d *ActivityDAO) Delete(ctx context.Context, meetingID, id uint) error {
	result := d.db.WithContext(ctx).Where("meeting_id = ?", meetingID).Delete(&Activity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}
