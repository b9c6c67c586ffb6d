package models

import (
	"time"

	"github.com/google/uuid"
)

// Day is the journal entry for one calendar day, unique per (user, date)
type Day struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_days_user_date"`
	Date        time.Time `json:"date" gorm:"not null;uniqueIndex:idx_days_user_date"`
	IsCompleted bool      `json:"is_completed" gorm:"default:false"`
	Mood        int       `json:"mood" gorm:"default:0;check:mood >= 0 AND mood <= 5"`
	Energy      int       `json:"energy" gorm:"default:0;check:energy >= 0 AND energy <= 5"`
	SleepHours  float64   `json:"sleep_hours" gorm:"default:0"`
	Gratitude   string    `json:"gratitude"`
	Reflection  string    `json:"reflection"`
	Highlights  string    `json:"highlights"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
