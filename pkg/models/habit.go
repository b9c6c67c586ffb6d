package models

import (
	"time"

	"github.com/google/uuid"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"not null;type:uuid;index:idx_habits_user"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// HabitLog joins a habit to a day (no independent lifecycle)
type HabitLog struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	HabitID     uuid.UUID  `json:"habit_id" gorm:"not null;type:uuid;index:idx_habit_logs_habit"`
	DayID       *uuid.UUID `json:"day_id,omitempty" gorm:"type:uuid"`
	Date        time.Time  `json:"date" gorm:"not null;index:idx_habit_logs_date"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Habit *Habit `json:"habit,omitempty" gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE"`
}
