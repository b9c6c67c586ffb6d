package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalType distinguishes horizon buckets for goals
type GoalType string

const (
	GoalTypeDaily    GoalType = "DAILY"
	GoalTypeShort    GoalType = "SHORT_TERM"
	GoalTypeLong     GoalType = "LONG_TERM"
	GoalTypeLifetime GoalType = "LIFETIME"
)

// GoalStatus represents the status of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "ACTIVE"
	GoalStatusOnHold    GoalStatus = "ON_HOLD"
	GoalStatusCompleted GoalStatus = "COMPLETED"
	GoalStatusAbandoned GoalStatus = "ABANDONED"
)

// Goal represents a goal row, optionally quantifiable and optionally nested
type Goal struct {
	ID             uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID         uuid.UUID  `json:"user_id" gorm:"not null;type:uuid;index:idx_goals_user"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	Type           string     `json:"type" gorm:"not null;type:varchar(20);default:'SHORT_TERM'"`
	Status         string     `json:"status" gorm:"not null;type:varchar(20);default:'ACTIVE'"`
	Priority       string     `json:"priority" gorm:"type:varchar(1);default:'M'"`
	IsQuantifiable bool       `json:"is_quantifiable" gorm:"default:false"`
	CurrentValue   float64    `json:"current_value" gorm:"default:0"`
	TargetValue    float64    `json:"target_value" gorm:"default:0"`
	Unit           string     `json:"unit"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

// DailyGoal joins a goal to a day (no independent lifecycle)
type DailyGoal struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	GoalID      uuid.UUID `json:"goal_id" gorm:"not null;type:uuid;index:idx_daily_goals_goal"`
	DayID       uuid.UUID `json:"day_id" gorm:"not null;type:uuid;index:idx_daily_goals_day"`
	IsCompleted bool      `json:"is_completed" gorm:"default:false"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Goal *Goal `json:"goal,omitempty" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	Day  *Day  `json:"day,omitempty" gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE"`
}
