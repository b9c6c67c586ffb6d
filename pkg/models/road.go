package models

import (
	"time"

	"github.com/google/uuid"
)

// RoadStatus represents the status of a road (long-running milestone track)
type RoadStatus string

const (
	RoadStatusActive    RoadStatus = "ACTIVE"
	RoadStatusCompleted RoadStatus = "COMPLETED"
)

// Road is an ordered milestone track toward a long-term outcome.
// Progress is derived from the milestones by the client and persisted here.
type Road struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID  `json:"user_id" gorm:"not null;type:uuid;index:idx_roads_user"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Status      string     `json:"status" gorm:"not null;type:varchar(20);default:'ACTIVE'"`
	Progress    int        `json:"progress" gorm:"default:0;check:progress >= 0 AND progress <= 100"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Milestone is one ordered step on a road
type Milestone struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	RoadID      uuid.UUID  `json:"road_id" gorm:"not null;type:uuid;index:idx_milestones_road"`
	Title       string     `json:"title" gorm:"not null"`
	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	Order       int        `json:"order" gorm:"column:sort_order;default:0"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Road *Road `json:"road,omitempty" gorm:"foreignKey:RoadID;constraint:OnDelete:CASCADE"`
}
