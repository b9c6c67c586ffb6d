package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns every other row. API keys authenticate CLI and agent sessions.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Name      string    `json:"name"`
	APIKey    string    `json:"-" gorm:"column:api_key;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}
