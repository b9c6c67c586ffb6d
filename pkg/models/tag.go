package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a nullable-FK classifier for projects, tasks, goals and notes
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"not null;type:uuid;index:idx_categories_user"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Tag is attached to notes, projects, tasks and goals via join rows
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"not null;type:uuid;index:idx_tags_user"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TagLink is one many-to-many join row; Kind names the owning side
// ("note", "project", "task", "goal").
type TagLink struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	TagID     uuid.UUID `json:"tag_id" gorm:"not null;type:uuid;index:idx_tag_links_tag"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"not null;type:uuid;index:idx_tag_links_owner"`
	Kind      string    `json:"kind" gorm:"not null;type:varchar(20)"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Tag *Tag `json:"tag,omitempty" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}
