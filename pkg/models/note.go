package models

import (
	"time"

	"github.com/google/uuid"
)

// NoteType categorizes notes
type NoteType string

const (
	NoteTypeGeneral    NoteType = "GENERAL"
	NoteTypeJournal    NoteType = "JOURNAL"
	NoteTypeIdea       NoteType = "IDEA"
	NoteTypeReference  NoteType = "REFERENCE"
	NoteTypeReflection NoteType = "REFLECTION"
)

// Note represents a note row, optionally attached to a day, project or concept
type Note struct {
	ID         uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID     uuid.UUID  `json:"user_id" gorm:"not null;type:uuid;index:idx_notes_user"`
	Title      string     `json:"title" gorm:"not null"`
	Content    string     `json:"content"`
	Type       string     `json:"type" gorm:"not null;type:varchar(20);default:'GENERAL'"`
	IsPinned   bool       `json:"is_pinned" gorm:"default:false"`
	IsArchived bool       `json:"is_archived" gorm:"default:false"`
	DayID      *uuid.UUID `json:"day_id,omitempty" gorm:"type:uuid"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid"`
	CategoryID *uuid.UUID `json:"category_id,omitempty" gorm:"type:uuid"`
	ConceptID  *uuid.UUID `json:"concept_id,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}
