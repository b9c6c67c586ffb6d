package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TopicStatus represents the status of a learning topic
type TopicStatus string

const (
	TopicStatusActive    TopicStatus = "ACTIVE"
	TopicStatusOnHold    TopicStatus = "ON_HOLD"
	TopicStatusCompleted TopicStatus = "COMPLETED"
)

// ConceptStatus represents the status of a learning concept
type ConceptStatus string

const (
	ConceptStatusNotStarted ConceptStatus = "NOT_STARTED"
	ConceptStatusLearning   ConceptStatus = "LEARNING"
	ConceptStatusCompleted  ConceptStatus = "COMPLETED"
	ConceptStatusMastered   ConceptStatus = "MASTERED"
)

// LearningTopic groups learning concepts. Progress and actual hours are
// derived from the concepts by the client and persisted here.
type LearningTopic struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"not null;type:uuid;index:idx_topics_user"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Status      string    `json:"status" gorm:"not null;type:varchar(20);default:'ACTIVE'"`
	Progress    int       `json:"progress" gorm:"default:0;check:progress >= 0 AND progress <= 100"`
	ActualHours float64   `json:"actual_hours" gorm:"default:0"`
	TargetHours float64   `json:"target_hours" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// LearningConcept is one unit of knowledge inside a topic
type LearningConcept struct {
	ID                 uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	TopicID            uuid.UUID      `json:"topic_id" gorm:"not null;type:uuid;index:idx_concepts_topic"`
	Name               string         `json:"name" gorm:"not null"`
	Status             string         `json:"status" gorm:"not null;type:varchar(20);default:'NOT_STARTED'"`
	UnderstandingLevel int            `json:"understanding_level" gorm:"default:0;check:understanding_level >= 0 AND understanding_level <= 5"`
	TimeSpent          float64        `json:"time_spent" gorm:"default:0"`
	Resources          datatypes.JSON `json:"resources"`
	CreatedAt          time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Topic *LearningTopic `json:"topic,omitempty" gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE"`
}
