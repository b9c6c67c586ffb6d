package models

import (
	"time"

	"github.com/google/uuid"
)

// Creation inputs for the remote access functions. The remote assigns the
// id and timestamps; inputs carry only user-provided fields.

type ProjectInput struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type TaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	DayID       *uuid.UUID `json:"day_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type GoalInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Type           string     `json:"type,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	IsQuantifiable bool       `json:"is_quantifiable,omitempty"`
	TargetValue    float64    `json:"target_value,omitempty"`
	Unit           string     `json:"unit,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
}

type DailyGoalInput struct {
	GoalID uuid.UUID `json:"goal_id"`
	DayID  uuid.UUID `json:"day_id"`
	Note   string    `json:"note,omitempty"`
}

type HabitInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

type HabitLogInput struct {
	HabitID     uuid.UUID  `json:"habit_id"`
	DayID       *uuid.UUID `json:"day_id,omitempty"`
	Date        time.Time  `json:"date"`
	IsCompleted bool       `json:"is_completed"`
	Note        string     `json:"note,omitempty"`
}

type DayInput struct {
	Date time.Time `json:"date"`
}

type NoteInput struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Type       string     `json:"type,omitempty"`
	DayID      *uuid.UUID `json:"day_id,omitempty"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ConceptID  *uuid.UUID `json:"concept_id,omitempty"`
}

type CategoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type TagInput struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type TagLinkInput struct {
	TagID   uuid.UUID `json:"tag_id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Kind    string    `json:"kind"`
}

type TopicInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TargetHours float64 `json:"target_hours,omitempty"`
}

type ConceptInput struct {
	TopicID   uuid.UUID `json:"topic_id"`
	Name      string    `json:"name"`
	Resources []string  `json:"resources,omitempty"`
}

type RoadInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type MilestoneInput struct {
	RoadID uuid.UUID `json:"road_id"`
	Title  string    `json:"title"`
	Order  int       `json:"order"`
}
