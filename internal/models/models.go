package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusTODO       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Priority is shared by tasks, projects and goals
type Priority string

const (
	PriorityHigh   Priority = "H"
	PriorityMedium Priority = "M"
	PriorityLow    Priority = "L"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
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

// RoadStatus represents the status of a road (long-running milestone track)
type RoadStatus string

const (
	RoadStatusActive    RoadStatus = "ACTIVE"
	RoadStatusCompleted RoadStatus = "COMPLETED"
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

// NoteType categorizes notes
type NoteType string

const (
	NoteTypeGeneral    NoteType = "GENERAL"
	NoteTypeJournal    NoteType = "JOURNAL"
	NoteTypeIdea       NoteType = "IDEA"
	NoteTypeReference  NoteType = "REFERENCE"
	NoteTypeReflection NoteType = "REFLECTION"
)

// Project represents a project in the system
type Project struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`   // ACTIVE, ON_HOLD, COMPLETED, ARCHIVED
	Priority    string     `json:"priority"` // L, M, H
	Progress    int        `json:"progress"` // 0-100
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Task represents a task in the system
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`   // TODO, IN_PROGRESS, COMPLETED
	Priority    string     `json:"priority"` // L, M, H
	ProjectID   *uuid.UUID `json:"project_id,omitempty"`
	DayID       *uuid.UUID `json:"day_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Goal represents a goal, optionally quantifiable and optionally nested
type Goal struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`     // DAILY, SHORT_TERM, LONG_TERM, LIFETIME
	Status         string     `json:"status"`   // ACTIVE, ON_HOLD, COMPLETED, ABANDONED
	Priority       string     `json:"priority"` // L, M, H
	IsQuantifiable bool       `json:"is_quantifiable"`
	CurrentValue   float64    `json:"current_value"`
	TargetValue    float64    `json:"target_value"`
	Unit           string     `json:"unit,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// DailyGoal joins a goal to a day (no independent lifecycle)
type DailyGoal struct {
	ID          uuid.UUID `json:"id"`
	GoalID      uuid.UUID `json:"goal_id"`
	DayID       uuid.UUID `json:"day_id"`
	IsCompleted bool      `json:"is_completed"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Habit represents a recurring practice to track
type Habit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HabitLog joins a habit to a day (no independent lifecycle)
type HabitLog struct {
	ID          uuid.UUID  `json:"id"`
	HabitID     uuid.UUID  `json:"habit_id"`
	DayID       *uuid.UUID `json:"day_id,omitempty"`
	Date        time.Time  `json:"date"`
	IsCompleted bool       `json:"is_completed"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Day is the journal entry for one calendar day, unique per (user, date)
type Day struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Date        time.Time `json:"date"`
	IsCompleted bool      `json:"is_completed"`
	Mood        int       `json:"mood"`   // 1-5
	Energy      int       `json:"energy"` // 1-5
	SleepHours  float64   `json:"sleep_hours"`
	Gratitude   string    `json:"gratitude"`
	Reflection  string    `json:"reflection"`
	Highlights  string    `json:"highlights"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Note represents a note, optionally attached to a day, project or concept
type Note struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Type       string     `json:"type"`
	IsPinned   bool       `json:"is_pinned"`
	IsArchived bool       `json:"is_archived"`
	DayID      *uuid.UUID `json:"day_id,omitempty"`
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	ConceptID  *uuid.UUID `json:"concept_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Category is a nullable-FK classifier for projects, tasks, goals and notes
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag is attached to notes, projects, tasks and goals via join rows
type Tag struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// TagLink is one many-to-many join row. Kind names the owning side
// ("note", "project", "task", "goal"). Join rows have no lifecycle of
// their own and are only created/destroyed alongside the rows they join.
type TagLink struct {
	ID        uuid.UUID `json:"id"`
	TagID     uuid.UUID `json:"tag_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Join-row kinds for TagLink
const (
	TagKindNote    = "note"
	TagKindProject = "project"
	TagKindTask    = "task"
	TagKindGoal    = "goal"
)

// LearningTopic groups learning concepts
type LearningTopic struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`   // ACTIVE, ON_HOLD, COMPLETED
	Progress    int       `json:"progress"` // 0-100, derived from concepts
	ActualHours float64   `json:"actual_hours"`
	TargetHours float64   `json:"target_hours"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LearningConcept is one unit of knowledge inside a topic
type LearningConcept struct {
	ID                 uuid.UUID `json:"id"`
	TopicID            uuid.UUID `json:"topic_id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`              // NOT_STARTED, LEARNING, COMPLETED, MASTERED
	UnderstandingLevel int       `json:"understanding_level"` // 1-5
	TimeSpent          float64   `json:"time_spent"`          // hours
	Resources          []string  `json:"resources"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Road is an ordered milestone track toward a long-term outcome
type Road struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`   // ACTIVE, COMPLETED
	Progress    int        `json:"progress"` // 0-100, derived from milestones
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Milestone is one ordered step on a road
type Milestone struct {
	ID          uuid.UUID  `json:"id"`
	RoadID      uuid.UUID  `json:"road_id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	Order       int        `json:"order"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// APIResponse is the uniform envelope every remote operation answers with
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}
