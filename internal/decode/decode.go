// Package decode maps raw remote rows into typed records.
//
// Decoders are pure: date-like fields normalize as parse-or-null, optional
// collections default to empty, and a malformed row fails with a decode
// error for that row only so list callers can drop-and-warn.
package decode

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// Row is one raw remote row as unmarshalled JSON.
type Row map[string]interface{}

// Accepted layouts for date-like fields, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r Row) str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func (r Row) boolean(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

func (r Row) num(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func (r Row) integer(key string) int {
	return int(r.num(key))
}

// id reads a required uuid field; a missing or malformed value fails the row.
func (r Row) id(key string) (uuid.UUID, error) {
	s, ok := r[key].(string)
	if !ok || s == "" {
		return uuid.Nil, fmt.Errorf("missing %q", key)
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("bad uuid in %q: %w", key, err)
	}
	return parsed, nil
}

// idPtr reads an optional uuid field; absent and null map to nil.
func (r Row) idPtr(key string) (*uuid.UUID, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("bad uuid in %q: %w", key, err)
	}
	return &parsed, nil
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// date reads a required date-like field; absent or unparseable normalizes
// to the zero time rather than failing the row.
func (r Row) date(key string) time.Time {
	if s, ok := r[key].(string); ok {
		if t, ok := parseTime(s); ok {
			return t
		}
	}
	return time.Time{}
}

// datePtr reads an optional date-like field with parse-or-null semantics.
func (r Row) datePtr(key string) *time.Time {
	s, ok := r[key].(string)
	if !ok {
		return nil
	}
	t, ok := parseTime(s)
	if !ok {
		return nil
	}
	return &t
}

// strs reads an optional string collection, defaulting to empty.
func (r Row) strs(key string) []string {
	out := []string{}
	items, ok := r[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Project decodes one raw project row.
func Project(r Row) (models.Project, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Project{}, apierrors.Decode("project", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Project{}, apierrors.Decode("project", err)
	}
	parentID, err := r.idPtr("parent_id")
	if err != nil {
		return models.Project{}, apierrors.Decode("project", err)
	}
	categoryID, err := r.idPtr("category_id")
	if err != nil {
		return models.Project{}, apierrors.Decode("project", err)
	}
	return models.Project{
		ID:          id,
		UserID:      userID,
		Name:        r.str("name"),
		Description: r.str("description"),
		Status:      r.str("status"),
		Priority:    r.str("priority"),
		Progress:    r.integer("progress"),
		ParentID:    parentID,
		CategoryID:  categoryID,
		StartDate:   r.datePtr("start_date"),
		EndDate:     r.datePtr("end_date"),
		CompletedAt: r.datePtr("completed_at"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// Task decodes one raw task row.
func Task(r Row) (models.Task, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	projectID, err := r.idPtr("project_id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	dayID, err := r.idPtr("day_id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	categoryID, err := r.idPtr("category_id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	parentID, err := r.idPtr("parent_id")
	if err != nil {
		return models.Task{}, apierrors.Decode("task", err)
	}
	return models.Task{
		ID:          id,
		UserID:      userID,
		Title:       r.str("title"),
		Description: r.str("description"),
		Status:      r.str("status"),
		Priority:    r.str("priority"),
		ProjectID:   projectID,
		DayID:       dayID,
		CategoryID:  categoryID,
		ParentID:    parentID,
		DueDate:     r.datePtr("due_date"),
		CompletedAt: r.datePtr("completed_at"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// Goal decodes one raw goal row.
func Goal(r Row) (models.Goal, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Goal{}, apierrors.Decode("goal", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Goal{}, apierrors.Decode("goal", err)
	}
	parentID, err := r.idPtr("parent_id")
	if err != nil {
		return models.Goal{}, apierrors.Decode("goal", err)
	}
	categoryID, err := r.idPtr("category_id")
	if err != nil {
		return models.Goal{}, apierrors.Decode("goal", err)
	}
	return models.Goal{
		ID:             id,
		UserID:         userID,
		Title:          r.str("title"),
		Description:    r.str("description"),
		Type:           r.str("type"),
		Status:         r.str("status"),
		Priority:       r.str("priority"),
		IsQuantifiable: r.boolean("is_quantifiable"),
		CurrentValue:   r.num("current_value"),
		TargetValue:    r.num("target_value"),
		Unit:           r.str("unit"),
		ParentID:       parentID,
		CategoryID:     categoryID,
		DueDate:        r.datePtr("due_date"),
		CompletedAt:    r.datePtr("completed_at"),
		CreatedAt:      r.date("created_at"),
		UpdatedAt:      r.date("updated_at"),
	}, nil
}

// DailyGoal decodes one raw daily-goal join row.
func DailyGoal(r Row) (models.DailyGoal, error) {
	id, err := r.id("id")
	if err != nil {
		return models.DailyGoal{}, apierrors.Decode("daily goal", err)
	}
	goalID, err := r.id("goal_id")
	if err != nil {
		return models.DailyGoal{}, apierrors.Decode("daily goal", err)
	}
	dayID, err := r.id("day_id")
	if err != nil {
		return models.DailyGoal{}, apierrors.Decode("daily goal", err)
	}
	return models.DailyGoal{
		ID:          id,
		GoalID:      goalID,
		DayID:       dayID,
		IsCompleted: r.boolean("is_completed"),
		Note:        r.str("note"),
		CreatedAt:   r.date("created_at"),
	}, nil
}

// Habit decodes one raw habit row.
func Habit(r Row) (models.Habit, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Habit{}, apierrors.Decode("habit", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Habit{}, apierrors.Decode("habit", err)
	}
	return models.Habit{
		ID:          id,
		UserID:      userID,
		Name:        r.str("name"),
		Description: r.str("description"),
		Category:    r.str("category"),
		IsActive:    r.boolean("is_active"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// HabitLog decodes one raw habit-log join row.
func HabitLog(r Row) (models.HabitLog, error) {
	id, err := r.id("id")
	if err != nil {
		return models.HabitLog{}, apierrors.Decode("habit log", err)
	}
	habitID, err := r.id("habit_id")
	if err != nil {
		return models.HabitLog{}, apierrors.Decode("habit log", err)
	}
	dayID, err := r.idPtr("day_id")
	if err != nil {
		return models.HabitLog{}, apierrors.Decode("habit log", err)
	}
	return models.HabitLog{
		ID:          id,
		HabitID:     habitID,
		DayID:       dayID,
		Date:        r.date("date"),
		IsCompleted: r.boolean("is_completed"),
		Note:        r.str("note"),
		CreatedAt:   r.date("created_at"),
	}, nil
}

// Day decodes one raw day row.
func Day(r Row) (models.Day, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Day{}, apierrors.Decode("day", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Day{}, apierrors.Decode("day", err)
	}
	return models.Day{
		ID:          id,
		UserID:      userID,
		Date:        r.date("date"),
		IsCompleted: r.boolean("is_completed"),
		Mood:        r.integer("mood"),
		Energy:      r.integer("energy"),
		SleepHours:  r.num("sleep_hours"),
		Gratitude:   r.str("gratitude"),
		Reflection:  r.str("reflection"),
		Highlights:  r.str("highlights"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// Note decodes one raw note row.
func Note(r Row) (models.Note, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	dayID, err := r.idPtr("day_id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	projectID, err := r.idPtr("project_id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	categoryID, err := r.idPtr("category_id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	conceptID, err := r.idPtr("concept_id")
	if err != nil {
		return models.Note{}, apierrors.Decode("note", err)
	}
	return models.Note{
		ID:         id,
		UserID:     userID,
		Title:      r.str("title"),
		Content:    r.str("content"),
		Type:       r.str("type"),
		IsPinned:   r.boolean("is_pinned"),
		IsArchived: r.boolean("is_archived"),
		DayID:      dayID,
		ProjectID:  projectID,
		CategoryID: categoryID,
		ConceptID:  conceptID,
		CreatedAt:  r.date("created_at"),
		UpdatedAt:  r.date("updated_at"),
	}, nil
}

// Category decodes one raw category row.
func Category(r Row) (models.Category, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Category{}, apierrors.Decode("category", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Category{}, apierrors.Decode("category", err)
	}
	return models.Category{
		ID:        id,
		UserID:    userID,
		Name:      r.str("name"),
		Color:     r.str("color"),
		CreatedAt: r.date("created_at"),
		UpdatedAt: r.date("updated_at"),
	}, nil
}

// Tag decodes one raw tag row.
func Tag(r Row) (models.Tag, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Tag{}, apierrors.Decode("tag", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Tag{}, apierrors.Decode("tag", err)
	}
	return models.Tag{
		ID:        id,
		UserID:    userID,
		Name:      r.str("name"),
		Color:     r.str("color"),
		CreatedAt: r.date("created_at"),
	}, nil
}

// TagLink decodes one raw tag join row.
func TagLink(r Row) (models.TagLink, error) {
	id, err := r.id("id")
	if err != nil {
		return models.TagLink{}, apierrors.Decode("tag link", err)
	}
	tagID, err := r.id("tag_id")
	if err != nil {
		return models.TagLink{}, apierrors.Decode("tag link", err)
	}
	ownerID, err := r.id("owner_id")
	if err != nil {
		return models.TagLink{}, apierrors.Decode("tag link", err)
	}
	return models.TagLink{
		ID:        id,
		TagID:     tagID,
		OwnerID:   ownerID,
		Kind:      r.str("kind"),
		CreatedAt: r.date("created_at"),
	}, nil
}

// Topic decodes one raw learning-topic row.
func Topic(r Row) (models.LearningTopic, error) {
	id, err := r.id("id")
	if err != nil {
		return models.LearningTopic{}, apierrors.Decode("learning topic", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.LearningTopic{}, apierrors.Decode("learning topic", err)
	}
	return models.LearningTopic{
		ID:          id,
		UserID:      userID,
		Name:        r.str("name"),
		Description: r.str("description"),
		Status:      r.str("status"),
		Progress:    r.integer("progress"),
		ActualHours: r.num("actual_hours"),
		TargetHours: r.num("target_hours"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// Concept decodes one raw learning-concept row.
func Concept(r Row) (models.LearningConcept, error) {
	id, err := r.id("id")
	if err != nil {
		return models.LearningConcept{}, apierrors.Decode("learning concept", err)
	}
	topicID, err := r.id("topic_id")
	if err != nil {
		return models.LearningConcept{}, apierrors.Decode("learning concept", err)
	}
	return models.LearningConcept{
		ID:                 id,
		TopicID:            topicID,
		Name:               r.str("name"),
		Status:             r.str("status"),
		UnderstandingLevel: r.integer("understanding_level"),
		TimeSpent:          r.num("time_spent"),
		Resources:          r.strs("resources"),
		CreatedAt:          r.date("created_at"),
		UpdatedAt:          r.date("updated_at"),
	}, nil
}

// Road decodes one raw road row.
func Road(r Row) (models.Road, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Road{}, apierrors.Decode("road", err)
	}
	userID, err := r.id("user_id")
	if err != nil {
		return models.Road{}, apierrors.Decode("road", err)
	}
	return models.Road{
		ID:          id,
		UserID:      userID,
		Title:       r.str("title"),
		Description: r.str("description"),
		Status:      r.str("status"),
		Progress:    r.integer("progress"),
		CompletedAt: r.datePtr("completed_at"),
		CreatedAt:   r.date("created_at"),
		UpdatedAt:   r.date("updated_at"),
	}, nil
}

// Milestone decodes one raw milestone row.
func Milestone(r Row) (models.Milestone, error) {
	id, err := r.id("id")
	if err != nil {
		return models.Milestone{}, apierrors.Decode("milestone", err)
	}
	roadID, err := r.id("road_id")
	if err != nil {
		return models.Milestone{}, apierrors.Decode("milestone", err)
	}
	return models.Milestone{
		ID:          id,
		RoadID:      roadID,
		Title:       r.str("title"),
		IsCompleted: r.boolean("is_completed"),
		Order:       r.integer("order"),
		CompletedAt: r.datePtr("completed_at"),
		CreatedAt:   r.date("created_at"),
	}, nil
}
