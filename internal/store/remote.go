package store

import (
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// Remote is everything the stores and the cascade orchestrator need from
// the remote access layer. Each method is exactly one remote operation:
// send a typed command, receive a typed row or a typed error. The HTTP
// client implements this; tests substitute fakes.
type Remote interface {
	ProjectRemote
	TaskRemote
	GoalRemote
	HabitRemote
	DayRemote
	NoteRemote
	CategoryRemote
	TagRemote
	LearningRemote
	RoadRemote
}

type ProjectRemote interface {
	ListProjects(userID uuid.UUID) ([]models.Project, error)
	CreateProject(input models.ProjectInput) (models.Project, error)
	UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error)
	DeleteProject(id uuid.UUID) error
	// ClearProjectCategory nullifies category_id on every project
	// referencing the category.
	ClearProjectCategory(categoryID uuid.UUID) error
}

type TaskRemote interface {
	ListTasks(userID uuid.UUID) ([]models.Task, error)
	CreateTask(input models.TaskInput) (models.Task, error)
	UpdateTask(id uuid.UUID, patch map[string]interface{}) (models.Task, error)
	DeleteTask(id uuid.UUID) error
	// DeleteProjectTasks removes every task referencing the project.
	DeleteProjectTasks(projectID uuid.UUID) error
	ClearTaskCategory(categoryID uuid.UUID) error
}

type GoalRemote interface {
	ListGoals(userID uuid.UUID) ([]models.Goal, error)
	CreateGoal(input models.GoalInput) (models.Goal, error)
	UpdateGoal(id uuid.UUID, patch map[string]interface{}) (models.Goal, error)
	DeleteGoal(id uuid.UUID) error
	// DeleteGoalDailyGoals removes every daily-goal join row referencing
	// the goal.
	DeleteGoalDailyGoals(goalID uuid.UUID) error
	ClearGoalCategory(categoryID uuid.UUID) error

	ListDailyGoals(userID uuid.UUID) ([]models.DailyGoal, error)
	CreateDailyGoal(input models.DailyGoalInput) (models.DailyGoal, error)
	UpdateDailyGoal(id uuid.UUID, patch map[string]interface{}) (models.DailyGoal, error)
	DeleteDailyGoal(id uuid.UUID) error
}

type HabitRemote interface {
	ListHabits(userID uuid.UUID) ([]models.Habit, error)
	CreateHabit(input models.HabitInput) (models.Habit, error)
	UpdateHabit(id uuid.UUID, patch map[string]interface{}) (models.Habit, error)
	DeleteHabit(id uuid.UUID) error
	// DeleteHabitLogs removes every log referencing the habit.
	DeleteHabitLogs(habitID uuid.UUID) error

	ListHabitLogs(userID uuid.UUID) ([]models.HabitLog, error)
	CreateHabitLog(input models.HabitLogInput) (models.HabitLog, error)
	UpdateHabitLog(id uuid.UUID, patch map[string]interface{}) (models.HabitLog, error)
	DeleteHabitLog(id uuid.UUID) error
}

type DayRemote interface {
	ListDays(userID uuid.UUID) ([]models.Day, error)
	// GetDayByDate resolves the unique day row for a calendar date; the
	// caller normalizes the date to its day boundary first.
	GetDayByDate(userID uuid.UUID, date string) (models.Day, error)
	CreateDay(input models.DayInput) (models.Day, error)
	UpdateDay(id uuid.UUID, patch map[string]interface{}) (models.Day, error)
	DeleteDay(id uuid.UUID) error
}

type NoteRemote interface {
	ListNotes(userID uuid.UUID) ([]models.Note, error)
	CreateNote(input models.NoteInput) (models.Note, error)
	UpdateNote(id uuid.UUID, patch map[string]interface{}) (models.Note, error)
	DeleteNote(id uuid.UUID) error
	ClearNoteCategory(categoryID uuid.UUID) error
}

type CategoryRemote interface {
	ListCategories(userID uuid.UUID) ([]models.Category, error)
	CreateCategory(input models.CategoryInput) (models.Category, error)
	UpdateCategory(id uuid.UUID, patch map[string]interface{}) (models.Category, error)
	DeleteCategory(id uuid.UUID) error
}

type TagRemote interface {
	ListTags(userID uuid.UUID) ([]models.Tag, error)
	CreateTag(input models.TagInput) (models.Tag, error)
	DeleteTag(id uuid.UUID) error

	ListTagLinks(userID uuid.UUID) ([]models.TagLink, error)
	CreateTagLink(input models.TagLinkInput) (models.TagLink, error)
	DeleteTagLink(id uuid.UUID) error
	// DeleteTagLinks removes every join row referencing the tag across
	// all owning kinds.
	DeleteTagLinks(tagID uuid.UUID) error
}

type LearningRemote interface {
	ListTopics(userID uuid.UUID) ([]models.LearningTopic, error)
	CreateTopic(input models.TopicInput) (models.LearningTopic, error)
	UpdateTopic(id uuid.UUID, patch map[string]interface{}) (models.LearningTopic, error)
	DeleteTopic(id uuid.UUID) error

	ListConcepts(userID uuid.UUID) ([]models.LearningConcept, error)
	CreateConcept(input models.ConceptInput) (models.LearningConcept, error)
	UpdateConcept(id uuid.UUID, patch map[string]interface{}) (models.LearningConcept, error)
	DeleteConcept(id uuid.UUID) error
}

type RoadRemote interface {
	ListRoads(userID uuid.UUID) ([]models.Road, error)
	CreateRoad(input models.RoadInput) (models.Road, error)
	UpdateRoad(id uuid.UUID, patch map[string]interface{}) (models.Road, error)
	DeleteRoad(id uuid.UUID) error

	ListMilestones(userID uuid.UUID) ([]models.Milestone, error)
	CreateMilestone(input models.MilestoneInput) (models.Milestone, error)
	UpdateMilestone(id uuid.UUID, patch map[string]interface{}) (models.Milestone, error)
	DeleteMilestone(id uuid.UUID) error
}
