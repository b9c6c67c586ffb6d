package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/progress"
)

// Session owns one store per entity family for a signed-in user. It is
// constructed at sign-in, passed by reference to whatever consumes it,
// and Reset on sign-out. There is no process-wide instance.
type Session struct {
	remote Remote
	userID uuid.UUID

	// Now is the session clock; tests substitute a fixed one.
	Now func() time.Time

	Projects   *Store[models.Project]
	Tasks      *Store[models.Task]
	Goals      *Store[models.Goal]
	DailyGoals *Store[models.DailyGoal]
	Habits     *Store[models.Habit]
	HabitLogs  *Store[models.HabitLog]
	Days       *Store[models.Day]
	Notes      *Store[models.Note]
	Categories *Store[models.Category]
	Tags       *Store[models.Tag]
	TagLinks   *Store[models.TagLink]
	Topics     *Store[models.LearningTopic]
	Concepts   *Store[models.LearningConcept]
	Roads      *Store[models.Road]
	Milestones *Store[models.Milestone]
}

// NewSession builds the store set for one signed-in user.
func NewSession(remote Remote, userID uuid.UUID) *Session {
	return &Session{
		remote:     remote,
		userID:     userID,
		Now:        time.Now,
		Projects:   New[models.Project]("project"),
		Tasks:      New[models.Task]("task"),
		Goals:      New[models.Goal]("goal"),
		DailyGoals: New[models.DailyGoal]("daily goal"),
		Habits:     New[models.Habit]("habit"),
		HabitLogs:  New[models.HabitLog]("habit log"),
		Days:       New[models.Day]("day"),
		Notes:      New[models.Note]("note"),
		Categories: New[models.Category]("category"),
		Tags:       New[models.Tag]("tag"),
		TagLinks:   New[models.TagLink]("tag link"),
		Topics:     New[models.LearningTopic]("learning topic"),
		Concepts:   New[models.LearningConcept]("learning concept"),
		Roads:      New[models.Road]("road"),
		Milestones: New[models.Milestone]("milestone"),
	}
}

// UserID returns the signed-in user id.
func (s *Session) UserID() uuid.UUID { return s.userID }

// Reset empties every store; called on sign-out.
func (s *Session) Reset() {
	s.Projects.Reset()
	s.Tasks.Reset()
	s.Goals.Reset()
	s.DailyGoals.Reset()
	s.Habits.Reset()
	s.HabitLogs.Reset()
	s.Days.Reset()
	s.Notes.Reset()
	s.Categories.Reset()
	s.Tags.Reset()
	s.TagLinks.Reset()
	s.Topics.Reset()
	s.Concepts.Reset()
	s.Roads.Reset()
	s.Milestones.Reset()
}

// ---- Projects ----

func (s *Session) FetchProjects() error {
	return s.Projects.FetchAll(func() ([]models.Project, error) {
		return s.remote.ListProjects(s.userID)
	})
}

func (s *Session) CreateProject(input models.ProjectInput) (models.Project, error) {
	return s.Projects.Create(func() (models.Project, error) {
		return s.remote.CreateProject(input)
	})
}

func (s *Session) UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error) {
	return s.Projects.Update(id, func() (models.Project, error) {
		return s.remote.UpdateProject(id, patch)
	})
}

func (s *Session) DeleteProject(id uuid.UUID) error {
	return s.Projects.Delete(id,
		func() error { return s.cascadeProject(id) },
		func() error { return s.remote.DeleteProject(id) })
}

// SetProjectProgress applies a hand-entered progress value. The manual
// mode owns status/completedAt stamping at 100; it never mixes with the
// task-derived mode below.
func (s *Session) SetProjectProgress(id uuid.UUID, value int) (models.Project, error) {
	p, ok := s.Projects.ByID(id)
	if !ok {
		p = models.Project{ID: id, Status: string(models.ProjectStatusActive)}
	}
	progress.SetManualProgress(&p, value, s.Now())

	patch := map[string]interface{}{
		"progress": p.Progress,
		"status":   p.Status,
	}
	if p.CompletedAt != nil {
		patch["completed_at"] = p.CompletedAt.Format(time.RFC3339)
	}
	return s.UpdateProject(id, patch)
}

// SyncProjectProgress recomputes a project's progress from its cached
// tasks (the task-derived mode). It touches only the percentage, leaving
// status to the manual flow.
func (s *Session) SyncProjectProgress(id uuid.UUID) (models.Project, error) {
	tasks := s.TasksByProject(id)
	value := progress.TaskDerivedProgress(tasks)
	return s.UpdateProject(id, map[string]interface{}{"progress": value})
}

// TasksByProject is a pure filter over the task cache.
func (s *Session) TasksByProject(projectID uuid.UUID) []models.Task {
	return s.Tasks.Find(func(t models.Task) bool {
		return t.ProjectID != nil && *t.ProjectID == projectID
	})
}

// ---- Tasks ----

func (s *Session) FetchTasks() error {
	return s.Tasks.FetchAll(func() ([]models.Task, error) {
		return s.remote.ListTasks(s.userID)
	})
}

func (s *Session) CreateTask(input models.TaskInput) (models.Task, error) {
	return s.Tasks.Create(func() (models.Task, error) {
		return s.remote.CreateTask(input)
	})
}

func (s *Session) UpdateTask(id uuid.UUID, patch map[string]interface{}) (models.Task, error) {
	return s.Tasks.Update(id, func() (models.Task, error) {
		return s.remote.UpdateTask(id, patch)
	})
}

func (s *Session) CompleteTask(id uuid.UUID) (models.Task, error) {
	return s.UpdateTask(id, map[string]interface{}{
		"status":       string(models.TaskStatusCompleted),
		"completed_at": s.Now().Format(time.RFC3339),
	})
}

func (s *Session) DeleteTask(id uuid.UUID) error {
	return s.Tasks.Delete(id,
		func() error { return s.cascadeTask(id) },
		func() error { return s.remote.DeleteTask(id) })
}

// ---- Goals ----

func (s *Session) FetchGoals() error {
	return s.Goals.FetchAll(func() ([]models.Goal, error) {
		return s.remote.ListGoals(s.userID)
	})
}

func (s *Session) FetchDailyGoals() error {
	return s.DailyGoals.FetchAll(func() ([]models.DailyGoal, error) {
		return s.remote.ListDailyGoals(s.userID)
	})
}

func (s *Session) CreateGoal(input models.GoalInput) (models.Goal, error) {
	return s.Goals.Create(func() (models.Goal, error) {
		return s.remote.CreateGoal(input)
	})
}

func (s *Session) UpdateGoal(id uuid.UUID, patch map[string]interface{}) (models.Goal, error) {
	return s.Goals.Update(id, func() (models.Goal, error) {
		return s.remote.UpdateGoal(id, patch)
	})
}

func (s *Session) DeleteGoal(id uuid.UUID) error {
	return s.Goals.Delete(id,
		func() error { return s.cascadeGoal(id) },
		func() error { return s.remote.DeleteGoal(id) })
}

func (s *Session) CreateDailyGoal(input models.DailyGoalInput) (models.DailyGoal, error) {
	return s.DailyGoals.Create(func() (models.DailyGoal, error) {
		return s.remote.CreateDailyGoal(input)
	})
}

func (s *Session) UpdateDailyGoal(id uuid.UUID, patch map[string]interface{}) (models.DailyGoal, error) {
	return s.DailyGoals.Update(id, func() (models.DailyGoal, error) {
		return s.remote.UpdateDailyGoal(id, patch)
	})
}

func (s *Session) DeleteDailyGoal(id uuid.UUID) error {
	return s.DailyGoals.Delete(id, nil,
		func() error { return s.remote.DeleteDailyGoal(id) })
}

// ---- Habits ----

func (s *Session) FetchHabits() error {
	return s.Habits.FetchAll(func() ([]models.Habit, error) {
		return s.remote.ListHabits(s.userID)
	})
}

func (s *Session) FetchHabitLogs() error {
	return s.HabitLogs.FetchAll(func() ([]models.HabitLog, error) {
		return s.remote.ListHabitLogs(s.userID)
	})
}

func (s *Session) CreateHabit(input models.HabitInput) (models.Habit, error) {
	return s.Habits.Create(func() (models.Habit, error) {
		return s.remote.CreateHabit(input)
	})
}

func (s *Session) UpdateHabit(id uuid.UUID, patch map[string]interface{}) (models.Habit, error) {
	return s.Habits.Update(id, func() (models.Habit, error) {
		return s.remote.UpdateHabit(id, patch)
	})
}

func (s *Session) DeleteHabit(id uuid.UUID) error {
	return s.Habits.Delete(id,
		func() error { return s.cascadeHabit(id) },
		func() error { return s.remote.DeleteHabit(id) })
}

func (s *Session) CreateHabitLog(input models.HabitLogInput) (models.HabitLog, error) {
	return s.HabitLogs.Create(func() (models.HabitLog, error) {
		return s.remote.CreateHabitLog(input)
	})
}

func (s *Session) DeleteHabitLog(id uuid.UUID) error {
	return s.HabitLogs.Delete(id, nil,
		func() error { return s.remote.DeleteHabitLog(id) })
}

// HabitStreak recomputes the streak for one habit from the full cached
// log set.
func (s *Session) HabitStreak(habitID uuid.UUID) int {
	return progress.HabitStreak(s.HabitLogs.Items(), habitID, s.Now())
}

// ---- Days ----

func (s *Session) FetchDays() error {
	return s.Days.FetchAll(func() ([]models.Day, error) {
		return s.remote.ListDays(s.userID)
	})
}

// GetOrCreateDay resolves the unique day row for a calendar date,
// creating it remotely on first touch. Lookups normalize to the day
// boundary first, so any timestamp within the day resolves to the same
// row.
func (s *Session) GetOrCreateDay(date time.Time) (models.Day, error) {
	dayStart := progress.DayStart(date)
	key := dayStart.Format("2006-01-02")

	day, err := s.remote.GetDayByDate(s.userID, key)
	if err == nil {
		s.upsertDay(day)
		return day, nil
	}
	if !apierrors.IsNotFound(err) {
		return models.Day{}, err
	}

	return s.Days.Create(func() (models.Day, error) {
		return s.remote.CreateDay(models.DayInput{Date: dayStart})
	})
}

func (s *Session) upsertDay(day models.Day) {
	if _, ok := s.Days.ByID(day.ID); ok {
		s.Days.ReplaceItem(day)
		return
	}
	s.Days.prepend(day)
}

func (s *Session) UpdateDay(id uuid.UUID, patch map[string]interface{}) (models.Day, error) {
	return s.Days.Update(id, func() (models.Day, error) {
		return s.remote.UpdateDay(id, patch)
	})
}

func (s *Session) CompleteDay(id uuid.UUID) (models.Day, error) {
	return s.UpdateDay(id, map[string]interface{}{"is_completed": true})
}

func (s *Session) DeleteDay(id uuid.UUID) error {
	return s.Days.Delete(id, nil,
		func() error { return s.remote.DeleteDay(id) })
}

// DayStreak counts the leading chain of completed days.
func (s *Session) DayStreak() int {
	return progress.DayChainStreak(s.Days.Items())
}

// ---- Notes ----

func (s *Session) FetchNotes() error {
	return s.Notes.FetchAll(func() ([]models.Note, error) {
		return s.remote.ListNotes(s.userID)
	})
}

func (s *Session) CreateNote(input models.NoteInput) (models.Note, error) {
	return s.Notes.Create(func() (models.Note, error) {
		return s.remote.CreateNote(input)
	})
}

func (s *Session) UpdateNote(id uuid.UUID, patch map[string]interface{}) (models.Note, error) {
	return s.Notes.Update(id, func() (models.Note, error) {
		return s.remote.UpdateNote(id, patch)
	})
}

func (s *Session) DeleteNote(id uuid.UUID) error {
	return s.Notes.Delete(id, nil,
		func() error { return s.remote.DeleteNote(id) })
}

// ---- Categories ----

func (s *Session) FetchCategories() error {
	return s.Categories.FetchAll(func() ([]models.Category, error) {
		return s.remote.ListCategories(s.userID)
	})
}

func (s *Session) CreateCategory(input models.CategoryInput) (models.Category, error) {
	return s.Categories.Create(func() (models.Category, error) {
		return s.remote.CreateCategory(input)
	})
}

func (s *Session) UpdateCategory(id uuid.UUID, patch map[string]interface{}) (models.Category, error) {
	return s.Categories.Update(id, func() (models.Category, error) {
		return s.remote.UpdateCategory(id, patch)
	})
}

func (s *Session) DeleteCategory(id uuid.UUID) error {
	return s.Categories.Delete(id,
		func() error { return s.cascadeCategory(id) },
		func() error { return s.remote.DeleteCategory(id) })
}

// ---- Tags ----

func (s *Session) FetchTags() error {
	return s.Tags.FetchAll(func() ([]models.Tag, error) {
		return s.remote.ListTags(s.userID)
	})
}

func (s *Session) FetchTagLinks() error {
	return s.TagLinks.FetchAll(func() ([]models.TagLink, error) {
		return s.remote.ListTagLinks(s.userID)
	})
}

func (s *Session) CreateTag(input models.TagInput) (models.Tag, error) {
	return s.Tags.Create(func() (models.Tag, error) {
		return s.remote.CreateTag(input)
	})
}

// AttachTag creates the join row linking a tag to an owning entity.
func (s *Session) AttachTag(input models.TagLinkInput) (models.TagLink, error) {
	return s.TagLinks.Create(func() (models.TagLink, error) {
		return s.remote.CreateTagLink(input)
	})
}

// DetachTag removes one join row; the tag and the owner both survive.
func (s *Session) DetachTag(linkID uuid.UUID) error {
	return s.TagLinks.Delete(linkID, nil,
		func() error { return s.remote.DeleteTagLink(linkID) })
}

func (s *Session) DeleteTag(id uuid.UUID) error {
	return s.Tags.Delete(id,
		func() error { return s.cascadeTag(id) },
		func() error { return s.remote.DeleteTag(id) })
}

// ---- Learning ----

func (s *Session) FetchTopics() error {
	return s.Topics.FetchAll(func() ([]models.LearningTopic, error) {
		return s.remote.ListTopics(s.userID)
	})
}

func (s *Session) FetchConcepts() error {
	return s.Concepts.FetchAll(func() ([]models.LearningConcept, error) {
		return s.remote.ListConcepts(s.userID)
	})
}

func (s *Session) CreateTopic(input models.TopicInput) (models.LearningTopic, error) {
	return s.Topics.Create(func() (models.LearningTopic, error) {
		return s.remote.CreateTopic(input)
	})
}

func (s *Session) UpdateTopic(id uuid.UUID, patch map[string]interface{}) (models.LearningTopic, error) {
	return s.Topics.Update(id, func() (models.LearningTopic, error) {
		return s.remote.UpdateTopic(id, patch)
	})
}

// DeleteTopic removes the topic; the remote store owns dependent concept
// cleanup, the cache just drops its mirror of them.
func (s *Session) DeleteTopic(id uuid.UUID) error {
	err := s.Topics.Delete(id, nil,
		func() error { return s.remote.DeleteTopic(id) })
	if err != nil {
		return err
	}
	s.Concepts.RemoveWhere(func(c models.LearningConcept) bool { return c.TopicID == id })
	return nil
}

func (s *Session) CreateConcept(input models.ConceptInput) (models.LearningConcept, error) {
	concept, err := s.Concepts.Create(func() (models.LearningConcept, error) {
		return s.remote.CreateConcept(input)
	})
	if err != nil {
		return concept, err
	}
	s.recalcTopic(concept.TopicID)
	return concept, nil
}

func (s *Session) UpdateConcept(id uuid.UUID, patch map[string]interface{}) (models.LearningConcept, error) {
	concept, err := s.Concepts.Update(id, func() (models.LearningConcept, error) {
		return s.remote.UpdateConcept(id, patch)
	})
	if err != nil {
		return concept, err
	}
	s.recalcTopic(concept.TopicID)
	return concept, nil
}

func (s *Session) DeleteConcept(id uuid.UUID) error {
	concept, _ := s.Concepts.ByID(id)
	err := s.Concepts.Delete(id, nil,
		func() error { return s.remote.DeleteConcept(id) })
	if err != nil {
		return err
	}
	if concept.TopicID != uuid.Nil {
		s.recalcTopic(concept.TopicID)
	}
	return nil
}

// recalcTopic recomputes a topic's rollup from the full cached concept
// set and persists the derived fields.
func (s *Session) recalcTopic(topicID uuid.UUID) {
	topic, ok := s.Topics.ByID(topicID)
	if !ok {
		return
	}
	concepts := s.Concepts.Find(func(c models.LearningConcept) bool {
		return c.TopicID == topicID
	})
	progress.RecalcTopic(&topic, concepts)

	updated, err := s.remote.UpdateTopic(topicID, map[string]interface{}{
		"progress":     topic.Progress,
		"actual_hours": topic.ActualHours,
		"status":       topic.Status,
	})
	if err != nil {
		s.Topics.fail(err)
		return
	}
	s.Topics.ReplaceItem(updated)
}

// ---- Roads ----

func (s *Session) FetchRoads() error {
	return s.Roads.FetchAll(func() ([]models.Road, error) {
		return s.remote.ListRoads(s.userID)
	})
}

func (s *Session) FetchMilestones() error {
	return s.Milestones.FetchAll(func() ([]models.Milestone, error) {
		return s.remote.ListMilestones(s.userID)
	})
}

func (s *Session) CreateRoad(input models.RoadInput) (models.Road, error) {
	return s.Roads.Create(func() (models.Road, error) {
		return s.remote.CreateRoad(input)
	})
}

func (s *Session) UpdateRoad(id uuid.UUID, patch map[string]interface{}) (models.Road, error) {
	return s.Roads.Update(id, func() (models.Road, error) {
		return s.remote.UpdateRoad(id, patch)
	})
}

// DeleteRoad removes the road; dependent milestone cleanup is enforced by
// the remote store, the cache just drops its mirror of them.
func (s *Session) DeleteRoad(id uuid.UUID) error {
	err := s.Roads.Delete(id, nil,
		func() error { return s.remote.DeleteRoad(id) })
	if err != nil {
		return err
	}
	s.Milestones.RemoveWhere(func(m models.Milestone) bool { return m.RoadID == id })
	return nil
}

func (s *Session) CreateMilestone(input models.MilestoneInput) (models.Milestone, error) {
	m, err := s.Milestones.Create(func() (models.Milestone, error) {
		return s.remote.CreateMilestone(input)
	})
	if err != nil {
		return m, err
	}
	s.recalcRoad(m.RoadID)
	return m, nil
}

// SetMilestoneCompleted flips one milestone and recomputes the parent
// road's rollup, including the COMPLETED/ACTIVE transition both ways.
func (s *Session) SetMilestoneCompleted(id uuid.UUID, completed bool) (models.Milestone, error) {
	patch := map[string]interface{}{"is_completed": completed}
	if completed {
		patch["completed_at"] = s.Now().Format(time.RFC3339)
	} else {
		patch["completed_at"] = nil
	}

	m, err := s.Milestones.Update(id, func() (models.Milestone, error) {
		return s.remote.UpdateMilestone(id, patch)
	})
	if err != nil {
		return m, err
	}
	s.recalcRoad(m.RoadID)
	return m, nil
}

// DeleteMilestone removes one milestone and recomputes the parent road.
func (s *Session) DeleteMilestone(id uuid.UUID) error {
	m, _ := s.Milestones.ByID(id)
	err := s.Milestones.Delete(id, nil,
		func() error { return s.remote.DeleteMilestone(id) })
	if err != nil {
		return err
	}
	if m.RoadID != uuid.Nil {
		s.recalcRoad(m.RoadID)
	}
	return nil
}

// recalcRoad recomputes a road's rollup from the full cached milestone
// set and persists the derived fields.
func (s *Session) recalcRoad(roadID uuid.UUID) {
	road, ok := s.Roads.ByID(roadID)
	if !ok {
		return
	}
	milestones := s.Milestones.Find(func(m models.Milestone) bool {
		return m.RoadID == roadID
	})
	progress.RecalcRoad(&road, milestones, s.Now())

	patch := map[string]interface{}{
		"progress": road.Progress,
		"status":   road.Status,
	}
	if road.CompletedAt != nil {
		patch["completed_at"] = road.CompletedAt.Format(time.RFC3339)
	} else {
		patch["completed_at"] = nil
	}

	updated, err := s.remote.UpdateRoad(roadID, patch)
	if err != nil {
		s.Roads.fail(err)
		return
	}
	s.Roads.ReplaceItem(updated)
}
