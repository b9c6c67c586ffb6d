package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// fakeRemote is an in-memory stand-in for the remote store. Failures are
// injected per operation name; barriers let concurrency tests hold a call
// in flight.
type fakeRemote struct {
	mu sync.Mutex

	projects   []models.Project
	tasks      []models.Task
	goals      []models.Goal
	dailyGoals []models.DailyGoal
	habits     []models.Habit
	habitLogs  []models.HabitLog
	days       []models.Day
	notes      []models.Note
	categories []models.Category
	tags       []models.Tag
	tagLinks   []models.TagLink
	topics     []models.LearningTopic
	concepts   []models.LearningConcept
	roads      []models.Road
	milestones []models.Milestone

	failOn map[string]error

	// taskUpdateBarrier, when set, is invoked inside UpdateTask while the
	// call is in flight.
	taskUpdateBarrier func(id uuid.UUID)
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{failOn: make(map[string]error)}
}

func (f *fakeRemote) failFor(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failOn[op]
}

func stamp() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

// ---- projects ----

func (f *fakeRemote) ListProjects(uuid.UUID) ([]models.Project, error) {
	if err := f.failFor("ListProjects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project(nil), f.projects...), nil
}

func (f *fakeRemote) CreateProject(input models.ProjectInput) (models.Project, error) {
	if err := f.failFor("CreateProject"); err != nil {
		return models.Project{}, err
	}
	p := models.Project{
		ID:         uuid.New(),
		Name:       input.Name,
		Status:     string(models.ProjectStatusActive),
		Priority:   input.Priority,
		CategoryID: input.CategoryID,
		ParentID:   input.ParentID,
		CreatedAt:  stamp(),
		UpdatedAt:  stamp(),
	}
	f.mu.Lock()
	f.projects = append(f.projects, p)
	f.mu.Unlock()
	return p, nil
}

func (f *fakeRemote) UpdateProject(id uuid.UUID, patch map[string]interface{}) (models.Project, error) {
	if err := f.failFor("UpdateProject"); err != nil {
		return models.Project{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			if v, ok := patch["progress"].(int); ok {
				f.projects[i].Progress = v
			}
			if v, ok := patch["status"].(string); ok {
				f.projects[i].Status = v
			}
			if v, ok := patch["name"].(string); ok {
				f.projects[i].Name = v
			}
			if v, ok := patch["completed_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339, v); err == nil {
					f.projects[i].CompletedAt = &t
				}
			}
			f.projects[i].UpdatedAt = stamp()
			return f.projects[i], nil
		}
	}
	return models.Project{}, apierrors.NotFound("project not found")
}

func (f *fakeRemote) DeleteProject(id uuid.UUID) error {
	if err := f.failFor("DeleteProject"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("project not found")
}

func (f *fakeRemote) ClearProjectCategory(categoryID uuid.UUID) error {
	if err := f.failFor("ClearProjectCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].CategoryID != nil && *f.projects[i].CategoryID == categoryID {
			f.projects[i].CategoryID = nil
		}
	}
	return nil
}

// ---- tasks ----

func (f *fakeRemote) ListTasks(uuid.UUID) ([]models.Task, error) {
	if err := f.failFor("ListTasks"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task(nil), f.tasks...), nil
}

func (f *fakeRemote) CreateTask(input models.TaskInput) (models.Task, error) {
	if err := f.failFor("CreateTask"); err != nil {
		return models.Task{}, err
	}
	t := models.Task{
		ID:         uuid.New(),
		Title:      input.Title,
		Status:     string(models.TaskStatusTODO),
		Priority:   input.Priority,
		ProjectID:  input.ProjectID,
		DayID:      input.DayID,
		CategoryID: input.CategoryID,
		ParentID:   input.ParentID,
		DueDate:    input.DueDate,
		CreatedAt:  stamp(),
		UpdatedAt:  stamp(),
	}
	f.mu.Lock()
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()
	return t, nil
}

func (f *fakeRemote) UpdateTask(id uuid.UUID, patch map[string]interface{}) (models.Task, error) {
	if err := f.failFor("UpdateTask"); err != nil {
		return models.Task{}, err
	}
	if f.taskUpdateBarrier != nil {
		f.taskUpdateBarrier(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			if v, ok := patch["status"].(string); ok {
				f.tasks[i].Status = v
			}
			if v, ok := patch["title"].(string); ok {
				f.tasks[i].Title = v
			}
			if v, ok := patch["completed_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339, v); err == nil {
					f.tasks[i].CompletedAt = &t
				}
			}
			f.tasks[i].UpdatedAt = stamp()
			return f.tasks[i], nil
		}
	}
	return models.Task{}, apierrors.NotFound("task not found")
}

func (f *fakeRemote) DeleteTask(id uuid.UUID) error {
	if err := f.failFor("DeleteTask"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("task not found")
}

func (f *fakeRemote) DeleteProjectTasks(projectID uuid.UUID) error {
	if err := f.failFor("DeleteProjectTasks"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ProjectID == nil || *t.ProjectID != projectID {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

func (f *fakeRemote) ClearTaskCategory(categoryID uuid.UUID) error {
	if err := f.failFor("ClearTaskCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].CategoryID != nil && *f.tasks[i].CategoryID == categoryID {
			f.tasks[i].CategoryID = nil
		}
	}
	return nil
}

// ---- goals ----

func (f *fakeRemote) ListGoals(uuid.UUID) ([]models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Goal(nil), f.goals...), nil
}

func (f *fakeRemote) CreateGoal(input models.GoalInput) (models.Goal, error) {
	g := models.Goal{
		ID:        uuid.New(),
		Title:     input.Title,
		Type:      input.Type,
		Status:    string(models.GoalStatusActive),
		Priority:  input.Priority,
		ParentID:  input.ParentID,
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.goals = append(f.goals, g)
	f.mu.Unlock()
	return g, nil
}

func (f *fakeRemote) UpdateGoal(id uuid.UUID, patch map[string]interface{}) (models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == id {
			if v, ok := patch["status"].(string); ok {
				f.goals[i].Status = v
			}
			if v, ok := patch["current_value"].(float64); ok {
				f.goals[i].CurrentValue = v
			}
			f.goals[i].UpdatedAt = stamp()
			return f.goals[i], nil
		}
	}
	return models.Goal{}, apierrors.NotFound("goal not found")
}

func (f *fakeRemote) DeleteGoal(id uuid.UUID) error {
	if err := f.failFor("DeleteGoal"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("goal not found")
}

func (f *fakeRemote) DeleteGoalDailyGoals(goalID uuid.UUID) error {
	if err := f.failFor("DeleteGoalDailyGoals"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.dailyGoals[:0]
	for _, d := range f.dailyGoals {
		if d.GoalID != goalID {
			kept = append(kept, d)
		}
	}
	f.dailyGoals = kept
	return nil
}

func (f *fakeRemote) ClearGoalCategory(categoryID uuid.UUID) error {
	if err := f.failFor("ClearGoalCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].CategoryID != nil && *f.goals[i].CategoryID == categoryID {
			f.goals[i].CategoryID = nil
		}
	}
	return nil
}

func (f *fakeRemote) ListDailyGoals(uuid.UUID) ([]models.DailyGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.DailyGoal(nil), f.dailyGoals...), nil
}

func (f *fakeRemote) CreateDailyGoal(input models.DailyGoalInput) (models.DailyGoal, error) {
	d := models.DailyGoal{
		ID:        uuid.New(),
		GoalID:    input.GoalID,
		DayID:     input.DayID,
		Note:      input.Note,
		CreatedAt: stamp(),
	}
	f.mu.Lock()
	f.dailyGoals = append(f.dailyGoals, d)
	f.mu.Unlock()
	return d, nil
}

func (f *fakeRemote) UpdateDailyGoal(id uuid.UUID, patch map[string]interface{}) (models.DailyGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.dailyGoals {
		if f.dailyGoals[i].ID == id {
			if v, ok := patch["is_completed"].(bool); ok {
				f.dailyGoals[i].IsCompleted = v
			}
			return f.dailyGoals[i], nil
		}
	}
	return models.DailyGoal{}, apierrors.NotFound("daily goal not found")
}

func (f *fakeRemote) DeleteDailyGoal(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.dailyGoals {
		if f.dailyGoals[i].ID == id {
			f.dailyGoals = append(f.dailyGoals[:i], f.dailyGoals[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("daily goal not found")
}

// ---- habits ----

func (f *fakeRemote) ListHabits(uuid.UUID) ([]models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Habit(nil), f.habits...), nil
}

func (f *fakeRemote) CreateHabit(input models.HabitInput) (models.Habit, error) {
	h := models.Habit{
		ID:        uuid.New(),
		Name:      input.Name,
		Category:  input.Category,
		IsActive:  true,
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.habits = append(f.habits, h)
	f.mu.Unlock()
	return h, nil
}

func (f *fakeRemote) UpdateHabit(id uuid.UUID, patch map[string]interface{}) (models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.habits {
		if f.habits[i].ID == id {
			if v, ok := patch["is_active"].(bool); ok {
				f.habits[i].IsActive = v
			}
			return f.habits[i], nil
		}
	}
	return models.Habit{}, apierrors.NotFound("habit not found")
}

func (f *fakeRemote) DeleteHabit(id uuid.UUID) error {
	if err := f.failFor("DeleteHabit"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.habits {
		if f.habits[i].ID == id {
			f.habits = append(f.habits[:i], f.habits[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("habit not found")
}

func (f *fakeRemote) DeleteHabitLogs(habitID uuid.UUID) error {
	if err := f.failFor("DeleteHabitLogs"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.habitLogs[:0]
	for _, l := range f.habitLogs {
		if l.HabitID != habitID {
			kept = append(kept, l)
		}
	}
	f.habitLogs = kept
	return nil
}

func (f *fakeRemote) ListHabitLogs(uuid.UUID) ([]models.HabitLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HabitLog(nil), f.habitLogs...), nil
}

func (f *fakeRemote) CreateHabitLog(input models.HabitLogInput) (models.HabitLog, error) {
	l := models.HabitLog{
		ID:          uuid.New(),
		HabitID:     input.HabitID,
		DayID:       input.DayID,
		Date:        input.Date,
		IsCompleted: input.IsCompleted,
		Note:        input.Note,
		CreatedAt:   stamp(),
	}
	f.mu.Lock()
	f.habitLogs = append(f.habitLogs, l)
	f.mu.Unlock()
	return l, nil
}

func (f *fakeRemote) UpdateHabitLog(id uuid.UUID, patch map[string]interface{}) (models.HabitLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.habitLogs {
		if f.habitLogs[i].ID == id {
			if v, ok := patch["is_completed"].(bool); ok {
				f.habitLogs[i].IsCompleted = v
			}
			return f.habitLogs[i], nil
		}
	}
	return models.HabitLog{}, apierrors.NotFound("habit log not found")
}

func (f *fakeRemote) DeleteHabitLog(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.habitLogs {
		if f.habitLogs[i].ID == id {
			f.habitLogs = append(f.habitLogs[:i], f.habitLogs[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("habit log not found")
}

// ---- days ----

func (f *fakeRemote) ListDays(uuid.UUID) ([]models.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Day(nil), f.days...), nil
}

func (f *fakeRemote) GetDayByDate(_ uuid.UUID, date string) (models.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.days {
		if d.Date.Format("2006-01-02") == date {
			return d, nil
		}
	}
	return models.Day{}, apierrors.NotFound("day not found")
}

func (f *fakeRemote) CreateDay(input models.DayInput) (models.Day, error) {
	d := models.Day{
		ID:        uuid.New(),
		Date:      input.Date,
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.days = append(f.days, d)
	f.mu.Unlock()
	return d, nil
}

func (f *fakeRemote) UpdateDay(id uuid.UUID, patch map[string]interface{}) (models.Day, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.days {
		if f.days[i].ID == id {
			if v, ok := patch["is_completed"].(bool); ok {
				f.days[i].IsCompleted = v
			}
			if v, ok := patch["reflection"].(string); ok {
				f.days[i].Reflection = v
			}
			return f.days[i], nil
		}
	}
	return models.Day{}, apierrors.NotFound("day not found")
}

func (f *fakeRemote) DeleteDay(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.days {
		if f.days[i].ID == id {
			f.days = append(f.days[:i], f.days[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("day not found")
}

// ---- notes ----

func (f *fakeRemote) ListNotes(uuid.UUID) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Note(nil), f.notes...), nil
}

func (f *fakeRemote) CreateNote(input models.NoteInput) (models.Note, error) {
	n := models.Note{
		ID:         uuid.New(),
		Title:      input.Title,
		Content:    input.Content,
		Type:       input.Type,
		DayID:      input.DayID,
		ProjectID:  input.ProjectID,
		CategoryID: input.CategoryID,
		ConceptID:  input.ConceptID,
		CreatedAt:  stamp(),
		UpdatedAt:  stamp(),
	}
	f.mu.Lock()
	f.notes = append(f.notes, n)
	f.mu.Unlock()
	return n, nil
}

func (f *fakeRemote) UpdateNote(id uuid.UUID, patch map[string]interface{}) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			if v, ok := patch["content"].(string); ok {
				f.notes[i].Content = v
			}
			if v, ok := patch["is_pinned"].(bool); ok {
				f.notes[i].IsPinned = v
			}
			return f.notes[i], nil
		}
	}
	return models.Note{}, apierrors.NotFound("note not found")
}

func (f *fakeRemote) DeleteNote(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("note not found")
}

func (f *fakeRemote) ClearNoteCategory(categoryID uuid.UUID) error {
	if err := f.failFor("ClearNoteCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].CategoryID != nil && *f.notes[i].CategoryID == categoryID {
			f.notes[i].CategoryID = nil
		}
	}
	return nil
}

// ---- categories ----

func (f *fakeRemote) ListCategories(uuid.UUID) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeRemote) CreateCategory(input models.CategoryInput) (models.Category, error) {
	c := models.Category{
		ID:        uuid.New(),
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.categories = append(f.categories, c)
	f.mu.Unlock()
	return c, nil
}

func (f *fakeRemote) UpdateCategory(id uuid.UUID, patch map[string]interface{}) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].ID == id {
			if v, ok := patch["name"].(string); ok {
				f.categories[i].Name = v
			}
			return f.categories[i], nil
		}
	}
	return models.Category{}, apierrors.NotFound("category not found")
}

func (f *fakeRemote) DeleteCategory(id uuid.UUID) error {
	if err := f.failFor("DeleteCategory"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("category not found")
}

// ---- tags ----

func (f *fakeRemote) ListTags(uuid.UUID) ([]models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Tag(nil), f.tags...), nil
}

func (f *fakeRemote) CreateTag(input models.TagInput) (models.Tag, error) {
	t := models.Tag{ID: uuid.New(), Name: input.Name, Color: input.Color, CreatedAt: stamp()}
	f.mu.Lock()
	f.tags = append(f.tags, t)
	f.mu.Unlock()
	return t, nil
}

func (f *fakeRemote) DeleteTag(id uuid.UUID) error {
	if err := f.failFor("DeleteTag"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tags {
		if f.tags[i].ID == id {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("tag not found")
}

func (f *fakeRemote) ListTagLinks(uuid.UUID) ([]models.TagLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.TagLink(nil), f.tagLinks...), nil
}

func (f *fakeRemote) CreateTagLink(input models.TagLinkInput) (models.TagLink, error) {
	l := models.TagLink{
		ID:        uuid.New(),
		TagID:     input.TagID,
		OwnerID:   input.OwnerID,
		Kind:      input.Kind,
		CreatedAt: stamp(),
	}
	f.mu.Lock()
	f.tagLinks = append(f.tagLinks, l)
	f.mu.Unlock()
	return l, nil
}

func (f *fakeRemote) DeleteTagLink(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tagLinks {
		if f.tagLinks[i].ID == id {
			f.tagLinks = append(f.tagLinks[:i], f.tagLinks[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("tag link not found")
}

func (f *fakeRemote) DeleteTagLinks(tagID uuid.UUID) error {
	if err := f.failFor("DeleteTagLinks"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tagLinks[:0]
	for _, l := range f.tagLinks {
		if l.TagID != tagID {
			kept = append(kept, l)
		}
	}
	f.tagLinks = kept
	return nil
}

// ---- learning ----

func (f *fakeRemote) ListTopics(uuid.UUID) ([]models.LearningTopic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LearningTopic(nil), f.topics...), nil
}

func (f *fakeRemote) CreateTopic(input models.TopicInput) (models.LearningTopic, error) {
	t := models.LearningTopic{
		ID:          uuid.New(),
		Name:        input.Name,
		Status:      string(models.TopicStatusActive),
		TargetHours: input.TargetHours,
		CreatedAt:   stamp(),
		UpdatedAt:   stamp(),
	}
	f.mu.Lock()
	f.topics = append(f.topics, t)
	f.mu.Unlock()
	return t, nil
}

func (f *fakeRemote) UpdateTopic(id uuid.UUID, patch map[string]interface{}) (models.LearningTopic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.topics {
		if f.topics[i].ID == id {
			if v, ok := patch["progress"].(int); ok {
				f.topics[i].Progress = v
			}
			if v, ok := patch["actual_hours"].(float64); ok {
				f.topics[i].ActualHours = v
			}
			if v, ok := patch["status"].(string); ok {
				f.topics[i].Status = v
			}
			return f.topics[i], nil
		}
	}
	return models.LearningTopic{}, apierrors.NotFound("topic not found")
}

func (f *fakeRemote) DeleteTopic(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.topics {
		if f.topics[i].ID == id {
			f.topics = append(f.topics[:i], f.topics[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("topic not found")
}

func (f *fakeRemote) ListConcepts(uuid.UUID) ([]models.LearningConcept, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LearningConcept(nil), f.concepts...), nil
}

func (f *fakeRemote) CreateConcept(input models.ConceptInput) (models.LearningConcept, error) {
	c := models.LearningConcept{
		ID:        uuid.New(),
		TopicID:   input.TopicID,
		Name:      input.Name,
		Status:    string(models.ConceptStatusNotStarted),
		Resources: input.Resources,
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.concepts = append(f.concepts, c)
	f.mu.Unlock()
	return c, nil
}

func (f *fakeRemote) UpdateConcept(id uuid.UUID, patch map[string]interface{}) (models.LearningConcept, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.concepts {
		if f.concepts[i].ID == id {
			if v, ok := patch["status"].(string); ok {
				f.concepts[i].Status = v
			}
			if v, ok := patch["time_spent"].(float64); ok {
				f.concepts[i].TimeSpent = v
			}
			if v, ok := patch["understanding_level"].(int); ok {
				f.concepts[i].UnderstandingLevel = v
			}
			return f.concepts[i], nil
		}
	}
	return models.LearningConcept{}, apierrors.NotFound("concept not found")
}

func (f *fakeRemote) DeleteConcept(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.concepts {
		if f.concepts[i].ID == id {
			f.concepts = append(f.concepts[:i], f.concepts[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("concept not found")
}

// ---- roads ----

func (f *fakeRemote) ListRoads(uuid.UUID) ([]models.Road, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Road(nil), f.roads...), nil
}

func (f *fakeRemote) CreateRoad(input models.RoadInput) (models.Road, error) {
	r := models.Road{
		ID:        uuid.New(),
		Title:     input.Title,
		Status:    string(models.RoadStatusActive),
		CreatedAt: stamp(),
		UpdatedAt: stamp(),
	}
	f.mu.Lock()
	f.roads = append(f.roads, r)
	f.mu.Unlock()
	return r, nil
}

func (f *fakeRemote) UpdateRoad(id uuid.UUID, patch map[string]interface{}) (models.Road, error) {
	if err := f.failFor("UpdateRoad"); err != nil {
		return models.Road{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.roads {
		if f.roads[i].ID == id {
			if v, ok := patch["progress"].(int); ok {
				f.roads[i].Progress = v
			}
			if v, ok := patch["status"].(string); ok {
				f.roads[i].Status = v
			}
			if v, present := patch["completed_at"]; present {
				if s, ok := v.(string); ok {
					if t, err := time.Parse(time.RFC3339, s); err == nil {
						f.roads[i].CompletedAt = &t
					}
				} else {
					f.roads[i].CompletedAt = nil
				}
			}
			f.roads[i].UpdatedAt = stamp()
			return f.roads[i], nil
		}
	}
	return models.Road{}, apierrors.NotFound("road not found")
}

func (f *fakeRemote) DeleteRoad(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.roads {
		if f.roads[i].ID == id {
			f.roads = append(f.roads[:i], f.roads[i+1:]...)
			kept := f.milestones[:0]
			for _, m := range f.milestones {
				if m.RoadID != id {
					kept = append(kept, m)
				}
			}
			f.milestones = kept
			return nil
		}
	}
	return apierrors.NotFound("road not found")
}

func (f *fakeRemote) ListMilestones(uuid.UUID) ([]models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Milestone(nil), f.milestones...), nil
}

func (f *fakeRemote) CreateMilestone(input models.MilestoneInput) (models.Milestone, error) {
	m := models.Milestone{
		ID:        uuid.New(),
		RoadID:    input.RoadID,
		Title:     input.Title,
		Order:     input.Order,
		CreatedAt: stamp(),
	}
	f.mu.Lock()
	f.milestones = append(f.milestones, m)
	f.mu.Unlock()
	return m, nil
}

func (f *fakeRemote) UpdateMilestone(id uuid.UUID, patch map[string]interface{}) (models.Milestone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.milestones {
		if f.milestones[i].ID == id {
			if v, ok := patch["is_completed"].(bool); ok {
				f.milestones[i].IsCompleted = v
			}
			if v, present := patch["completed_at"]; present {
				if s, ok := v.(string); ok {
					if t, err := time.Parse(time.RFC3339, s); err == nil {
						f.milestones[i].CompletedAt = &t
					}
				} else {
					f.milestones[i].CompletedAt = nil
				}
			}
			return f.milestones[i], nil
		}
	}
	return models.Milestone{}, apierrors.NotFound("milestone not found")
}

func (f *fakeRemote) DeleteMilestone(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.milestones {
		if f.milestones[i].ID == id {
			f.milestones = append(f.milestones[:i], f.milestones[i+1:]...)
			return nil
		}
	}
	return apierrors.NotFound("milestone not found")
}

// interface guard
var _ Remote = (*fakeRemote)(nil)
