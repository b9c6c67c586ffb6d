package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// Cascade rules run before a parent delete is confirmed to its store, so
// a failure partway surfaces as "cascade failed" with the parent row
// still present, never as a silently orphaned child. Each rule also
// patches the local mirrors of the dependent stores after the remote
// accepts, keeping the cache consistent with what the remote now holds.

// cascadeCategory nullifies category_id on every referencing project,
// task, goal and note. The four nullifications are order-independent and
// run in parallel; the category delete only proceeds once all four
// succeed.
func (s *Session) cascadeCategory(id uuid.UUID) error {
	clears := []func() error{
		func() error { return s.remote.ClearProjectCategory(id) },
		func() error { return s.remote.ClearTaskCategory(id) },
		func() error { return s.remote.ClearGoalCategory(id) },
		func() error { return s.remote.ClearNoteCategory(id) },
	}

	var wg sync.WaitGroup
	errs := make([]error, len(clears))
	for i, clear := range clears {
		wg.Add(1)
		go func(i int, clear func() error) {
			defer wg.Done()
			errs[i] = clear()
		}(i, clear)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	s.Projects.Patch(
		func(p models.Project) bool { return p.CategoryID != nil && *p.CategoryID == id },
		func(p models.Project) models.Project { p.CategoryID = nil; return p })
	s.Tasks.Patch(
		func(t models.Task) bool { return t.CategoryID != nil && *t.CategoryID == id },
		func(t models.Task) models.Task { t.CategoryID = nil; return t })
	s.Goals.Patch(
		func(g models.Goal) bool { return g.CategoryID != nil && *g.CategoryID == id },
		func(g models.Goal) models.Goal { g.CategoryID = nil; return g })
	s.Notes.Patch(
		func(n models.Note) bool { return n.CategoryID != nil && *n.CategoryID == id },
		func(n models.Note) models.Note { n.CategoryID = nil; return n })
	return nil
}

// cascadeTag deletes every join row referencing the tag across all
// owning kinds. The tagged entities themselves are untouched.
func (s *Session) cascadeTag(id uuid.UUID) error {
	if err := s.remote.DeleteTagLinks(id); err != nil {
		return err
	}
	s.TagLinks.RemoveWhere(func(l models.TagLink) bool { return l.TagID == id })
	return nil
}

// cascadeGoal deletes the goal's daily-goal rows, then its DIRECT child
// goals (each with their own daily-goal rows), before the goal itself.
//
// Only direct children are walked: a grandchild goal whose parent is
// itself a deleted child ends up orphaned. Known gap, kept on purpose
// until the behavior is redefined; goal_cascade tests pin it down.
func (s *Session) cascadeGoal(id uuid.UUID) error {
	if err := s.remote.DeleteGoalDailyGoals(id); err != nil {
		return err
	}
	s.DailyGoals.RemoveWhere(func(d models.DailyGoal) bool { return d.GoalID == id })

	children := s.Goals.Find(func(g models.Goal) bool {
		return g.ParentID != nil && *g.ParentID == id
	})
	for _, child := range children {
		if err := s.remote.DeleteGoalDailyGoals(child.ID); err != nil {
			return err
		}
		s.DailyGoals.RemoveWhere(func(d models.DailyGoal) bool { return d.GoalID == child.ID })

		if err := s.remote.DeleteGoal(child.ID); err != nil {
			return err
		}
		s.Goals.Remove(child.ID)
	}
	return nil
}

// cascadeHabit deletes every log referencing the habit.
func (s *Session) cascadeHabit(id uuid.UUID) error {
	if err := s.remote.DeleteHabitLogs(id); err != nil {
		return err
	}
	s.HabitLogs.RemoveWhere(func(l models.HabitLog) bool { return l.HabitID == id })
	return nil
}

// cascadeProject deletes every task referencing the project.
func (s *Session) cascadeProject(id uuid.UUID) error {
	if err := s.remote.DeleteProjectTasks(id); err != nil {
		return err
	}
	s.Tasks.RemoveWhere(func(t models.Task) bool {
		return t.ProjectID != nil && *t.ProjectID == id
	})
	return nil
}

// cascadeTask deletes the task's DIRECT subtasks. Same direct-children
// gap as cascadeGoal, kept on purpose and pinned by tests.
func (s *Session) cascadeTask(id uuid.UUID) error {
	children := s.Tasks.Find(func(t models.Task) bool {
		return t.ParentID != nil && *t.ParentID == id
	})
	for _, child := range children {
		if err := s.remote.DeleteTask(child.ID); err != nil {
			return err
		}
		s.Tasks.Remove(child.ID)
	}
	return nil
}
