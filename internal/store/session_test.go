package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// Flipping milestones drives the parent road through the full progress
// sequence, including the COMPLETED transition at 100 and the revert
// back to ACTIVE when a milestone is reopened.
func TestMilestoneCompletionDrivesRoadRollup(t *testing.T) {
	sess, _ := newTestSession(t)

	road, err := sess.CreateRoad(models.RoadInput{Title: "learn the cello"})
	if err != nil {
		t.Fatalf("CreateRoad: %v", err)
	}

	var milestones []models.Milestone
	for i := 0; i < 4; i++ {
		m, err := sess.CreateMilestone(models.MilestoneInput{RoadID: road.ID, Title: "step", Order: i})
		if err != nil {
			t.Fatalf("CreateMilestone: %v", err)
		}
		milestones = append(milestones, m)
	}

	want := []int{25, 50, 75, 100}
	for i, m := range milestones {
		if _, err := sess.SetMilestoneCompleted(m.ID, true); err != nil {
			t.Fatalf("SetMilestoneCompleted: %v", err)
		}
		r, ok := sess.Roads.ByID(road.ID)
		if !ok {
			t.Fatal("road dropped from cache")
		}
		if r.Progress != want[i] {
			t.Fatalf("after %d completions Progress = %d, want %d", i+1, r.Progress, want[i])
		}
	}

	r, _ := sess.Roads.ByID(road.ID)
	if r.Status != string(models.RoadStatusCompleted) {
		t.Fatalf("Status = %q at 100%%, want COMPLETED", r.Status)
	}
	if r.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped at 100%")
	}

	if _, err := sess.SetMilestoneCompleted(milestones[0].ID, false); err != nil {
		t.Fatalf("reopen milestone: %v", err)
	}
	r, _ = sess.Roads.ByID(road.ID)
	if r.Progress != 75 {
		t.Fatalf("Progress = %d after reopen, want 75", r.Progress)
	}
	if r.Status != string(models.RoadStatusActive) {
		t.Fatalf("Status = %q after reopen, want ACTIVE", r.Status)
	}
	if r.CompletedAt != nil {
		t.Fatalf("CompletedAt = %v after reopen, want nil", r.CompletedAt)
	}
}

func TestDeleteMilestoneRecalculatesRoad(t *testing.T) {
	sess, _ := newTestSession(t)

	road, err := sess.CreateRoad(models.RoadInput{Title: "marathon"})
	if err != nil {
		t.Fatalf("CreateRoad: %v", err)
	}
	var ids []uuid.UUID
	for i := 0; i < 2; i++ {
		m, err := sess.CreateMilestone(models.MilestoneInput{RoadID: road.ID, Title: "leg", Order: i})
		if err != nil {
			t.Fatalf("CreateMilestone: %v", err)
		}
		ids = append(ids, m.ID)
	}
	if _, err := sess.SetMilestoneCompleted(ids[0], true); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// Dropping the open milestone leaves one completed of one: 100%.
	if err := sess.DeleteMilestone(ids[1]); err != nil {
		t.Fatalf("DeleteMilestone: %v", err)
	}
	r, _ := sess.Roads.ByID(road.ID)
	if r.Progress != 100 || r.Status != string(models.RoadStatusCompleted) {
		t.Fatalf("after delete Progress = %d Status = %q", r.Progress, r.Status)
	}
}

func TestDeleteRoadDropsMilestoneMirror(t *testing.T) {
	sess, _ := newTestSession(t)

	road, err := sess.CreateRoad(models.RoadInput{Title: "doomed"})
	if err != nil {
		t.Fatalf("CreateRoad: %v", err)
	}
	other, err := sess.CreateRoad(models.RoadInput{Title: "kept"})
	if err != nil {
		t.Fatalf("CreateRoad: %v", err)
	}
	if _, err := sess.CreateMilestone(models.MilestoneInput{RoadID: road.ID, Title: "a"}); err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}
	kept, err := sess.CreateMilestone(models.MilestoneInput{RoadID: other.ID, Title: "b"})
	if err != nil {
		t.Fatalf("CreateMilestone: %v", err)
	}

	if err := sess.DeleteRoad(road.ID); err != nil {
		t.Fatalf("DeleteRoad: %v", err)
	}
	left := sess.Milestones.Items()
	if len(left) != 1 || left[0].ID != kept.ID {
		t.Fatalf("milestones after road delete: %+v", left)
	}
}

// Concept mutations roll up into the owning topic: progress counts
// COMPLETED and MASTERED concepts, hours sum across all of them.
func TestConceptUpdateRecalculatesTopic(t *testing.T) {
	sess, _ := newTestSession(t)

	topic, err := sess.CreateTopic(models.TopicInput{Name: "distributed systems"})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}

	var concepts []models.LearningConcept
	for _, name := range []string{"consensus", "clocks"} {
		c, err := sess.CreateConcept(models.ConceptInput{TopicID: topic.ID, Name: name})
		if err != nil {
			t.Fatalf("CreateConcept: %v", err)
		}
		concepts = append(concepts, c)
	}

	if _, err := sess.UpdateConcept(concepts[0].ID, map[string]interface{}{
		"status":     string(models.ConceptStatusCompleted),
		"time_spent": 4.5,
	}); err != nil {
		t.Fatalf("UpdateConcept: %v", err)
	}

	tp, _ := sess.Topics.ByID(topic.ID)
	if tp.Progress != 50 {
		t.Fatalf("Progress = %d, want 50", tp.Progress)
	}
	if tp.ActualHours != 4.5 {
		t.Fatalf("ActualHours = %v, want 4.5", tp.ActualHours)
	}

	if _, err := sess.UpdateConcept(concepts[1].ID, map[string]interface{}{
		"status":     string(models.ConceptStatusMastered),
		"time_spent": 2.0,
	}); err != nil {
		t.Fatalf("UpdateConcept: %v", err)
	}
	tp, _ = sess.Topics.ByID(topic.ID)
	if tp.Progress != 100 {
		t.Fatalf("Progress = %d, want 100", tp.Progress)
	}
	if tp.Status != string(models.TopicStatusCompleted) {
		t.Fatalf("Status = %q, want COMPLETED", tp.Status)
	}
	if tp.ActualHours != 6.5 {
		t.Fatalf("ActualHours = %v, want 6.5", tp.ActualHours)
	}
}

func TestDeleteConceptRecalculatesTopic(t *testing.T) {
	sess, _ := newTestSession(t)

	topic, err := sess.CreateTopic(models.TopicInput{Name: "compilers"})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	done, err := sess.CreateConcept(models.ConceptInput{TopicID: topic.ID, Name: "lexing"})
	if err != nil {
		t.Fatalf("CreateConcept: %v", err)
	}
	open, err := sess.CreateConcept(models.ConceptInput{TopicID: topic.ID, Name: "ssa"})
	if err != nil {
		t.Fatalf("CreateConcept: %v", err)
	}
	if _, err := sess.UpdateConcept(done.ID, map[string]interface{}{
		"status": string(models.ConceptStatusCompleted),
	}); err != nil {
		t.Fatalf("UpdateConcept: %v", err)
	}

	if err := sess.DeleteConcept(open.ID); err != nil {
		t.Fatalf("DeleteConcept: %v", err)
	}
	tp, _ := sess.Topics.ByID(topic.ID)
	if tp.Progress != 100 {
		t.Fatalf("Progress = %d after delete, want 100", tp.Progress)
	}
}

func TestDeleteTopicDropsConceptMirror(t *testing.T) {
	sess, _ := newTestSession(t)

	topic, err := sess.CreateTopic(models.TopicInput{Name: "doomed"})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	other, err := sess.CreateTopic(models.TopicInput{Name: "kept"})
	if err != nil {
		t.Fatalf("CreateTopic: %v", err)
	}
	if _, err := sess.CreateConcept(models.ConceptInput{TopicID: topic.ID, Name: "a"}); err != nil {
		t.Fatalf("CreateConcept: %v", err)
	}
	kept, err := sess.CreateConcept(models.ConceptInput{TopicID: other.ID, Name: "b"})
	if err != nil {
		t.Fatalf("CreateConcept: %v", err)
	}

	if err := sess.DeleteTopic(topic.ID); err != nil {
		t.Fatalf("DeleteTopic: %v", err)
	}
	left := sess.Concepts.Items()
	if len(left) != 1 || left[0].ID != kept.ID {
		t.Fatalf("concepts after topic delete: %+v", left)
	}
}

func TestSetProjectProgressManualMode(t *testing.T) {
	sess, _ := newTestSession(t)

	p, err := sess.CreateProject(models.ProjectInput{Name: "garden"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	updated, err := sess.SetProjectProgress(p.ID, 140)
	if err != nil {
		t.Fatalf("SetProjectProgress: %v", err)
	}
	if updated.Progress != 100 {
		t.Fatalf("Progress = %d, want clamp to 100", updated.Progress)
	}
	if updated.Status != string(models.ProjectStatusCompleted) {
		t.Fatalf("Status = %q, want COMPLETED", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped at 100")
	}
}

func TestSyncProjectProgressFromTasks(t *testing.T) {
	sess, remote := newTestSession(t)

	project := uuid.New()
	remote.projects = []models.Project{{ID: project, Name: "site", Status: string(models.ProjectStatusActive)}}
	remote.tasks = []models.Task{
		{ID: uuid.New(), ProjectID: idp(project), Status: string(models.TaskStatusCompleted)},
		{ID: uuid.New(), ProjectID: idp(project), Status: string(models.TaskStatusTODO)},
		{ID: uuid.New(), ProjectID: idp(project), Status: string(models.TaskStatusTODO)},
		{ID: uuid.New(), Status: string(models.TaskStatusCompleted)}, // other project's task
	}
	if err := sess.FetchProjects(); err != nil {
		t.Fatalf("FetchProjects: %v", err)
	}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	updated, err := sess.SyncProjectProgress(project)
	if err != nil {
		t.Fatalf("SyncProjectProgress: %v", err)
	}
	if updated.Progress != 33 {
		t.Fatalf("Progress = %d, want 33", updated.Progress)
	}
	if updated.Status != string(models.ProjectStatusActive) {
		t.Fatalf("derived mode changed status: %q", updated.Status)
	}
}

func TestHabitAndDayStreaksFromSession(t *testing.T) {
	sess, remote := newTestSession(t)

	habit := uuid.New()
	now := sess.Now()
	remote.habits = []models.Habit{{ID: habit, Name: "read"}}
	remote.habitLogs = []models.HabitLog{
		{ID: uuid.New(), HabitID: habit, Date: now, IsCompleted: true},
		{ID: uuid.New(), HabitID: habit, Date: now.AddDate(0, 0, -1), IsCompleted: true},
		{ID: uuid.New(), HabitID: habit, Date: now.AddDate(0, 0, -3), IsCompleted: true},
	}
	remote.days = []models.Day{
		{ID: uuid.New(), Date: now.AddDate(0, 0, -1), IsCompleted: true},
		{ID: uuid.New(), Date: now, IsCompleted: true},
		{ID: uuid.New(), Date: now.AddDate(0, 0, -2), IsCompleted: false},
	}
	if err := sess.FetchHabits(); err != nil {
		t.Fatalf("FetchHabits: %v", err)
	}
	if err := sess.FetchHabitLogs(); err != nil {
		t.Fatalf("FetchHabitLogs: %v", err)
	}
	if err := sess.FetchDays(); err != nil {
		t.Fatalf("FetchDays: %v", err)
	}

	if got := sess.HabitStreak(habit); got != 2 {
		t.Fatalf("HabitStreak = %d, want 2", got)
	}
	if got := sess.DayStreak(); got != 2 {
		t.Fatalf("DayStreak = %d, want 2", got)
	}
}
