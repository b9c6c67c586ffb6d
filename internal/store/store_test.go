package store

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
	"github.com/kutbudev/lifedeck-cli/internal/models"
)

func newTestSession(t *testing.T) (*Session, *fakeRemote) {
	t.Helper()
	remote := newFakeRemote()
	sess := NewSession(remote, uuid.New())
	sess.Now = func() time.Time {
		return time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	}
	return sess, remote
}

func idp(id uuid.UUID) *uuid.UUID { return &id }

func TestFetchAllReplacesItems(t *testing.T) {
	sess, remote := newTestSession(t)

	remote.tasks = []models.Task{
		{ID: uuid.New(), Title: "one"},
		{ID: uuid.New(), Title: "two"},
	}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	if got := sess.Tasks.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}

	remote.tasks = []models.Task{{ID: uuid.New(), Title: "three"}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("second FetchTasks: %v", err)
	}
	items := sess.Tasks.Items()
	if len(items) != 1 || items[0].Title != "three" {
		t.Fatalf("refetch did not replace items: %+v", items)
	}
	if sess.Tasks.InitialLoading() {
		t.Fatal("initialLoading still set after fetch")
	}
}

func TestFetchAllFailureKeepsItemsAndReleasesFlag(t *testing.T) {
	sess, remote := newTestSession(t)

	remote.tasks = []models.Task{{ID: uuid.New(), Title: "kept"}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	remote.failOn["ListTasks"] = apierrors.Remote("server exploded")
	if err := sess.FetchTasks(); err == nil {
		t.Fatal("expected fetch error")
	}
	if got := sess.Tasks.Len(); got != 1 {
		t.Fatalf("failed fetch clobbered cache, Len = %d", got)
	}
	if sess.Tasks.InitialLoading() {
		t.Fatal("initialLoading leaked after failure")
	}
	if got := sess.Tasks.LastError(); !strings.Contains(got, "server exploded") {
		t.Fatalf("lastError = %q, want remote message", got)
	}
}

func TestCreatePrependsNewRow(t *testing.T) {
	sess, remote := newTestSession(t)

	remote.tasks = []models.Task{{ID: uuid.New(), Title: "old"}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	created, err := sess.CreateTask(models.TaskInput{Title: "new"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	items := sess.Tasks.Items()
	if len(items) != 2 || items[0].ID != created.ID {
		t.Fatalf("created row not prepended: %+v", items)
	}
	if sess.Tasks.Creating() {
		t.Fatal("creating flag leaked")
	}
}

func TestUpdateReplacesByValue(t *testing.T) {
	sess, remote := newTestSession(t)

	id := uuid.New()
	remote.tasks = []models.Task{{ID: id, Title: "before", Status: string(models.TaskStatusTODO)}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	sess.Tasks.Select(id)

	// A snapshot taken before the mutation must not observe it.
	stale := sess.Tasks.Items()

	updated, err := sess.UpdateTask(id, map[string]interface{}{"title": "after"})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "after" {
		t.Fatalf("returned row not updated: %+v", updated)
	}
	if stale[0].Title != "before" {
		t.Fatalf("stale snapshot mutated in place: %+v", stale[0])
	}
	fresh, _ := sess.Tasks.ByID(id)
	if fresh.Title != "after" {
		t.Fatalf("cache not updated: %+v", fresh)
	}
	sel, ok := sess.Tasks.Selected()
	if !ok || sel.Title != "after" {
		t.Fatalf("selection not refreshed: %+v ok=%v", sel, ok)
	}
}

func TestUpdateFailureReleasesFlagAndKeepsRow(t *testing.T) {
	sess, remote := newTestSession(t)

	id := uuid.New()
	remote.tasks = []models.Task{{ID: id, Title: "untouched"}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	remote.failOn["UpdateTask"] = apierrors.Remote("rejected")
	if _, err := sess.UpdateTask(id, map[string]interface{}{"title": "x"}); err == nil {
		t.Fatal("expected update error")
	}
	if got := sess.Tasks.State(id); got != OpIdle {
		t.Fatalf("State = %v after failure, want OpIdle", got)
	}
	row, _ := sess.Tasks.ByID(id)
	if row.Title != "untouched" {
		t.Fatalf("failed update changed the row: %+v", row)
	}
	if got := sess.Tasks.LastError(); !strings.Contains(got, "rejected") {
		t.Fatalf("lastError = %q", got)
	}
}

// Two in-flight updates on different ids each carry their own per-id
// flag; neither blocks or clobbers the other, and both ids end idle.
func TestConcurrentUpdatesIndependentPerID(t *testing.T) {
	sess, remote := newTestSession(t)

	a, b := uuid.New(), uuid.New()
	remote.tasks = []models.Task{
		{ID: a, Title: "a"},
		{ID: b, Title: "b"},
	}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	entered := make(chan uuid.UUID, 2)
	release := make(chan struct{})
	remote.taskUpdateBarrier = func(id uuid.UUID) {
		entered <- id
		<-release
	}

	var wg sync.WaitGroup
	for _, id := range []uuid.UUID{a, b} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := sess.UpdateTask(id, map[string]interface{}{"title": "done"}); err != nil {
				t.Errorf("UpdateTask(%s): %v", id, err)
			}
		}(id)
	}

	// Both calls must reach the remote together before either completes.
	seen := map[uuid.UUID]bool{}
	for i := 0; i < 2; i++ {
		select {
		case id := <-entered:
			seen[id] = true
		case <-time.After(2 * time.Second):
			t.Fatal("updates serialized: second call never reached the remote")
		}
	}
	if !seen[a] || !seen[b] {
		t.Fatalf("expected both ids in flight, got %v", seen)
	}
	if got := sess.Tasks.State(a); got != OpUpdating {
		t.Fatalf("State(a) = %v mid-flight, want OpUpdating", got)
	}
	if got := sess.Tasks.State(b); got != OpUpdating {
		t.Fatalf("State(b) = %v mid-flight, want OpUpdating", got)
	}

	close(release)
	wg.Wait()

	if got := sess.Tasks.State(a); got != OpIdle {
		t.Fatalf("State(a) = %v after completion, want OpIdle", got)
	}
	if got := sess.Tasks.State(b); got != OpIdle {
		t.Fatalf("State(b) = %v after completion, want OpIdle", got)
	}
	for _, id := range []uuid.UUID{a, b} {
		row, _ := sess.Tasks.ByID(id)
		if row.Title != "done" {
			t.Fatalf("row %s not updated: %+v", id, row)
		}
	}
}

func TestDeleteRemovesRowAndClearsSelection(t *testing.T) {
	sess, remote := newTestSession(t)

	id := uuid.New()
	remote.notes = []models.Note{{ID: id, Title: "gone soon"}}
	if err := sess.FetchNotes(); err != nil {
		t.Fatalf("FetchNotes: %v", err)
	}
	sess.Notes.Select(id)

	if err := sess.DeleteNote(id); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if got := sess.Notes.Len(); got != 0 {
		t.Fatalf("Len = %d after delete", got)
	}
	if _, ok := sess.Notes.Selected(); ok {
		t.Fatal("selection survived deletion of the selected row")
	}
	if got := sess.Notes.State(id); got != OpIdle {
		t.Fatalf("State = %v after delete, want OpIdle", got)
	}
}

func TestCascadeFailureKeepsParent(t *testing.T) {
	sess, remote := newTestSession(t)

	habit := uuid.New()
	remote.habits = []models.Habit{{ID: habit, Name: "stretch"}}
	remote.habitLogs = []models.HabitLog{{ID: uuid.New(), HabitID: habit}}
	if err := sess.FetchHabits(); err != nil {
		t.Fatalf("FetchHabits: %v", err)
	}
	if err := sess.FetchHabitLogs(); err != nil {
		t.Fatalf("FetchHabitLogs: %v", err)
	}

	remote.failOn["DeleteHabitLogs"] = apierrors.Remote("logs locked")
	err := sess.DeleteHabit(habit)
	if err == nil {
		t.Fatal("expected cascade failure")
	}
	if !strings.Contains(err.Error(), "cascade failed") {
		t.Fatalf("err = %v, want cascade-failed wrapping", err)
	}
	if _, ok := sess.Habits.ByID(habit); !ok {
		t.Fatal("parent removed despite cascade failure")
	}
	if got := sess.Habits.State(habit); got != OpIdle {
		t.Fatalf("State = %v after cascade failure, want OpIdle", got)
	}
	if got := sess.Habits.LastError(); !strings.Contains(got, "logs locked") {
		t.Fatalf("lastError = %q", got)
	}
}

func TestResetClearsAllState(t *testing.T) {
	sess, remote := newTestSession(t)

	remote.tasks = []models.Task{{ID: uuid.New(), Title: "t"}}
	remote.tags = []models.Tag{{ID: uuid.New(), Name: "x"}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}
	if err := sess.FetchTags(); err != nil {
		t.Fatalf("FetchTags: %v", err)
	}
	sess.Tasks.fail(apierrors.Remote("leftover"))

	sess.Reset()

	if sess.Tasks.Len() != 0 || sess.Tags.Len() != 0 {
		t.Fatal("Reset left cached rows behind")
	}
	if got := sess.Tasks.LastError(); got != "" {
		t.Fatalf("Reset left lastError = %q", got)
	}
	if _, ok := sess.Tasks.Selected(); ok {
		t.Fatal("Reset left a selection behind")
	}
}

func TestGetOrCreateDayUniquePerDate(t *testing.T) {
	sess, _ := newTestSession(t)

	morning := time.Date(2026, 8, 28, 7, 5, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 28, 23, 50, 0, 0, time.UTC)

	first, err := sess.GetOrCreateDay(morning)
	if err != nil {
		t.Fatalf("first GetOrCreateDay: %v", err)
	}
	second, err := sess.GetOrCreateDay(evening)
	if err != nil {
		t.Fatalf("second GetOrCreateDay: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same calendar date produced two rows: %s vs %s", first.ID, second.ID)
	}
	if got := sess.Days.Len(); got != 1 {
		t.Fatalf("Days.Len = %d, want 1", got)
	}
	if !first.Date.Equal(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day not normalized to the boundary: %v", first.Date)
	}
}

func TestCompleteTaskStampsStatusAndTime(t *testing.T) {
	sess, remote := newTestSession(t)

	id := uuid.New()
	remote.tasks = []models.Task{{ID: id, Title: "ship it", Status: string(models.TaskStatusTODO)}}
	if err := sess.FetchTasks(); err != nil {
		t.Fatalf("FetchTasks: %v", err)
	}

	done, err := sess.CompleteTask(id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if done.Status != string(models.TaskStatusCompleted) {
		t.Fatalf("Status = %q", done.Status)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(sess.Now()) {
		t.Fatalf("CompletedAt = %v, want session clock", done.CompletedAt)
	}
}
