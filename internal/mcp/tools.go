package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kutbudev/lifedeck-cli/internal/models"
	"github.com/kutbudev/lifedeck-cli/internal/progress"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition is the entry returned by ToolDefinitions for 'lifedeck mcp tools'.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToolDefinitions lists the tools the server exposes.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{"today", "Show today's day entry: checklist, habits, mood and energy"},
		{"log_habit", "Mark a habit done (or missed) for a date"},
		{"create_task", "Create a task, optionally inside a project"},
		{"complete_task", "Mark a task COMPLETED"},
		{"day_streak", "Current consecutive completed-day streak"},
		{"create_note", "Save a note, optionally attached to today"},
	}
}

func boolPtr(b bool) *bool { return &b }

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "today",
		Description: `🔴 ESSENTIAL | Today's day entry with its daily-goal checklist and habit status.

Call this before answering anything about the user's day or plans.`,
		Annotations: &mcp.ToolAnnotations{
			Title:         "Today",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleToday)

	mcp.AddTool(server, &mcp.Tool{
		Name: "log_habit",
		Description: `🔴 ESSENTIAL | Log a habit for today.

REQUIRED: habit (name, case-insensitive)
OPTIONAL: note, missed (bool - record a miss instead of a completion)

Only log habits the user confirmed doing. Returns the habit's new streak.`,
		Annotations: &mcp.ToolAnnotations{
			Title:           "Log Habit",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleLogHabit)

	mcp.AddTool(server, &mcp.Tool{
		Name: "create_task",
		Description: `🔴 ESSENTIAL | Create a task.

REQUIRED: title
OPTIONAL: description, priority (L/M/H), project (name or ID)

Example: create_task(title: "Renew passport", priority: "H")`,
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Task",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name: "complete_task",
		Description: `🟡 COMMON | Mark a task COMPLETED. Project progress recalculates when the project tracks its tasks.

REQUIRED: taskId (UUID or unique prefix)`,
		Annotations: &mcp.ToolAnnotations{
			Title:          "Complete Task",
			IdempotentHint: true,
			OpenWorldHint:  boolPtr(false),
		},
	}, handleCompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "day_streak",
		Description: `🟡 COMMON | Consecutive completed days ending today or yesterday.`,
		Annotations: &mcp.ToolAnnotations{
			Title:         "Day Streak",
			ReadOnlyHint:  true,
			OpenWorldHint: boolPtr(false),
		},
	}, handleDayStreak)

	mcp.AddTool(server, &mcp.Tool{
		Name: "create_note",
		Description: `🟡 COMMON | Save a note.

REQUIRED: title, content
OPTIONAL: type (GENERAL|IDEA|MEETING|JOURNAL), today (bool - attach to today's entry)`,
		Annotations: &mcp.ToolAnnotations{
			Title:           "Create Note",
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleCreateNote)
}

// --- today ---

type TodayInput struct{}

func handleToday(ctx context.Context, req *mcp.CallToolRequest, input TodayInput) (*mcp.CallToolResult, interface{}, error) {
	day, err := session.GetOrCreateDay(session.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := session.FetchGoals(); err != nil {
		return nil, nil, err
	}
	if err := session.FetchDailyGoals(); err != nil {
		return nil, nil, err
	}
	if err := session.FetchHabits(); err != nil {
		return nil, nil, err
	}
	if err := session.FetchHabitLogs(); err != nil {
		return nil, nil, err
	}

	checklist := []map[string]interface{}{}
	for _, dg := range session.DailyGoals.Find(func(dg models.DailyGoal) bool {
		return dg.DayID == day.ID
	}) {
		title := ""
		if goal, found := session.Goals.ByID(dg.GoalID); found {
			title = goal.Title
		}
		checklist = append(checklist, map[string]interface{}{
			"id":           dg.ID.String(),
			"title":        title,
			"is_completed": dg.IsCompleted,
		})
	}

	habits := []map[string]interface{}{}
	for _, h := range session.Habits.Items() {
		if !h.IsActive {
			continue
		}
		done := len(session.HabitLogs.Find(func(l models.HabitLog) bool {
			return l.HabitID == h.ID && l.IsCompleted && progress.SameDay(l.Date, day.Date)
		})) > 0
		habits = append(habits, map[string]interface{}{
			"id":     h.ID.String(),
			"name":   h.Name,
			"done":   done,
			"streak": session.HabitStreak(h.ID),
		})
	}

	return textResult(map[string]interface{}{
		"date":         day.Date.Format("2006-01-02"),
		"is_completed": day.IsCompleted,
		"mood":         day.Mood,
		"energy":       day.Energy,
		"sleep_hours":  day.SleepHours,
		"gratitude":    day.Gratitude,
		"checklist":    checklist,
		"habits":       habits,
	}), nil, nil
}

// --- log_habit ---

type LogHabitInput struct {
	Habit  string `json:"habit"`
	Note   string `json:"note,omitempty"`
	Missed bool   `json:"missed,omitempty"`
}

func handleLogHabit(ctx context.Context, req *mcp.CallToolRequest, input LogHabitInput) (*mcp.CallToolResult, interface{}, error) {
	name := strings.TrimSpace(input.Habit)
	if name == "" {
		return nil, nil, errors.New("'habit' parameter is required")
	}
	if err := session.FetchHabits(); err != nil {
		return nil, nil, err
	}

	matches := session.Habits.Find(func(h models.Habit) bool {
		return strings.EqualFold(h.Name, name)
	})
	if len(matches) == 0 {
		matches = session.Habits.Find(func(h models.Habit) bool {
			return strings.Contains(strings.ToLower(h.Name), strings.ToLower(name))
		})
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no habit matching %q", name)
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, h := range matches {
			names[i] = h.Name
		}
		return nil, nil, fmt.Errorf("%q matches several habits: %s", name, strings.Join(names, ", "))
	}
	habit := matches[0]

	day, err := session.GetOrCreateDay(session.Now())
	if err != nil {
		return nil, nil, err
	}
	if err := session.FetchHabitLogs(); err != nil {
		return nil, nil, err
	}

	log, err := session.CreateHabitLog(models.HabitLogInput{
		HabitID:     habit.ID,
		DayID:       &day.ID,
		Date:        day.Date,
		IsCompleted: !input.Missed,
		Note:        input.Note,
	})
	if err != nil {
		return nil, nil, err
	}

	return textResult(map[string]interface{}{
		"habit":        habit.Name,
		"log_id":       log.ID.String(),
		"date":         log.Date.Format("2006-01-02"),
		"is_completed": log.IsCompleted,
		"streak":       session.HabitStreak(habit.ID),
	}), nil, nil
}

// --- create_task ---

type CreateTaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"` // L, M or H
	Project     string `json:"project,omitempty"`  // name or UUID
}

func handleCreateTask(ctx context.Context, req *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, interface{}, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, nil, errors.New("'title' parameter is required")
	}

	taskInput := models.TaskInput{
		Title:       title,
		Description: input.Description,
		Priority:    strings.ToUpper(strings.TrimSpace(input.Priority)),
	}

	if project := strings.TrimSpace(input.Project); project != "" {
		id, err := resolveProjectID(project)
		if err != nil {
			return nil, nil, err
		}
		taskInput.ProjectID = &id
	}

	task, err := session.CreateTask(taskInput)
	if err != nil {
		return nil, nil, err
	}

	result := map[string]interface{}{
		"id":       task.ID.String(),
		"title":    task.Title,
		"status":   task.Status,
		"priority": task.Priority,
	}
	if task.ProjectID != nil {
		result["project_id"] = task.ProjectID.String()
	}
	return textResult(result), nil, nil
}

// --- complete_task ---

type CompleteTaskInput struct {
	TaskID string `json:"taskId"`
}

func handleCompleteTask(ctx context.Context, req *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, interface{}, error) {
	arg := strings.TrimSpace(input.TaskID)
	if arg == "" {
		return nil, nil, errors.New("'taskId' parameter is required")
	}
	if err := session.FetchProjects(); err != nil {
		return nil, nil, err
	}
	if err := session.FetchTasks(); err != nil {
		return nil, nil, err
	}

	id, err := resolveTaskID(arg)
	if err != nil {
		return nil, nil, err
	}
	task, err := session.CompleteTask(id)
	if err != nil {
		return nil, nil, err
	}

	result := map[string]interface{}{
		"id":     task.ID.String(),
		"title":  task.Title,
		"status": task.Status,
	}
	if task.ProjectID != nil {
		if project, found := session.Projects.ByID(*task.ProjectID); found {
			result["project"] = map[string]interface{}{
				"name":     project.Name,
				"progress": project.Progress,
				"status":   project.Status,
			}
		}
	}
	return textResult(result), nil, nil
}

// --- day_streak ---

type DayStreakInput struct{}

func handleDayStreak(ctx context.Context, req *mcp.CallToolRequest, input DayStreakInput) (*mcp.CallToolResult, interface{}, error) {
	if err := session.FetchDays(); err != nil {
		return nil, nil, err
	}
	return textResult(map[string]interface{}{
		"streak": session.DayStreak(),
	}), nil, nil
}

// --- create_note ---

type CreateNoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type,omitempty"`
	Today   bool   `json:"today,omitempty"`
}

func handleCreateNote(ctx context.Context, req *mcp.CallToolRequest, input CreateNoteInput) (*mcp.CallToolResult, interface{}, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, nil, errors.New("'title' and 'content' parameters are required")
	}

	noteInput := models.NoteInput{
		Title:   input.Title,
		Content: input.Content,
		Type:    strings.ToUpper(strings.TrimSpace(input.Type)),
	}
	if input.Today {
		day, err := session.GetOrCreateDay(session.Now())
		if err != nil {
			return nil, nil, err
		}
		noteInput.DayID = &day.ID
	}

	note, err := session.CreateNote(noteInput)
	if err != nil {
		return nil, nil, err
	}

	return textResult(map[string]interface{}{
		"id":    note.ID.String(),
		"title": note.Title,
		"type":  note.Type,
	}), nil, nil
}

// --- resolution helpers ---

func resolveProjectID(arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	if err := session.FetchProjects(); err != nil {
		return uuid.Nil, err
	}
	matches := session.Projects.Find(func(p models.Project) bool {
		return strings.EqualFold(p.Name, arg)
	})
	if len(matches) == 0 {
		return uuid.Nil, fmt.Errorf("no project named %q", arg)
	}
	if len(matches) > 1 {
		return uuid.Nil, fmt.Errorf("project name %q is ambiguous", arg)
	}
	return matches[0].ID, nil
}

func resolveTaskID(arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}
	prefix := strings.ToLower(arg)
	matches := session.Tasks.Find(func(t models.Task) bool {
		return strings.HasPrefix(t.ID.String(), prefix)
	})
	if len(matches) == 0 {
		return uuid.Nil, fmt.Errorf("no task matching %q", arg)
	}
	if len(matches) > 1 {
		return uuid.Nil, fmt.Errorf("task id %q is ambiguous", arg)
	}
	return matches[0].ID, nil
}
