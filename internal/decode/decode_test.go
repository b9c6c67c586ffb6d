package decode

import (
	"testing"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/apierrors"
)

func validIDs() (string, string) {
	return uuid.NewString(), uuid.NewString()
}

func TestTaskDateNormalization(t *testing.T) {
	id, userID := validIDs()

	tests := []struct {
		name     string
		row      Row
		wantDue  bool
		wantDone bool
	}{
		{
			name: "RFC3339 dates parse",
			row: Row{
				"id": id, "user_id": userID,
				"due_date":     "2026-08-28T09:00:00Z",
				"completed_at": "2026-08-28T17:30:00.123Z",
			},
			wantDue:  true,
			wantDone: true,
		},
		{
			name: "bare calendar date parses",
			row: Row{
				"id": id, "user_id": userID,
				"due_date": "2026-08-28",
			},
			wantDue: true,
		},
		{
			name: "null optional dates map to nil",
			row: Row{
				"id": id, "user_id": userID,
				"due_date": nil, "completed_at": nil,
			},
		},
		{
			name: "absent optional dates map to nil",
			row:  Row{"id": id, "user_id": userID},
		},
		{
			name: "unparseable date maps to nil instead of failing the row",
			row: Row{
				"id": id, "user_id": userID,
				"due_date": "sometime next week",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Task(tt.row)
			if err != nil {
				t.Fatalf("Task() error = %v", err)
			}
			if got := task.DueDate != nil; got != tt.wantDue {
				t.Errorf("DueDate present = %v, want %v", got, tt.wantDue)
			}
			if got := task.CompletedAt != nil; got != tt.wantDone {
				t.Errorf("CompletedAt present = %v, want %v", got, tt.wantDone)
			}
		})
	}
}

func TestTaskMissingIDFailsRow(t *testing.T) {
	_, userID := validIDs()

	rows := []Row{
		{"user_id": userID, "title": "no id"},
		{"id": "not-a-uuid", "user_id": userID},
		{"id": nil, "user_id": userID},
	}

	for _, row := range rows {
		if _, err := Task(row); err == nil {
			t.Errorf("Task(%v) expected decode error, got nil", row)
		} else if !apierrors.IsDecode(err) {
			t.Errorf("Task(%v) error = %v, want decode failure", row, err)
		}
	}
}

func TestConceptResourcesDefaultEmpty(t *testing.T) {
	id, topicID := validIDs()

	tests := []struct {
		name string
		row  Row
		want int
	}{
		{
			name: "present collection decodes",
			row: Row{
				"id": id, "topic_id": topicID,
				"resources": []interface{}{"https://go.dev/tour", "some book"},
			},
			want: 2,
		},
		{
			name: "absent collection defaults to empty",
			row:  Row{"id": id, "topic_id": topicID},
			want: 0,
		},
		{
			name: "null collection defaults to empty",
			row:  Row{"id": id, "topic_id": topicID, "resources": nil},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			concept, err := Concept(tt.row)
			if err != nil {
				t.Fatalf("Concept() error = %v", err)
			}
			if concept.Resources == nil {
				t.Fatal("Resources is nil, want empty slice")
			}
			if len(concept.Resources) != tt.want {
				t.Errorf("len(Resources) = %d, want %d", len(concept.Resources), tt.want)
			}
		})
	}
}

func TestNoteOptionalForeignKeys(t *testing.T) {
	id, userID := validIDs()
	dayID := uuid.NewString()

	note, err := Note(Row{
		"id": id, "user_id": userID,
		"day_id":      dayID,
		"project_id":  nil,
		"category_id": "",
	})
	if err != nil {
		t.Fatalf("Note() error = %v", err)
	}
	if note.DayID == nil || note.DayID.String() != dayID {
		t.Errorf("DayID = %v, want %s", note.DayID, dayID)
	}
	if note.ProjectID != nil {
		t.Errorf("ProjectID = %v, want nil", note.ProjectID)
	}
	if note.CategoryID != nil {
		t.Errorf("CategoryID = %v, want nil", note.CategoryID)
	}

	// A malformed optional FK is a real decode failure, not a silent nil.
	if _, err := Note(Row{"id": id, "user_id": userID, "day_id": "garbage"}); err == nil {
		t.Error("Note() with malformed day_id expected error, got nil")
	}
}

func TestDayNumericFields(t *testing.T) {
	id, userID := validIDs()

	day, err := Day(Row{
		"id": id, "user_id": userID,
		"date":         "2026-08-28",
		"is_completed": true,
		"mood":         float64(4),
		"energy":       float64(3),
		"sleep_hours":  7.5,
	})
	if err != nil {
		t.Fatalf("Day() error = %v", err)
	}
	if day.Mood != 4 || day.Energy != 3 {
		t.Errorf("Mood/Energy = %d/%d, want 4/3", day.Mood, day.Energy)
	}
	if day.SleepHours != 7.5 {
		t.Errorf("SleepHours = %v, want 7.5", day.SleepHours)
	}
	if !day.IsCompleted {
		t.Error("IsCompleted = false, want true")
	}
	if day.Date.Year() != 2026 || day.Date.Month() != 8 || day.Date.Day() != 28 {
		t.Errorf("Date = %v, want 2026-08-28", day.Date)
	}
}
