// Package progress holds the derived-aggregate calculators: streaks,
// completion rollups and the status auto-transitions that follow them.
//
// Every function here is pure and recomputes from the full child set it is
// handed. Nothing keeps incremental counters, so repeated invocation
// converges no matter how many mutations were batched in between.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/internal/models"
)

// StreakLookback caps how far back the habit streak walk goes.
const StreakLookback = 365

// DayStart normalizes a timestamp to its calendar-day boundary.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayKey renders a timestamp as its calendar date in loc. Streak logic
// compares these strings instead of time.Time values: instants carry a
// location (and, off the clock, a monotonic reading) that breaks equality
// between a wire-decoded UTC date and a locally-derived one.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// SameDay reports whether two timestamps fall on the same calendar day,
// judged in b's location.
func SameDay(a, b time.Time) bool {
	return dayKey(a, b.Location()) == dayKey(b, b.Location())
}

func ratio(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// HabitStreak counts consecutive days with a completed log for the habit,
// walking backward from asOf. The walk stops at the first day without a
// completed log and looks back at most StreakLookback days. A habit with
// no completed log on asOf's own day has a streak of 0.
func HabitStreak(logs []models.HabitLog, habitID uuid.UUID, asOf time.Time) int {
	loc := asOf.Location()
	completed := make(map[string]bool, len(logs))
	for _, l := range logs {
		if l.HabitID == habitID && l.IsCompleted {
			completed[dayKey(l.Date, loc)] = true
		}
	}

	streak := 0
	day := DayStart(asOf)
	for i := 0; i < StreakLookback; i++ {
		if !completed[dayKey(day, loc)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DayChainStreak counts the leading completed days when the journal is
// sorted most-recent-first. The chain breaks at the first incomplete day;
// completed days past the break do not count.
func DayChainStreak(days []models.Day) int {
	sorted := make([]models.Day, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	streak := 0
	for _, d := range sorted {
		if !d.IsCompleted {
			break
		}
		streak++
	}
	return streak
}

// SetManualProgress applies a hand-entered progress value to a project,
// clamping to [0,100]. Completion status and the completedAt stamp follow
// exactly when the clamped value reaches 100. Use TaskDerivedProgress
// instead when the project's progress is driven by its tasks; the two
// modes are caller-chosen and never overwrite each other silently.
func SetManualProgress(p *models.Project, value int, now time.Time) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	p.Progress = value
	if value == 100 {
		p.Status = string(models.ProjectStatusCompleted)
		if p.CompletedAt == nil {
			stamp := now
			p.CompletedAt = &stamp
		}
	}
}

// TaskDerivedProgress computes a project's completion ratio from its
// tasks. Zero tasks yields 0.
func TaskDerivedProgress(tasks []models.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Status == string(models.TaskStatusCompleted) {
			done++
		}
	}
	return ratio(done, len(tasks))
}

// RecalcRoad recomputes a road's progress from its milestones and applies
// the status transition both ways: reaching 100 marks the road COMPLETED
// and stamps completedAt; a milestone coming back incomplete on a
// COMPLETED road reverts it to ACTIVE and clears the stamp. A road with
// no milestones keeps its status at progress 0.
func RecalcRoad(road *models.Road, milestones []models.Milestone, now time.Time) {
	if len(milestones) == 0 {
		road.Progress = 0
		return
	}

	done := 0
	for _, m := range milestones {
		if m.IsCompleted {
			done++
		}
	}
	road.Progress = ratio(done, len(milestones))

	switch {
	case road.Progress == 100 && road.Status != string(models.RoadStatusCompleted):
		road.Status = string(models.RoadStatusCompleted)
		stamp := now
		road.CompletedAt = &stamp
	case road.Progress < 100 && road.Status == string(models.RoadStatusCompleted):
		road.Status = string(models.RoadStatusActive)
		road.CompletedAt = nil
	}
}

// RecalcTopic recomputes a learning topic's progress and hour total from
// its concepts. COMPLETED and MASTERED concepts both count toward
// progress. Status auto-promotes: ON_HOLD becomes ACTIVE once any
// progress exists, and any status becomes COMPLETED at 100%.
func RecalcTopic(topic *models.LearningTopic, concepts []models.LearningConcept) {
	done := 0
	hours := 0.0
	for _, c := range concepts {
		if c.Status == string(models.ConceptStatusCompleted) || c.Status == string(models.ConceptStatusMastered) {
			done++
		}
		hours += c.TimeSpent
	}
	topic.Progress = ratio(done, len(concepts))
	topic.ActualHours = hours

	if len(concepts) > 0 && topic.Progress == 100 {
		topic.Status = string(models.TopicStatusCompleted)
		return
	}
	if topic.Status == string(models.TopicStatusOnHold) && topic.Progress > 0 {
		topic.Status = string(models.TopicStatusActive)
	}
}
