package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateGoalInput DTO for creating a new goal
type CreateGoalInput struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	IsQuantifiable bool       `json:"is_quantifiable"`
	TargetValue    float64    `json:"target_value"`
	Unit           string     `json:"unit"`
	ParentID       *uuid.UUID `json:"parent_id"`
	CategoryID     *uuid.UUID `json:"category_id"`
	DueDate        *time.Time `json:"due_date"`
}

// ListGoals retrieves all goals for the authenticated user.
func ListGoals(c *gin.Context) {
	var goals []models.Goal
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&goals).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve goals")
		return
	}
	ok(c, goals)
}

// CreateGoal creates a new goal.
func CreateGoal(c *gin.Context) {
	var input CreateGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	goalType := input.Type
	if goalType == "" {
		goalType = string(models.GoalTypeShort)
	}
	goal := models.Goal{
		UserID:         currentUserID(c),
		Title:          input.Title,
		Description:    input.Description,
		Type:           goalType,
		Status:         string(models.GoalStatusActive),
		Priority:       NormalizePriority(input.Priority),
		IsQuantifiable: input.IsQuantifiable,
		TargetValue:    input.TargetValue,
		Unit:           input.Unit,
		ParentID:       input.ParentID,
		CategoryID:     input.CategoryID,
		DueDate:        input.DueDate,
	}

	if err := DB.Create(&goal).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create goal")
		return
	}
	created(c, goal)
}

// UpdateGoal applies a partial update to a goal.
func UpdateGoal(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var goal models.Goal
	if err := DB.First(&goal, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "goal not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"title", "description", "type", "status", "priority",
		"is_quantifiable", "current_value", "target_value", "unit",
		"parent_id", "category_id", "due_date", "completed_at")
	if err := DB.Model(&goal).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update goal")
		return
	}

	DB.First(&goal, "id = ?", id)
	ok(c, goal)
}

// DeleteGoal deletes a goal.
func DeleteGoal(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var goal models.Goal
	if err := DB.First(&goal, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "goal not found")
		return
	}
	if err := DB.Delete(&goal).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete goal")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// DeleteGoalDailyGoals bulk-deletes every daily-goal row attached to a goal.
func DeleteGoalDailyGoals(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var goal models.Goal
	if err := DB.First(&goal, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "goal not found")
		return
	}
	result := DB.Where("goal_id = ?", id).Delete(&models.DailyGoal{})
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to delete daily goals")
		return
	}
	ok(c, gin.H{"deleted": result.RowsAffected})
}

// ClearGoalCategory nulls out the category reference on every goal that
// points at the given category.
func ClearGoalCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	result := DB.Model(&models.Goal{}).
		Where("category_id = ? AND user_id = ?", id, currentUserID(c)).
		Update("category_id", nil)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to clear goal categories")
		return
	}
	ok(c, gin.H{"cleared": result.RowsAffected})
}

// CreateDailyGoalInput DTO for attaching a goal to a day
type CreateDailyGoalInput struct {
	GoalID uuid.UUID `json:"goal_id" binding:"required"`
	DayID  uuid.UUID `json:"day_id" binding:"required"`
	Note   string    `json:"note"`
}

// ListDailyGoals retrieves daily-goal rows for the authenticated user.
// The rows carry no user id themselves; ownership flows through the goal.
func ListDailyGoals(c *gin.Context) {
	ownedGoals := DB.Model(&models.Goal{}).Select("id").Where("user_id = ?", currentUserID(c))

	var dailyGoals []models.DailyGoal
	if err := DB.Where("goal_id IN (?)", ownedGoals).Order("created_at DESC").Find(&dailyGoals).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve daily goals")
		return
	}
	ok(c, dailyGoals)
}

// CreateDailyGoal attaches a goal to a day.
func CreateDailyGoal(c *gin.Context) {
	var input CreateDailyGoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var goal models.Goal
	if err := DB.First(&goal, "id = ? AND user_id = ?", input.GoalID, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "goal not found")
		return
	}

	dailyGoal := models.DailyGoal{
		GoalID: input.GoalID,
		DayID:  input.DayID,
		Note:   input.Note,
	}
	if err := DB.Create(&dailyGoal).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create daily goal")
		return
	}
	created(c, dailyGoal)
}

// UpdateDailyGoal applies a partial update to a daily-goal row.
func UpdateDailyGoal(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var dailyGoal models.DailyGoal
	if err := DB.First(&dailyGoal, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "daily goal not found")
		return
	}
	if !ownsGoal(c, dailyGoal.GoalID) {
		fail(c, http.StatusNotFound, "daily goal not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch, "is_completed", "note", "day_id")
	if err := DB.Model(&dailyGoal).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update daily goal")
		return
	}

	DB.First(&dailyGoal, "id = ?", id)
	ok(c, dailyGoal)
}

// DeleteDailyGoal deletes a daily-goal row.
func DeleteDailyGoal(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var dailyGoal models.DailyGoal
	if err := DB.First(&dailyGoal, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "daily goal not found")
		return
	}
	if !ownsGoal(c, dailyGoal.GoalID) {
		fail(c, http.StatusNotFound, "daily goal not found")
		return
	}
	if err := DB.Delete(&dailyGoal).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete daily goal")
		return
	}
	ok(c, gin.H{"deleted": id})
}

func ownsGoal(c *gin.Context, goalID uuid.UUID) bool {
	var count int64
	DB.Model(&models.Goal{}).Where("id = ? AND user_id = ?", goalID, currentUserID(c)).Count(&count)
	return count > 0
}
