package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateHabitInput DTO for creating a new habit
type CreateHabitInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ListHabits retrieves all habits for the authenticated user.
func ListHabits(c *gin.Context) {
	var habits []models.Habit
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&habits).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve habits")
		return
	}
	ok(c, habits)
}

// CreateHabit creates a new habit.
func CreateHabit(c *gin.Context) {
	var input CreateHabitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	habit := models.Habit{
		UserID:      currentUserID(c),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		IsActive:    true,
	}
	if err := DB.Create(&habit).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create habit")
		return
	}
	created(c, habit)
}

// UpdateHabit applies a partial update to a habit.
func UpdateHabit(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var habit models.Habit
	if err := DB.First(&habit, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "habit not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch, "name", "description", "category", "is_active")
	if err := DB.Model(&habit).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update habit")
		return
	}

	DB.First(&habit, "id = ?", id)
	ok(c, habit)
}

// DeleteHabit deletes a habit.
func DeleteHabit(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var habit models.Habit
	if err := DB.First(&habit, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "habit not found")
		return
	}
	if err := DB.Delete(&habit).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete habit")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// DeleteHabitLogs bulk-deletes every log attached to a habit.
func DeleteHabitLogs(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var habit models.Habit
	if err := DB.First(&habit, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "habit not found")
		return
	}
	result := DB.Where("habit_id = ?", id).Delete(&models.HabitLog{})
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to delete habit logs")
		return
	}
	ok(c, gin.H{"deleted": result.RowsAffected})
}

// CreateHabitLogInput DTO for logging a habit on a date
type CreateHabitLogInput struct {
	HabitID     uuid.UUID  `json:"habit_id" binding:"required"`
	DayID       *uuid.UUID `json:"day_id"`
	Date        time.Time  `json:"date" binding:"required"`
	IsCompleted bool       `json:"is_completed"`
	Note        string     `json:"note"`
}

// ListHabitLogs retrieves habit logs for the authenticated user. The rows
// carry no user id themselves; ownership flows through the habit.
func ListHabitLogs(c *gin.Context) {
	ownedHabits := DB.Model(&models.Habit{}).Select("id").Where("user_id = ?", currentUserID(c))

	var logs []models.HabitLog
	if err := DB.Where("habit_id IN (?)", ownedHabits).Order("date DESC").Find(&logs).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve habit logs")
		return
	}
	ok(c, logs)
}

// CreateHabitLog records one habit log entry.
func CreateHabitLog(c *gin.Context) {
	var input CreateHabitLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var habit models.Habit
	if err := DB.First(&habit, "id = ? AND user_id = ?", input.HabitID, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "habit not found")
		return
	}

	log := models.HabitLog{
		HabitID:     input.HabitID,
		DayID:       input.DayID,
		Date:        input.Date,
		IsCompleted: input.IsCompleted,
		Note:        input.Note,
	}
	if err := DB.Create(&log).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create habit log")
		return
	}
	created(c, log)
}

// UpdateHabitLog applies a partial update to a habit log.
func UpdateHabitLog(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var log models.HabitLog
	if err := DB.First(&log, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "habit log not found")
		return
	}
	if !ownsHabit(c, log.HabitID) {
		fail(c, http.StatusNotFound, "habit log not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch, "is_completed", "note", "date", "day_id")
	if err := DB.Model(&log).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update habit log")
		return
	}

	DB.First(&log, "id = ?", id)
	ok(c, log)
}

// DeleteHabitLog deletes a single habit log.
func DeleteHabitLog(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var log models.HabitLog
	if err := DB.First(&log, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "habit log not found")
		return
	}
	if !ownsHabit(c, log.HabitID) {
		fail(c, http.StatusNotFound, "habit log not found")
		return
	}
	if err := DB.Delete(&log).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete habit log")
		return
	}
	ok(c, gin.H{"deleted": id})
}

func ownsHabit(c *gin.Context, habitID uuid.UUID) bool {
	var count int64
	DB.Model(&models.Habit{}).Where("id = ? AND user_id = ?", habitID, currentUserID(c)).Count(&count)
	return count > 0
}
