package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateTaskInput DTO for creating a new task
type CreateTaskInput struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ProjectID   *uuid.UUID `json:"project_id"`
	DayID       *uuid.UUID `json:"day_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	DueDate     *time.Time `json:"due_date"`
}

// ListTasks retrieves all tasks for the authenticated user.
func ListTasks(c *gin.Context) {
	var tasks []models.Task
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&tasks).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve tasks")
		return
	}
	ok(c, tasks)
}

// CreateTask creates a new task.
func CreateTask(c *gin.Context) {
	var input CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	task := models.Task{
		UserID:      currentUserID(c),
		Title:       input.Title,
		Description: input.Description,
		Status:      string(models.TaskStatusTODO),
		Priority:    NormalizePriority(input.Priority),
		ProjectID:   input.ProjectID,
		DayID:       input.DayID,
		CategoryID:  input.CategoryID,
		ParentID:    input.ParentID,
		DueDate:     input.DueDate,
	}

	if err := DB.Create(&task).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create task")
		return
	}
	created(c, task)
}

// UpdateTask applies a partial update to a task.
func UpdateTask(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var task models.Task
	if err := DB.First(&task, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "task not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"title", "description", "status", "priority",
		"project_id", "day_id", "category_id", "parent_id",
		"due_date", "completed_at")
	if err := DB.Model(&task).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update task")
		return
	}

	DB.First(&task, "id = ?", id)
	ok(c, task)
}

// DeleteTask deletes a task.
func DeleteTask(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var task models.Task
	if err := DB.First(&task, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "task not found")
		return
	}
	if err := DB.Delete(&task).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete task")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// ClearTaskCategory nulls out the category reference on every task that
// points at the given category.
func ClearTaskCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	result := DB.Model(&models.Task{}).
		Where("category_id = ? AND user_id = ?", id, currentUserID(c)).
		Update("category_id", nil)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to clear task categories")
		return
	}
	ok(c, gin.H{"cleared": result.RowsAffected})
}
