package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateProjectInput DTO for creating a new project
type CreateProjectInput struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	ParentID    *uuid.UUID `json:"parent_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ListProjects retrieves all projects for the authenticated user.
func ListProjects(c *gin.Context) {
	var projects []models.Project
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&projects).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve projects")
		return
	}
	ok(c, projects)
}

// CreateProject creates a new project.
func CreateProject(c *gin.Context) {
	var input CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	project := models.Project{
		UserID:      currentUserID(c),
		Name:        input.Name,
		Description: input.Description,
		Status:      string(models.ProjectStatusActive),
		Priority:    NormalizePriority(input.Priority),
		ParentID:    input.ParentID,
		CategoryID:  input.CategoryID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := DB.Create(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create project")
		return
	}
	created(c, project)
}

// UpdateProject applies a partial update to a project.
func UpdateProject(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var project models.Project
	if err := DB.First(&project, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "project not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"name", "description", "status", "priority", "progress",
		"parent_id", "category_id", "start_date", "end_date", "completed_at")
	if err := DB.Model(&project).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update project")
		return
	}

	DB.First(&project, "id = ?", id)
	ok(c, project)
}

// DeleteProject deletes a project.
func DeleteProject(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var project models.Project
	if err := DB.First(&project, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "project not found")
		return
	}
	if err := DB.Delete(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete project")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// DeleteProjectTasks bulk-deletes every task belonging to a project.
func DeleteProjectTasks(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var project models.Project
	if err := DB.First(&project, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "project not found")
		return
	}
	result := DB.Where("project_id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to delete project tasks")
		return
	}
	ok(c, gin.H{"deleted": result.RowsAffected})
}

// ClearProjectCategory nulls out the category reference on every project
// that points at the given category.
func ClearProjectCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	result := DB.Model(&models.Project{}).
		Where("category_id = ? AND user_id = ?", id, currentUserID(c)).
		Update("category_id", nil)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to clear project categories")
		return
	}
	ok(c, gin.H{"cleared": result.RowsAffected})
}
