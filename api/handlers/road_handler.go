package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateRoadInput DTO for creating a road
type CreateRoadInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListRoads retrieves all roads for the authenticated user.
func ListRoads(c *gin.Context) {
	var roads []models.Road
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&roads).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve roads")
		return
	}
	ok(c, roads)
}

// CreateRoad creates a new road.
func CreateRoad(c *gin.Context) {
	var input CreateRoadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	road := models.Road{
		UserID:      currentUserID(c),
		Title:       input.Title,
		Description: input.Description,
		Status:      string(models.RoadStatusActive),
	}
	if err := DB.Create(&road).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create road")
		return
	}
	created(c, road)
}

// UpdateRoad applies a partial update to a road. Progress, status and
// completed_at arrive from the client's milestone rollup.
func UpdateRoad(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var road models.Road
	if err := DB.First(&road, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "road not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"title", "description", "status", "progress", "completed_at")
	if err := DB.Model(&road).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update road")
		return
	}

	DB.First(&road, "id = ?", id)
	ok(c, road)
}

// DeleteRoad deletes a road and its milestones.
func DeleteRoad(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var road models.Road
	if err := DB.First(&road, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "road not found")
		return
	}
	if err := DB.Where("road_id = ?", id).Delete(&models.Milestone{}).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete road milestones")
		return
	}
	if err := DB.Delete(&road).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete road")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// CreateMilestoneInput DTO for creating a milestone
type CreateMilestoneInput struct {
	RoadID uuid.UUID `json:"road_id" binding:"required"`
	Title  string    `json:"title" binding:"required"`
	Order  int       `json:"order"`
}

// ListMilestones retrieves milestones for the authenticated user. The rows
// carry no user id themselves; ownership flows through the road.
func ListMilestones(c *gin.Context) {
	ownedRoads := DB.Model(&models.Road{}).Select("id").Where("user_id = ?", currentUserID(c))

	var milestones []models.Milestone
	if err := DB.Where("road_id IN (?)", ownedRoads).Order("sort_order ASC").Find(&milestones).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve milestones")
		return
	}
	ok(c, milestones)
}

// CreateMilestone creates a new milestone on a road.
func CreateMilestone(c *gin.Context) {
	var input CreateMilestoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var road models.Road
	if err := DB.First(&road, "id = ? AND user_id = ?", input.RoadID, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "road not found")
		return
	}

	milestone := models.Milestone{
		RoadID: input.RoadID,
		Title:  input.Title,
		Order:  input.Order,
	}
	if err := DB.Create(&milestone).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create milestone")
		return
	}
	created(c, milestone)
}

// UpdateMilestone applies a partial update to a milestone.
func UpdateMilestone(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var milestone models.Milestone
	if err := DB.First(&milestone, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "milestone not found")
		return
	}
	if !ownsRoad(c, milestone.RoadID) {
		fail(c, http.StatusNotFound, "milestone not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch, "title", "is_completed", "order", "completed_at")
	// "order" is a reserved word; the column is sort_order
	if value, present := updates["order"]; present {
		delete(updates, "order")
		updates["sort_order"] = value
	}
	if err := DB.Model(&milestone).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update milestone")
		return
	}

	DB.First(&milestone, "id = ?", id)
	ok(c, milestone)
}

// DeleteMilestone deletes a milestone.
func DeleteMilestone(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var milestone models.Milestone
	if err := DB.First(&milestone, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "milestone not found")
		return
	}
	if !ownsRoad(c, milestone.RoadID) {
		fail(c, http.StatusNotFound, "milestone not found")
		return
	}
	if err := DB.Delete(&milestone).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete milestone")
		return
	}
	ok(c, gin.H{"deleted": id})
}

func ownsRoad(c *gin.Context, roadID uuid.UUID) bool {
	var count int64
	DB.Model(&models.Road{}).Where("id = ? AND user_id = ?", roadID, currentUserID(c)).Count(&count)
	return count > 0
}
