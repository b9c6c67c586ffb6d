package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateDayInput DTO for opening a new day
type CreateDayInput struct {
	Date time.Time `json:"date" binding:"required"`
}

// ListDays retrieves all days for the authenticated user.
func ListDays(c *gin.Context) {
	var days []models.Day
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("date DESC").Find(&days).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve days")
		return
	}
	ok(c, days)
}

// GetDayByDate looks up the unique day row for a calendar date.
func GetDayByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	var day models.Day
	if err := DB.First(&day, "user_id = ? AND date = ?", currentUserID(c), date).Error; err != nil {
		fail(c, http.StatusNotFound, "day not found")
		return
	}
	ok(c, day)
}

// CreateDay opens a day row. The (user, date) pair is unique; a second
// create for the same date fails on the index.
func CreateDay(c *gin.Context) {
	var input CreateDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	day := models.Day{
		UserID: currentUserID(c),
		Date:   input.Date.Truncate(24 * time.Hour),
	}
	if err := DB.Create(&day).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create day")
		return
	}
	created(c, day)
}

// UpdateDay applies a partial update to a day.
func UpdateDay(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var day models.Day
	if err := DB.First(&day, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "day not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"is_completed", "mood", "energy", "sleep_hours",
		"gratitude", "reflection", "highlights")
	if err := DB.Model(&day).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update day")
		return
	}

	DB.First(&day, "id = ?", id)
	ok(c, day)
}

// DeleteDay deletes a day.
func DeleteDay(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var day models.Day
	if err := DB.First(&day, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "day not found")
		return
	}
	if err := DB.Delete(&day).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete day")
		return
	}
	ok(c, gin.H{"deleted": id})
}
