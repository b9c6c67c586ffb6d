package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateTopicInput DTO for creating a learning topic
type CreateTopicInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	TargetHours float64 `json:"target_hours"`
}

// ListTopics retrieves all learning topics for the authenticated user.
func ListTopics(c *gin.Context) {
	var topics []models.LearningTopic
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&topics).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve topics")
		return
	}
	ok(c, topics)
}

// CreateTopic creates a new learning topic.
func CreateTopic(c *gin.Context) {
	var input CreateTopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	topic := models.LearningTopic{
		UserID:      currentUserID(c),
		Name:        input.Name,
		Description: input.Description,
		Status:      string(models.TopicStatusActive),
		TargetHours: input.TargetHours,
	}
	if err := DB.Create(&topic).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create topic")
		return
	}
	created(c, topic)
}

// UpdateTopic applies a partial update to a learning topic. Progress and
// actual hours arrive from the client's aggregate rollup.
func UpdateTopic(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var topic models.LearningTopic
	if err := DB.First(&topic, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "topic not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"name", "description", "status", "progress",
		"actual_hours", "target_hours")
	if err := DB.Model(&topic).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update topic")
		return
	}

	DB.First(&topic, "id = ?", id)
	ok(c, topic)
}

// DeleteTopic deletes a learning topic and its concepts.
func DeleteTopic(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var topic models.LearningTopic
	if err := DB.First(&topic, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "topic not found")
		return
	}
	if err := DB.Where("topic_id = ?", id).Delete(&models.LearningConcept{}).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete topic concepts")
		return
	}
	if err := DB.Delete(&topic).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete topic")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// CreateConceptInput DTO for creating a learning concept
type CreateConceptInput struct {
	TopicID   uuid.UUID `json:"topic_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Resources []string  `json:"resources"`
}

// ListConcepts retrieves learning concepts for the authenticated user.
// The rows carry no user id themselves; ownership flows through the topic.
func ListConcepts(c *gin.Context) {
	ownedTopics := DB.Model(&models.LearningTopic{}).Select("id").Where("user_id = ?", currentUserID(c))

	var concepts []models.LearningConcept
	if err := DB.Where("topic_id IN (?)", ownedTopics).Order("created_at ASC").Find(&concepts).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve concepts")
		return
	}
	ok(c, concepts)
}

// CreateConcept creates a new learning concept under a topic.
func CreateConcept(c *gin.Context) {
	var input CreateConceptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var topic models.LearningTopic
	if err := DB.First(&topic, "id = ? AND user_id = ?", input.TopicID, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "topic not found")
		return
	}

	concept := models.LearningConcept{
		TopicID: input.TopicID,
		Name:    input.Name,
		Status:  string(models.ConceptStatusNotStarted),
	}
	if len(input.Resources) > 0 {
		raw, err := json.Marshal(input.Resources)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid resources")
			return
		}
		concept.Resources = datatypes.JSON(raw)
	}

	if err := DB.Create(&concept).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create concept")
		return
	}
	created(c, concept)
}

// UpdateConcept applies a partial update to a learning concept.
func UpdateConcept(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var concept models.LearningConcept
	if err := DB.First(&concept, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "concept not found")
		return
	}
	if !ownsTopic(c, concept.TopicID) {
		fail(c, http.StatusNotFound, "concept not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"name", "status", "understanding_level", "time_spent", "resources")
	if raw, present := updates["resources"]; present {
		encoded, err := json.Marshal(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid resources")
			return
		}
		updates["resources"] = datatypes.JSON(encoded)
	}
	if err := DB.Model(&concept).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update concept")
		return
	}

	DB.First(&concept, "id = ?", id)
	ok(c, concept)
}

// DeleteConcept deletes a learning concept.
func DeleteConcept(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var concept models.LearningConcept
	if err := DB.First(&concept, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "concept not found")
		return
	}
	if !ownsTopic(c, concept.TopicID) {
		fail(c, http.StatusNotFound, "concept not found")
		return
	}
	if err := DB.Delete(&concept).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete concept")
		return
	}
	ok(c, gin.H{"deleted": id})
}

func ownsTopic(c *gin.Context, topicID uuid.UUID) bool {
	var count int64
	DB.Model(&models.LearningTopic{}).Where("id = ? AND user_id = ?", topicID, currentUserID(c)).Count(&count)
	return count > 0
}
