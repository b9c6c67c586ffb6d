package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateCategoryInput DTO for creating a new category
type CreateCategoryInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ListCategories retrieves all categories for the authenticated user.
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("name ASC").Find(&categories).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve categories")
		return
	}
	ok(c, categories)
}

// CreateCategory creates a new category.
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	category := models.Category{
		UserID: currentUserID(c),
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := DB.Create(&category).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create category")
		return
	}
	created(c, category)
}

// UpdateCategory applies a partial update to a category.
func UpdateCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var category models.Category
	if err := DB.First(&category, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "category not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch, "name", "color")
	if err := DB.Model(&category).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update category")
		return
	}

	DB.First(&category, "id = ?", id)
	ok(c, category)
}

// DeleteCategory deletes a category. References are cleared by the client
// orchestrator before this is called.
func DeleteCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var category models.Category
	if err := DB.First(&category, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "category not found")
		return
	}
	if err := DB.Delete(&category).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// CreateTagInput DTO for creating a new tag
type CreateTagInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// ListTags retrieves all tags for the authenticated user.
func ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("name ASC").Find(&tags).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve tags")
		return
	}
	ok(c, tags)
}

// CreateTag creates a new tag.
func CreateTag(c *gin.Context) {
	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	tag := models.Tag{
		UserID: currentUserID(c),
		Name:   input.Name,
		Color:  input.Color,
	}
	if err := DB.Create(&tag).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create tag")
		return
	}
	created(c, tag)
}

// DeleteTag deletes a tag. Its links are removed by the client
// orchestrator before this is called.
func DeleteTag(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var tag models.Tag
	if err := DB.First(&tag, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "tag not found")
		return
	}
	if err := DB.Delete(&tag).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// DeleteTagLinks bulk-deletes every link row attached to a tag.
func DeleteTagLinks(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var tag models.Tag
	if err := DB.First(&tag, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "tag not found")
		return
	}
	result := DB.Where("tag_id = ?", id).Delete(&models.TagLink{})
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to delete tag links")
		return
	}
	ok(c, gin.H{"deleted": result.RowsAffected})
}

// CreateTagLinkInput DTO for attaching a tag to an entity
type CreateTagLinkInput struct {
	TagID   uuid.UUID `json:"tag_id" binding:"required"`
	OwnerID uuid.UUID `json:"owner_id" binding:"required"`
	Kind    string    `json:"kind" binding:"required"`
}

// ListTagLinks retrieves tag links for the authenticated user. The rows
// carry no user id themselves; ownership flows through the tag.
func ListTagLinks(c *gin.Context) {
	ownedTags := DB.Model(&models.Tag{}).Select("id").Where("user_id = ?", currentUserID(c))

	var links []models.TagLink
	if err := DB.Where("tag_id IN (?)", ownedTags).Find(&links).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve tag links")
		return
	}
	ok(c, links)
}

// CreateTagLink attaches a tag to an entity.
func CreateTagLink(c *gin.Context) {
	var input CreateTagLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var tag models.Tag
	if err := DB.First(&tag, "id = ? AND user_id = ?", input.TagID, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "tag not found")
		return
	}

	link := models.TagLink{
		TagID:   input.TagID,
		OwnerID: input.OwnerID,
		Kind:    input.Kind,
	}
	if err := DB.Create(&link).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create tag link")
		return
	}
	created(c, link)
}

// DeleteTagLink deletes a single tag link.
func DeleteTagLink(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var link models.TagLink
	if err := DB.First(&link, "id = ?", id).Error; err != nil {
		fail(c, http.StatusNotFound, "tag link not found")
		return
	}

	var count int64
	DB.Model(&models.Tag{}).Where("id = ? AND user_id = ?", link.TagID, currentUserID(c)).Count(&count)
	if count == 0 {
		fail(c, http.StatusNotFound, "tag link not found")
		return
	}

	if err := DB.Delete(&link).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete tag link")
		return
	}
	ok(c, gin.H{"deleted": id})
}
