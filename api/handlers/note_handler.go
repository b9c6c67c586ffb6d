package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// CreateNoteInput DTO for creating a new note. Content arrives already
// encrypted when the client's vault is enabled; the server never sees
// reflection plaintext.
type CreateNoteInput struct {
	Title      string     `json:"title" binding:"required"`
	Content    string     `json:"content"`
	Type       string     `json:"type"`
	DayID      *uuid.UUID `json:"day_id"`
	ProjectID  *uuid.UUID `json:"project_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	ConceptID  *uuid.UUID `json:"concept_id"`
}

// ListNotes retrieves all notes for the authenticated user.
func ListNotes(c *gin.Context) {
	var notes []models.Note
	if err := DB.Where("user_id = ?", currentUserID(c)).Order("created_at DESC").Find(&notes).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to retrieve notes")
		return
	}
	ok(c, notes)
}

// CreateNote creates a new note.
func CreateNote(c *gin.Context) {
	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	noteType := input.Type
	if noteType == "" {
		noteType = string(models.NoteTypeGeneral)
	}
	note := models.Note{
		UserID:     currentUserID(c),
		Title:      input.Title,
		Content:    input.Content,
		Type:       noteType,
		DayID:      input.DayID,
		ProjectID:  input.ProjectID,
		CategoryID: input.CategoryID,
		ConceptID:  input.ConceptID,
	}
	if err := DB.Create(&note).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to create note")
		return
	}
	created(c, note)
}

// UpdateNote applies a partial update to a note.
func UpdateNote(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var note models.Note
	if err := DB.First(&note, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "note not found")
		return
	}

	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := filterPatch(patch,
		"title", "content", "type", "is_pinned", "is_archived",
		"day_id", "project_id", "category_id", "concept_id")
	if err := DB.Model(&note).Updates(updates).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to update note")
		return
	}

	DB.First(&note, "id = ?", id)
	ok(c, note)
}

// DeleteNote deletes a note.
func DeleteNote(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var note models.Note
	if err := DB.First(&note, "id = ? AND user_id = ?", id, currentUserID(c)).Error; err != nil {
		fail(c, http.StatusNotFound, "note not found")
		return
	}
	if err := DB.Delete(&note).Error; err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete note")
		return
	}
	ok(c, gin.H{"deleted": id})
}

// ClearNoteCategory nulls out the category reference on every note that
// points at the given category.
func ClearNoteCategory(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	result := DB.Model(&models.Note{}).
		Where("category_id = ? AND user_id = ?", id, currentUserID(c)).
		Update("category_id", nil)
	if result.Error != nil {
		fail(c, http.StatusInternalServerError, "failed to clear note categories")
		return
	}
	ok(c, gin.H{"cleared": result.RowsAffected})
}
