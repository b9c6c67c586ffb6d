// Package handlers implements the HTTP handlers behind /v1. Every response
// uses the {success, data, error} envelope the CLI unwraps.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kutbudev/lifedeck-cli/pkg/models"
)

// DB is the shared database handle, set once at startup via Init.
var DB *gorm.DB

// Init wires the database connection into the handler package.
func Init(db *gorm.DB) {
	DB = db
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// RequireAuth resolves the Bearer API key to a user and stores the user id
// on the context. Everything under /v1 runs behind it.
func RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	key, found := strings.CutPrefix(header, "Bearer ")
	if !found || key == "" {
		fail(c, http.StatusUnauthorized, "missing API key")
		c.Abort()
		return
	}

	var user models.User
	if err := DB.First(&user, "api_key = ?", key).Error; err != nil {
		fail(c, http.StatusUnauthorized, "invalid API key")
		c.Abort()
		return
	}

	c.Set("user_id", user.ID)
	c.Next()
}

// currentUserID returns the authenticated user's id set by RequireAuth.
func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}

// parseID reads the :id path parameter. On failure it writes the error
// response and returns false.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// filterPatch keeps only whitelisted keys from a client patch and coerces
// RFC3339 / date strings into time values for timestamp columns. A key
// present with a nil value survives so the column can be set to NULL.
func filterPatch(patch map[string]interface{}, allowed ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(patch))
	for _, key := range allowed {
		value, present := patch[key]
		if !present {
			continue
		}
		if isTimeColumn(key) {
			if s, isStr := value.(string); isStr {
				if t, err := parseTimeValue(s); err == nil {
					value = t
				}
			}
		}
		out[key] = value
	}
	return out
}

func isTimeColumn(key string) bool {
	return strings.HasSuffix(key, "_at") || strings.HasSuffix(key, "_date") || key == "date"
}

func parseTimeValue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// NormalizePriority converts descriptive priority strings to their
// single-character representation.
func NormalizePriority(p string) string {
	switch strings.ToUpper(p) {
	case "HIGH", "H":
		return string(models.PriorityHigh)
	case "LOW", "L":
		return string(models.PriorityLow)
	default:
		return string(models.PriorityMedium)
	}
}
