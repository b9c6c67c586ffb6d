// Package api builds the HTTP surface the CLI and agent sessions talk to.
package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kutbudev/lifedeck-cli/api/handlers"
)

// NewRouter wires every /v1 route. Everything except /ping requires a
// Bearer API key.
func NewRouter(db *gorm.DB) *gin.Engine {
	handlers.Init(db)

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/v1")
	v1.Use(handlers.RequireAuth)
	{
		v1.GET("/projects", handlers.ListProjects)
		v1.POST("/projects", handlers.CreateProject)
		v1.PUT("/projects/:id", handlers.UpdateProject)
		v1.DELETE("/projects/:id", handlers.DeleteProject)
		v1.DELETE("/projects/:id/tasks", handlers.DeleteProjectTasks)
		v1.POST("/projects/clear-category/:id", handlers.ClearProjectCategory)

		v1.GET("/tasks", handlers.ListTasks)
		v1.POST("/tasks", handlers.CreateTask)
		v1.PUT("/tasks/:id", handlers.UpdateTask)
		v1.DELETE("/tasks/:id", handlers.DeleteTask)
		v1.POST("/tasks/clear-category/:id", handlers.ClearTaskCategory)

		v1.GET("/goals", handlers.ListGoals)
		v1.POST("/goals", handlers.CreateGoal)
		v1.PUT("/goals/:id", handlers.UpdateGoal)
		v1.DELETE("/goals/:id", handlers.DeleteGoal)
		v1.DELETE("/goals/:id/daily-goals", handlers.DeleteGoalDailyGoals)
		v1.POST("/goals/clear-category/:id", handlers.ClearGoalCategory)

		v1.GET("/daily-goals", handlers.ListDailyGoals)
		v1.POST("/daily-goals", handlers.CreateDailyGoal)
		v1.PUT("/daily-goals/:id", handlers.UpdateDailyGoal)
		v1.DELETE("/daily-goals/:id", handlers.DeleteDailyGoal)

		v1.GET("/habits", handlers.ListHabits)
		v1.POST("/habits", handlers.CreateHabit)
		v1.PUT("/habits/:id", handlers.UpdateHabit)
		v1.DELETE("/habits/:id", handlers.DeleteHabit)
		v1.DELETE("/habits/:id/logs", handlers.DeleteHabitLogs)

		v1.GET("/habit-logs", handlers.ListHabitLogs)
		v1.POST("/habit-logs", handlers.CreateHabitLog)
		v1.PUT("/habit-logs/:id", handlers.UpdateHabitLog)
		v1.DELETE("/habit-logs/:id", handlers.DeleteHabitLog)

		v1.GET("/days", handlers.ListDays)
		v1.GET("/days/by-date/:date", handlers.GetDayByDate)
		v1.POST("/days", handlers.CreateDay)
		v1.PUT("/days/:id", handlers.UpdateDay)
		v1.DELETE("/days/:id", handlers.DeleteDay)

		v1.GET("/notes", handlers.ListNotes)
		v1.POST("/notes", handlers.CreateNote)
		v1.PUT("/notes/:id", handlers.UpdateNote)
		v1.DELETE("/notes/:id", handlers.DeleteNote)
		v1.POST("/notes/clear-category/:id", handlers.ClearNoteCategory)

		v1.GET("/categories", handlers.ListCategories)
		v1.POST("/categories", handlers.CreateCategory)
		v1.PUT("/categories/:id", handlers.UpdateCategory)
		v1.DELETE("/categories/:id", handlers.DeleteCategory)

		v1.GET("/tags", handlers.ListTags)
		v1.POST("/tags", handlers.CreateTag)
		v1.DELETE("/tags/:id", handlers.DeleteTag)
		v1.DELETE("/tags/:id/links", handlers.DeleteTagLinks)

		v1.GET("/tag-links", handlers.ListTagLinks)
		v1.POST("/tag-links", handlers.CreateTagLink)
		v1.DELETE("/tag-links/:id", handlers.DeleteTagLink)

		v1.GET("/topics", handlers.ListTopics)
		v1.POST("/topics", handlers.CreateTopic)
		v1.PUT("/topics/:id", handlers.UpdateTopic)
		v1.DELETE("/topics/:id", handlers.DeleteTopic)

		v1.GET("/concepts", handlers.ListConcepts)
		v1.POST("/concepts", handlers.CreateConcept)
		v1.PUT("/concepts/:id", handlers.UpdateConcept)
		v1.DELETE("/concepts/:id", handlers.DeleteConcept)

		v1.GET("/roads", handlers.ListRoads)
		v1.POST("/roads", handlers.CreateRoad)
		v1.PUT("/roads/:id", handlers.UpdateRoad)
		v1.DELETE("/roads/:id", handlers.DeleteRoad)

		v1.GET("/milestones", handlers.ListMilestones)
		v1.POST("/milestones", handlers.CreateMilestone)
		v1.PUT("/milestones/:id", handlers.UpdateMilestone)
		v1.DELETE("/milestones/:id", handlers.DeleteMilestone)
	}

	return r
}
