package handlers

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter registers all routes on a new gin engine
func SetupRouter(h *APIHandler) *gin.Engine {
	useJSONFieldNames()

	router := gin.Default()

	router.GET("/", h.Root)
	router.GET("/test", h.TestDatabase)
	router.GET("/schema", h.Schema)

	api := router.Group("/api")
	{
		// Student routes
		api.POST("/students", h.CreateStudent)
		api.GET("/students", h.ListStudents)
		api.GET("/students/:studentId/assessments", h.GetStudentAssessments)
		api.GET("/students/:studentId/stats", h.GetStudentStats)

		// Assessment routes
		api.POST("/assessments", h.CreateAssessment)

		// Aggregates
		api.GET("/overview", h.Overview)

		// Import route
		api.POST("/import/students", h.ImportStudents)
	}

	return router
}
