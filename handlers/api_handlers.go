package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"student-performance-go/db"
	"student-performance-go/models"
	"student-performance-go/stats"
)

// leaderboardSize is the number of students listed in the overview
const leaderboardSize = 5

// APIHandler holds the dependencies for API handlers, like the document store
type APIHandler struct {
	Store db.DocumentStore
	// DatabaseURLSet reports whether a connection string was configured, for GET /test
	DatabaseURLSet bool
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store db.DocumentStore, databaseURLSet bool) *APIHandler {
	return &APIHandler{
		Store:          store,
		DatabaseURLSet: databaseURLSet,
	}
}

// --- Status Handlers ---

// Root handles GET /
func (h *APIHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Student Performance Backend Running"})
}

// TestDatabase handles GET /test. Store problems are reported in the body.
func (h *APIHandler) TestDatabase(c *gin.Context) {
	resp := models.Diagnostics{
		Backend:          "Running",
		Database:         "Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if h.Store == nil {
		resp.Database = "Available but not initialized"
		c.JSON(http.StatusOK, resp)
		return
	}

	urlStatus := "Not Set"
	if h.DatabaseURLSet {
		urlStatus = "Set"
	}
	name := h.Store.Name()
	resp.DatabaseURL = &urlStatus
	resp.DatabaseName = &name

	ctx := c.Request.Context()
	if err := h.Store.Ping(ctx); err != nil {
		resp.Database = "Error: " + truncate(err.Error(), 80)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp.Database = "Available"
	resp.ConnectionStatus = "Connected"

	collections, err := h.Store.ListCollections(ctx)
	if err != nil {
		resp.Database = "Connected but Error: " + truncate(err.Error(), 80)
		c.JSON(http.StatusOK, resp)
		return
	}
	if len(collections) > 10 {
		collections = collections[:10]
	}
	resp.Collections = collections
	resp.Database = "Connected & Working"
	c.JSON(http.StatusOK, resp)
}

// Schema handles GET /schema
func (h *APIHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schemas": []string{models.StudentCollection, models.AssessmentCollection}})
}

// --- Student Handlers ---

// CreateStudent handles POST /api/students
func (h *APIHandler) CreateStudent(c *gin.Context) {
	var req models.StudentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.create(c.Request.Context(), models.StudentCollection, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListStudents handles GET /api/students
func (h *APIHandler) ListStudents(c *gin.Context) {
	docs, err := h.Store.GetDocuments(c.Request.Context(), models.StudentCollection, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	students := make([]models.Student, 0, len(docs))
	for _, doc := range docs {
		var s models.Student
		if err := db.DecodeDocument(doc, &s); err != nil {
			respondError(c, err)
			return
		}
		students = append(students, s)
	}
	c.JSON(http.StatusOK, students)
}

// ImportStudents handles POST /api/import/students
func (h *APIHandler) ImportStudents(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received file upload: %s", header.Filename)

	importedCount, err := db.ImportStudentsFromExcel(c.Request.Context(), h.Store, file)
	if err != nil {
		log.Printf("Error importing students from file %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail":        "Failed to import students: " + err.Error(),
			"importedCount": importedCount,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": importedCount,
	})
}

// --- Assessment Handlers ---

// CreateAssessment handles POST /api/assessments
func (h *APIHandler) CreateAssessment(c *gin.Context) {
	var req models.AssessmentCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	studentID, err := h.resolveStudent(ctx, req.StudentID)
	if err != nil {
		respondError(c, err)
		return
	}
	req.StudentID = studentID

	id, err := h.create(ctx, models.AssessmentCollection, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// GetStudentAssessments handles GET /api/students/:studentId/assessments
func (h *APIHandler) GetStudentAssessments(c *gin.Context) {
	assessments, err := h.studentAssessments(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

// GetStudentStats handles GET /api/students/:studentId/stats
func (h *APIHandler) GetStudentStats(c *gin.Context) {
	assessments, err := h.studentAssessments(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats.ComputeStats(assessments))
}

// Overview handles GET /api/overview
func (h *APIHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	assessments, err := h.assessments(ctx, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Overview{
		Stats:       stats.ComputeStats(assessments),
		TopStudents: h.topStudents(ctx, assessments),
	})
}

// --- Helpers ---

func (h *APIHandler) create(ctx context.Context, collection string, v any) (string, error) {
	doc, err := db.ToDocument(v)
	if err != nil {
		return "", err
	}
	return h.Store.CreateDocument(ctx, collection, doc)
}

// resolveStudent returns the canonical ID of an existing student.
// A malformed ID is reported like an unknown one.
func (h *APIHandler) resolveStudent(ctx context.Context, studentID string) (string, error) {
	id, err := db.ParseID(studentID)
	if err != nil {
		return "", fmt.Errorf("assessment for %q: %w", studentID, ErrStudentNotFound)
	}
	doc, err := h.Store.GetDocument(ctx, models.StudentCollection, id)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("assessment for %q: %w", studentID, ErrStudentNotFound)
	}
	return id, nil
}

func (h *APIHandler) studentAssessments(c *gin.Context) ([]models.Assessment, error) {
	id, err := db.ParseID(c.Param("studentId"))
	if err != nil {
		return nil, err
	}
	return h.assessments(c.Request.Context(), map[string]any{"student_id": id})
}

func (h *APIHandler) assessments(ctx context.Context, filter map[string]any) ([]models.Assessment, error) {
	docs, err := h.Store.GetDocuments(ctx, models.AssessmentCollection, filter)
	if err != nil {
		return nil, err
	}
	assessments := make([]models.Assessment, 0, len(docs))
	for _, doc := range docs {
		var a models.Assessment
		if err := db.DecodeDocument(doc, &a); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// topStudents builds the leaderboard from already loaded assessments.
// A failed or impossible name lookup leaves that entry's name null.
func (h *APIHandler) topStudents(ctx context.Context, assessments []models.Assessment) []models.TopStudent {
	top := stats.TopStudents(assessments, leaderboardSize)
	for i := range top {
		id, err := db.ParseID(top[i].StudentID)
		if err != nil {
			log.Printf("Leaderboard entry has malformed student ID %q", top[i].StudentID)
			continue
		}
		doc, err := h.Store.GetDocument(ctx, models.StudentCollection, id)
		if err != nil {
			log.Printf("Error looking up student %s for leaderboard: %v", top[i].StudentID, err)
			continue
		}
		if name, ok := doc["name"].(string); ok {
			top[i].StudentName = &name
		}
	}
	return top
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
