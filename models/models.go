package models

// Collection names used in the document store
const (
	StudentCollection    = "student"
	AssessmentCollection = "assessment"
)

// Student represents a student record
type Student struct {
	ID        string `json:"id"`                   // Store-assigned ID
	Name      string `json:"name"`                 // Student full name
	Email     string `json:"email,omitempty"`      // Contact email
	ClassName string `json:"class_name,omitempty"` // Class/grade, e.g. 10-A
	RollNo    string `json:"roll_no,omitempty"`    // Roll number
}

// Assessment represents one scored assessment of a student in a subject
type Assessment struct {
	ID             string  `json:"id"`
	StudentID      string  `json:"student_id"`
	Subject        string  `json:"subject"`
	Score          float64 `json:"score"` // Obtained marks, may exceed Total
	Total          float64 `json:"total"`
	AssessmentDate string  `json:"assessment_date,omitempty"` // YYYY-MM-DD
	AssessmentType string  `json:"assessment_type,omitempty"` // Quiz/Test/Exam/Assignment
}

// StudentCreate is the request body for POST /api/students
type StudentCreate struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email,omitempty"`
	ClassName string `json:"class_name,omitempty"`
	RollNo    string `json:"roll_no,omitempty"`
}

// AssessmentCreate is the request body for POST /api/assessments.
// Score and Total are pointers so that a zero score still passes "required".
type AssessmentCreate struct {
	StudentID      string   `json:"student_id" binding:"required"`
	Subject        string   `json:"subject" binding:"required"`
	Score          *float64 `json:"score" binding:"required,gte=0"`
	Total          *float64 `json:"total" binding:"required,gt=0"`
	AssessmentDate string   `json:"assessment_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	AssessmentType string   `json:"assessment_type,omitempty"`
}

// Stats summarizes a list of assessments
type Stats struct {
	OverallAverage    float64            `json:"overall_average"`
	PerSubjectAverage map[string]float64 `json:"per_subject_average"`
	BestSubject       *string            `json:"best_subject"`
	WorstSubject      *string            `json:"worst_subject"`
	AssessmentsCount  int                `json:"assessments_count"`
}

// TopStudent is one leaderboard entry
type TopStudent struct {
	StudentID   string  `json:"student_id"`
	StudentName *string `json:"student_name"`
	AvgPct      float64 `json:"avgPct"`
	Count       int     `json:"count"`
}

// Overview is the response of GET /api/overview
type Overview struct {
	Stats
	TopStudents []TopStudent `json:"top_students"`
}

// Diagnostics is the response of GET /test
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
