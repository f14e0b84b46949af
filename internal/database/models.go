package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID
	Industry   sql.NullString
	Location   sql.NullString
	Experience sql.NullFloat64
	Skills     []string
	UpdatedAt  time.Time
}

type IndustryInsight struct {
	ID                uuid.UUID
	Industry          string
	SalaryRanges      json.RawMessage
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
	LastUpdated       time.Time
	NextUpdate        time.Time
}

type Assessment struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	QuizScore      float64
	Questions      json.RawMessage
	Category       string
	ImprovementTip sql.NullString
	CreatedAt      time.Time
}

type ResumeUpload struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	ObjectKey        string
	CreatedAt        time.Time
}

type WorkerJob struct {
	ID        uuid.UUID
	Kind      string
	Status    string
	Message   string
	UpdatedAt time.Time
}

type ExamAttempt struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ExamTitle       string
	Industry        string
	StartTime       time.Time
	EndTime         time.Time
	TimeSpent       int32
	Status          string
	TotalScore      float64
	PercentageScore float64
	CorrectAnswers  int32
	TotalQuestions  int32
	IsPassing       bool
	Answers         json.RawMessage
	CreatedAt       time.Time
}
