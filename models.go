package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/careerworker/internal/assessment"
	"github.com/muhammadolammi/careerworker/internal/config"
	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/muhammadolammi/careerworker/internal/insights"
	"github.com/muhammadolammi/careerworker/internal/resume"
)

const (
	JobInsights      = "insights"
	JobAssessment    = "assessment"
	JobQuiz          = "quiz"
	JobResumeImport  = "resume_import"
	JobResumeImprove = "resume_improve"

	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"

	jobsQueue       = "jobs"
	updatesExchange = "job_updates"
)

// Store is the subset of database queries the worker uses.
type Store interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (database.User, error)
	GetIndustryInsight(ctx context.Context, industry string) (database.IndustryInsight, error)
	UpsertIndustryInsight(ctx context.Context, arg database.UpsertIndustryInsightParams) error
	ListStaleIndustries(ctx context.Context, now time.Time) ([]string, error)
	GetIndustryProfile(ctx context.Context, industry string) (database.IndustryProfile, error)
	CreateAssessment(ctx context.Context, arg database.CreateAssessmentParams) (database.Assessment, error)
	GetResumeUpload(ctx context.Context, id uuid.UUID) (database.ResumeUpload, error)
	UpsertResumeContent(ctx context.Context, arg database.UpsertResumeContentParams) error
	UpdateJobStatus(ctx context.Context, arg database.UpdateJobStatusParams) error
}

// Publisher fans job status updates out to listeners.
type Publisher interface {
	PublishJobUpdate(jobID string, update JobUpdate) error
}

// Improver rewrites a resume section.
type Improver interface {
	Improve(ctx context.Context, userID, message string) (string, error)
}

type WorkerConfig struct {
	DB          Store
	Insights    *insights.Service
	Assessments *assessment.Service
	Improver    Improver
	R2          *config.R2
	Bucket      resume.ObjectGetter
	Publisher   Publisher
	RABBITMQUrl string
	Logger      *slog.Logger
	// Now is overridable for tests.
	Now         func() time.Time
}

// Job is the message body on the jobs queue.
type Job struct {
	ID      uuid.UUID       `json:"id"`
	Kind    string          `json:"kind"`
	UserID  uuid.UUID       `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

type JobUpdate struct {
	JobID     uuid.UUID       `json:"job_id"`
	Kind      string          `json:"kind"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type InsightsPayload struct {
	// Force regenerates even when stored insights are current.
	Force bool `json:"force"`
}

type AssessmentPayload struct {
	Questions []assessment.Question `json:"questions"`
	Answers   []string              `json:"answers"`
	Score     *float64              `json:"score"`
}

type ResumeImportPayload struct {
	UploadID uuid.UUID `json:"upload_id"`
}

type ResumeImprovePayload struct {
	Type    string `json:"type"`
	Current string `json:"current"`
}
