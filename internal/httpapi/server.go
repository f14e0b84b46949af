// Package httpapi exposes salary normalization, insight previews and exam
// history over HTTP for the web app.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/muhammadolammi/careerworker/internal/exam"
	"github.com/muhammadolammi/careerworker/internal/insights"
	"github.com/muhammadolammi/careerworker/internal/salary"
)

// AssessmentLister loads a user's saved quiz results.
type AssessmentLister interface {
	ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]database.Assessment, error)
}

// ExamStore saves and loads mock exam attempts.
type ExamStore interface {
	CreateExamAttempt(ctx context.Context, arg database.CreateExamAttemptParams) (database.ExamAttempt, error)
	ListRecentExamAttempts(ctx context.Context, arg database.ListRecentExamAttemptsParams) ([]database.ExamAttempt, error)
}

type API struct {
	Insights    *insights.Service
	Assessments AssessmentLister
	Exams       ExamStore
	Logger      *slog.Logger
	// Now is overridable for tests.
	Now         func() time.Time
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Post("/salary/normalize", a.normalize)
		r.Post("/insights/preview", a.previewInsights)
		r.Get("/users/{userID}/assessments", a.listAssessments)
		r.Post("/users/{userID}/exams", a.submitExam)
		r.Get("/users/{userID}/exams/history", a.examHistory)
	})
	return r
}

type normalizeRequest struct {
	Ranges     json.RawMessage `json:"ranges"`
	Experience salary.Amount   `json:"experience"`
	Location   string          `json:"location"`
	Options    *salary.Options `json:"options,omitempty"`
}

func (a *API) normalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	opts := salary.DefaultOptions()
	if req.Options != nil {
		opts = mergeOptions(opts, *req.Options)
		if err := opts.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	out := salary.NormalizeWith(opts, salary.DecodeRanges(req.Ranges), req.Experience.Value(), req.Location)
	writeJSON(w, http.StatusOK, map[string]any{"salaryRanges": out})
}

// mergeOptions overrides defaults with the positive fields of o. The result
// still needs Validate.
func mergeOptions(def, o salary.Options) salary.Options {
	if o.GlobalScale > 0 {
		def.GlobalScale = o.GlobalScale
	}
	if o.FXRate > 0 {
		def.FXRate = o.FXRate
	}
	if o.MinBias > 0 {
		def.MinBias = o.MinBias
	}
	if o.MedianBias > 0 {
		def.MedianBias = o.MedianBias
	}
	if o.MaxBoost > 0 {
		def.MaxBoost = o.MaxBoost
	}
	if o.RepairGap > 0 {
		def.RepairGap = o.RepairGap
	}
	return def
}

func (a *API) previewInsights(w http.ResponseWriter, r *http.Request) {
	var req insights.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Industry == "" {
		writeError(w, http.StatusBadRequest, "industry is required")
		return
	}
	out, source, err := a.Insights.Generate(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "insight generation cancelled")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"insights": out, "source": source})
}

func (a *API) listAssessments(w http.ResponseWriter, r *http.Request) {
	if a.Assessments == nil {
		writeError(w, http.StatusNotImplemented, "assessments are not available")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	items, err := a.Assessments.ListAssessmentsByUser(r.Context(), userID)
	if err != nil {
		a.Logger.Error("error fetching assessments", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch assessments")
		return
	}
	out := make([]assessmentView, len(items))
	for i, it := range items {
		out[i] = toView(it)
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": out})
}

type assessmentView struct {
	ID             uuid.UUID       `json:"id"`
	QuizScore      float64         `json:"quizScore"`
	Questions      json.RawMessage `json:"questions"`
	Category       string          `json:"category"`
	ImprovementTip *string         `json:"improvementTip"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func toView(a database.Assessment) assessmentView {
	v := assessmentView{
		ID:        a.ID,
		QuizScore: a.QuizScore,
		Questions: a.Questions,
		Category:  a.Category,
		CreatedAt: a.CreatedAt,
	}
	if a.ImprovementTip.Valid {
		tip := a.ImprovementTip.String
		v.ImprovementTip = &tip
	}
	if len(v.Questions) == 0 {
		v.Questions = json.RawMessage("[]")
	}
	return v
}

func (a *API) submitExam(w http.ResponseWriter, r *http.Request) {
	if a.Exams == nil {
		writeError(w, http.StatusNotImplemented, "exams are not available")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var sub exam.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	params, err := sub.Attempt(userID, a.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attempt, err := a.Exams.CreateExamAttempt(r.Context(), params)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		a.Logger.Error("error submitting exam", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit exam")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"message":         "Exam submitted successfully",
		"attemptId":       attempt.ID,
		"score":           attempt.TotalScore,
		"percentageScore": attempt.PercentageScore,
		"isPassing":       attempt.IsPassing,
	})
}

func (a *API) examHistory(w http.ResponseWriter, r *http.Request) {
	if a.Exams == nil {
		writeError(w, http.StatusNotImplemented, "exams are not available")
		return
	}
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	attempts, err := a.Exams.ListRecentExamAttempts(r.Context(), database.ListRecentExamAttemptsParams{
		UserID: userID,
		Limit:  exam.HistoryLimit,
	})
	if err != nil {
		a.Logger.Error("error fetching exam history", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch exam history")
		return
	}
	out := make([]attemptView, len(attempts))
	for i, at := range attempts {
		out[i] = toAttemptView(at)
	}
	summary := exam.Summarize(attempts)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"attempts":      out,
		"totalAttempts": summary.TotalAttempts,
		"averageScore":  summary.AverageScore,
	})
}

const pqForeignKeyViolation = "23503"

type attemptView struct {
	ID              uuid.UUID       `json:"id"`
	ExamTitle       string          `json:"examTitle"`
	Industry        string          `json:"industry"`
	StartTime       time.Time       `json:"startTime"`
	EndTime         time.Time       `json:"endTime"`
	TimeSpent       int32           `json:"timeSpent"`
	Status          string          `json:"status"`
	TotalScore      float64         `json:"totalScore"`
	PercentageScore float64         `json:"percentageScore"`
	IsPassing       bool            `json:"isPassing"`
	Answers         json.RawMessage `json:"answers"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toAttemptView(a database.ExamAttempt) attemptView {
	v := attemptView{
		ID:              a.ID,
		ExamTitle:       a.ExamTitle,
		Industry:        a.Industry,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		TimeSpent:       a.TimeSpent,
		Status:          a.Status,
		TotalScore:      a.TotalScore,
		PercentageScore: a.PercentageScore,
		IsPassing:       a.IsPassing,
		Answers:         a.Answers,
		CreatedAt:       a.CreatedAt,
	}
	if len(v.Answers) == 0 {
		v.Answers = json.RawMessage("[]")
	}
	return v
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
