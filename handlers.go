package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/muhammadolammi/careerworker/internal/database"
	"github.com/muhammadolammi/careerworker/internal/insights"
	"github.com/muhammadolammi/careerworker/internal/resume"
)

var errNoIndustry = errors.New("user has no industry")

type assessmentResult struct {
	AssessmentID   string  `json:"assessment_id"`
	QuizScore      float64 `json:"quizScore"`
	ImprovementTip *string `json:"improvementTip"`
}

func decodePayload(job Job, v any) error {
	if len(job.Payload) == 0 || string(job.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(job.Payload, v); err != nil {
		return fmt.Errorf("invalid %s payload: %w", job.Kind, err)
	}
	return nil
}

func (workerConfig *WorkerConfig) userProfile(ctx context.Context, job Job) (database.User, error) {
	user, err := workerConfig.DB.GetUserByID(ctx, job.UserID)
	if err != nil {
		return database.User{}, fmt.Errorf("error getting user %v: %w", job.UserID, err)
	}
	if !user.Industry.Valid || user.Industry.String == "" {
		return database.User{}, errNoIndustry
	}
	return user, nil
}

func (workerConfig *WorkerConfig) handleInsights(ctx context.Context, job Job) (json.RawMessage, string, error) {
	var payload InsightsPayload
	if err := decodePayload(job, &payload); err != nil {
		return nil, "", err
	}
	user, err := workerConfig.userProfile(ctx, job)
	if err != nil {
		return nil, "", err
	}
	industry := user.Industry.String

	if !payload.Force {
		current, err := workerConfig.DB.GetIndustryInsight(ctx, industry)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return nil, "", fmt.Errorf("error getting insight for %s: %w", industry, err)
		default:
			var ranges []json.RawMessage
			_ = json.Unmarshal(current.SalaryRanges, &ranges)
			if !insights.NeedsRefresh(insights.Current{
				Exists:       true,
				RoleCount:    len(ranges),
				GrowthRate:   current.GrowthRate,
				LastUpdated:  current.LastUpdated,
				ProfileSaved: user.UpdatedAt,
			}) {
				return nil, "insights are current", nil
			}
		}
	}

	result, err := workerConfig.generateInsights(ctx, industry, user.Location.String, user.Experience.Float64)
	if err != nil {
		return nil, "", err
	}
	return result, "insights generated", nil
}

// generateInsights produces and stores insights for one industry and
// returns them as JSON.
func (workerConfig *WorkerConfig) generateInsights(ctx context.Context, industry, location string, experience float64) (json.RawMessage, error) {
	generated, source, err := workerConfig.Insights.Generate(ctx, insights.Request{
		Industry:   industry,
		Location:   location,
		Experience: experience,
	})
	if err != nil {
		return nil, err
	}
	for _, r := range generated.SalaryRanges {
		workerConfig.Logger.Debug("normalized salary range", "industry", industry, "range", r.Summary())
	}

	ranges, err := json.Marshal(generated.SalaryRanges)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal salary ranges: %w", err)
	}
	_, err = retry(ctx, 3, func() (any, error) {
		return nil, workerConfig.DB.UpsertIndustryInsight(ctx, database.UpsertIndustryInsightParams{
			Industry:          industry,
			SalaryRanges:      ranges,
			GrowthRate:        generated.GrowthRate,
			DemandLevel:       generated.DemandLevel,
			TopSkills:         generated.TopSkills,
			MarketOutlook:     generated.MarketOutlook,
			KeyTrends:         generated.KeyTrends,
			RecommendedSkills: generated.RecommendedSkills,
			NextUpdate:        insights.NextUpdate(workerConfig.now()),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save insights after retries: %w", err)
	}
	workerConfig.Logger.Info("insights stored", "industry", industry, "source", source, "roles", len(generated.SalaryRanges))

	return json.Marshal(generated)
}

func (workerConfig *WorkerConfig) handleAssessment(ctx context.Context, job Job) (json.RawMessage, string, error) {
	var payload AssessmentPayload
	if err := decodePayload(job, &payload); err != nil {
		return nil, "", err
	}
	if len(payload.Questions) == 0 {
		return nil, "", fmt.Errorf("assessment has no questions")
	}
	user, err := workerConfig.DB.GetUserByID(ctx, job.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("error getting user %v: %w", job.UserID, err)
	}

	res := workerConfig.Assessments.Evaluate(ctx, user.Industry.String, payload.Questions, payload.Answers, payload.Score)
	questions, err := json.Marshal(res.Questions)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal question results: %w", err)
	}
	var tip sql.NullString
	if res.ImprovementTip != nil {
		tip = sql.NullString{String: *res.ImprovementTip, Valid: true}
	}

	saved, err := retry(ctx, 3, func() (database.Assessment, error) {
		return workerConfig.DB.CreateAssessment(ctx, database.CreateAssessmentParams{
			UserID:         job.UserID,
			QuizScore:      res.QuizScore,
			Questions:      questions,
			Category:       res.Category,
			ImprovementTip: tip,
		})
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to save quiz result: %w", err)
	}

	out, err := json.Marshal(assessmentResult{
		AssessmentID:   saved.ID.String(),
		QuizScore:      res.QuizScore,
		ImprovementTip: res.ImprovementTip,
	})
	return out, "assessment saved", err
}

func (workerConfig *WorkerConfig) handleQuiz(ctx context.Context, job Job) (json.RawMessage, string, error) {
	user, err := workerConfig.userProfile(ctx, job)
	if err != nil {
		return nil, "", err
	}
	questions, err := workerConfig.Assessments.GenerateQuiz(ctx, user.Industry.String, user.Skills)
	if err != nil {
		return nil, "", err
	}
	out, err := json.Marshal(questions)
	return out, fmt.Sprintf("%d questions generated", len(questions)), err
}

func (workerConfig *WorkerConfig) handleResumeImport(ctx context.Context, job Job) (json.RawMessage, string, error) {
	var payload ResumeImportPayload
	if err := decodePayload(job, &payload); err != nil {
		return nil, "", err
	}
	if workerConfig.Bucket == nil || workerConfig.R2 == nil {
		return nil, "", fmt.Errorf("resume storage is not configured")
	}
	upload, err := workerConfig.DB.GetResumeUpload(ctx, payload.UploadID)
	if err != nil {
		return nil, "", fmt.Errorf("error getting resume upload %v: %w", payload.UploadID, err)
	}
	if upload.UserID != job.UserID {
		return nil, "", fmt.Errorf("resume upload %v does not belong to user %v", upload.ID, job.UserID)
	}

	// Network failures are transient.
	fileBytes, err := retry(ctx, 3, func() ([]byte, error) {
		return resume.Download(ctx, workerConfig.Bucket, workerConfig.R2.Bucket, upload.ObjectKey)
	})
	if err != nil {
		return nil, "", fmt.Errorf("file download error: %w", err)
	}
	text, err := resume.ExtractText(upload.Mime, fileBytes)
	if err != nil {
		return nil, "", fmt.Errorf("text extraction error: %w", err)
	}
	content := resume.ToMarkdown(text)
	if strings.TrimSpace(content) == "" {
		return nil, "", fmt.Errorf("no text found in %s", upload.OriginalFilename)
	}

	_, err = retry(ctx, 3, func() (any, error) {
		return nil, workerConfig.DB.UpsertResumeContent(ctx, database.UpsertResumeContentParams{
			UserID:  job.UserID,
			Content: content,
		})
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to save resume after retries: %w", err)
	}
	return nil, "resume imported", nil
}

func (workerConfig *WorkerConfig) handleResumeImprove(ctx context.Context, job Job) (json.RawMessage, string, error) {
	var payload ResumeImprovePayload
	if err := decodePayload(job, &payload); err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(payload.Current) == "" {
		return nil, "", fmt.Errorf("nothing to improve")
	}
	if workerConfig.Improver == nil {
		return nil, "", fmt.Errorf("resume improver is not configured")
	}
	user, err := workerConfig.userProfile(ctx, job)
	if err != nil {
		return nil, "", err
	}

	msg := resume.ImproveMessage(payload.Type, insights.ReadableIndustry(user.Industry.String), payload.Current)
	improved, err := retry(ctx, 2, func() (string, error) {
		return workerConfig.Improver.Improve(ctx, job.UserID.String(), msg)
	})
	if err != nil {
		return nil, "", fmt.Errorf("agent stream error: %w", err)
	}

	out, err := json.Marshal(map[string]string{"improved": strings.TrimSpace(improved)})
	return out, "resume section improved", err
}
