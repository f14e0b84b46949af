// Package assessment grades mock-interview quizzes and asks the model for
// quiz questions and improvement tips.
package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/muhammadolammi/careerworker/internal/llm"
)

// CategoryTechnical is the only quiz category the app produces.
const CategoryTechnical = "Technical"

var ErrQuizGeneration = errors.New("failed to generate quiz questions")

type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Result is a graded quiz ready to be stored.
type Result struct {
	Questions      []QuestionResult `json:"questions"`
	QuizScore      float64          `json:"quizScore"`
	Category       string           `json:"category"`
	ImprovementTip *string          `json:"improvementTip"`
}

// Grade pairs each question with the answer at the same index. Missing
// answers count as blank.
func Grade(questions []Question, answers []string) []QuestionResult {
	out := make([]QuestionResult, len(questions))
	for i, q := range questions {
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}
		out[i] = QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answer,
			IsCorrect:   q.CorrectAnswer == answer,
			Explanation: q.Explanation,
		}
	}
	return out
}

// Score is the percentage of correct answers.
func Score(results []QuestionResult) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(results)) * 100
}

func Wrong(results []QuestionResult) []QuestionResult {
	var out []QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			out = append(out, r)
		}
	}
	return out
}

type Service struct {
	gen    llm.Generator
	logger *slog.Logger
}

func NewService(gen llm.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, logger: logger}
}

// Evaluate grades a quiz. When score is nil it is computed from the
// answers. An improvement tip is requested only when something was wrong,
// and a failed tip request leaves the tip empty.
func (s *Service) Evaluate(ctx context.Context, industry string, questions []Question, answers []string, score *float64) Result {
	results := Grade(questions, answers)
	res := Result{Questions: results, Category: CategoryTechnical}
	if score != nil {
		res.QuizScore = *score
	} else {
		res.QuizScore = Score(results)
	}

	wrong := Wrong(results)
	if len(wrong) == 0 || s.gen == nil {
		return res
	}

	tip, err := s.gen.Generate(ctx, ImprovementPrompt(industry, wrong))
	if err != nil {
		s.logger.Warn("error generating improvement tip", "error", err)
		return res
	}
	tip = strings.TrimSpace(tip)
	if tip != "" {
		res.ImprovementTip = &tip
	}
	return res
}

// GenerateQuiz asks the model for ten multiple choice questions.
func (s *Service) GenerateQuiz(ctx context.Context, industry string, skills []string) ([]Question, error) {
	if s.gen == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrQuizGeneration)
	}
	text, err := s.gen.Generate(ctx, QuizPrompt(industry, skills))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuizGeneration, err)
	}
	var quiz struct {
		Questions []Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSON(text)), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuizGeneration, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", ErrQuizGeneration)
	}
	return quiz.Questions, nil
}
